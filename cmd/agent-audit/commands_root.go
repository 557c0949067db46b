package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AreteDriver/agent-audit/internal/config"
	"github.com/AreteDriver/agent-audit/internal/license"
	"github.com/AreteDriver/agent-audit/internal/loader"
	"github.com/AreteDriver/agent-audit/internal/logger"
	"github.com/AreteDriver/agent-audit/internal/model"
)

const version = "0.4.0"

var (
	cfgFile         string
	debugMode       bool
	logFormatFlag   string
	pricingFileFlag string
	jsonOutput      bool
	outputFormat    string
	providerFlag    string
	modelFlag       string
	categoryFlag    string
	severityFlag    string
	failUnder       int
	compareList     []string
	viewMode        string
)

var rootCmd = &cobra.Command{
	Use:     "agent-audit",
	Short:   "Analyze agent workflow configs for cost estimation and anti-patterns",
	Long:    "agent-audit estimates token usage and cost for declarative agent workflows\nand lints them for budget, resilience, efficiency, and security issues.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(cfgFile); err != nil {
			return err
		}
		// Flags override config.
		if logFormatFlag != "" {
			config.Instance.LogFormat = logFormatFlag
		}
		if pricingFileFlag != "" {
			config.Instance.PricingFile = pricingFileFlag
		}
		return logger.Init(logger.Config{
			Debug:  debugMode || config.Instance.Debug,
			Format: config.Instance.LogFormat,
		})
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.agent-audit.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (human|json)")
	rootCmd.PersistentFlags().StringVar(&pricingFileFlag, "pricing-file", "", "Pricing catalog YAML (overrides the embedded catalog)")

	registerEstimateCommand(rootCmd)
	registerLintCommand(rootCmd)
	registerCompareCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerInspectCommand(rootCmd)
	registerProvidersCommand(rootCmd)
	registerStatusCommand(rootCmd)
}

// loadWorkflow parses and normalizes a workflow file.
func loadWorkflow(path string) (*model.Workflow, error) {
	return loader.ParseWorkflow(path)
}

// resolveFormat folds the --json shorthand into the --format flag.
func resolveFormat() string {
	if jsonOutput {
		return "json"
	}
	return outputFormat
}

// requireFeature enforces the license gate for pro features. It prints the
// upgrade message and returns false when the feature is unavailable.
func requireFeature(feature string) bool {
	if license.HasFeature(feature) {
		return true
	}
	fmt.Fprintln(os.Stderr, license.UpgradeMessage(feature))
	return false
}
