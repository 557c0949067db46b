package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AreteDriver/agent-audit/internal/config"
	"github.com/AreteDriver/agent-audit/internal/license"
	"github.com/AreteDriver/agent-audit/internal/lint"
	"github.com/AreteDriver/agent-audit/internal/model"
	"github.com/AreteDriver/agent-audit/internal/render"
)

var lintCmd = &cobra.Command{
	Use:   "lint <workflow-file>",
	Short: "Lint a workflow for anti-patterns and best practice violations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wf, err := loadWorkflow(args[0])
		if err != nil {
			return err
		}

		var opts lint.Options
		if categoryFlag != "" {
			cat, err := model.ParseCategory(categoryFlag)
			if err != nil {
				return err
			}
			opts.Category = cat
		}
		if severityFlag != "" {
			sev, err := model.ParseSeverity(severityFlag)
			if err != nil {
				return err
			}
			opts.Severity = sev
		}

		report := lint.Run(lint.DefaultRegistry(), wf, opts)

		switch resolveFormat() {
		case "json":
			if err := render.JSON(os.Stdout, report); err != nil {
				return err
			}
		case "markdown":
			if !requireFeature(license.FeatureMarkdownExport) {
				os.Exit(1)
			}
			render.LintMarkdown(os.Stdout, report)
		default:
			render.LintTable(os.Stdout, report)
		}

		threshold := failUnder
		if threshold == 0 {
			threshold = config.Instance.FailUnder
		}
		if threshold > 0 && report.Score < threshold {
			fmt.Fprintf(os.Stderr, "Score %d is below threshold %d.\n", report.Score, threshold)
			os.Exit(1)
		}
		return nil
	},
}

func registerLintCommand(root *cobra.Command) {
	root.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "Filter by category (budget|resilience|efficiency|security)")
	lintCmd.Flags().StringVarP(&severityFlag, "severity", "s", "", "Filter by severity (error|warning|info)")
	lintCmd.Flags().IntVar(&failUnder, "fail-under", 0, "Exit 1 if score is below this threshold")
	lintCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	lintCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "Output format (table|json|markdown)")
}
