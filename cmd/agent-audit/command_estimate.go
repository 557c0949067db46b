package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/AreteDriver/agent-audit/internal/config"
	"github.com/AreteDriver/agent-audit/internal/estimate"
	"github.com/AreteDriver/agent-audit/internal/license"
	"github.com/AreteDriver/agent-audit/internal/pricing"
	"github.com/AreteDriver/agent-audit/internal/render"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <workflow-file>",
	Short: "Estimate token usage and cost for a workflow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wf, err := loadWorkflow(args[0])
		if err != nil {
			return err
		}

		provider := providerFlag
		if provider == "" {
			provider = config.Instance.DefaultProvider
		}

		catalog := pricing.NewCatalog(config.Instance.PricingFile)
		estimator := estimate.NewEstimator(catalog)
		result, err := estimator.EstimateWorkflow(wf, provider, modelFlag)
		if err != nil {
			return err
		}

		switch resolveFormat() {
		case "json":
			return render.JSON(os.Stdout, result)
		case "markdown":
			if !requireFeature(license.FeatureMarkdownExport) {
				os.Exit(1)
			}
			render.EstimateMarkdown(os.Stdout, result)
		default:
			render.EstimateTable(os.Stdout, result)
		}
		return nil
	},
}

func registerEstimateCommand(root *cobra.Command) {
	root.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVarP(&providerFlag, "provider", "p", "", "Provider (anthropic, openai, ollama)")
	estimateCmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Model name")
	estimateCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "Output format (table|json|markdown)")
}
