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

var compareCmd = &cobra.Command{
	Use:   "compare <workflow-file>",
	Short: "Compare workflow costs across providers (Pro feature)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !requireFeature(license.FeatureCompare) {
			os.Exit(1)
		}

		wf, err := loadWorkflow(args[0])
		if err != nil {
			return err
		}

		catalog := pricing.NewCatalog(config.Instance.PricingFile)
		estimator := estimate.NewEstimator(catalog)
		result, err := estimator.CompareProviders(wf, compareList)
		if err != nil {
			return err
		}

		if jsonOutput {
			return render.JSON(os.Stdout, result)
		}
		render.CompareTable(os.Stdout, result)
		return nil
	},
}

func registerCompareCommand(root *cobra.Command) {
	root.AddCommand(compareCmd)

	compareCmd.Flags().StringSliceVarP(&compareList, "provider", "p", nil, "Providers to compare (repeat for each)")
	compareCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
}
