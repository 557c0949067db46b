package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AreteDriver/agent-audit/internal/config"
	"github.com/AreteDriver/agent-audit/internal/model"
	"github.com/AreteDriver/agent-audit/internal/pricing"
	"github.com/AreteDriver/agent-audit/internal/render"
)

var providersCmd = &cobra.Command{
	Use:   "providers [name]",
	Short: "List known providers and model pricing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := pricing.NewCatalog(config.Instance.PricingFile)
		providers, err := catalog.Providers()
		if err != nil {
			return err
		}

		names, err := catalog.ListProviders()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			if _, ok := providers[args[0]]; !ok {
				return &model.PricingError{Msg: fmt.Sprintf("unknown provider %q", args[0])}
			}
			names = []string{args[0]}
		}

		if jsonOutput {
			if len(args) == 1 {
				return render.JSON(os.Stdout, providers[args[0]])
			}
			return render.JSON(os.Stdout, providers)
		}

		for _, name := range names {
			provider := providers[name]
			fmt.Printf("\n%s (default: %s)\n", name, provider.DefaultModel)
			modelNames, err := catalog.ListModels(name)
			if err != nil {
				return err
			}
			for _, modelName := range modelNames {
				m := provider.Models[modelName]
				line := fmt.Sprintf("  %-22s in $%.4f/1K  out $%.4f/1K  ctx %d",
					modelName, m.InputPer1K, m.OutputPer1K, m.ContextWindow)
				if m.Notes != "" {
					line += "  (" + m.Notes + ")"
				}
				fmt.Println(line)
			}
		}
		fmt.Println()
		return nil
	},
}

func registerProvidersCommand(root *cobra.Command) {
	root.AddCommand(providersCmd)

	providersCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
}
