package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AreteDriver/agent-audit/internal/license"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show license status and available features",
	Run: func(cmd *cobra.Command, args []string) {
		info := license.GetInfo()
		tier := license.TierDefinitions[info.Tier]

		fmt.Printf("\nagent-audit %s\n", version)
		fmt.Printf("Tier: %s (%s)\n", tier.Name, tier.PriceLabel)

		if info.LicenseKey != "" {
			masked := info.LicenseKey
			if len(masked) > 9 {
				masked = masked[:9] + "****-****"
			}
			fmt.Printf("Key: %s\n", masked)
			validity := "invalid"
			if info.Valid {
				validity = "valid"
			}
			fmt.Printf("Valid: %s\n", validity)
		}

		fmt.Printf("\nFeatures: %s\n\n", strings.Join(tier.Features, ", "))
	},
}

func registerStatusCommand(root *cobra.Command) {
	root.AddCommand(statusCmd)
}
