package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AreteDriver/agent-audit/internal/lint"
)

var validateCmd = &cobra.Command{
	Use:   "validate <workflow-file>",
	Short: "Validate workflow structure and dependencies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("□ Parsing workflow...")
		wf, err := loadWorkflow(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("✓ Parsed as %s format (%d steps)\n", wf.Format, len(wf.Steps))

		fmt.Println("□ Checking step references...")
		graph := lint.NewStepGraph(wf)
		if errs := graph.ValidateRefs(); len(errs) > 0 {
			for _, refErr := range errs {
				fmt.Printf("  ✗ %v\n", refErr)
			}
			return fmt.Errorf("%d unresolved step reference(s)", len(errs))
		}

		fmt.Println("□ Detecting cycles...")
		if err := graph.DetectCycles(); err != nil {
			return err
		}

		order, err := graph.TopologicalSort()
		if err != nil {
			return err
		}
		if debugMode {
			fmt.Printf("  Execution order: %v\n", order)
		}

		fmt.Println("✓ All validation passed")
		return nil
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)
}
