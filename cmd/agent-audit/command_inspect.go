package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AreteDriver/agent-audit/internal/render"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <workflow-file>",
	Short: "Show the normalized workflow as a step tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wf, err := loadWorkflow(args[0])
		if err != nil {
			return err
		}

		viewer := render.NewWorkflowViewer(wf)
		switch viewMode {
		case "deps":
			fmt.Print(viewer.ViewDependencies())
		case "dag", "":
			fmt.Print(viewer.View())
		default:
			return fmt.Errorf("unknown view %q (expected dag or deps)", viewMode)
		}
		return nil
	},
}

func registerInspectCommand(root *cobra.Command) {
	root.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&viewMode, "view", "dag", "View mode (dag|deps)")
}
