package render

import (
	"fmt"
	"strings"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// WorkflowViewer provides a human-readable tree view of a normalized
// workflow for the inspect command.
type WorkflowViewer struct {
	wf *model.Workflow
}

// NewWorkflowViewer creates a viewer for a workflow.
func NewWorkflowViewer(wf *model.Workflow) *WorkflowViewer {
	return &WorkflowViewer{wf: wf}
}

// View returns the tree rendering: a header with workflow metadata followed
// by one branch per step, with nested container steps indented below their
// parent.
func (v *WorkflowViewer) View() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s (format: %s, version: %s)\n",
		v.wf.Name, v.wf.Format, v.wf.Version))
	if v.wf.Description != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", v.wf.Description))
	}
	if v.wf.TokenBudget != nil {
		sb.WriteString(fmt.Sprintf("  budget: %s tokens\n", commaInt(*v.wf.TokenBudget)))
	}
	sb.WriteString("\n")

	if len(v.wf.Steps) == 0 {
		sb.WriteString("No steps\n")
		return sb.String()
	}

	for i, step := range v.wf.Steps {
		last := i == len(v.wf.Steps)-1
		v.writeStep(&sb, step, "", last)
	}

	return sb.String()
}

// ViewDependencies returns a flat listing of each step and what it waits on.
func (v *WorkflowViewer) ViewDependencies() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s (format: %s, version: %s)\n\n", v.wf.Name, v.wf.Format, v.wf.Version))

	if len(v.wf.Steps) == 0 {
		sb.WriteString("No steps\n")
		return sb.String()
	}

	for _, step := range v.wf.Steps {
		if len(step.DependsOn) == 0 {
			sb.WriteString(fmt.Sprintf("%s: (no dependencies)\n", step.ID))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: waits on %s\n", step.ID, strings.Join(step.DependsOn, ", ")))
	}

	return sb.String()
}

func (v *WorkflowViewer) writeStep(sb *strings.Builder, step model.Step, indent string, last bool) {
	prefix := "├─ "
	childIndent := indent + "│  "
	if last {
		prefix = "└─ "
		childIndent = indent + "   "
	}

	sb.WriteString(indent + prefix + step.ID + " [" + string(step.Type) + "]")

	var attrs []string
	if step.Role != "" {
		attrs = append(attrs, "role="+step.Role)
	}
	if step.Model != "" {
		attrs = append(attrs, "model="+step.Model)
	}
	if step.EstimatedTokens != nil {
		attrs = append(attrs, fmt.Sprintf("tokens=%s", commaInt(*step.EstimatedTokens)))
	}
	if len(step.DependsOn) > 0 {
		attrs = append(attrs, "after="+strings.Join(step.DependsOn, ","))
	}
	if len(attrs) > 0 {
		sb.WriteString("  (" + strings.Join(attrs, ", ") + ")")
	}
	sb.WriteString("\n")

	for i, nested := range step.NestedSteps {
		v.writeStep(sb, nested, childIndent, i == len(step.NestedSteps)-1)
	}
}
