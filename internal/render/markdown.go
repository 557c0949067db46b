package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// EstimateMarkdown writes a workflow estimate as a markdown table.
func EstimateMarkdown(w io.Writer, est *model.WorkflowEstimate) {
	lines := []string{
		fmt.Sprintf("# %s", est.WorkflowName),
		fmt.Sprintf("**Provider:** %s / %s", est.Provider, est.Model),
		"",
		"| Step | Type | Role | Tokens | Cost | Source |",
		"|------|------|------|-------:|-----:|--------|",
	}
	for _, s := range est.Steps {
		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s | $%.4f | %s |",
			s.StepID, s.StepType, emDash(s.Role), commaInt(s.EstimatedTokens), s.CostUSD, s.Source))
	}
	lines = append(lines, fmt.Sprintf("| **TOTAL** | | | **%s** | **$%.4f** | |",
		commaInt(est.TotalTokens), est.TotalCostUSD))

	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

// LintMarkdown writes a lint report as markdown.
func LintMarkdown(w io.Writer, report *model.LintReport) {
	lines := []string{
		fmt.Sprintf("# Lint Report: %s", report.WorkflowName),
		fmt.Sprintf("**Score:** %d/100", report.Score),
		"",
	}
	if len(report.Findings) > 0 {
		lines = append(lines,
			"| Rule | Severity | Step | Message |",
			"|------|----------|------|---------|")
		for _, f := range report.Findings {
			lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s |",
				f.RuleID, f.Severity, emDash(f.StepID), f.Message))
		}
	} else {
		lines = append(lines, "No findings.")
	}

	fmt.Fprintln(w, strings.Join(lines, "\n"))
}
