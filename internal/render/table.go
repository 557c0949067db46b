// Package render turns estimates, lint reports, and comparisons into
// terminal tables, JSON, and markdown.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// cell is one table cell: raw text plus an optional style applied after
// padding, so column widths are computed on the unstyled text.
type cell struct {
	text  string
	style *lipgloss.Style
}

func plain(text string) cell { return cell{text: text} }

func styled(text string, s lipgloss.Style) cell { return cell{text: text, style: &s} }

func emDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// writeTable prints rows as aligned columns. rightAlign marks columns padded
// on the left.
func writeTable(w io.Writer, header []string, rows [][]cell, rightAlign map[int]bool) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, c := range row {
			if n := utf8.RuneCountInString(c.text); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder
	for i, h := range header {
		sb.WriteString(pad(h, widths[i], rightAlign[i]))
		if i < len(header)-1 {
			sb.WriteString("  ")
		}
	}
	fmt.Fprintln(w, boldStyle.Render(sb.String()))

	total := 0
	for _, wd := range widths {
		total += wd + 2
	}
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("-", total-2)))

	for _, row := range rows {
		var line strings.Builder
		for i, c := range row {
			text := pad(c.text, widths[i], rightAlign[i])
			if c.style != nil {
				text = c.style.Render(text)
			}
			line.WriteString(text)
			if i < len(row)-1 {
				line.WriteString("  ")
			}
		}
		fmt.Fprintln(w, line.String())
	}
}

func pad(s string, width int, right bool) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	fill := strings.Repeat(" ", width-n)
	if right {
		return fill + s
	}
	return s + fill
}

// EstimateTable prints a workflow estimate as an aligned table with a total
// row.
func EstimateTable(w io.Writer, est *model.WorkflowEstimate) {
	fmt.Fprintf(w, "\n%s %s\n", boldStyle.Render("WORKFLOW:"), est.WorkflowName)
	fmt.Fprintf(w, "%s %s / %s\n", boldStyle.Render("Provider:"), est.Provider, est.Model)

	if est.BudgetDeclared != nil && *est.BudgetDeclared != 0 {
		fmt.Fprintf(w, "%s %s tokens\n", boldStyle.Render("Budget:"), commaInt(*est.BudgetDeclared))
		if est.BudgetUtilization != nil {
			fmt.Fprintf(w, "%s %v%%\n", boldStyle.Render("Utilization:"), *est.BudgetUtilization)
		}
	}
	fmt.Fprintln(w)

	header := []string{"Step", "Type", "Role", "Tokens", "Cost", "Source"}
	rightAlign := map[int]bool{3: true, 4: true}

	rows := make([][]cell, 0, len(est.Steps)+1)
	for _, s := range est.Steps {
		rows = append(rows, []cell{
			plain(s.StepID),
			styled(string(s.StepType), dimStyle),
			plain(emDash(s.Role)),
			plain(commaInt(s.EstimatedTokens)),
			styled(fmt.Sprintf("$%.4f", s.CostUSD), greenStyle),
			styled(string(s.Source), dimStyle),
		})
	}
	rows = append(rows, []cell{
		styled("TOTAL", boldStyle),
		plain(""),
		plain(""),
		styled(commaInt(est.TotalTokens), boldStyle),
		styled(fmt.Sprintf("$%.4f", est.TotalCostUSD), greenStyle.Bold(true)),
		plain(""),
	})

	writeTable(w, header, rows, rightAlign)
	fmt.Fprintln(w)
}

// LintTable prints a lint report with per-finding severity icons and a
// color-coded score summary.
func LintTable(w io.Writer, report *model.LintReport) {
	fmt.Fprintf(w, "\n%s %s\n\n", boldStyle.Render("WORKFLOW:"), report.WorkflowName)

	if len(report.Findings) > 0 {
		header := []string{" ", "Rule", "Severity", "Step", "Message"}
		rows := make([][]cell, 0, len(report.Findings))
		for _, f := range report.Findings {
			rows = append(rows, []cell{
				styled(severityIcon(f.Severity), severityStyle(f.Severity)),
				styled(f.RuleID, dimStyle),
				styled(string(f.Severity), severityStyle(f.Severity)),
				plain(emDash(f.StepID)),
				plain(f.Message),
			})
		}
		writeTable(w, header, rows, nil)
	} else {
		fmt.Fprintln(w, greenStyle.Render("No findings!"))
	}

	var parts []string
	if report.ErrorCount > 0 {
		parts = append(parts, errStyle.Render(fmt.Sprintf("%d error(s)", report.ErrorCount)))
	}
	if report.WarningCount > 0 {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("%d warning(s)", report.WarningCount)))
	}
	if report.InfoCount > 0 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("%d info", report.InfoCount)))
	}
	summary := strings.Join(parts, ", ")
	if summary == "" {
		summary = greenStyle.Render("all clear")
	}

	score := scoreStyle(report.Score).Render(fmt.Sprintf("%d/100", report.Score))
	fmt.Fprintf(w, "\n%s %s  (%s)\n\n", boldStyle.Render("Score:"), score, summary)
}

// CompareTable prints a provider comparison, highlighting the cheapest
// option.
func CompareTable(w io.Writer, result *model.CompareResult) {
	fmt.Fprintf(w, "\n%s %s\n\n", boldStyle.Render("COMPARE:"), result.WorkflowName)

	header := []string{"Provider", "Model", "Tokens", "Cost"}
	rightAlign := map[int]bool{2: true, 3: true}

	rows := make([][]cell, 0, len(result.Estimates))
	for _, est := range result.Estimates {
		provider := plain(est.Provider)
		if est.Provider == result.Cheapest {
			provider = styled(est.Provider, boldStyle)
		}
		rows = append(rows, []cell{
			provider,
			plain(est.Model),
			plain(commaInt(est.TotalTokens)),
			styled(fmt.Sprintf("$%.4f", est.TotalCostUSD), greenStyle),
		})
	}
	writeTable(w, header, rows, rightAlign)

	if result.SavingsPct > 0 {
		fmt.Fprintf(w, "\n%s %s  %s\n",
			greenStyle.Render("Cheapest:"),
			result.Cheapest,
			dimStyle.Render(fmt.Sprintf("(%v%% savings vs %s)", result.SavingsPct, result.MostExpensive)))
	}
	fmt.Fprintln(w)
}

// commaInt renders an integer with thousands separators.
func commaInt(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var out []byte
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
