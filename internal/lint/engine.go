package lint

import "github.com/AreteDriver/agent-audit/internal/model"

// severityDeductions are the per-finding score deductions.
var severityDeductions = map[model.Severity]int{
	model.SeverityError:   10,
	model.SeverityWarning: 5,
	model.SeverityInfo:    2,
}

// Options filter which findings a lint run reports. Category selects rules
// before execution; Severity filters findings after all selected rules ran.
type Options struct {
	Category model.RuleCategory
	Severity model.Severity
}

// Run executes the registry's rules against a workflow in registration order
// and produces a scored report. The score is always recomputable from the
// returned findings: 100 minus the per-severity deductions, floored at zero.
func Run(registry *Registry, wf *model.Workflow, opts Options) *model.LintReport {
	var rules []Rule
	if opts.Category != "" {
		rules = registry.ByCategory(opts.Category)
	} else {
		rules = registry.All()
	}

	var findings []model.LintFinding
	for _, rule := range rules {
		findings = append(findings, rule.Func(wf)...)
	}

	if opts.Severity != "" {
		filtered := findings[:0]
		for _, f := range findings {
			if f.Severity == opts.Severity {
				filtered = append(filtered, f)
			}
		}
		findings = filtered
	}

	report := &model.LintReport{
		WorkflowName: wf.Name,
		Findings:     findings,
		Score:        100,
	}
	for _, f := range findings {
		switch f.Severity {
		case model.SeverityError:
			report.ErrorCount++
		case model.SeverityWarning:
			report.WarningCount++
		case model.SeverityInfo:
			report.InfoCount++
		}
		report.Score -= severityDeductions[f.Severity]
	}
	if report.Score < 0 {
		report.Score = 0
	}
	if report.Findings == nil {
		report.Findings = []model.LintFinding{}
	}

	return report
}
