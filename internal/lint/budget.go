package lint

import (
	"fmt"
	"math"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// registerBudgetRules adds the budget rules (B001-B004).
func registerBudgetRules(r *Registry) {
	r.Register(Rule{
		ID:          "B001",
		Category:    model.CategoryBudget,
		Severity:    model.SeverityWarning,
		Description: "No token_budget declared at workflow level",
		Func:        checkWorkflowBudget,
	})
	r.Register(Rule{
		ID:          "B002",
		Category:    model.CategoryBudget,
		Severity:    model.SeverityWarning,
		Description: "Step estimate exceeds 50% of workflow budget",
		Func:        checkStepBudgetHog,
	})
	r.Register(Rule{
		ID:          "B003",
		Category:    model.CategoryBudget,
		Severity:    model.SeverityError,
		Description: "Sum of step estimates exceeds declared budget",
		Func:        checkTotalOverBudget,
	})
	r.Register(Rule{
		ID:          "B004",
		Category:    model.CategoryBudget,
		Severity:    model.SeverityInfo,
		Description: "LLM step without estimated_tokens",
		Func:        checkUndeclaredTokens,
	})
}

func checkWorkflowBudget(wf *model.Workflow) []model.LintFinding {
	if wf.TokenBudget == nil {
		return []model.LintFinding{{
			RuleID:     "B001",
			Category:   model.CategoryBudget,
			Severity:   model.SeverityWarning,
			Message:    "Workflow has no token_budget — cost risk is unbounded.",
			Suggestion: "Add 'token_budget: <limit>' to the workflow config.",
		}}
	}
	return nil
}

func checkStepBudgetHog(wf *model.Workflow) []model.LintFinding {
	if wf.TokenBudget == nil || *wf.TokenBudget == 0 {
		return nil
	}

	budget := *wf.TokenBudget
	threshold := float64(budget) * 0.5

	var findings []model.LintFinding
	for _, step := range wf.Steps {
		if step.EstimatedTokens == nil {
			continue
		}
		tokens := *step.EstimatedTokens
		if float64(tokens) > threshold {
			pct := int(math.Round(float64(tokens) / float64(budget) * 100))
			findings = append(findings, model.LintFinding{
				RuleID:   "B002",
				Category: model.CategoryBudget,
				Severity: model.SeverityWarning,
				Message: fmt.Sprintf("Step '%s' uses %s tokens (%d%% of workflow budget).",
					step.ID, commaInt(tokens), pct),
				StepID:     step.ID,
				Suggestion: "Consider breaking this step into smaller sub-steps.",
			})
		}
	}
	return findings
}

func checkTotalOverBudget(wf *model.Workflow) []model.LintFinding {
	if wf.TokenBudget == nil || *wf.TokenBudget == 0 {
		return nil
	}

	total := 0
	for _, step := range wf.Steps {
		if step.EstimatedTokens != nil {
			total += *step.EstimatedTokens
		} else if step.Type == model.StepLLM {
			total += resolveLLMTokens(step)
		}
	}

	if total > *wf.TokenBudget {
		return []model.LintFinding{{
			RuleID:   "B003",
			Category: model.CategoryBudget,
			Severity: model.SeverityError,
			Message: fmt.Sprintf("Estimated total (%s tokens) exceeds workflow budget (%s tokens).",
				commaInt(total), commaInt(*wf.TokenBudget)),
			Suggestion: "Increase token_budget or reduce step estimates.",
		}}
	}
	return nil
}

func checkUndeclaredTokens(wf *model.Workflow) []model.LintFinding {
	var findings []model.LintFinding
	for _, step := range wf.Steps {
		if step.Type == model.StepLLM && step.EstimatedTokens == nil {
			findings = append(findings, model.LintFinding{
				RuleID:     "B004",
				Category:   model.CategoryBudget,
				Severity:   model.SeverityInfo,
				Message:    fmt.Sprintf("Step '%s' has no estimated_tokens — using defaults.", step.ID),
				StepID:     step.ID,
				Suggestion: "Add 'estimated_tokens' to step params for accurate costing.",
			})
		}
	}
	return findings
}
