package lint

import (
	"fmt"
	"strings"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// registerEfficiencyRules adds the efficiency rules (E001-E004).
func registerEfficiencyRules(r *Registry) {
	r.Register(Rule{
		ID:          "E001",
		Category:    model.CategoryEfficiency,
		Severity:    model.SeverityInfo,
		Description: "Sequential LLM steps could be parallel",
		Func:        checkParallelizable,
	})
	r.Register(Rule{
		ID:          "E002",
		Category:    model.CategoryEfficiency,
		Severity:    model.SeverityWarning,
		Description: "Duplicate role assignments",
		Func:        checkDuplicateRoles,
	})
	r.Register(Rule{
		ID:          "E003",
		Category:    model.CategoryEfficiency,
		Severity:    model.SeverityInfo,
		Description: "Unnecessary checkpoint between lightweight steps",
		Func:        checkLightweightCheckpoint,
	})
	r.Register(Rule{
		ID:          "E004",
		Category:    model.CategoryEfficiency,
		Severity:    model.SeverityWarning,
		Description: "fan_out without max_concurrent limit",
		Func:        checkFanOutNoLimit,
	})
}

// checkParallelizable flags adjacent LLM steps (ignoring non-LLM steps for
// adjacency) where the later step neither depends on the earlier one nor
// references its outputs via ${name} interpolation in its prompt.
func checkParallelizable(wf *model.Workflow) []model.LintFinding {
	var llmSteps []model.Step
	for _, step := range wf.Steps {
		if step.Type == model.StepLLM {
			llmSteps = append(llmSteps, step)
		}
	}

	var findings []model.LintFinding
	for i := 0; i+1 < len(llmSteps); i++ {
		current := llmSteps[i]
		next := llmSteps[i+1]

		if containsString(next.DependsOn, current.ID) {
			continue
		}

		prompt := rawString(next, "prompt")
		hasTextualRef := false
		for _, output := range rawStringList(current, "outputs") {
			if strings.Contains(prompt, "${"+output+"}") {
				hasTextualRef = true
				break
			}
		}

		if !hasTextualRef && len(next.DependsOn) == 0 {
			findings = append(findings, model.LintFinding{
				RuleID:   "E001",
				Category: model.CategoryEfficiency,
				Severity: model.SeverityInfo,
				Message: fmt.Sprintf(
					"Steps '%s' and '%s' appear to have no data dependency — consider running in parallel.",
					current.ID, next.ID),
				StepID:     next.ID,
				Suggestion: "Wrap in a 'parallel' step or add explicit depends_on.",
			})
		}
	}
	return findings
}

// checkDuplicateRoles flags a role held by more than two LLM steps.
func checkDuplicateRoles(wf *model.Workflow) []model.LintFinding {
	roleSteps := make(map[string][]string)
	var roleOrder []string
	for _, step := range wf.Steps {
		if step.Type == model.StepLLM && step.Role != "" {
			if _, seen := roleSteps[step.Role]; !seen {
				roleOrder = append(roleOrder, step.Role)
			}
			roleSteps[step.Role] = append(roleSteps[step.Role], step.ID)
		}
	}

	var findings []model.LintFinding
	for _, role := range roleOrder {
		stepIDs := roleSteps[role]
		if len(stepIDs) > 2 {
			findings = append(findings, model.LintFinding{
				RuleID:   "E002",
				Category: model.CategoryEfficiency,
				Severity: model.SeverityWarning,
				Message: fmt.Sprintf("Role '%s' is assigned to %d steps (%s) — possible redundancy.",
					role, len(stepIDs), strings.Join(stepIDs, ", ")),
				Suggestion: fmt.Sprintf("Consider consolidating %s steps or using different roles.", role),
			})
		}
	}
	return findings
}

// checkLightweightCheckpoint flags checkpoints whose neighbors both declare
// fewer than 5K tokens.
func checkLightweightCheckpoint(wf *model.Workflow) []model.LintFinding {
	const lightweightThreshold = 5000

	var findings []model.LintFinding
	for i, step := range wf.Steps {
		if step.Type != model.StepCheckpoint {
			continue
		}

		prevTokens := 0
		if i > 0 && wf.Steps[i-1].EstimatedTokens != nil {
			prevTokens = *wf.Steps[i-1].EstimatedTokens
		}
		nextTokens := 0
		if i < len(wf.Steps)-1 && wf.Steps[i+1].EstimatedTokens != nil {
			nextTokens = *wf.Steps[i+1].EstimatedTokens
		}

		if prevTokens < lightweightThreshold && nextTokens < lightweightThreshold {
			findings = append(findings, model.LintFinding{
				RuleID:   "E003",
				Category: model.CategoryEfficiency,
				Severity: model.SeverityInfo,
				Message: fmt.Sprintf(
					"Checkpoint '%s' is between lightweight steps — may add unnecessary overhead.", step.ID),
				StepID:     step.ID,
				Suggestion: "Remove checkpoint if recovery isn't needed at this point.",
			})
		}
	}
	return findings
}

func checkFanOutNoLimit(wf *model.Workflow) []model.LintFinding {
	var findings []model.LintFinding
	for _, step := range wf.Steps {
		if step.Type != model.StepFanOut {
			continue
		}
		if v, ok := step.RawParams["max_concurrent"]; !ok || v == nil {
			findings = append(findings, model.LintFinding{
				RuleID:   "E004",
				Category: model.CategoryEfficiency,
				Severity: model.SeverityWarning,
				Message: fmt.Sprintf(
					"fan_out step '%s' has no max_concurrent limit — may overwhelm resources.", step.ID),
				StepID:     step.ID,
				Suggestion: "Add 'max_concurrent: 4' to limit parallel execution.",
			})
		}
	}
	return findings
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
