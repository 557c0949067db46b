package lint

import (
	"fmt"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// registerResilienceRules adds the resilience rules (R001-R005).
func registerResilienceRules(r *Registry) {
	r.Register(Rule{
		ID:          "R001",
		Category:    model.CategoryResilience,
		Severity:    model.SeverityWarning,
		Description: "LLM step has no on_failure handler",
		Func:        checkMissingOnFailure,
	})
	r.Register(Rule{
		ID:          "R002",
		Category:    model.CategoryResilience,
		Severity:    model.SeverityWarning,
		Description: "on_failure: abort with no fallback",
		Func:        checkAbortNoFallback,
	})
	r.Register(Rule{
		ID:          "R003",
		Category:    model.CategoryResilience,
		Severity:    model.SeverityInfo,
		Description: "retry without max_retries",
		Func:        checkRetryNoMax,
	})
	r.Register(Rule{
		ID:          "R004",
		Category:    model.CategoryResilience,
		Severity:    model.SeverityWarning,
		Description: "Shell step without timeout",
		Func:        checkShellNoTimeout,
	})
	r.Register(Rule{
		ID:          "R005",
		Category:    model.CategoryResilience,
		Severity:    model.SeverityInfo,
		Description: "No checkpoint between expensive step groups",
		Func:        checkMissingCheckpoint,
	})
}

func checkMissingOnFailure(wf *model.Workflow) []model.LintFinding {
	var findings []model.LintFinding
	for _, step := range wf.Steps {
		if step.Type == model.StepLLM && step.OnFailure == "" {
			findings = append(findings, model.LintFinding{
				RuleID:     "R001",
				Category:   model.CategoryResilience,
				Severity:   model.SeverityWarning,
				Message:    fmt.Sprintf("Step '%s' has no on_failure handler.", step.ID),
				StepID:     step.ID,
				Suggestion: "Add 'on_failure: retry' or 'on_failure: skip' to handle errors.",
			})
		}
	}
	return findings
}

func checkAbortNoFallback(wf *model.Workflow) []model.LintFinding {
	var findings []model.LintFinding
	for _, step := range wf.Steps {
		if step.OnFailure == "abort" && !step.HasFallback {
			findings = append(findings, model.LintFinding{
				RuleID:   "R002",
				Category: model.CategoryResilience,
				Severity: model.SeverityWarning,
				Message: fmt.Sprintf(
					"Step '%s' uses on_failure: abort without a fallback — workflow will halt on any error.",
					step.ID),
				StepID:     step.ID,
				Suggestion: "Add a 'fallback' config or use 'on_failure: retry'.",
			})
		}
	}
	return findings
}

// Note: max_retries 0 doubles as the unset default and as "unbounded retry"
// when on_failure is retry. The rule keeps the unbounded reading, so a
// retry policy without an explicit bound is always flagged.
func checkRetryNoMax(wf *model.Workflow) []model.LintFinding {
	var findings []model.LintFinding
	for _, step := range wf.Steps {
		if step.OnFailure == "retry" && step.MaxRetries == 0 {
			findings = append(findings, model.LintFinding{
				RuleID:   "R003",
				Category: model.CategoryResilience,
				Severity: model.SeverityInfo,
				Message: fmt.Sprintf(
					"Step '%s' has on_failure: retry but max_retries is 0 (unbounded).", step.ID),
				StepID:     step.ID,
				Suggestion: "Set 'max_retries: 3' to prevent infinite retry loops.",
			})
		}
	}
	return findings
}

func checkShellNoTimeout(wf *model.Workflow) []model.LintFinding {
	var findings []model.LintFinding
	for _, step := range wf.Steps {
		if step.Type == model.StepShell && step.TimeoutSeconds == nil {
			findings = append(findings, model.LintFinding{
				RuleID:     "R004",
				Category:   model.CategoryResilience,
				Severity:   model.SeverityWarning,
				Message:    fmt.Sprintf("Shell step '%s' has no timeout — may run indefinitely.", step.ID),
				StepID:     step.ID,
				Suggestion: "Add 'timeout_seconds: 300' to prevent hung processes.",
			})
		}
	}
	return findings
}

// checkMissingCheckpoint flags the first run of 3+ consecutive LLM steps
// totalling 30K+ resolved tokens with no checkpoint. Checkpoints reset the
// counters; other step types leave them unchanged. At most one finding.
func checkMissingCheckpoint(wf *model.Workflow) []model.LintFinding {
	const threshold = 30000

	consecutiveLLM := 0
	expensiveTokens := 0

	for _, step := range wf.Steps {
		switch step.Type {
		case model.StepLLM:
			consecutiveLLM++
			expensiveTokens += resolveLLMTokens(step)
		case model.StepCheckpoint:
			consecutiveLLM = 0
			expensiveTokens = 0
		}

		if consecutiveLLM >= 3 && expensiveTokens >= threshold {
			return []model.LintFinding{{
				RuleID:   "R005",
				Category: model.CategoryResilience,
				Severity: model.SeverityInfo,
				Message: fmt.Sprintf("%d consecutive LLM steps (%s tokens) without a checkpoint.",
					consecutiveLLM, commaInt(expensiveTokens)),
				Suggestion: "Add a checkpoint step between expensive groups for recovery.",
			}}
		}
	}

	return nil
}
