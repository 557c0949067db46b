package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AreteDriver/agent-audit/internal/model"
)

func intp(n int) *int { return &n }

// ruleIDs extracts the rule IDs from a report's findings.
func ruleIDs(report *model.LintReport) []string {
	ids := make([]string, 0, len(report.Findings))
	for _, f := range report.Findings {
		ids = append(ids, f.RuleID)
	}
	return ids
}

func TestDefaultRegistryHoldsAllRules(t *testing.T) {
	rules := DefaultRegistry().All()
	require.Len(t, rules, 17)

	// Registration order groups by category.
	assert.Equal(t, "B001", rules[0].ID)
	assert.Equal(t, "R001", rules[4].ID)
	assert.Equal(t, "E001", rules[9].ID)
	assert.Equal(t, "S001", rules[13].ID)

	seen := make(map[string]bool)
	for _, rule := range rules {
		assert.False(t, seen[rule.ID], "duplicate rule ID %s", rule.ID)
		seen[rule.ID] = true
	}
}

func TestRunCleanWorkflowScores100(t *testing.T) {
	wf := &model.Workflow{
		Name:        "clean",
		TokenBudget: intp(100000),
		Steps: []model.Step{
			{
				ID:              "plan",
				Type:            model.StepLLM,
				EstimatedTokens: intp(5000),
				OnFailure:       "retry",
				MaxRetries:      3,
			},
		},
	}

	report := Run(DefaultRegistry(), wf, Options{})
	assert.Equal(t, 100, report.Score)
	assert.Empty(t, report.Findings)
	assert.NotNil(t, report.Findings)
}

func TestRunScoreDeductions(t *testing.T) {
	// No budget (warning -5) and one LLM step with no estimate (info -2) and
	// no on_failure (warning -5).
	wf := &model.Workflow{
		Name:  "sloppy",
		Steps: []model.Step{{ID: "a", Type: model.StepLLM}},
	}

	report := Run(DefaultRegistry(), wf, Options{})
	assert.ElementsMatch(t, []string{"B001", "B004", "R001"}, ruleIDs(report))
	assert.Equal(t, 88, report.Score)
	assert.Equal(t, 2, report.WarningCount)
	assert.Equal(t, 1, report.InfoCount)
	assert.Zero(t, report.ErrorCount)
}

func TestRunScoreFloorsAtZero(t *testing.T) {
	// Many shell injection errors at -10 each push the raw score negative.
	steps := make([]model.Step, 12)
	for i := range steps {
		steps[i] = model.Step{
			ID:             "sh",
			Type:           model.StepShell,
			TimeoutSeconds: intp(10),
			RawParams:      map[string]any{"command": "rm ${target}"},
		}
	}
	wf := &model.Workflow{Name: "hostile", TokenBudget: intp(1000), Steps: steps}

	report := Run(DefaultRegistry(), wf, Options{})
	assert.Equal(t, 0, report.Score)
	assert.Equal(t, 12, report.ErrorCount)
}

func TestRunCategoryFilter(t *testing.T) {
	wf := &model.Workflow{
		Name:  "sloppy",
		Steps: []model.Step{{ID: "a", Type: model.StepLLM}},
	}

	report := Run(DefaultRegistry(), wf, Options{Category: model.CategoryBudget})
	for _, f := range report.Findings {
		assert.Equal(t, model.CategoryBudget, f.Category)
	}
	assert.ElementsMatch(t, []string{"B001", "B004"}, ruleIDs(report))
}

func TestRunSeverityFilter(t *testing.T) {
	wf := &model.Workflow{
		Name:  "sloppy",
		Steps: []model.Step{{ID: "a", Type: model.StepLLM}},
	}

	report := Run(DefaultRegistry(), wf, Options{Severity: model.SeverityWarning})
	for _, f := range report.Findings {
		assert.Equal(t, model.SeverityWarning, f.Severity)
	}
	// Score reflects only the reported findings.
	assert.Equal(t, 100-5*len(report.Findings), report.Score)
}

func TestRunScoreMatchesFindings(t *testing.T) {
	wf := &model.Workflow{
		Name:        "mixed",
		TokenBudget: intp(10000),
		Steps: []model.Step{
			{ID: "big", Type: model.StepLLM, EstimatedTokens: intp(9000), OnFailure: "retry", MaxRetries: 2},
			{ID: "sh", Type: model.StepShell, RawParams: map[string]any{"command": "echo hi"}},
		},
	}

	report := Run(DefaultRegistry(), wf, Options{})

	deduction := 0
	for _, f := range report.Findings {
		switch f.Severity {
		case model.SeverityError:
			deduction += 10
		case model.SeverityWarning:
			deduction += 5
		case model.SeverityInfo:
			deduction += 2
		}
	}
	want := 100 - deduction
	if want < 0 {
		want = 0
	}
	assert.Equal(t, want, report.Score)
}
