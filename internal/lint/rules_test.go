package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AreteDriver/agent-audit/internal/model"
)

func TestCheckWorkflowBudget(t *testing.T) {
	findings := checkWorkflowBudget(&model.Workflow{Name: "x"})
	require.Len(t, findings, 1)
	assert.Equal(t, "B001", findings[0].RuleID)
	assert.Empty(t, findings[0].StepID)

	assert.Empty(t, checkWorkflowBudget(&model.Workflow{TokenBudget: intp(1000)}))
}

func TestCheckStepBudgetHog(t *testing.T) {
	wf := &model.Workflow{
		TokenBudget: intp(10000),
		Steps: []model.Step{
			{ID: "small", Type: model.StepLLM, EstimatedTokens: intp(4000)},
			{ID: "big", Type: model.StepLLM, EstimatedTokens: intp(6000)},
			{ID: "undeclared", Type: model.StepLLM},
		},
	}

	findings := checkStepBudgetHog(wf)
	require.Len(t, findings, 1)
	assert.Equal(t, "big", findings[0].StepID)
	assert.Contains(t, findings[0].Message, "60%")
	assert.Contains(t, findings[0].Message, "6,000")

	// Zero budget disables the check.
	wf.TokenBudget = intp(0)
	assert.Empty(t, checkStepBudgetHog(wf))
}

func TestCheckTotalOverBudget(t *testing.T) {
	wf := &model.Workflow{
		TokenBudget: intp(10000),
		Steps: []model.Step{
			{ID: "a", Type: model.StepLLM, EstimatedTokens: intp(6000)},
			// Undeclared LLM resolves through role archetype.
			{ID: "b", Type: model.StepLLM, Role: "builder"},
		},
	}

	findings := checkTotalOverBudget(wf)
	require.Len(t, findings, 1)
	assert.Equal(t, model.SeverityError, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "26,000")

	wf.TokenBudget = intp(30000)
	assert.Empty(t, checkTotalOverBudget(wf))
}

func TestCheckTotalCountsDeclaredNonLLM(t *testing.T) {
	wf := &model.Workflow{
		TokenBudget: intp(5000),
		Steps: []model.Step{
			// Declared tokens count toward the total for any step type, but
			// undeclared non-LLM steps contribute nothing.
			{ID: "burst", Type: model.StepParallel, EstimatedTokens: intp(6000)},
			{ID: "sh", Type: model.StepShell},
		},
	}

	findings := checkTotalOverBudget(wf)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "6,000")
}

func TestCheckUndeclaredTokens(t *testing.T) {
	wf := &model.Workflow{
		Steps: []model.Step{
			{ID: "a", Type: model.StepLLM},
			{ID: "b", Type: model.StepLLM, EstimatedTokens: intp(100)},
			{ID: "c", Type: model.StepShell},
		},
	}

	findings := checkUndeclaredTokens(wf)
	require.Len(t, findings, 1)
	assert.Equal(t, "a", findings[0].StepID)
}

func TestCheckMissingOnFailure(t *testing.T) {
	wf := &model.Workflow{
		Steps: []model.Step{
			{ID: "a", Type: model.StepLLM},
			{ID: "b", Type: model.StepLLM, OnFailure: "skip"},
			{ID: "sh", Type: model.StepShell},
		},
	}

	findings := checkMissingOnFailure(wf)
	require.Len(t, findings, 1)
	assert.Equal(t, "a", findings[0].StepID)
}

func TestCheckAbortNoFallback(t *testing.T) {
	wf := &model.Workflow{
		Steps: []model.Step{
			{ID: "bad", Type: model.StepLLM, OnFailure: "abort"},
			{ID: "ok", Type: model.StepLLM, OnFailure: "abort", HasFallback: true},
		},
	}

	findings := checkAbortNoFallback(wf)
	require.Len(t, findings, 1)
	assert.Equal(t, "bad", findings[0].StepID)
}

func TestCheckRetryNoMax(t *testing.T) {
	wf := &model.Workflow{
		Steps: []model.Step{
			{ID: "unbounded", Type: model.StepLLM, OnFailure: "retry"},
			{ID: "bounded", Type: model.StepLLM, OnFailure: "retry", MaxRetries: 3},
		},
	}

	findings := checkRetryNoMax(wf)
	require.Len(t, findings, 1)
	assert.Equal(t, "unbounded", findings[0].StepID)
}

func TestCheckShellNoTimeout(t *testing.T) {
	wf := &model.Workflow{
		Steps: []model.Step{
			{ID: "hang", Type: model.StepShell},
			{ID: "safe", Type: model.StepShell, TimeoutSeconds: intp(60)},
		},
	}

	findings := checkShellNoTimeout(wf)
	require.Len(t, findings, 1)
	assert.Equal(t, "hang", findings[0].StepID)
}

func TestCheckMissingCheckpoint(t *testing.T) {
	expensive := func(id string) model.Step {
		return model.Step{ID: id, Type: model.StepLLM, EstimatedTokens: intp(15000)}
	}

	t.Run("flags three expensive consecutive steps", func(t *testing.T) {
		wf := &model.Workflow{Steps: []model.Step{expensive("a"), expensive("b"), expensive("c")}}
		findings := checkMissingCheckpoint(wf)
		require.Len(t, findings, 1)
		assert.Contains(t, findings[0].Message, "3 consecutive")
		assert.Contains(t, findings[0].Message, "45,000")
	})

	t.Run("checkpoint resets the run", func(t *testing.T) {
		wf := &model.Workflow{Steps: []model.Step{
			expensive("a"), expensive("b"),
			{ID: "save", Type: model.StepCheckpoint},
			expensive("c"), expensive("d"),
		}}
		assert.Empty(t, checkMissingCheckpoint(wf))
	})

	t.Run("cheap steps never trigger", func(t *testing.T) {
		cheap := model.Step{Type: model.StepLLM, EstimatedTokens: intp(1000)}
		wf := &model.Workflow{Steps: []model.Step{cheap, cheap, cheap, cheap}}
		assert.Empty(t, checkMissingCheckpoint(wf))
	})

	t.Run("at most one finding", func(t *testing.T) {
		wf := &model.Workflow{Steps: []model.Step{
			expensive("a"), expensive("b"), expensive("c"),
			expensive("d"), expensive("e"), expensive("f"),
		}}
		assert.Len(t, checkMissingCheckpoint(wf), 1)
	})
}

func TestCheckParallelizable(t *testing.T) {
	t.Run("independent adjacent llm steps", func(t *testing.T) {
		wf := &model.Workflow{Steps: []model.Step{
			{ID: "a", Type: model.StepLLM},
			{ID: "b", Type: model.StepLLM},
		}}
		findings := checkParallelizable(wf)
		require.Len(t, findings, 1)
		assert.Equal(t, "b", findings[0].StepID)
	})

	t.Run("explicit dependency suppresses", func(t *testing.T) {
		wf := &model.Workflow{Steps: []model.Step{
			{ID: "a", Type: model.StepLLM},
			{ID: "b", Type: model.StepLLM, DependsOn: []string{"a"}},
		}}
		assert.Empty(t, checkParallelizable(wf))
	})

	t.Run("prompt referencing outputs suppresses", func(t *testing.T) {
		wf := &model.Workflow{Steps: []model.Step{
			{
				ID:        "a",
				Type:      model.StepLLM,
				RawParams: map[string]any{"outputs": []any{"draft"}},
			},
			{
				ID:        "b",
				Type:      model.StepLLM,
				RawParams: map[string]any{"prompt": "Polish ${draft} please"},
			},
		}}
		assert.Empty(t, checkParallelizable(wf))
	})

	t.Run("non-llm steps between do not break adjacency", func(t *testing.T) {
		wf := &model.Workflow{Steps: []model.Step{
			{ID: "a", Type: model.StepLLM},
			{ID: "sh", Type: model.StepShell},
			{ID: "b", Type: model.StepLLM},
		}}
		assert.Len(t, checkParallelizable(wf), 1)
	})
}

func TestCheckDuplicateRoles(t *testing.T) {
	wf := &model.Workflow{Steps: []model.Step{
		{ID: "a", Type: model.StepLLM, Role: "builder"},
		{ID: "b", Type: model.StepLLM, Role: "builder"},
		{ID: "c", Type: model.StepLLM, Role: "builder"},
		{ID: "d", Type: model.StepLLM, Role: "tester"},
		{ID: "e", Type: model.StepLLM, Role: "tester"},
	}}

	findings := checkDuplicateRoles(wf)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "builder")
	assert.Contains(t, findings[0].Message, "a, b, c")
}

func TestCheckLightweightCheckpoint(t *testing.T) {
	t.Run("lightweight neighbors flagged", func(t *testing.T) {
		wf := &model.Workflow{Steps: []model.Step{
			{ID: "a", Type: model.StepLLM, EstimatedTokens: intp(1000)},
			{ID: "save", Type: model.StepCheckpoint},
			{ID: "b", Type: model.StepLLM, EstimatedTokens: intp(2000)},
		}}
		findings := checkLightweightCheckpoint(wf)
		require.Len(t, findings, 1)
		assert.Equal(t, "save", findings[0].StepID)
	})

	t.Run("heavy neighbor suppresses", func(t *testing.T) {
		wf := &model.Workflow{Steps: []model.Step{
			{ID: "a", Type: model.StepLLM, EstimatedTokens: intp(20000)},
			{ID: "save", Type: model.StepCheckpoint},
			{ID: "b", Type: model.StepLLM, EstimatedTokens: intp(1000)},
		}}
		assert.Empty(t, checkLightweightCheckpoint(wf))
	})
}

func TestCheckFanOutNoLimit(t *testing.T) {
	wf := &model.Workflow{Steps: []model.Step{
		{ID: "wild", Type: model.StepFanOut, RawParams: map[string]any{}},
		{ID: "tame", Type: model.StepFanOut, RawParams: map[string]any{"max_concurrent": 4}},
	}}

	findings := checkFanOutNoLimit(wf)
	require.Len(t, findings, 1)
	assert.Equal(t, "wild", findings[0].StepID)
}

func TestCheckShellInjection(t *testing.T) {
	wf := &model.Workflow{Steps: []model.Step{
		{ID: "risky", Type: model.StepShell, RawParams: map[string]any{"command": "cat ${file}"}},
		{ID: "fixed", Type: model.StepShell, RawParams: map[string]any{"command": "cat input.txt"}},
		{ID: "llm", Type: model.StepLLM, RawParams: map[string]any{"prompt": "use ${var}"}},
	}}

	findings := checkShellInjection(wf)
	require.Len(t, findings, 1)
	assert.Equal(t, "risky", findings[0].StepID)
	assert.Equal(t, model.SeverityError, findings[0].Severity)
}

func TestCheckHardcodedPaths(t *testing.T) {
	tests := []struct {
		command string
		flagged bool
	}{
		{"cat /etc/passwd", true},
		{"ls /home/alice", true},
		{`type C:\Users\alice\file.txt`, true},
		{"make build", false},
		{"ls ./local", false},
	}

	for _, tt := range tests {
		wf := &model.Workflow{Steps: []model.Step{
			{ID: "sh", Type: model.StepShell, RawParams: map[string]any{"command": tt.command}},
		}}
		findings := checkHardcodedPaths(wf)
		if tt.flagged {
			assert.Len(t, findings, 1, "command %q", tt.command)
		} else {
			assert.Empty(t, findings, "command %q", tt.command)
		}
	}
}

func TestCheckInputValidation(t *testing.T) {
	wf := &model.Workflow{Inputs: map[string]any{
		"zeta":  map[string]any{"required": true},
		"alpha": map[string]any{"required": true},
		"typed": map[string]any{"required": true, "type": "string"},
		"loose": map[string]any{"required": false},
		"bare":  "just a default",
	}}

	findings := checkInputValidation(wf)
	require.Len(t, findings, 2)
	// Sorted by input name.
	assert.Contains(t, findings[0].Message, "alpha")
	assert.Contains(t, findings[1].Message, "zeta")
}

func TestCheckMCPNoServer(t *testing.T) {
	wf := &model.Workflow{Steps: []model.Step{
		{ID: "vague", Type: model.StepMCPTool, RawParams: map[string]any{"tool": "search"}},
		{ID: "pinned", Type: model.StepMCPTool, RawParams: map[string]any{"server": "browser"}},
	}}

	findings := checkMCPNoServer(wf)
	require.Len(t, findings, 1)
	assert.Equal(t, "vague", findings[0].StepID)
}

func TestCommaInt(t *testing.T) {
	assert.Equal(t, "0", commaInt(0))
	assert.Equal(t, "999", commaInt(999))
	assert.Equal(t, "1,000", commaInt(1000))
	assert.Equal(t, "30,000", commaInt(30000))
	assert.Equal(t, "1,234,567", commaInt(1234567))
	assert.Equal(t, "-12,345", commaInt(-12345))
}

func TestRuleMessagesNameTheStep(t *testing.T) {
	wf := &model.Workflow{Steps: []model.Step{
		{ID: "unique-step-name", Type: model.StepLLM},
	}}

	for _, f := range checkMissingOnFailure(wf) {
		assert.True(t, strings.Contains(f.Message, "unique-step-name"))
	}
}
