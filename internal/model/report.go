package model

import "fmt"

// TokenSource records how a step's token estimate was resolved.
type TokenSource string

const (
	SourceDeclared  TokenSource = "declared"
	SourceArchetype TokenSource = "archetype"
	SourceDefault   TokenSource = "default"
)

// StepEstimate is the token and cost estimate for a single step.
type StepEstimate struct {
	StepID          string      `json:"step_id"`
	StepType        StepType    `json:"step_type"`
	Provider        string      `json:"provider"`
	Model           string      `json:"model"`
	Role            string      `json:"role,omitempty"`
	EstimatedTokens int         `json:"estimated_tokens"`
	InputTokens     int         `json:"input_tokens"`
	OutputTokens    int         `json:"output_tokens"`
	CostUSD         float64     `json:"cost_usd"`
	Source          TokenSource `json:"source"`
}

// WorkflowEstimate is the full workflow cost estimate.
type WorkflowEstimate struct {
	WorkflowName      string         `json:"workflow_name"`
	TotalTokens       int            `json:"total_tokens"`
	TotalCostUSD      float64        `json:"total_cost_usd"`
	BudgetDeclared    *int           `json:"budget_declared,omitempty"`
	BudgetUtilization *float64       `json:"budget_utilization,omitempty"`
	Steps             []StepEstimate `json:"steps"`
	Provider          string         `json:"provider"`
	Model             string         `json:"model"`
}

// CompareResult is a multi-provider cost comparison.
type CompareResult struct {
	WorkflowName  string             `json:"workflow_name"`
	Estimates     []WorkflowEstimate `json:"estimates"`
	Cheapest      string             `json:"cheapest"`
	MostExpensive string             `json:"most_expensive"`
	SavingsPct    float64            `json:"savings_pct"`
}

// Severity is a lint finding severity level.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity converts a user-supplied string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return Severity(s), nil
	}
	return "", fmt.Errorf("unknown severity: %s", s)
}

// RuleCategory groups lint rules by concern.
type RuleCategory string

const (
	CategoryBudget     RuleCategory = "budget"
	CategoryResilience RuleCategory = "resilience"
	CategoryEfficiency RuleCategory = "efficiency"
	CategorySecurity   RuleCategory = "security"
)

// ParseCategory converts a user-supplied string to a RuleCategory.
func ParseCategory(s string) (RuleCategory, error) {
	switch RuleCategory(s) {
	case CategoryBudget, CategoryResilience, CategoryEfficiency, CategorySecurity:
		return RuleCategory(s), nil
	}
	return "", fmt.Errorf("unknown category: %s", s)
}

// LintFinding is a single reported rule violation.
type LintFinding struct {
	RuleID     string       `json:"rule_id"`
	Category   RuleCategory `json:"category"`
	Severity   Severity     `json:"severity"`
	Message    string       `json:"message"`
	StepID     string       `json:"step_id,omitempty"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// LintReport is the full lint result with score and severity counts.
type LintReport struct {
	WorkflowName string        `json:"workflow_name"`
	Score        int           `json:"score"`
	Findings     []LintFinding `json:"findings"`
	ErrorCount   int           `json:"error_count"`
	WarningCount int           `json:"warning_count"`
	InfoCount    int           `json:"info_count"`
}

// ModelPricing is per-1K-token pricing for a single model.
type ModelPricing struct {
	Name          string  `json:"name"`
	Provider      string  `json:"provider"`
	InputPer1K    float64 `json:"input_price_per_1k"`
	OutputPer1K   float64 `json:"output_price_per_1k"`
	ContextWindow int     `json:"context_window"`
	Notes         string  `json:"notes,omitempty"`
}

// ProviderConfig is a provider's model catalog and default selection.
type ProviderConfig struct {
	Name         string                  `json:"name"`
	Models       map[string]ModelPricing `json:"models"`
	DefaultModel string                  `json:"default_model"`
}
