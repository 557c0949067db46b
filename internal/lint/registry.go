package lint

import (
	"sync"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// RuleFunc inspects a workflow and returns zero or more findings.
type RuleFunc func(*model.Workflow) []model.LintFinding

// Rule is one registered lint rule with its metadata.
type Rule struct {
	ID          string
	Category    model.RuleCategory
	Severity    model.Severity
	Description string
	Func        RuleFunc
}

// Registry is an append-only ordered collection of lint rules. Registration
// order is preserved by All and ByCategory.
type Registry struct {
	rules []Rule
}

// NewRegistry returns an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a rule to the registry.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// All returns every registered rule in registration order.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// ByCategory returns the rules in the given category, keeping relative order.
func (r *Registry) ByCategory(category model.RuleCategory) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if rule.Category == category {
			out = append(out, rule)
		}
	}
	return out
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the process-wide registry holding the built-in
// rules. Built exactly once, before first use; read-only thereafter.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		registerBudgetRules(defaultRegistry)
		registerResilienceRules(defaultRegistry)
		registerEfficiencyRules(defaultRegistry)
		registerSecurityRules(defaultRegistry)
	})
	return defaultRegistry
}
