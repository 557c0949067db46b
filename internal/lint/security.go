package lint

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// shellVarPattern matches ${var} interpolation in shell commands.
var shellVarPattern = regexp.MustCompile(`\$\{[^}]+\}`)

// hardcodedPathPattern matches common absolute path prefixes.
var hardcodedPathPattern = regexp.MustCompile(`/usr/|/home/|/etc/|/var/|/opt/|C:\\`)

// registerSecurityRules adds the security rules (S001-S004).
func registerSecurityRules(r *Registry) {
	r.Register(Rule{
		ID:          "S001",
		Category:    model.CategorySecurity,
		Severity:    model.SeverityError,
		Description: "Shell step with variable interpolation (command injection risk)",
		Func:        checkShellInjection,
	})
	r.Register(Rule{
		ID:          "S002",
		Category:    model.CategorySecurity,
		Severity:    model.SeverityWarning,
		Description: "Hardcoded paths in shell commands",
		Func:        checkHardcodedPaths,
	})
	r.Register(Rule{
		ID:          "S003",
		Category:    model.CategorySecurity,
		Severity:    model.SeverityInfo,
		Description: "No input validation on required inputs",
		Func:        checkInputValidation,
	})
	r.Register(Rule{
		ID:          "S004",
		Category:    model.CategorySecurity,
		Severity:    model.SeverityWarning,
		Description: "MCP tool step without server validation",
		Func:        checkMCPNoServer,
	})
}

func checkShellInjection(wf *model.Workflow) []model.LintFinding {
	var findings []model.LintFinding
	for _, step := range wf.Steps {
		if step.Type != model.StepShell {
			continue
		}
		if shellVarPattern.MatchString(rawString(step, "command")) {
			findings = append(findings, model.LintFinding{
				RuleID:   "S001",
				Category: model.CategorySecurity,
				Severity: model.SeverityError,
				Message: fmt.Sprintf(
					"Shell step '%s' uses variable interpolation in command — potential command injection risk.",
					step.ID),
				StepID:     step.ID,
				Suggestion: "Validate inputs or use parameterized execution.",
			})
		}
	}
	return findings
}

func checkHardcodedPaths(wf *model.Workflow) []model.LintFinding {
	var findings []model.LintFinding
	for _, step := range wf.Steps {
		if step.Type != model.StepShell {
			continue
		}
		if hardcodedPathPattern.MatchString(rawString(step, "command")) {
			findings = append(findings, model.LintFinding{
				RuleID:   "S002",
				Category: model.CategorySecurity,
				Severity: model.SeverityWarning,
				Message: fmt.Sprintf(
					"Shell step '%s' contains hardcoded paths — may not be portable.", step.ID),
				StepID:     step.ID,
				Suggestion: "Use input variables or environment variables for paths.",
			})
		}
	}
	return findings
}

// checkInputValidation flags required workflow inputs with no type
// constraint. Inputs are visited in sorted name order for stable output.
func checkInputValidation(wf *model.Workflow) []model.LintFinding {
	if len(wf.Inputs) == 0 {
		return nil
	}

	names := make([]string, 0, len(wf.Inputs))
	for name := range wf.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	var findings []model.LintFinding
	for _, name := range names {
		config, ok := wf.Inputs[name].(map[string]any)
		if !ok {
			continue
		}
		required, _ := config["required"].(bool)
		_, hasType := config["type"]
		if required && !hasType {
			findings = append(findings, model.LintFinding{
				RuleID:     "S003",
				Category:   model.CategorySecurity,
				Severity:   model.SeverityInfo,
				Message:    fmt.Sprintf("Required input '%s' has no type constraint.", name),
				Suggestion: fmt.Sprintf("Add 'type: string' (or appropriate type) to input '%s'.", name),
			})
		}
	}
	return findings
}

func checkMCPNoServer(wf *model.Workflow) []model.LintFinding {
	var findings []model.LintFinding
	for _, step := range wf.Steps {
		if step.Type != model.StepMCPTool {
			continue
		}
		if rawString(step, "server") == "" {
			findings = append(findings, model.LintFinding{
				RuleID:   "S004",
				Category: model.CategorySecurity,
				Severity: model.SeverityWarning,
				Message: fmt.Sprintf(
					"MCP tool step '%s' has no server specified — tool resolution may be ambiguous.", step.ID),
				StepID:     step.ID,
				Suggestion: "Add 'server: <name>' to specify which MCP server to use.",
			})
		}
	}
	return findings
}
