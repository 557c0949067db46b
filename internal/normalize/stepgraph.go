package normalize

import "github.com/AreteDriver/agent-audit/internal/model"

// stepGraphTypeMap maps raw step-graph type strings to normalized step types.
var stepGraphTypeMap = map[string]model.StepType{
	"claude_code": model.StepLLM,
	"openai":      model.StepLLM,
	"shell":       model.StepShell,
	"parallel":    model.StepParallel,
	"checkpoint":  model.StepCheckpoint,
	"fan_out":     model.StepFanOut,
	"fan_in":      model.StepFanIn,
	"map_reduce":  model.StepMapReduce,
	"branch":      model.StepBranch,
	"loop":        model.StepLoop,
	"mcp_tool":    model.StepMCPTool,
}

// stepGraphProviderMap maps LLM-flavored raw types to provider names.
var stepGraphProviderMap = map[string]string{
	"claude_code": "anthropic",
	"openai":      "openai",
}

// nestedStepKeys are probed, in order, on both the params sub-mapping and the
// step itself to discover nested steps of container types.
var nestedStepKeys = [...]string{"steps", "step_template", "map_step", "reduce_step"}

func parseStepGraphStep(raw map[string]any) model.Step {
	rawType := strOr(raw, "type", "shell")
	stepType, ok := stepGraphTypeMap[rawType]
	if !ok {
		stepType = model.StepShell
	}

	params := mapField(raw, "params")

	var provider, modelName string
	if p, isLLM := stepGraphProviderMap[rawType]; isLLM {
		provider = p
		modelName = strField(params, "model")
	}

	// Dependencies accept a single string or a list of strings.
	var dependsOn []string
	switch dep := raw["depends_on"].(type) {
	case string:
		dependsOn = []string{dep}
	case []any:
		dependsOn = stringList(dep)
	}

	// Nested steps for container types. Params take precedence over the
	// step's own mapping when non-empty.
	var nested []model.Step
	for _, key := range nestedStepKeys {
		candidate := params[key]
		if isEmptyValue(candidate) {
			candidate = raw[key]
		}
		switch v := candidate.(type) {
		case []any:
			for _, item := range v {
				if child, ok := asMap(item); ok {
					nested = append(nested, parseStepGraphStep(child))
				}
			}
		case map[string]any:
			nested = append(nested, parseStepGraphStep(v))
		}
	}

	_, hasCondition := raw["condition"]
	_, hasFallback := raw["fallback"]

	return model.Step{
		ID:              strOr(raw, "id", "unknown"),
		Type:            stepType,
		Provider:        provider,
		Model:           modelName,
		Role:            strField(params, "role"),
		EstimatedTokens: intPtr(params, "estimated_tokens"),
		OnFailure:       strField(raw, "on_failure"),
		MaxRetries:      intOr(raw, "max_retries", 0),
		TimeoutSeconds:  intPtr(raw, "timeout_seconds"),
		HasCondition:    hasCondition,
		HasFallback:     hasFallback,
		DependsOn:       dependsOn,
		NestedSteps:     nested,
		RawParams:       params,
	}
}

// isEmptyValue reports whether a nested-step candidate should fall through to
// the next probe location (nil, empty list, empty mapping).
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// parseStepGraph normalizes a step-graph workflow mapping.
func parseStepGraph(raw map[string]any, sourcePath string) *model.Workflow {
	var steps []model.Step
	if items, ok := asList(raw["steps"]); ok {
		for _, item := range items {
			if step, ok := asMap(item); ok {
				steps = append(steps, parseStepGraphStep(step))
			}
		}
	}

	return &model.Workflow{
		Name:           strOr(raw, "name", "unnamed"),
		Version:        strOr(raw, "version", "1.0"),
		Description:    strField(raw, "description"),
		Format:         model.FormatStepGraph,
		TokenBudget:    intPtr(raw, "token_budget"),
		TimeoutSeconds: intPtr(raw, "timeout_seconds"),
		Steps:          steps,
		Inputs:         mapField(raw, "inputs"),
		Outputs:        stringList(raw["outputs"]),
		Metadata:       mapField(raw, "metadata"),
		SourcePath:     sourcePath,
	}
}
