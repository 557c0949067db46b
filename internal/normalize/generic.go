package normalize

import (
	"fmt"
	"sort"

	"github.com/AreteDriver/agent-audit/internal/logger"
	"github.com/AreteDriver/agent-audit/internal/model"
)

// guessStepType infers a step type from an arbitrary config mapping,
// defaulting optimistically to LLM.
func guessStepType(config map[string]any) model.StepType {
	if _, ok := config["command"]; ok {
		return model.StepShell
	}
	if _, ok := config["cmd"]; ok {
		return model.StepShell
	}
	for _, key := range []string{"prompt", "model", "llm"} {
		if _, ok := config[key]; ok {
			return model.StepLLM
		}
	}
	if _, ok := asList(config["steps"]); ok {
		return model.StepParallel
	}
	return model.StepLLM
}

func parseGenericStep(id string, config map[string]any) model.Step {
	onFailure := strField(config, "on_failure")
	if onFailure == "" {
		onFailure = strField(config, "on_error")
	}

	return model.Step{
		ID:              id,
		Type:            guessStepType(config),
		Provider:        strField(config, "provider"),
		Model:           strField(config, "model"),
		Role:            strField(config, "role"),
		EstimatedTokens: firstNonZeroIntPtr(config, "estimated_tokens", "max_tokens"),
		OnFailure:       onFailure,
		MaxRetries:      intOr(config, "max_retries", 0),
		TimeoutSeconds:  firstNonZeroIntPtr(config, "timeout", "timeout_seconds"),
		RawParams:       config,
	}
}

// parseGeneric normalizes workflows of unrecognized shape. It tries 'steps'
// as a list, then as a name→config mapping (sorted by name for deterministic
// order), then the first of agents/tasks/pipeline holding a list. No nested
// steps or dependency inference beyond what each item declares.
func parseGeneric(raw map[string]any, sourcePath string) *model.Workflow {
	name := firstStr(raw, "name", "workflow")
	if name == "" {
		name = "unnamed"
	}

	var steps []model.Step
	switch stepsRaw := raw["steps"].(type) {
	case []any:
		for i, item := range stepsRaw {
			config, ok := asMap(item)
			if !ok {
				logger.Warn("skipping non-mapping step entry", "index", i)
				continue
			}
			id := firstStr(config, "id", "name")
			if id == "" {
				id = fmt.Sprintf("step_%d", i)
			}
			steps = append(steps, parseGenericStep(id, config))
		}
	case map[string]any:
		ids := make([]string, 0, len(stepsRaw))
		for id := range stepsRaw {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if config, ok := asMap(stepsRaw[id]); ok {
				steps = append(steps, parseGenericStep(id, config))
			}
		}
	}

	if len(steps) == 0 {
		for _, key := range []string{"agents", "tasks", "pipeline"} {
			items, ok := asList(raw[key])
			if !ok {
				continue
			}
			for i, item := range items {
				if config, ok := asMap(item); ok {
					id := firstStr(config, "id", "name")
					if id == "" {
						id = fmt.Sprintf("%s_%d", key, i)
					}
					steps = append(steps, parseGenericStep(id, config))
				}
			}
			break
		}
	}

	budget := intPtr(raw, "token_budget")
	if budget == nil || *budget == 0 {
		if alt := intPtr(raw, "budget"); alt != nil {
			budget = alt
		}
	}

	return &model.Workflow{
		Name:        name,
		Version:     "1.0",
		Format:      model.FormatGeneric,
		TokenBudget: budget,
		Steps:       steps,
		Inputs:      mapField(raw, "inputs"),
		Outputs:     stringList(raw["outputs"]),
		Metadata:    mapField(raw, "metadata"),
		SourcePath:  sourcePath,
	}
}
