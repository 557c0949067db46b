package normalize

import (
	"fmt"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// parseAgent normalizes one agent entry as an LLM step.
func parseAgent(agent map[string]any, index int) model.Step {
	id := firstStr(agent, "name", "role")
	if id == "" {
		id = fmt.Sprintf("agent_%d", index)
	}

	modelName := strField(agent, "llm")
	if modelName == "" {
		modelName = strField(agent, "model")
	}

	return model.Step{
		ID:              id,
		Type:            model.StepLLM,
		Provider:        strField(agent, "llm_provider"),
		Model:           modelName,
		Role:            strField(agent, "role"),
		EstimatedTokens: intPtr(agent, "max_tokens"),
		RawParams:       agent,
	}
}

// parseTask normalizes one task entry as an LLM step. A task referencing an
// agent gains a single dependency on it.
func parseTask(task map[string]any, index int) model.Step {
	id := strField(task, "name")
	if id == "" {
		if desc := strField(task, "description"); desc != "" {
			id = truncate(desc, 40)
		} else {
			id = fmt.Sprintf("task_%d", index)
		}
	}

	var dependsOn []string
	if agentRef := strField(task, "agent"); agentRef != "" {
		dependsOn = []string{agentRef}
	}

	return model.Step{
		ID:              id,
		Type:            model.StepLLM,
		Role:            strField(task, "role"),
		EstimatedTokens: intPtr(task, "max_tokens"),
		DependsOn:       dependsOn,
		RawParams:       task,
	}
}

// parseAgentTask normalizes an agent/task workflow mapping. Agents and tasks
// are concatenated into one flat step list, agents first.
func parseAgentTask(raw map[string]any, sourcePath string) *model.Workflow {
	name := firstStr(raw, "name", "crew")
	if name == "" {
		name = "unnamed-crew"
	}

	var steps []model.Step
	if agents, ok := asList(raw["agents"]); ok {
		for i, item := range agents {
			if agent, ok := asMap(item); ok {
				steps = append(steps, parseAgent(agent, i))
			}
		}
	}
	if tasks, ok := asList(raw["tasks"]); ok {
		for i, item := range tasks {
			if task, ok := asMap(item); ok {
				steps = append(steps, parseTask(task, i))
			}
		}
	}

	budget := intPtr(raw, "token_budget")
	if budget == nil || *budget == 0 {
		if alt := intPtr(raw, "max_tokens"); alt != nil {
			budget = alt
		}
	}

	return &model.Workflow{
		Name:        name,
		Version:     "1.0",
		Format:      model.FormatAgentTask,
		TokenBudget: budget,
		Steps:       steps,
		Inputs:      mapField(raw, "inputs"),
		Metadata:    mapField(raw, "metadata"),
		SourcePath:  sourcePath,
	}
}
