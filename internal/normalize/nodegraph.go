package normalize

import (
	"fmt"
	"strings"

	"github.com/AreteDriver/agent-audit/internal/logger"
	"github.com/AreteDriver/agent-audit/internal/model"
)

// nodeToStep converts a graph node definition to a normalized step. Nodes
// default to LLM: this format's primary payload is LLM reasoning nodes.
func nodeToStep(node map[string]any, index int) model.Step {
	id := firstStr(node, "id", "name")
	if id == "" {
		id = fmt.Sprintf("node_%d", index)
	}

	var stepType model.StepType
	switch strings.ToLower(strField(node, "type")) {
	case "tool", "function":
		stepType = model.StepShell
	case "branch", "conditional":
		stepType = model.StepBranch
	case "parallel":
		stepType = model.StepParallel
	default:
		stepType = model.StepLLM
	}

	return model.Step{
		ID:              id,
		Type:            stepType,
		Provider:        strField(node, "provider"),
		Model:           strField(node, "model"),
		Role:            strField(node, "role"),
		EstimatedTokens: intPtr(node, "max_tokens"),
		RawParams:       node,
	}
}

// parseNodeGraph normalizes a node/edge graph workflow mapping. Steps are
// built from nodes first; a second pass over the edge list appends
// dependencies before the workflow is handed to any consumer.
func parseNodeGraph(raw map[string]any, sourcePath string) *model.Workflow {
	name := firstStr(raw, "name", "graph")
	if name == "" {
		name = "unnamed-graph"
	}

	var steps []model.Step
	if nodes, ok := asList(raw["nodes"]); ok {
		for i, item := range nodes {
			if node, ok := asMap(item); ok {
				steps = append(steps, nodeToStep(node, i))
			}
		}
	}

	stepIDs := make(map[string]bool, len(steps))
	for _, s := range steps {
		stepIDs[s.ID] = true
	}

	if edges, ok := asList(raw["edges"]); ok {
		for _, item := range edges {
			edge, ok := asMap(item)
			if !ok {
				continue
			}
			source := firstStr(edge, "source", "from")
			target := firstStr(edge, "target", "to")
			if !stepIDs[source] || !stepIDs[target] {
				logger.Warn("skipping edge with unknown endpoint", "source", source, "target", target)
				continue
			}
			for i := range steps {
				if steps[i].ID == target && !containsStr(steps[i].DependsOn, source) {
					steps[i].DependsOn = append(steps[i].DependsOn, source)
				}
			}
		}
	}

	return &model.Workflow{
		Name:        name,
		Version:     "1.0",
		Format:      model.FormatNodeGraph,
		TokenBudget: intPtr(raw, "token_budget"),
		Steps:       steps,
		Inputs:      mapField(raw, "inputs"),
		Metadata:    mapField(raw, "metadata"),
		SourcePath:  sourcePath,
	}
}
