package normalize

import (
	"fmt"
	"strings"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// stepGraphTypes are the raw step type strings that signal the step-graph
// format.
var stepGraphTypes = map[string]bool{
	"claude_code": true,
	"openai":      true,
	"shell":       true,
	"parallel":    true,
	"checkpoint":  true,
	"fan_out":     true,
	"fan_in":      true,
	"map_reduce":  true,
	"branch":      true,
	"loop":        true,
	"mcp_tool":    true,
}

// DetectFormat classifies a raw workflow mapping into one of the four source
// formats. The checks form an ordered cascade: the agent/task shape is the
// most structurally distinctive so it wins first, and the step-type
// vocabulary check runs last among positive signals because a bare "steps"
// key is too generic.
func DetectFormat(raw map[string]any) model.Format {
	// Agent/task: both 'agents' and 'tasks' at top level.
	_, hasAgents := raw["agents"]
	_, hasTasks := raw["tasks"]
	if hasAgents && hasTasks {
		return model.FormatAgentTask
	}

	// Node/edge graph: 'nodes' or 'edges', or a langgraph marker in metadata.
	if _, ok := raw["nodes"]; ok {
		return model.FormatNodeGraph
	}
	if _, ok := raw["edges"]; ok {
		return model.FormatNodeGraph
	}
	if meta, ok := asMap(raw["metadata"]); ok {
		if strings.Contains(strings.ToLower(fmt.Sprintf("%v", meta)), "langgraph") {
			return model.FormatNodeGraph
		}
	}

	// Step-graph: a non-empty 'steps' list where some item's 'type' is in the
	// known vocabulary.
	if steps, ok := asList(raw["steps"]); ok && len(steps) > 0 {
		for _, item := range steps {
			if step, ok := asMap(item); ok && stepGraphTypes[strField(step, "type")] {
				return model.FormatStepGraph
			}
		}
	}

	return model.FormatGeneric
}
