package normalize

import "github.com/AreteDriver/agent-audit/internal/model"

// Normalize converts a raw workflow mapping into the canonical model,
// dispatching on the detected source format. Normalizers are best-effort:
// malformed items within valid YAML are skipped, never fatal.
func Normalize(raw map[string]any, sourcePath string) *model.Workflow {
	switch DetectFormat(raw) {
	case model.FormatStepGraph:
		return parseStepGraph(raw, sourcePath)
	case model.FormatAgentTask:
		return parseAgentTask(raw, sourcePath)
	case model.FormatNodeGraph:
		return parseNodeGraph(raw, sourcePath)
	default:
		return parseGeneric(raw, sourcePath)
	}
}
