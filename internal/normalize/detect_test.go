package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/AreteDriver/agent-audit/internal/model"
)

func mustYAML(t *testing.T, doc string) map[string]any {
	t.Helper()
	var raw any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &raw))
	mapping, ok := raw.(map[string]any)
	require.True(t, ok, "top level must be a mapping")
	return mapping
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want model.Format
	}{
		{
			name: "agents and tasks",
			doc: `
agents:
  - name: writer
tasks:
  - name: draft
`,
			want: model.FormatAgentTask,
		},
		{
			name: "agents without tasks is not agent-task",
			doc: `
agents:
  - name: writer
`,
			want: model.FormatGeneric,
		},
		{
			name: "nodes",
			doc: `
nodes:
  - id: a
`,
			want: model.FormatNodeGraph,
		},
		{
			name: "edges only",
			doc: `
edges:
  - source: a
    target: b
`,
			want: model.FormatNodeGraph,
		},
		{
			name: "langgraph metadata marker",
			doc: `
metadata:
  framework: LangGraph
steps:
  - id: a
`,
			want: model.FormatNodeGraph,
		},
		{
			name: "step type vocabulary",
			doc: `
steps:
  - id: a
    type: claude_code
`,
			want: model.FormatStepGraph,
		},
		{
			name: "vocabulary match on later step",
			doc: `
steps:
  - id: a
    type: custom_thing
  - id: b
    type: checkpoint
`,
			want: model.FormatStepGraph,
		},
		{
			name: "steps with unknown types",
			doc: `
steps:
  - id: a
    type: something_else
`,
			want: model.FormatGeneric,
		},
		{
			name: "empty mapping",
			doc:  `{}`,
			want: model.FormatGeneric,
		},
		{
			name: "agent-task wins over nodes",
			doc: `
agents:
  - name: a
tasks:
  - name: t
nodes:
  - id: n
`,
			want: model.FormatAgentTask,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectFormat(mustYAML(t, tt.doc))
			require.Equal(t, tt.want, got)
		})
	}
}
