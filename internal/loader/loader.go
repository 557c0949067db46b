package loader

import (
	"fmt"
	"os"

	"github.com/AreteDriver/agent-audit/internal/logger"
	"github.com/AreteDriver/agent-audit/internal/model"
	"github.com/AreteDriver/agent-audit/internal/normalize"
	"gopkg.in/yaml.v3"
)

// LoadRaw reads a workflow YAML file and returns the raw top-level mapping.
// Every failure mode (missing file, unreadable, invalid syntax, non-mapping
// top level) surfaces as a distinct *model.ParseError.
func LoadRaw(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, &model.ParseError{Msg: fmt.Sprintf("file not found: %s", path), Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.ParseError{Msg: fmt.Sprintf("failed to read %s", path), Err: err}
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &model.ParseError{Msg: fmt.Sprintf("invalid YAML in %s", path), Err: err}
	}

	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil, &model.ParseError{Msg: fmt.Sprintf("expected YAML mapping at top level in %s", path)}
	}

	return mapping, nil
}

// ParseWorkflow loads a workflow YAML file and normalizes it into the
// canonical model.
func ParseWorkflow(path string) (*model.Workflow, error) {
	raw, err := LoadRaw(path)
	if err != nil {
		return nil, err
	}
	wf := normalize.Normalize(raw, path)
	logger.Debug("parsed workflow", "path", path, "format", wf.Format, "steps", len(wf.Steps))
	return wf, nil
}
