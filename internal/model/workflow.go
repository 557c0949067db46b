package model

// Format identifies the source schema a workflow was normalized from.
type Format string

const (
	FormatStepGraph Format = "stepgraph"
	FormatAgentTask Format = "agenttask"
	FormatNodeGraph Format = "nodegraph"
	FormatGeneric   Format = "generic"
)

// StepType is the normalized step classification shared by all formats.
type StepType string

const (
	StepLLM        StepType = "llm"
	StepShell      StepType = "shell"
	StepParallel   StepType = "parallel"
	StepCheckpoint StepType = "checkpoint"
	StepFanOut     StepType = "fan_out"
	StepFanIn      StepType = "fan_in"
	StepMapReduce  StepType = "map_reduce"
	StepBranch     StepType = "branch"
	StepLoop       StepType = "loop"
	StepMCPTool    StepType = "mcp_tool"
)

// IsContainer reports whether the step type wraps nested child steps.
func (t StepType) IsContainer() bool {
	switch t {
	case StepParallel, StepFanOut, StepMapReduce, StepLoop:
		return true
	}
	return false
}

// Step is the normalized unit of work produced by every normalizer.
// Optional string fields use "" for absent; optional numeric fields use nil.
type Step struct {
	ID              string         `json:"id" yaml:"id"`
	Type            StepType       `json:"step_type" yaml:"step_type"`
	Provider        string         `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model           string         `json:"model,omitempty" yaml:"model,omitempty"`
	Role            string         `json:"role,omitempty" yaml:"role,omitempty"`
	EstimatedTokens *int           `json:"estimated_tokens,omitempty" yaml:"estimated_tokens,omitempty"`
	OnFailure       string         `json:"on_failure,omitempty" yaml:"on_failure,omitempty"`
	MaxRetries      int            `json:"max_retries" yaml:"max_retries"`
	TimeoutSeconds  *int           `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	HasCondition    bool           `json:"has_condition" yaml:"has_condition"`
	HasFallback     bool           `json:"has_fallback" yaml:"has_fallback"`
	DependsOn       []string       `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	NestedSteps     []Step         `json:"nested_steps,omitempty" yaml:"nested_steps,omitempty"`
	RawParams       map[string]any `json:"raw_params,omitempty" yaml:"raw_params,omitempty"`
}

// Workflow is the canonical normalized form of a workflow config.
// Constructed once by a normalizer; downstream consumers only read.
type Workflow struct {
	Name           string         `json:"name" yaml:"name"`
	Version        string         `json:"version" yaml:"version"`
	Description    string         `json:"description,omitempty" yaml:"description,omitempty"`
	Format         Format         `json:"format" yaml:"format"`
	TokenBudget    *int           `json:"token_budget,omitempty" yaml:"token_budget,omitempty"`
	TimeoutSeconds *int           `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	Steps          []Step         `json:"steps" yaml:"steps"`
	Inputs         map[string]any `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs        []string       `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	SourcePath     string         `json:"source_path,omitempty" yaml:"source_path,omitempty"`
}
