package model

// RoleTokenDefaults maps agent role archetypes to default token estimates,
// used when a step declares no estimated_tokens.
var RoleTokenDefaults = map[string]int{
	"planner":          5000,
	"builder":          20000,
	"tester":           10000,
	"reviewer":         5000,
	"architect":        8000,
	"documenter":       6000,
	"analyst":          8000,
	"reporter":         4000,
	"visualizer":       5000,
	"security_auditor": 12000,
}

// StepTypeTokenDefaults maps step types to default token estimates when
// neither a declared estimate nor a known role is available.
var StepTypeTokenDefaults = map[StepType]int{
	StepLLM:        8000,
	StepShell:      0,
	StepCheckpoint: 0,
	StepMCPTool:    0,
	StepFanIn:      0,
	StepBranch:     0,
}

// DefaultLLMTokens is the hard fallback for LLM steps.
const DefaultLLMTokens = 8000

// InputOutputRatio is the fraction of a step's tokens attributed to input
// (the remainder is output).
const InputOutputRatio = 0.3
