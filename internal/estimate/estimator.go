package estimate

import (
	"math"

	"github.com/AreteDriver/agent-audit/internal/logger"
	"github.com/AreteDriver/agent-audit/internal/model"
	"github.com/AreteDriver/agent-audit/internal/pricing"
)

// ResolveTokens resolves a step's token estimate through the fallback chain:
// declared value, then role archetype default, then step-type default.
func ResolveTokens(step model.Step) (int, model.TokenSource) {
	if step.EstimatedTokens != nil {
		return *step.EstimatedTokens, model.SourceDeclared
	}

	if step.Role != "" {
		if tokens, ok := model.RoleTokenDefaults[step.Role]; ok {
			return tokens, model.SourceArchetype
		}
	}

	def := model.StepTypeTokenDefaults[step.Type]
	if step.Type == model.StepLLM && def == 0 {
		def = model.DefaultLLMTokens
	}
	return def, model.SourceDefault
}

// splitTokens divides a total into input and output so that
// input == floor(ratio×total) and input+output == total exactly.
func splitTokens(total int) (int, int) {
	input := int(float64(total) * model.InputOutputRatio)
	return input, total - input
}

// Estimator computes token and cost estimates against a pricing catalog.
type Estimator struct {
	catalog *pricing.Catalog
}

// NewEstimator builds an estimator over the given catalog.
func NewEstimator(catalog *pricing.Catalog) *Estimator {
	return &Estimator{catalog: catalog}
}

// EstimateStep estimates tokens and cost for a single step.
func (e *Estimator) EstimateStep(step model.Step, provider, modelName string) (model.StepEstimate, error) {
	totalTokens, source := ResolveTokens(step)

	// Container steps: the nested sum wins when it exceeds the container's
	// own resolved total. Resolution is one level deep only; grandchildren
	// are not descended into.
	if len(step.NestedSteps) > 0 {
		nestedTotal := 0
		for _, nested := range step.NestedSteps {
			tokens, _ := ResolveTokens(nested)
			nestedTotal += tokens
		}
		if nestedTotal > totalTokens {
			totalTokens = nestedTotal
			if step.EstimatedTokens != nil && *step.EstimatedTokens != 0 {
				source = model.SourceDeclared
			} else {
				source = model.SourceArchetype
			}
		}
	}

	inputTokens, outputTokens := splitTokens(totalTokens)

	// Non-LLM steps cost nothing regardless of token count.
	cost := 0.0
	if step.Type == model.StepLLM {
		p, err := e.catalog.Resolve(provider, modelName)
		if err != nil {
			return model.StepEstimate{}, err
		}
		cost = pricing.CalculateCost(inputTokens, outputTokens, p)
	}

	return model.StepEstimate{
		StepID:          step.ID,
		StepType:        step.Type,
		Provider:        provider,
		Model:           modelName,
		Role:            step.Role,
		EstimatedTokens: totalTokens,
		InputTokens:     inputTokens,
		OutputTokens:    outputTokens,
		CostUSD:         cost,
		Source:          source,
	}, nil
}

// EstimateWorkflow estimates total tokens and cost for a workflow. A
// caller-supplied provider overrides every step's own provider; otherwise a
// step's declared provider wins over the workflow-level resolution.
func (e *Estimator) EstimateWorkflow(wf *model.Workflow, provider, modelName string) (*model.WorkflowEstimate, error) {
	explicitProvider := provider != ""

	if provider == "" {
		for _, step := range wf.Steps {
			if step.Provider != "" {
				provider = step.Provider
				break
			}
		}
		if provider == "" {
			provider = "anthropic"
			logger.Debug("no provider declared, using default", "provider", provider)
		}
	}

	if modelName == "" {
		modelName = e.catalog.DefaultModel(provider)
	}

	stepEstimates := make([]model.StepEstimate, 0, len(wf.Steps))
	for _, step := range wf.Steps {
		stepProvider := provider
		if !explicitProvider && step.Provider != "" {
			stepProvider = step.Provider
		}
		stepModel := step.Model
		if stepModel == "" {
			stepModel = modelName
		}

		est, err := e.EstimateStep(step, stepProvider, stepModel)
		if err != nil {
			return nil, err
		}
		stepEstimates = append(stepEstimates, est)
	}

	totalTokens := 0
	totalCost := 0.0
	for _, est := range stepEstimates {
		totalTokens += est.EstimatedTokens
		totalCost += est.CostUSD
	}

	var budgetUtil *float64
	if wf.TokenBudget != nil && *wf.TokenBudget > 0 {
		util := round1(float64(totalTokens) / float64(*wf.TokenBudget) * 100)
		budgetUtil = &util
	}

	return &model.WorkflowEstimate{
		WorkflowName:      wf.Name,
		TotalTokens:       totalTokens,
		TotalCostUSD:      round6(totalCost),
		BudgetDeclared:    wf.TokenBudget,
		BudgetUtilization: budgetUtil,
		Steps:             stepEstimates,
		Provider:          provider,
		Model:             modelName,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
