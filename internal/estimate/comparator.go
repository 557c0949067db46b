package estimate

import "github.com/AreteDriver/agent-audit/internal/model"

// CompareProviders estimates the same workflow across several providers and
// ranks them by total cost. A nil provider list means every provider in the
// catalog.
func (e *Estimator) CompareProviders(wf *model.Workflow, providers []string) (*model.CompareResult, error) {
	if providers == nil {
		names, err := e.catalog.ListProviders()
		if err != nil {
			return nil, err
		}
		providers = names
	}

	estimates := make([]model.WorkflowEstimate, 0, len(providers))
	for _, provider := range providers {
		est, err := e.EstimateWorkflow(wf, provider, "")
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, *est)
	}

	if len(estimates) == 0 {
		return &model.CompareResult{WorkflowName: wf.Name, Estimates: []model.WorkflowEstimate{}}, nil
	}

	cheapest := 0
	mostExpensive := 0
	for i, est := range estimates {
		if est.TotalCostUSD < estimates[cheapest].TotalCostUSD {
			cheapest = i
		}
		if est.TotalCostUSD > estimates[mostExpensive].TotalCostUSD {
			mostExpensive = i
		}
	}

	savings := 0.0
	if estimates[mostExpensive].TotalCostUSD > 0 {
		savings = round1((1 - estimates[cheapest].TotalCostUSD/estimates[mostExpensive].TotalCostUSD) * 100)
	}

	return &model.CompareResult{
		WorkflowName:  wf.Name,
		Estimates:     estimates,
		Cheapest:      estimates[cheapest].Provider,
		MostExpensive: estimates[mostExpensive].Provider,
		SavingsPct:    savings,
	}, nil
}
