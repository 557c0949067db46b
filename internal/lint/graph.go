package lint

import (
	"fmt"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// StepGraph is the dependency DAG over a workflow's top-level steps, with
// cycle detection and topological sorting.
type StepGraph struct {
	order []string
	steps map[string]model.Step
}

// NewStepGraph builds a graph from a workflow's steps. Declaration order is
// preserved for deterministic traversal.
func NewStepGraph(wf *model.Workflow) *StepGraph {
	g := &StepGraph{steps: make(map[string]model.Step, len(wf.Steps))}
	for _, step := range wf.Steps {
		if _, seen := g.steps[step.ID]; !seen {
			g.order = append(g.order, step.ID)
		}
		g.steps[step.ID] = step
	}
	return g
}

// ValidateRefs reports depends_on entries that name no step in the workflow.
func (g *StepGraph) ValidateRefs() []error {
	var errs []error
	for _, id := range g.order {
		for _, dep := range g.steps[id].DependsOn {
			if _, ok := g.steps[dep]; !ok {
				errs = append(errs, fmt.Errorf("step %q depends on unknown step %q", id, dep))
			}
		}
	}
	return errs
}

// DetectCycles performs DFS cycle detection on the dependency graph.
func (g *StepGraph) DetectCycles() error {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, id := range g.order {
		if !visited[id] {
			if cycle := g.hasCycleDFS(id, visited, recStack); cycle != "" {
				return fmt.Errorf("dependency cycle detected involving step %q", cycle)
			}
		}
	}
	return nil
}

// hasCycleDFS returns the ID of a step on a cycle, or "" if none is reachable
// from node.
func (g *StepGraph) hasCycleDFS(node string, visited, recStack map[string]bool) string {
	visited[node] = true
	recStack[node] = true

	step, exists := g.steps[node]
	if !exists {
		recStack[node] = false
		return ""
	}

	for _, dep := range step.DependsOn {
		if !visited[dep] {
			if cycle := g.hasCycleDFS(dep, visited, recStack); cycle != "" {
				return cycle
			}
		} else if recStack[dep] {
			return dep
		}
	}

	recStack[node] = false
	return ""
}

// TopologicalSort returns step IDs in execution order using Kahn's algorithm.
// Ties break in declaration order.
func (g *StepGraph) TopologicalSort() ([]string, error) {
	dependents := make(map[string][]string)
	inDegree := make(map[string]int)

	for _, id := range g.order {
		inDegree[id] = 0
	}

	for _, id := range g.order {
		for _, dep := range g.steps[id].DependsOn {
			if _, ok := g.steps[dep]; !ok {
				continue
			}
			dependents[dep] = append(dependents[dep], id)
			inDegree[id]++
		}
	}

	queue := make([]string, 0)
	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(g.order))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(sorted) != len(g.order) {
		return nil, fmt.Errorf("cannot order steps: dependency cycle present")
	}
	return sorted, nil
}
