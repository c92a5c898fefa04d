package planning

import (
	"fmt"

	toolx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/tool"
)

// Validate checks a plan for structural problems and returns every issue
// found. A plan with issues is rejected as a whole; the caller substitutes
// the fallback plan.
func Validate(plan *ExecutionPlan) (bool, []string) {
	var issues []string

	if plan == nil || len(plan.Steps) == 0 {
		return false, []string{"plan has no execution steps"}
	}

	byID := make(map[string]*PlanStep, len(plan.Steps))
	for _, s := range plan.Steps {
		if s.ID == "" {
			issues = append(issues, fmt.Sprintf("step for %s has no id", s.Capability))
			continue
		}
		if _, dup := byID[s.ID]; dup {
			issues = append(issues, fmt.Sprintf("duplicate step id %s", s.ID))
			continue
		}
		byID[s.ID] = s
	}

	for _, s := range plan.Steps {
		if !s.Capability.Valid() {
			issues = append(issues, fmt.Sprintf("step %s names unknown capability %q", s.ID, s.Capability))
		}
		for _, dep := range s.DependsOn {
			if dep == s.ID {
				issues = append(issues, fmt.Sprintf("step %s depends on itself", s.ID))
				continue
			}
			if _, ok := byID[dep]; !ok {
				issues = append(issues, fmt.Sprintf("step %s depends on %s which is not in the plan", s.ID, dep))
			}
		}
		for _, group := range s.ToolGroups {
			if !toolx.GroupAllowed(s.Capability, group) {
				issues = append(issues, fmt.Sprintf("step %s requires tool group %s unavailable to %s", s.ID, group, s.Capability))
			}
		}
	}

	if hasCycle(plan.Steps, byID) {
		issues = append(issues, "plan has circular dependencies")
	}

	if !plan.Mode.Valid() {
		issues = append(issues, fmt.Sprintf("unknown execution mode %q", plan.Mode))
	}

	return len(issues) == 0, issues
}

// hasCycle runs DFS over the dependency edges.
func hasCycle(steps []*PlanStep, byID map[string]*PlanStep) bool {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(steps))

	var visit func(id string) bool
	visit = func(id string) bool {
		switch state[id] {
		case inStack:
			return true
		case done:
			return false
		}
		state[id] = inStack
		if s, ok := byID[id]; ok {
			for _, dep := range s.DependsOn {
				if visit(dep) {
					return true
				}
			}
		}
		state[id] = done
		return false
	}

	for _, s := range steps {
		if visit(s.ID) {
			return true
		}
	}
	return false
}
