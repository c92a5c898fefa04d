package planning

import (
	"time"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
)

type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

// PlanStatus tracks the plan through its request lifecycle: built, cleared
// by validation, dispatched, done. A plan that fails validation is marked
// failed and replaced by the fallback plan, never executed.
type PlanStatus string

const (
	PlanCreated   PlanStatus = "created"
	PlanReady     PlanStatus = "ready"
	PlanExecuting PlanStatus = "executing"
	PlanCompleted PlanStatus = "completed"
	PlanFailed    PlanStatus = "failed"
)

// PlanStep is one unit of routed work. DependsOn references other steps by
// id, so two steps for the same capability stay distinguishable.
type PlanStep struct {
	ID          string               `json:"id"`
	Capability  contractx.Capability `json:"capability"`
	Description string               `json:"description"`
	Priority    int                  `json:"priority"`
	DependsOn   []string             `json:"depends_on,omitempty"`
	ToolGroups  []string             `json:"tool_groups,omitempty"`
	Status      StepStatus           `json:"status"`
}

// ExecutionPlan is the routed breakdown of one user request.
type ExecutionPlan struct {
	ID             string                  `json:"id"`
	Request        string                  `json:"request"`
	Mode           contractx.ExecutionMode `json:"execution_mode"`
	Status         PlanStatus              `json:"status"`
	Steps          []*PlanStep             `json:"steps"`
	EstimatedTime  int                     `json:"estimated_time_seconds"`
	Confidence     float64                 `json:"confidence"`
	Fallback       bool                    `json:"fallback,omitempty"`
	FallbackReason string                  `json:"fallback_reason,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

// Step returns the step with the given id.
func (p *ExecutionPlan) Step(id string) (*PlanStep, bool) {
	for _, s := range p.Steps {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Summary condenses the plan and its step outcomes into the caller-facing
// record attached to the assistant message.
func (p *ExecutionPlan) Summary() *contractx.PlanSummary {
	sum := &contractx.PlanSummary{
		PlanID:         p.ID,
		Mode:           p.Mode,
		TotalSteps:     len(p.Steps),
		EstimatedTime:  p.EstimatedTime,
		Fallback:       p.Fallback,
		FallbackReason: p.FallbackReason,
	}
	for _, s := range p.Steps {
		sum.Steps = append(sum.Steps, contractx.StepSummary{
			Capability:  s.Capability,
			Description: s.Description,
			Status:      string(s.Status),
		})
		switch s.Status {
		case StepCompleted:
			sum.StepsCompleted++
		case StepFailed:
			sum.StepsFailed++
		}
	}
	return sum
}
