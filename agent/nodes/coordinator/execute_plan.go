package coordinatornode

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	planningx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/planning"
)

const failedStepConfidence = 0.2

// ExecutePlan runs the plan's steps in the mode the planner chose. Step
// failures never abort the request; they are folded into the result list so
// synthesis can still answer from whatever succeeded.
func ExecutePlan(ctx context.Context, in *GraphState, registry contractx.Registry) (*GraphState, error) {
	in.Plan.Status = planningx.PlanExecuting
	switch in.Plan.Mode {
	case contractx.ModeParallel:
		in.Results = executeParallel(ctx, in.Plan, in.Message, in.Snapshot, registry)
	case contractx.ModeConditional:
		in.Results = executeConditional(ctx, in.Plan, in.Message, in.Snapshot, registry)
	default:
		in.Results = executeSequential(ctx, in.Plan, in.Message, in.Snapshot, registry)
	}
	// Completed regardless of step outcomes; failures surface in the summary.
	in.Plan.Status = planningx.PlanCompleted
	return in, nil
}

// executeSequential runs steps in plan order. Each successful step's tool
// results are appended to the snapshot so later specialists see them.
func executeSequential(ctx context.Context, plan *planningx.ExecutionPlan, message string, snapshot contractx.ContextSnapshot, registry contractx.Registry) []contractx.HandlerResult {
	results := make([]contractx.HandlerResult, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		res := runStep(ctx, registry, step, message, snapshot)
		results = append(results, res)
		if !res.Failed {
			snapshot.PriorResults = append(snapshot.PriorResults, res.ToolResults...)
		}
	}
	return results
}

// executeParallel fans every step out at once. Each specialist sees the
// original snapshot only; results never leak between concurrent steps.
func executeParallel(ctx context.Context, plan *planningx.ExecutionPlan, message string, snapshot contractx.ContextSnapshot, registry contractx.Registry) []contractx.HandlerResult {
	results := make([]contractx.HandlerResult, len(plan.Steps))
	var wg sync.WaitGroup
	for i, step := range plan.Steps {
		wg.Add(1)
		go func(i int, step *planningx.PlanStep) {
			defer wg.Done()
			results[i] = runStep(ctx, registry, step, message, snapshot)
		}(i, step)
	}
	wg.Wait()
	return results
}

// executeConditional runs steps in dependency rounds: a step becomes ready
// once every step it depends on has finished. Failed steps count as finished
// so a broken dependency degrades the chain instead of deadlocking it. Steps
// that never become ready are skipped.
func executeConditional(ctx context.Context, plan *planningx.ExecutionPlan, message string, snapshot contractx.ContextSnapshot, registry contractx.Registry) []contractx.HandlerResult {
	finished := make(map[string]bool, len(plan.Steps))
	results := make([]contractx.HandlerResult, 0, len(plan.Steps))

	for round := 0; round < len(plan.Steps); round++ {
		ready := readySteps(plan, finished)
		if len(ready) == 0 {
			break
		}
		for _, step := range ready {
			res := runStep(ctx, registry, step, message, snapshot)
			results = append(results, res)
			finished[step.ID] = true
			if !res.Failed {
				snapshot.PriorResults = append(snapshot.PriorResults, res.ToolResults...)
			}
		}
	}

	for _, step := range plan.Steps {
		if !finished[step.ID] {
			step.Status = planningx.StepSkipped
			log.Warn().
				Str("plan_id", plan.ID).
				Str("step_id", step.ID).
				Msg("step skipped, dependencies never completed")
		}
	}
	return results
}

func readySteps(plan *planningx.ExecutionPlan, finished map[string]bool) []*planningx.PlanStep {
	var ready []*planningx.PlanStep
	for _, step := range plan.Steps {
		if finished[step.ID] || step.Status != planningx.StepPending {
			continue
		}
		ok := true
		for _, dep := range step.DependsOn {
			if !finished[dep] {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, step)
		}
	}
	return ready
}

func runStep(ctx context.Context, registry contractx.Registry, step *planningx.PlanStep, message string, snapshot contractx.ContextSnapshot) contractx.HandlerResult {
	step.Status = planningx.StepRunning

	handler, ok := registry.Handler(step.Capability)
	if !ok {
		step.Status = planningx.StepFailed
		return failedStep(step.Capability, "no handler registered")
	}

	res, err := handler.Handle(ctx, message, snapshot)
	if err != nil {
		step.Status = planningx.StepFailed
		log.Error().
			Err(fmt.Errorf("%w: %v", contractx.ErrHandlerFailure, err)).
			Str("step_id", step.ID).
			Str("capability", string(step.Capability)).
			Msg("step execution failed")
		return failedStep(step.Capability, err.Error())
	}

	step.Status = planningx.StepCompleted
	return res
}

func failedStep(capability contractx.Capability, reason string) contractx.HandlerResult {
	return contractx.HandlerResult{
		Capability: capability,
		Response:   fmt.Sprintf("The %s specialist could not complete this step: %s", capability, reason),
		Confidence: failedStepConfidence,
		Failed:     true,
	}
}
