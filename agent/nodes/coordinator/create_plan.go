package coordinatornode

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	planningx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/planning"
)

// CreatePlan asks the planner for an execution plan and swaps in the fallback
// plan when validation flags it. The request never fails here; a broken plan
// degrades to the single-specialist fallback instead.
func CreatePlan(in *GraphState, planner Planner) (*GraphState, error) {
	plan := planner.CreatePlan(in.Message, in.Snapshot)
	if ok, issues := planningx.Validate(plan); ok {
		plan.Status = planningx.PlanReady
	} else {
		plan.Status = planningx.PlanFailed
		reason := strings.Join(issues, "; ")
		log.Warn().
			Err(fmt.Errorf("%w: %s", contractx.ErrPlanInvalid, reason)).
			Str("session_id", in.SessionID).
			Msg("plan failed validation, using fallback")
		plan = planner.FallbackPlan(in.Message, reason)
	}

	in.Plan = plan
	return in, nil
}
