package coordinatornode

import (
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
)

// FinalizeResult shapes the pipeline state into the caller-facing result.
func FinalizeResult(in *GraphState, nowFn func() time.Time) (GraphOutput, error) {
	elapsed := nowFn().UTC().Sub(in.StartedAt).Seconds()

	log.Info().
		Str("session_id", in.SessionID).
		Str("plan_id", in.Plan.ID).
		Str("mode", string(in.Plan.Mode)).
		Strs("agents", in.AgentsUsed).
		Float64("confidence", in.Confidence).
		Float64("elapsed_seconds", elapsed).
		Msg("request handled")

	return GraphOutput{
		Result: contractx.ChatResult{
			Response:      in.Response,
			Plan:          in.PlanSummary,
			AgentsUsed:    in.AgentsUsed,
			ToolsUsed:     in.ToolsUsed,
			Confidence:    in.Confidence,
			ExecutionTime: elapsed,
			SessionID:     in.SessionID,
		},
	}, nil
}
