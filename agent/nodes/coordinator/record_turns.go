package coordinatornode

import (
	"github.com/rs/zerolog/log"
)

// RecordTurns writes the exchange back to the session. A session that expired
// mid-request is logged and absorbed; the customer still gets the reply.
func RecordTurns(in *GraphState, store SessionStore) (*GraphState, error) {
	in.PlanSummary = in.Plan.Summary()

	if err := store.AppendUserTurn(in.SessionID, in.Message); err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("record user turn failed")
		return in, nil
	}
	if err := store.AppendAssistantTurn(in.SessionID, in.Response, in.AgentsUsed, in.ToolsUsed, in.PlanSummary); err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("record assistant turn failed")
	}
	return in, nil
}
