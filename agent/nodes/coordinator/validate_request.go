package coordinatornode

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	planningx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/planning"
)

var (
	ErrInvalidMessage = fmt.Errorf("%w: message is empty", contractx.ErrValidation)
	ErrMessageTooLong = fmt.Errorf("%w: message exceeds %d characters", contractx.ErrValidation, maxMessageLen)
)

const maxMessageLen = 4000

type GraphInput struct {
	SessionID string
	Message   string
}

type GraphOutput struct {
	Result contractx.ChatResult
}

// Planner is the planning surface the pipeline consumes.
type Planner interface {
	CreatePlan(message string, snapshot contractx.ContextSnapshot) *planningx.ExecutionPlan
	FallbackPlan(message, reason string) *planningx.ExecutionPlan
}

// SessionStore is the slice of the session store the pipeline consumes.
type SessionStore interface {
	ResolveOrCreate(sessionID string) (string, bool)
	AppendUserTurn(sessionID, content string) error
	AppendAssistantTurn(sessionID, content string, agents, tools []string, plan *contractx.PlanSummary) error
	Snapshot(sessionID string) contractx.ContextSnapshot
}

// GraphState threads one request through the pipeline nodes.
type GraphState struct {
	SessionID string
	Message   string
	StartedAt time.Time

	SessionCreated bool
	Snapshot       contractx.ContextSnapshot

	Plan    *planningx.ExecutionPlan
	Results []contractx.HandlerResult

	Response    string
	Confidence  float64
	AgentsUsed  []string
	ToolsUsed   []string
	ToolResults []contractx.ToolResult
	PlanSummary *contractx.PlanSummary
}

// ValidateRequest checks the inbound message. An empty session id is fine, a
// fresh session is minted downstream.
func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, ErrInvalidMessage
	}
	if len(message) > maxMessageLen {
		return nil, ErrMessageTooLong
	}

	return &GraphState{
		SessionID: strings.TrimSpace(in.SessionID),
		Message:   message,
		StartedAt: nowFn().UTC(),
	}, nil
}
