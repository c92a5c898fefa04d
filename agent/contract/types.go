package contract

// Capability identifies one of the fixed specialist roles a plan step can be
// assigned to.
type Capability string

const (
	CapabilityOrder       Capability = "order"
	CapabilityTechSupport Capability = "tech_support"
	CapabilityProduct     Capability = "product"
	CapabilitySolutions   Capability = "solutions"
)

// AllCapabilities returns the specialist set in fixed priority order.
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityOrder,
		CapabilityTechSupport,
		CapabilityProduct,
		CapabilitySolutions,
	}
}

// Valid reports whether c names a known specialist.
func (c Capability) Valid() bool {
	switch c {
	case CapabilityOrder, CapabilityTechSupport, CapabilityProduct, CapabilitySolutions:
		return true
	}
	return false
}

// ExecutionMode is the dispatch strategy for a plan's steps.
type ExecutionMode string

const (
	ModeSequential  ExecutionMode = "sequential"
	ModeParallel    ExecutionMode = "parallel"
	ModeConditional ExecutionMode = "conditional"
)

// Valid reports whether m names a known execution mode.
func (m ExecutionMode) Valid() bool {
	switch m {
	case ModeSequential, ModeParallel, ModeConditional:
		return true
	}
	return false
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one prior conversation exchange, as exposed to planner and
// handlers through a context snapshot.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ToolResult is the outcome of a single deterministic tool lookup.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ContextSnapshot is a read-derived view of a session's accumulated facts and
// recent turns. It is a value copy: mutating it never touches the session.
type ContextSnapshot struct {
	SessionID   string         `json:"session_id"`
	Orders      []string       `json:"orders,omitempty"`
	Products    []string       `json:"products,omitempty"`
	Issues      []string       `json:"issues,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
	RecentTurns []Turn         `json:"recent_turns,omitempty"`
	TurnCount   int            `json:"turn_count"`

	// PriorResults carries tool results accumulated from earlier plan steps
	// in sequential and conditional execution. Empty in parallel mode.
	PriorResults []ToolResult `json:"prior_results,omitempty"`
}

// HandlerResult is the structured output of one specialist invocation.
// Handlers never fail past their boundary: internal errors are converted into
// a low-confidence apologetic result with Failed set.
type HandlerResult struct {
	Capability  Capability   `json:"capability"`
	Response    string       `json:"response"`
	ToolsUsed   []string     `json:"tools_used,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
	Confidence  float64      `json:"confidence"`
	Failed      bool         `json:"failed,omitempty"`
}

// GenerateRequest is the input to the generative text capability. Model
// selection and sampling live in the generator's own configuration; callers
// only supply prompts and conversation history.
type GenerateRequest struct {
	SystemPrompt string
	UserPrompt   string
	RecentTurns  []Turn
}

// StepSummary reports one plan step's outcome in a plan summary.
type StepSummary struct {
	Capability  Capability `json:"capability"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
}

// PlanSummary is the caller-facing record of how a request was executed. It
// is attached to the resulting assistant message; the plan itself is not
// retained.
type PlanSummary struct {
	PlanID         string        `json:"plan_id"`
	Mode           ExecutionMode `json:"execution_mode"`
	Steps          []StepSummary `json:"steps"`
	StepsCompleted int           `json:"steps_completed"`
	StepsFailed    int           `json:"steps_failed"`
	TotalSteps     int           `json:"total_steps"`
	EstimatedTime  int           `json:"estimated_time_seconds"`
	Fallback       bool          `json:"fallback,omitempty"`
	FallbackReason string        `json:"fallback_reason,omitempty"`
}

// ChatResult is the boundary response for one submitted message.
type ChatResult struct {
	Response      string       `json:"response"`
	Plan          *PlanSummary `json:"plan,omitempty"`
	AgentsUsed    []string     `json:"agents_used"`
	ToolsUsed     []string     `json:"tools_used"`
	Confidence    float64      `json:"confidence"`
	ExecutionTime float64      `json:"execution_time"`
	SessionID     string       `json:"session_id"`
}
