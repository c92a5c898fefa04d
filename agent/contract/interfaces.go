package contract

import "context"

// Handler is the common specialist contract: classify the message with local
// heuristics, run deterministic tool lookups, and return a structured result.
// Implementations must absorb internal failures and return a degraded
// low-confidence result instead of an error; a non-nil error is reserved for
// context cancellation and truly unexpected conditions, which the coordinator
// converts into a synthetic failed-step result.
type Handler interface {
	Capability() Capability
	Handle(ctx context.Context, message string, snapshot ContextSnapshot) (HandlerResult, error)
}

// Registry resolves specialists by capability.
type Registry interface {
	Handler(cap Capability) (Handler, bool)
	Capabilities() []Capability
}

// Generator is the generative text capability. Failures are recoverable by
// contract: callers must fall back to a canned reply, never propagate.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
