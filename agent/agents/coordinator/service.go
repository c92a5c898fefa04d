package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	nodex "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/nodes/coordinator"
	promptx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/prompt"
	sessionx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/session"
	toolx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/tool"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrMessageTooLong = nodex.ErrMessageTooLong
)

const defaultRequestTimeout = 30 * time.Second

type Config struct {
	RequestTimeout time.Duration
}

// Service is the coordinator: it owns the request pipeline that plans,
// dispatches specialists, and synthesizes the reply.
type Service struct {
	store     *sessionx.Store
	registry  contractx.Registry
	planner   nodex.Planner
	generator contractx.Generator

	graphRunner     compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
	synthesisPrompt string
	requestTimeout  time.Duration

	now func() time.Time
}

// New wires the coordinator and compiles its pipeline graph. The generator
// may be nil; synthesis then ships the strongest specialist response.
func New(
	store *sessionx.Store,
	registry contractx.Registry,
	planner nodex.Planner,
	generator contractx.Generator,
	cfg Config,
) (*Service, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if registry == nil {
		return nil, errors.New("specialist registry is required")
	}
	if planner == nil {
		return nil, errors.New("planner is required")
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	s := &Service{
		store:           store,
		registry:        registry,
		planner:         planner,
		generator:       generator,
		synthesisPrompt: promptx.LoadPromptSet().Synthesis,
		requestTimeout:  timeout,
		now:             time.Now,
	}

	graphRunner, err := s.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// SubmitMessage routes one customer message through the pipeline. An empty
// session id starts a new session; the resolved id comes back on the result.
func (s *Service) SubmitMessage(ctx context.Context, sessionID, message string) (contractx.ChatResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	out, err := s.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Message:   message,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return contractx.ChatResult{}, fmt.Errorf("%w: request exceeded %s", contractx.ErrTimeout, s.requestTimeout)
		}
		return contractx.ChatResult{}, err
	}
	return out.Result, nil
}

// SessionHistory returns the full message list for a live session.
func (s *Service) SessionHistory(sessionID string) ([]sessionx.Message, error) {
	return s.store.History(sessionID)
}

// ActiveSessions lists live session ids in sorted order.
func (s *Service) ActiveSessions() []string {
	return s.store.ActiveIDs()
}

// SessionCount reports how many sessions are currently held.
func (s *Service) SessionCount() int {
	return s.store.Len()
}

// ResetAllSessions drops every session and reports how many were cleared.
func (s *Service) ResetAllSessions() int {
	return s.store.ResetAll()
}

// CapabilityInfo describes one registered specialist for discovery callers.
type CapabilityInfo struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	ToolGroups  []string `json:"tool_groups"`
}

var capabilityDetails = map[contractx.Capability]CapabilityInfo{
	contractx.CapabilityOrder: {
		Title:       "Order Specialist",
		Description: "Handles order tracking, returns, and warranty issues",
		Skills:      []string{"Order lookup", "Tracking information", "Returns processing", "Warranty checks"},
	},
	contractx.CapabilityTechSupport: {
		Title:       "Technical Support",
		Description: "Provides troubleshooting and technical assistance",
		Skills:      []string{"Hardware troubleshooting", "Software issues", "Setup guidance", "Performance optimization"},
	},
	contractx.CapabilityProduct: {
		Title:       "Product Expert",
		Description: "Offers product information, comparisons, and recommendations",
		Skills:      []string{"Product specifications", "Comparisons", "Recommendations", "Inventory checks"},
	},
	contractx.CapabilitySolutions: {
		Title:       "Solutions Specialist",
		Description: "Handles returns, exchanges, and problem resolution",
		Skills:      []string{"Returns processing", "Exchange requests", "Compensation decisions", "Problem resolution"},
	},
}

// Capabilities describes the registered specialists, in registry order.
func (s *Service) Capabilities() []CapabilityInfo {
	var out []CapabilityInfo
	for _, cap := range s.registry.Capabilities() {
		info := capabilityDetails[cap]
		info.Name = string(cap)
		info.ToolGroups = toolx.GroupsFor(cap)
		out = append(out, info)
	}
	return out
}

// DemoOutcome is the result of the scripted demo scenario.
type DemoOutcome struct {
	Scenario     string               `json:"scenario"`
	Message      string               `json:"customer_message"`
	ExpectedFlow []string             `json:"expected_flow"`
	Result       contractx.ChatResult `json:"execution_result"`
}

const demoMessage = "My laptop order #12345 won't turn on, I need help!"

// RunDemo plays the scripted laptop-power scenario through a dedicated demo
// session, exercising the conditional order -> tech support chain.
func (s *Service) RunDemo(ctx context.Context) (DemoOutcome, error) {
	result, err := s.SubmitMessage(ctx, "demo-session", demoMessage)
	if err != nil {
		return DemoOutcome{}, err
	}
	return DemoOutcome{
		Scenario: "Customer technical support with order context",
		Message:  demoMessage,
		ExpectedFlow: []string{
			"order: retrieve order #12345 details and warranty information",
			"tech_support: provide troubleshooting steps for power issues",
			"coordinator: synthesize specialist responses into one answer",
		},
		Result: result,
	}, nil
}
