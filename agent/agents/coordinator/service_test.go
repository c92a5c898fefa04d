package coordinator

import (
	"context"
	"errors"
	"strings"
	"testing"

	specialistx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/agents/specialist"
	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	planningx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/planning"
	sessionx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/session"
)

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, contractx.GenerateRequest) (string, error) {
	return "", errors.New("model offline")
}

func newTestService(t *testing.T, generator contractx.Generator) *Service {
	t.Helper()

	store := sessionx.NewStore(sessionx.Config{Timeout: 0, RecentTurns: 0})
	svc, err := New(store, specialistx.NewRegistry(generator), planningx.NewPlanner(), generator, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func TestSubmitMessageLaptopPowerScenario(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	res, err := svc.SubmitMessage(context.Background(), "", "My laptop order #12345 won't turn on, I need help!")
	if err != nil {
		t.Fatalf("SubmitMessage: %v", err)
	}

	if res.SessionID == "" {
		t.Fatal("session id must be minted")
	}
	if res.Plan == nil || res.Plan.Mode != contractx.ModeConditional {
		t.Fatalf("plan = %+v", res.Plan)
	}

	agents := map[string]bool{}
	for _, a := range res.AgentsUsed {
		agents[a] = true
	}
	if !agents["order"] || !agents["tech_support"] {
		t.Fatalf("agents used = %v", res.AgentsUsed)
	}
	if !strings.Contains(res.Response, "12345") {
		t.Fatalf("response must reference the order:\n%s", res.Response)
	}
	if res.Confidence < 0.3 {
		t.Fatalf("confidence = %.2f", res.Confidence)
	}
	if res.Plan.StepsCompleted == 0 {
		t.Fatalf("plan summary = %+v", res.Plan)
	}
}

func TestSubmitMessageProductComparison(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	res, err := svc.SubmitMessage(context.Background(), "", "Can you compare the TechBook Pro 15 vs the TechBook Air 13?")
	if err != nil {
		t.Fatalf("SubmitMessage: %v", err)
	}

	if len(res.AgentsUsed) != 1 || res.AgentsUsed[0] != "product" {
		t.Fatalf("agents used = %v", res.AgentsUsed)
	}
	if !strings.Contains(res.Response, "TechBook Pro 15") || !strings.Contains(res.Response, "TechBook Air 13") {
		t.Fatalf("response = %s", res.Response)
	}
}

func TestSubmitMessageSurvivesGeneratorOutage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingGenerator{})
	res, err := svc.SubmitMessage(context.Background(), "", "My laptop order #12345 won't turn on, I need help!")
	if err != nil {
		t.Fatalf("SubmitMessage: %v", err)
	}
	if strings.TrimSpace(res.Response) == "" {
		t.Fatal("response must not be empty when the model is down")
	}
	if res.Confidence < 0.3 {
		t.Fatalf("confidence = %.2f", res.Confidence)
	}
}

func TestSubmitMessageRejectsEmptyMessage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	if _, err := svc.SubmitMessage(context.Background(), "", "   "); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("err = %v, want ErrInvalidMessage", err)
	}
}

func TestSubmitMessageCarriesSessionContext(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	first, err := svc.SubmitMessage(context.Background(), "", "I'd like to check on order #12347")
	if err != nil {
		t.Fatalf("SubmitMessage: %v", err)
	}

	second, err := svc.SubmitMessage(context.Background(), first.SessionID, "what's the delivery status?")
	if err != nil {
		t.Fatalf("SubmitMessage: %v", err)
	}
	if second.SessionID != first.SessionID {
		t.Fatalf("session id changed: %s -> %s", first.SessionID, second.SessionID)
	}
	// The second message names no order; the session remembers #12347.
	if !strings.Contains(second.Response, "12347") {
		t.Fatalf("response = %s", second.Response)
	}
}

func TestSessionHistoryRecordsExchange(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	res, err := svc.SubmitMessage(context.Background(), "", "track order #12345")
	if err != nil {
		t.Fatalf("SubmitMessage: %v", err)
	}

	history, err := svc.SessionHistory(res.SessionID)
	if err != nil {
		t.Fatalf("SessionHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d", len(history))
	}
	if history[0].Role != contractx.RoleUser || history[1].Role != contractx.RoleAssistant {
		t.Fatalf("roles = %s, %s", history[0].Role, history[1].Role)
	}
	if history[1].Plan == nil || history[1].Plan.TotalSteps == 0 {
		t.Fatalf("assistant message plan = %+v", history[1].Plan)
	}
}

func TestSessionHistoryUnknownSession(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	if _, err := svc.SessionHistory("nope"); !errors.Is(err, contractx.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestResetAllSessions(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	if _, err := svc.SubmitMessage(context.Background(), "", "hello there"); err != nil {
		t.Fatalf("SubmitMessage: %v", err)
	}
	if _, err := svc.SubmitMessage(context.Background(), "", "hi again"); err != nil {
		t.Fatalf("SubmitMessage: %v", err)
	}

	if n := svc.ResetAllSessions(); n != 2 {
		t.Fatalf("reset count = %d", n)
	}
	if got := svc.ActiveSessions(); len(got) != 0 {
		t.Fatalf("active sessions = %v", got)
	}
}

func TestCapabilitiesMetadata(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	caps := svc.Capabilities()
	if len(caps) != 4 {
		t.Fatalf("capabilities = %d", len(caps))
	}
	if caps[0].Name != "order" || caps[0].Title == "" || len(caps[0].ToolGroups) == 0 {
		t.Fatalf("first capability = %+v", caps[0])
	}
}

func TestRunDemo(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	demo, err := svc.RunDemo(context.Background())
	if err != nil {
		t.Fatalf("RunDemo: %v", err)
	}
	if demo.Result.SessionID != "demo-session" {
		t.Fatalf("demo session = %s", demo.Result.SessionID)
	}
	if !strings.Contains(demo.Result.Response, "12345") {
		t.Fatalf("demo response = %s", demo.Result.Response)
	}
}
