package specialist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	promptx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/prompt"
	toolx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/tool"
)

type fakeGenerator struct {
	reply   string
	err     error
	lastReq contractx.GenerateRequest
	calls   int
}

func (g *fakeGenerator) Generate(_ context.Context, req contractx.GenerateRequest) (string, error) {
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func testClock() func() time.Time {
	fixed := time.Date(2024, 2, 9, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return fixed }
}

func TestOrderSpecialistFullLookup(t *testing.T) {
	t.Parallel()

	s := newOrderSpecialist(toolx.NewOrderBookAt(testClock()))
	res, err := s.Handle(context.Background(), "Can you track order #12345 and check the warranty?", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.Capability != contractx.CapabilityOrder {
		t.Fatalf("capability = %s", res.Capability)
	}
	if res.Confidence != 0.9 {
		t.Fatalf("confidence = %.2f", res.Confidence)
	}
	for _, want := range []string{"Sarah Miller", "TechBook Pro 15", "Tracking number", "Warranty"} {
		if !strings.Contains(res.Response, want) {
			t.Fatalf("response missing %q:\n%s", want, res.Response)
		}
	}
	wantTools := map[string]bool{}
	for _, tool := range res.ToolsUsed {
		wantTools[tool] = true
	}
	if !wantTools[toolx.ToolOrderLookup] || !wantTools[toolx.ToolShipmentTracking] || !wantTools[toolx.ToolWarrantyCheck] {
		t.Fatalf("tools used = %v", res.ToolsUsed)
	}
}

func TestOrderSpecialistAsksForOrderNumber(t *testing.T) {
	t.Parallel()

	s := newOrderSpecialist(toolx.NewOrderBookAt(testClock()))
	res, err := s.Handle(context.Background(), "where is my package", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.Confidence != 0.4 {
		t.Fatalf("confidence = %.2f", res.Confidence)
	}
	if len(res.ToolsUsed) != 0 {
		t.Fatalf("tools used = %v", res.ToolsUsed)
	}
}

func TestOrderSpecialistUsesSessionOrder(t *testing.T) {
	t.Parallel()

	s := newOrderSpecialist(toolx.NewOrderBookAt(testClock()))
	snap := contractx.ContextSnapshot{Orders: []string{"12346", "12347"}}
	res, err := s.Handle(context.Background(), "what's the status of my delivery?", snap)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	// Most recently discussed order wins.
	if !strings.Contains(res.Response, "12347") || !strings.Contains(res.Response, "Emily Wilson") {
		t.Fatalf("response = %s", res.Response)
	}
}

func TestOrderSpecialistUnknownOrder(t *testing.T) {
	t.Parallel()

	s := newOrderSpecialist(toolx.NewOrderBookAt(testClock()))
	res, err := s.Handle(context.Background(), "check order #99999 please", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.Confidence != 0.5 || !strings.Contains(res.Response, "99999") {
		t.Fatalf("result = %+v", res)
	}
}

func TestTechSupportDeterministicDraft(t *testing.T) {
	t.Parallel()

	s := newTechSupportSpecialist(toolx.NewKnowledgeBase(), toolx.NewSearchIndex(), nil, "")
	res, err := s.Handle(context.Background(), "my techbook won't turn on at all", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.Confidence != deterministicConfidence {
		t.Fatalf("confidence = %.2f", res.Confidence)
	}
	if !strings.Contains(res.Response, "power adapter") {
		t.Fatalf("response missing troubleshooting steps:\n%s", res.Response)
	}
	if len(res.ToolsUsed) != 1 || res.ToolsUsed[0] != toolx.ToolGuideLookup {
		t.Fatalf("tools used = %v", res.ToolsUsed)
	}
}

func TestTechSupportUsesGeneratorWhenWired(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: strings.Repeat("Here is a specific step. ", 12)}
	s := newTechSupportSpecialist(toolx.NewKnowledgeBase(), toolx.NewSearchIndex(), gen, "system prompt")
	res, err := s.Handle(context.Background(), "laptop overheating badly", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d", gen.calls)
	}
	if res.Response != gen.reply {
		t.Fatalf("response = %q", res.Response)
	}
	if res.Confidence != detailedReplyConfidence {
		t.Fatalf("confidence = %.2f", res.Confidence)
	}
	if !strings.Contains(gen.lastReq.UserPrompt, "Customer Message") {
		t.Fatalf("user prompt = %q", gen.lastReq.UserPrompt)
	}
}

func TestTechSupportFallsBackOnGeneratorError(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New("model offline")}
	s := newTechSupportSpecialist(toolx.NewKnowledgeBase(), toolx.NewSearchIndex(), gen, "system prompt")
	res, err := s.Handle(context.Background(), "wifi keeps dropping", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.Confidence != deterministicConfidence {
		t.Fatalf("confidence = %.2f", res.Confidence)
	}
	if !strings.Contains(res.Response, "router") {
		t.Fatalf("deterministic draft missing:\n%s", res.Response)
	}
}

func TestTechSupportReusesSessionIssue(t *testing.T) {
	t.Parallel()

	s := newTechSupportSpecialist(toolx.NewKnowledgeBase(), toolx.NewSearchIndex(), nil, "")
	snap := contractx.ContextSnapshot{Issues: []string{"overheating"}}
	res, err := s.Handle(context.Background(), "it's still doing it, what next?", snap)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(res.Response, "vents") {
		t.Fatalf("expected overheating guide, got:\n%s", res.Response)
	}
}

func TestTechSupportSearchesWebForComplexIssue(t *testing.T) {
	t.Parallel()

	s := newTechSupportSpecialist(toolx.NewKnowledgeBase(), toolx.NewSearchIndex(), nil, "")
	res, err := s.Handle(context.Background(), "my laptop crashes with a blue screen on startup", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	usedWeb := false
	for _, tool := range res.ToolsUsed {
		if tool == toolx.ToolWebSearch {
			usedWeb = true
		}
	}
	if !usedWeb {
		t.Fatalf("tools used = %v", res.ToolsUsed)
	}
}

func TestTechSupportSkipsWebSearchForSimpleIssue(t *testing.T) {
	t.Parallel()

	s := newTechSupportSpecialist(toolx.NewKnowledgeBase(), toolx.NewSearchIndex(), nil, "")
	res, err := s.Handle(context.Background(), "my laptop is overheating", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	for _, tool := range res.ToolsUsed {
		if tool == toolx.ToolWebSearch {
			t.Fatalf("tools used = %v", res.ToolsUsed)
		}
	}
}

func TestProductSpecialistComparison(t *testing.T) {
	t.Parallel()

	s := newProductSpecialist(toolx.NewProductCatalog(), toolx.NewSearchIndex(), nil, "")
	res, err := s.Handle(context.Background(), "compare the TechBook Pro 15 vs the Air 13", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(res.ToolsUsed) != 1 || res.ToolsUsed[0] != toolx.ToolComparison {
		t.Fatalf("tools used = %v", res.ToolsUsed)
	}
	if !strings.Contains(res.Response, "TechBook Pro 15") || !strings.Contains(res.Response, "TechBook Air 13") {
		t.Fatalf("response = %s", res.Response)
	}
}

func TestProductSpecialistRecommendation(t *testing.T) {
	t.Parallel()

	s := newProductSpecialist(toolx.NewProductCatalog(), toolx.NewSearchIndex(), nil, "")
	res, err := s.Handle(context.Background(), "which laptop would you recommend for gaming?", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(res.Response, "TechBook Gaming 17") {
		t.Fatalf("response = %s", res.Response)
	}
}

func TestProductSpecialistComparisonNeedsTwoModels(t *testing.T) {
	t.Parallel()

	s := newProductSpecialist(toolx.NewProductCatalog(), toolx.NewSearchIndex(), nil, "")
	res, err := s.Handle(context.Background(), "compare the TechBook Pro 15", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(res.ToolsUsed) != 0 {
		t.Fatalf("tools used = %v", res.ToolsUsed)
	}
	if !strings.Contains(res.Response, "Which two products") {
		t.Fatalf("response = %s", res.Response)
	}
}

func TestProductSpecialistDealSearch(t *testing.T) {
	t.Parallel()

	s := newProductSpecialist(toolx.NewProductCatalog(), toolx.NewSearchIndex(), nil, "")
	res, err := s.Handle(context.Background(), "are there any deals on laptops right now?", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(res.ToolsUsed) != 1 || res.ToolsUsed[0] != toolx.ToolDealSearch {
		t.Fatalf("tools used = %v", res.ToolsUsed)
	}
	if !strings.Contains(res.Response, "laptops") || !strings.Contains(res.Response, "15% off") {
		t.Fatalf("response = %s", res.Response)
	}
}

func TestSolutionsCompensationScalesWithSeverity(t *testing.T) {
	t.Parallel()

	s := newSolutionsSpecialist(toolx.NewKnowledgeBase(), toolx.NewOrderBookAt(testClock()), nil, "")

	mild, err := s.Handle(context.Background(), "I'd like some credit for the inconvenience", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(mild.Response, "$25") {
		t.Fatalf("low severity response = %s", mild.Response)
	}

	severe, err := s.Handle(context.Background(), "this is the worst experience ever, I want compensation", contractx.ContextSnapshot{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(severe.Response, "$100") {
		t.Fatalf("high severity response = %s", severe.Response)
	}
}

func TestSolutionsReturnWithOrderContext(t *testing.T) {
	t.Parallel()

	s := newSolutionsSpecialist(toolx.NewKnowledgeBase(), toolx.NewOrderBookAt(testClock()), nil, "")
	snap := contractx.ContextSnapshot{Orders: []string{"12345"}}
	res, err := s.Handle(context.Background(), "I want to return it, it's defective", snap)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(res.Response, "RMA-12345") {
		t.Fatalf("response = %s", res.Response)
	}
	hasProcessing := false
	for _, tool := range res.ToolsUsed {
		if tool == toolx.ToolReturnProcessing {
			hasProcessing = true
		}
	}
	if !hasProcessing {
		t.Fatalf("tools used = %v", res.ToolsUsed)
	}
}

func TestSolutionsWarrantyClaim(t *testing.T) {
	t.Parallel()

	s := newSolutionsSpecialist(toolx.NewKnowledgeBase(), toolx.NewOrderBookAt(testClock()), nil, "")
	snap := contractx.ContextSnapshot{Orders: []string{"12345"}}
	res, err := s.Handle(context.Background(), "is this covered under warranty? can you repair it?", snap)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(res.Response, "active until 2026-01-30") {
		t.Fatalf("response = %s", res.Response)
	}
}

func TestHandlersAbortOnCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newOrderSpecialist(toolx.NewOrderBookAt(testClock()))
	if _, err := s.Handle(ctx, "order #12345", contractx.ContextSnapshot{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRegistryExposesAllCapabilities(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	caps := reg.Capabilities()
	if len(caps) != 4 {
		t.Fatalf("capabilities = %v", caps)
	}
	for _, c := range contractx.AllCapabilities() {
		h, ok := reg.Handler(c)
		if !ok || h.Capability() != c {
			t.Fatalf("handler for %s missing or mismatched", c)
		}
	}
	if _, ok := reg.Handler("billing"); ok {
		t.Fatal("unknown capability must not resolve")
	}
}

func TestPromptSetLoads(t *testing.T) {
	t.Parallel()

	prompts := promptx.LoadPromptSet()
	if prompts.TechSupport == "" || prompts.Synthesis == "" {
		t.Fatal("embedded prompts must not be empty")
	}
}
