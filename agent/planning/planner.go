package planning

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	toolx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/tool"
)

const (
	baseTimePerStep  = 3
	timePerToolGroup = 2
	maxEstimatedTime = 30

	baseConfidence = 0.7
	minConfidence  = 0.3
	maxConfidence  = 0.95

	fallbackEstimatedTime = 10
	fallbackConfidence    = 0.5
)

// capabilityProfile drives request analysis: which keywords pull a
// capability into the plan and where it sorts among selected steps.
type capabilityProfile struct {
	keywords []string
	priority int
}

var capabilityProfiles = map[contractx.Capability]capabilityProfile{
	contractx.CapabilityOrder: {
		keywords: []string{"order", "tracking", "delivery", "shipping", "return", "refund", "warranty"},
		priority: 1,
	},
	contractx.CapabilityTechSupport: {
		keywords: []string{"not working", "broken", "fix", "troubleshoot", "support", "help", "issue", "problem"},
		priority: 2,
	},
	contractx.CapabilityProduct: {
		keywords: []string{"specs", "compare", "recommend", "alternative", "price", "features", "which", "best"},
		priority: 2,
	},
	contractx.CapabilitySolutions: {
		keywords: []string{"disappointed", "unsatisfied", "compensation", "exchange", "solution", "resolve"},
		priority: 3,
	},
}

// Planner turns a user message and its session context into an execution
// plan. Planning is deterministic keyword scoring; no model call is involved.
type Planner struct {
	newID func() string
	now   func() time.Time
}

type PlannerOption func(*Planner)

// WithIDGenerator pins plan id generation. Test helper.
func WithIDGenerator(newID func() string) PlannerOption {
	return func(p *Planner) {
		if newID != nil {
			p.newID = newID
		}
	}
}

func NewPlanner(opts ...PlannerOption) *Planner {
	p := &Planner{
		newID: func() string { return "plan-" + uuid.NewString()[:8] },
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// CreatePlan analyzes the message, selects capabilities, and picks the
// execution mode: one capability runs sequentially, complex requests get a
// conditional dependency chain, the rest fan out in parallel.
func (p *Planner) CreatePlan(message string, snapshot contractx.ContextSnapshot) *ExecutionPlan {
	plan := &ExecutionPlan{
		ID:        p.newID(),
		Request:   message,
		Status:    PlanCreated,
		CreatedAt: p.now(),
	}

	selected := p.analyze(message, snapshot)
	switch {
	case len(selected) == 1:
		plan.Mode = contractx.ModeSequential
		plan.Steps = []*PlanStep{newStep(1, selected[0], describeStep(selected[0], message), 1)}
	case isComplex(message):
		plan.Mode = contractx.ModeConditional
		plan.Steps = buildConditionalSteps(message, selected)
	default:
		plan.Mode = contractx.ModeParallel
		for i, cap := range selected {
			plan.Steps = append(plan.Steps, newStep(i+1, cap, describeStep(cap, message), i+1))
		}
	}

	plan.EstimatedTime = estimateTime(plan.Steps)
	plan.Confidence = estimateConfidence(plan.Steps, snapshot)

	log.Debug().
		Str("plan_id", plan.ID).
		Str("mode", string(plan.Mode)).
		Int("steps", len(plan.Steps)).
		Msg("created execution plan")
	return plan
}

// FallbackPlan is the single-step recovery plan used when planning or plan
// validation fails: route everything to tech support and keep going.
func (p *Planner) FallbackPlan(message, reason string) *ExecutionPlan {
	return &ExecutionPlan{
		ID:             p.newID(),
		Request:        message,
		Mode:           contractx.ModeSequential,
		Status:         PlanReady,
		Steps:          []*PlanStep{newStep(1, contractx.CapabilityTechSupport, describeStep(contractx.CapabilityTechSupport, message), 1)},
		EstimatedTime:  fallbackEstimatedTime,
		Confidence:     fallbackConfidence,
		Fallback:       true,
		FallbackReason: reason,
		CreatedAt:      p.now(),
	}
}

// analyze scores each capability by keyword hits plus context boosts and
// returns those that scored, in priority order. With no hits at all, the
// highest-priority capability is drafted so every request gets an answer.
func (p *Planner) analyze(message string, snapshot contractx.ContextSnapshot) []contractx.Capability {
	lower := strings.ToLower(message)

	scores := make(map[contractx.Capability]int, len(capabilityProfiles))
	for cap, profile := range capabilityProfiles {
		for _, kw := range profile.keywords {
			if strings.Contains(lower, kw) {
				scores[cap]++
			}
		}
	}
	if len(snapshot.Orders) > 0 {
		scores[contractx.CapabilityOrder] += 2
	}
	if len(snapshot.Products) > 0 {
		scores[contractx.CapabilityProduct]++
	}

	var selected []contractx.Capability
	for _, cap := range contractx.AllCapabilities() {
		if scores[cap] > 0 {
			selected = append(selected, cap)
		}
	}
	if len(selected) == 0 {
		best := contractx.AllCapabilities()[0]
		for _, cap := range contractx.AllCapabilities() {
			if scores[cap] > scores[best] {
				best = cap
			}
		}
		selected = []contractx.Capability{best}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return capabilityProfiles[selected[i]].priority < capabilityProfiles[selected[j]].priority
	})
	return selected
}

// buildConditionalSteps arranges a dependency chain for complex requests.
// Two recognized shapes get a hand-tuned chain; anything else falls back to
// a linear chain in priority order.
func buildConditionalSteps(message string, selected []contractx.Capability) []*PlanStep {
	lower := strings.ToLower(message)

	if contains(selected, contractx.CapabilityOrder) && contains(selected, contractx.CapabilityTechSupport) {
		orderStep := newStep(1, contractx.CapabilityOrder, "Retrieve order information", 1)
		techStep := newStep(2, contractx.CapabilityTechSupport, "Provide technical assistance", 2)
		techStep.DependsOn = []string{orderStep.ID}
		steps := []*PlanStep{orderStep, techStep}

		if containsAny(lower, "help", "frustrated", "problem", "issue") {
			solutionStep := newStep(3, contractx.CapabilitySolutions, "Provide resolution options", 3)
			solutionStep.DependsOn = []string{techStep.ID}
			steps = append(steps, solutionStep)
		}
		return steps
	}

	if contains(selected, contractx.CapabilityProduct) && containsAny(lower, "other", "alternative", "different") {
		compareStep := newStep(1, contractx.CapabilityProduct, "Compare product options", 1)
		altStep := newStep(2, contractx.CapabilityProduct, "Find alternatives", 2)
		altStep.DependsOn = []string{compareStep.ID}
		return []*PlanStep{compareStep, altStep}
	}

	steps := make([]*PlanStep, 0, len(selected))
	for i, cap := range selected {
		step := newStep(i+1, cap, describeStep(cap, message), i+1)
		if i > 0 {
			step.DependsOn = []string{steps[i-1].ID}
		}
		steps = append(steps, step)
	}
	return steps
}

// isComplex gates conditional execution: technical trouble with an order,
// long messages, several questions, or stacked asks.
func isComplex(message string) bool {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "order") && containsAny(lower, "not working", "broken", "help") {
		return true
	}
	if len(strings.Fields(message)) > 15 {
		return true
	}
	if strings.Count(message, "?") > 1 {
		return true
	}
	return containsAnyWord(lower, "and", "also", "plus", "additionally")
}

func estimateTime(steps []*PlanStep) int {
	total := 0
	for _, s := range steps {
		total += baseTimePerStep + len(s.ToolGroups)*timePerToolGroup
	}
	if total > maxEstimatedTime {
		return maxEstimatedTime
	}
	return total
}

func estimateConfidence(steps []*PlanStep, snapshot contractx.ContextSnapshot) float64 {
	confidence := baseConfidence
	if len(snapshot.Orders) > 0 {
		for _, s := range steps {
			if s.Capability == contractx.CapabilityOrder {
				confidence += 0.1
				break
			}
		}
	}
	if len(steps) == 1 {
		confidence += 0.1
	}
	if len(steps) > 3 {
		confidence -= 0.1
	}
	if confidence < minConfidence {
		return minConfidence
	}
	if confidence > maxConfidence {
		return maxConfidence
	}
	return confidence
}

func newStep(seq int, cap contractx.Capability, description string, priority int) *PlanStep {
	return &PlanStep{
		ID:          fmt.Sprintf("step-%d", seq),
		Capability:  cap,
		Description: description,
		Priority:    priority,
		ToolGroups:  toolx.GroupsFor(cap),
		Status:      StepPending,
	}
}

func describeStep(cap contractx.Capability, message string) string {
	return fmt.Sprintf("Process %s aspects of: %s", cap, message)
}

func contains(caps []contractx.Capability, target contractx.Capability) bool {
	for _, c := range caps {
		if c == target {
			return true
		}
	}
	return false
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// containsAnyWord matches whole words, so "android" does not read as "and".
func containsAnyWord(s string, words ...string) bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}
