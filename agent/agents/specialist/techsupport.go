package specialist

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	toolx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/tool"
)

// techSupportSpecialist troubleshoots device issues from the knowledge base,
// pulling in web results for problems the canned guides rarely cover.
type techSupportSpecialist struct {
	base
	knowledge *toolx.KnowledgeBase
	search    *toolx.SearchIndex
}

func newTechSupportSpecialist(knowledge *toolx.KnowledgeBase, search *toolx.SearchIndex, generator contractx.Generator, systemPrompt string) *techSupportSpecialist {
	return &techSupportSpecialist{
		base: base{
			capability:   contractx.CapabilityTechSupport,
			systemPrompt: systemPrompt,
			generator:    generator,
			apology: "I understand you're experiencing a technical issue. Let me help you troubleshoot " +
				"this step by step. Could you please describe the specific problem you're encountering?",
			apologyConf: 0.4,
		},
		knowledge: knowledge,
		search:    search,
	}
}

func (s *techSupportSpecialist) Handle(ctx context.Context, message string, snapshot contractx.ContextSnapshot) (contractx.HandlerResult, error) {
	return s.guard(ctx, func() contractx.HandlerResult {
		return s.process(ctx, message, snapshot)
	})
}

func (s *techSupportSpecialist) process(ctx context.Context, message string, snapshot contractx.ContextSnapshot) contractx.HandlerResult {
	var (
		toolsUsed   []string
		toolResults []contractx.ToolResult
		guides      []toolx.Guide
	)

	topic := issueTopic(message)
	if topic == "" && len(snapshot.Issues) > 0 {
		// No issue named in this message; reuse the latest one on file.
		topic = issueTopic(snapshot.Issues[len(snapshot.Issues)-1])
	}

	if topic != "" {
		if guide, err := s.knowledge.Lookup(topic); err == nil {
			guides = append(guides, guide)
			toolsUsed = append(toolsUsed, toolx.ToolGuideLookup)
			toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolGuideLookup, Result: guide})
		}
	} else {
		guides = s.knowledge.Search(message)
		toolsUsed = append(toolsUsed, toolx.ToolKnowledgeSearch)
		toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolKnowledgeSearch, Result: guides})
	}

	if isComplexIssue(message) {
		query := strings.Join(strings.Fields(deviceType(message, snapshot)+" "+readableTopic(topic)+" troubleshooting"), " ")
		results := s.search.SearchWeb(query)
		toolsUsed = append(toolsUsed, toolx.ToolWebSearch)
		toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolWebSearch, Result: results})
	}

	draft := s.draft(message, snapshot, guides)
	return s.polish(ctx, message, snapshot, toolsUsed, toolResults, draft)
}

func (s *techSupportSpecialist) draft(message string, snapshot contractx.ContextSnapshot, guides []toolx.Guide) string {
	device := deviceType(message, snapshot)
	if len(guides) == 0 {
		return fmt.Sprintf("I can help troubleshoot your %s. Could you describe the specific problem "+
			"you're seeing? For example: it won't turn on, it's overheating, or the WiFi keeps dropping.", device)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Let's work through this %s issue (%s) step by step:\n", device, readableTopic(guides[0].Topic))
	for i, step := range guides[0].Steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	sb.WriteString("\nIf none of these steps resolve the issue, let me know and we'll look at repair or replacement options.")
	return sb.String()
}

func readableTopic(topic string) string {
	return strings.ReplaceAll(topic, "_", " ")
}
