package coordinatornode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
)

const (
	noResultConfidence = 0.5

	noResultApology = "I apologize, but I wasn't able to process your request right now. " +
		"Could you rephrase it, or let me know which order or product you're asking about?"
)

// Synthesize folds the specialist results into one reply. With several
// results and a generator it asks the model to merge them; otherwise it ships
// the strongest specialist response as-is. The final confidence never exceeds
// the best specialist's own confidence.
func Synthesize(ctx context.Context, in *GraphState, generator contractx.Generator, systemPrompt string) (*GraphState, error) {
	in.AgentsUsed, in.ToolsUsed, in.ToolResults = aggregate(in.Results)

	if len(in.Results) == 0 {
		in.Response = noResultApology
		in.Confidence = noResultConfidence
		return in, nil
	}

	best := bestResult(in.Results)
	succeeded := successful(in.Results)

	// One usable answer needs no merging.
	if len(succeeded) == 1 {
		in.Response = succeeded[0].Response
		in.Confidence = succeeded[0].Confidence
		return in, nil
	}

	if len(succeeded) == 0 || generator == nil {
		in.Response = best.Response
		in.Confidence = best.Confidence
		return in, nil
	}

	text, err := generator.Generate(ctx, contractx.GenerateRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   synthesisPrompt(in.Message, succeeded),
	})
	if err != nil || strings.TrimSpace(text) == "" {
		log.Warn().
			Err(err).
			Str("session_id", in.SessionID).
			Msg("synthesis generation failed, using best specialist response")
		in.Response = best.Response
		in.Confidence = best.Confidence
		return in, nil
	}

	in.Response = text
	in.Confidence = min(synthesizedConfidence(text), best.Confidence)
	return in, nil
}

func synthesisPrompt(message string, results []contractx.HandlerResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Customer request: %s\n\nSpecialist responses:\n", message)
	for i, res := range results {
		fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, res.Capability, res.Response)
	}
	sb.WriteString("\nCombine these into a single coherent reply to the customer.")
	return sb.String()
}

func synthesizedConfidence(text string) float64 {
	lower := strings.ToLower(text)
	switch {
	case len(text) > 200 && (strings.Contains(lower, "specific") || strings.Contains(lower, "recommend")):
		return 0.9
	case len(text) > 100:
		return 0.7
	default:
		return 0.5
	}
}

func successful(results []contractx.HandlerResult) []contractx.HandlerResult {
	var out []contractx.HandlerResult
	for _, res := range results {
		if !res.Failed {
			out = append(out, res)
		}
	}
	return out
}

func bestResult(results []contractx.HandlerResult) contractx.HandlerResult {
	best := results[0]
	for _, res := range results[1:] {
		if res.Confidence > best.Confidence {
			best = res
		}
	}
	return best
}

func aggregate(results []contractx.HandlerResult) (agents, tools []string, toolResults []contractx.ToolResult) {
	seenAgent := map[string]bool{}
	seenTool := map[string]bool{}
	for _, res := range results {
		name := string(res.Capability)
		if !seenAgent[name] {
			seenAgent[name] = true
			agents = append(agents, name)
		}
		for _, tool := range res.ToolsUsed {
			if !seenTool[tool] {
				seenTool[tool] = true
				tools = append(tools, tool)
			}
		}
		toolResults = append(toolResults, res.ToolResults...)
	}
	return agents, tools, toolResults
}
