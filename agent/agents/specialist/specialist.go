package specialist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
)

const (
	deterministicConfidence = 0.6
	shortReplyConfidence    = 0.5
	mediumReplyConfidence   = 0.7
	detailedReplyConfidence = 0.9
)

// base carries what every specialist shares: its capability, an optional
// generator for polishing replies, and a degraded-path apology. Specialists
// absorb their own failures; Handle only errors on context cancellation.
type base struct {
	capability   contractx.Capability
	systemPrompt string
	generator    contractx.Generator
	apology      string
	apologyConf  float64
}

func (b *base) Capability() contractx.Capability {
	return b.capability
}

// guard runs the specialist body with panic recovery. A panic becomes the
// capability's apology result, so one bad lookup never takes down the plan.
func (b *base) guard(ctx context.Context, process func() contractx.HandlerResult) (res contractx.HandlerResult, err error) {
	if err := ctx.Err(); err != nil {
		return contractx.HandlerResult{}, err
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("capability", string(b.capability)).
				Interface("panic", r).
				Msg("specialist recovered from panic")
			res = contractx.HandlerResult{
				Capability: b.capability,
				Response:   b.apology,
				Confidence: b.apologyConf,
			}
			err = nil
		}
	}()
	return process(), nil
}

// polish turns tool results into the final specialist reply. With a generator
// wired, the deterministic draft is replaced by generated text; without one,
// or when generation fails, the draft ships as is.
func (b *base) polish(
	ctx context.Context,
	message string,
	snapshot contractx.ContextSnapshot,
	toolsUsed []string,
	toolResults []contractx.ToolResult,
	draft string,
) contractx.HandlerResult {
	res := contractx.HandlerResult{
		Capability:  b.capability,
		ToolsUsed:   toolsUsed,
		ToolResults: toolResults,
		Response:    draft,
		Confidence:  deterministicConfidence,
	}
	if b.generator == nil {
		return res
	}

	text, err := b.generator.Generate(ctx, contractx.GenerateRequest{
		SystemPrompt: b.systemPrompt,
		UserPrompt:   formatUserPrompt(message, snapshot, toolResults),
		RecentTurns:  lastTurns(snapshot.RecentTurns, 3),
	})
	if err != nil || strings.TrimSpace(text) == "" {
		log.Warn().
			Err(err).
			Str("capability", string(b.capability)).
			Msg("generation failed, shipping deterministic draft")
		return res
	}
	res.Response = text
	res.Confidence = replyConfidence(text)
	return res
}

// replyConfidence scores a generated reply: longer, concrete answers earn
// more trust than terse ones.
func replyConfidence(text string) float64 {
	lower := strings.ToLower(text)
	if len(text) > 200 && (strings.Contains(lower, "specific") || strings.Contains(lower, "recommend")) {
		return detailedReplyConfidence
	}
	if len(text) > 100 {
		return mediumReplyConfidence
	}
	return shortReplyConfidence
}

// formatUserPrompt packages the customer message, session facts, and tool
// results into one prompt body.
func formatUserPrompt(message string, snapshot contractx.ContextSnapshot, toolResults []contractx.ToolResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Customer Message: %s\n\n", message)
	if len(snapshot.Orders) > 0 {
		fmt.Fprintf(&sb, "Orders Previously Discussed: %s\n\n", strings.Join(snapshot.Orders, ", "))
	}
	if len(snapshot.Issues) > 0 {
		fmt.Fprintf(&sb, "Issues Previously Mentioned: %s\n\n", strings.Join(snapshot.Issues, ", "))
	}
	if len(toolResults) > 0 {
		if encoded, err := json.Marshal(toolResults); err == nil {
			fmt.Fprintf(&sb, "Tool Results: %s\n", encoded)
		}
	}
	return sb.String()
}

func lastTurns(turns []contractx.Turn, n int) []contractx.Turn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
