package generate

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	openrouterx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/pkg/openrouter"
)

type llmGenerator struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

var _ contractx.Generator = (*llmGenerator)(nil)

// New builds a Generator backed by the configured chat model. The prompt
// graph is compiled once; each Generate call only formats and invokes it.
func New(ctx context.Context, builder openrouterx.LLMBuilder) (contractx.Generator, error) {
	chatModel, err := builder.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: build chat model: %v", contractx.ErrGeneration, err)
	}

	runner, err := compileChatGraph(ctx, chatModel)
	if err != nil {
		return nil, err
	}
	return &llmGenerator{runner: runner}, nil
}

func compileChatGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system_prompt}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{user_prompt}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("generate.chat"))
	if err != nil {
		return nil, fmt.Errorf("compile chat graph: %w", err)
	}
	return runner, nil
}

func (g *llmGenerator) Generate(ctx context.Context, req contractx.GenerateRequest) (string, error) {
	history := make([]*schema.Message, 0, len(req.RecentTurns))
	for _, turn := range req.RecentTurns {
		switch turn.Role {
		case contractx.RoleAssistant:
			history = append(history, schema.AssistantMessage(turn.Content, nil))
		default:
			history = append(history, schema.UserMessage(turn.Content))
		}
	}

	out, err := g.runner.Invoke(ctx, map[string]any{
		"system_prompt": req.SystemPrompt,
		"user_prompt":   req.UserPrompt,
		"history":       history,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrGeneration, err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", fmt.Errorf("%w: empty completion", contractx.ErrGeneration)
	}
	return strings.TrimSpace(out.Content), nil
}
