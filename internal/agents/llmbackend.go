package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"

	"mudabbir/internal/chat"
	"mudabbir/internal/desktop"
	"mudabbir/internal/llm"
	"mudabbir/internal/logging"
	"mudabbir/internal/memory"
	"mudabbir/internal/middleware"
)

// ToolExecutor runs a desktop action. desktop.Executor satisfies it.
type ToolExecutor interface {
	Execute(ctx context.Context, action string, params map[string]any) (string, error)
}

const (
	desktopTool   = "desktop"
	maxToolRounds = 4
	resultPreview = 200
)

var providerDefaultModels = map[string]string{
	"anthropic": "claude-sonnet-4-5",
	"openai":    "gpt-4o",
}

// llmFactory builds a langchaingo-backed agent. An empty provider uses the
// configured one; a fixed provider only inherits model, URL and key when the
// configuration names the same provider.
func llmFactory(provider string) factory {
	return func(ctx context.Context, info Info, deps Deps) (Backend, error) {
		cfg := deps.Config.LLM
		lc := llm.Config{Provider: llm.Provider(cfg.Provider), Model: cfg.Model, BaseURL: cfg.BaseURL, APIKey: deps.Config.ProviderAPIKey()}
		if provider != "" && !strings.EqualFold(provider, cfg.Provider) {
			lc = llm.Config{Provider: llm.Provider(provider), Model: providerDefaultModels[provider]}
		}
		adapter, err := llm.NewAdapter(ctx, lc)
		if err != nil {
			return nil, err
		}
		return newLLMBackend(info, adapter, deps.Tools), nil
	}
}

type llmBackend struct {
	info    Info
	adapter chat.Adapter
	tools   ToolExecutor
	log     zerolog.Logger
}

func newLLMBackend(info Info, adapter chat.Adapter, tools ToolExecutor) *llmBackend {
	return &llmBackend{info: info, adapter: adapter, tools: tools, log: logging.For("agent." + info.Name)}
}

func (b *llmBackend) Info() Info { return b.info }

func (b *llmBackend) Run(ctx context.Context, message, systemPrompt string, history []memory.Message) (<-chan Event, error) {
	out := make(chan Event, 16)
	go func() {
		defer close(out)
		b.run(ctx, out, conversation(systemPrompt, history, message))
	}()
	return out, nil
}

func (b *llmBackend) run(ctx context.Context, out chan<- Event, msgs []chat.Message) {
	params := &middleware.RunParams{}
	if p := runParamsFrom(ctx); p != nil {
		*params = *p
	}
	if b.tools != nil {
		params.Tools = append(append([]llms.Tool{}, params.Tools...), desktopToolDef())
	}

	for round := 0; ; round++ {
		streamed := false
		text, calls, err := b.adapter.ReplyStream(ctx, msgs, params, func(chunk string) {
			if chunk == "" {
				return
			}
			streamed = true
			send(ctx, out, Event{Kind: EventMessage, Content: chunk})
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			b.log.Warn().Err(err).Msg("model call failed")
			fail(ctx, out, fmt.Sprintf("%s error: %v", b.info.DisplayName, err))
			return
		}
		if !streamed && text != "" {
			if !send(ctx, out, Event{Kind: EventMessage, Content: text}) {
				return
			}
		}
		if len(calls) == 0 || b.tools == nil || round >= maxToolRounds {
			send(ctx, out, Event{Kind: EventDone})
			return
		}

		msgs = append(msgs, chat.Message{Role: chat.RoleAssistant, Content: text, ToolCalls: calls})
		for _, call := range calls {
			args := chat.ParseToolArgs(call.Arguments)
			if !send(ctx, out, Event{
				Kind:     EventToolUse,
				Content:  "Using " + call.Name + "...",
				Metadata: map[string]any{"name": call.Name, "input": args},
			}) {
				return
			}
			result := b.callTool(ctx, call.Name, args)
			if ctx.Err() != nil {
				return
			}
			send(ctx, out, Event{
				Kind:     EventToolResult,
				Content:  preview(result, resultPreview),
				Metadata: map[string]any{"name": call.Name},
			})
			msgs = append(msgs, chat.Message{Role: chat.RoleTool, Content: result, ToolCallID: call.ID, ToolName: call.Name})
		}
	}
}

func (b *llmBackend) callTool(ctx context.Context, name string, args map[string]any) string {
	if name != desktopTool {
		return "error: unknown tool " + name
	}
	action, _ := args["action"].(string)
	if action == "" {
		return "error: missing action"
	}
	params, _ := args["params"].(map[string]any)
	if params == nil {
		params = map[string]any{}
	}
	raw, err := b.tools.Execute(ctx, action, params)
	if err != nil {
		return "error: " + err.Error()
	}
	return raw
}

func desktopToolDef() llms.Tool {
	return llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        desktopTool,
			Description: "Control the local desktop: volume, brightness, media, windows, files, apps, processes, services, network and power.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"action": map[string]any{
						"type": "string",
						"enum": desktop.Actions(),
					},
					"params": map[string]any{
						"type":        "object",
						"description": `Action parameters, usually {"mode": ...} plus values such as level, name, path or query.`,
					},
				},
				"required": []string{"action"},
			},
		},
	}
}

func conversation(systemPrompt string, history []memory.Message, message string) []chat.Message {
	msgs := make([]chat.Message, 0, len(history)+2)
	if strings.TrimSpace(systemPrompt) != "" {
		msgs = append(msgs, chat.Message{Role: chat.RoleSystem, Content: systemPrompt})
	}
	for _, m := range history {
		role := chat.RoleUser
		if m.Role == memory.RoleAssistant {
			role = chat.RoleAssistant
		}
		msgs = append(msgs, chat.Message{Role: role, Content: m.Content})
	}
	return append(msgs, chat.Message{Role: chat.RoleUser, Content: message})
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
