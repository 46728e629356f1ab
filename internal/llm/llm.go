// Package llm adapts langchaingo chat models to chat.Adapter.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"

	"mudabbir/internal/chat"
	"mudabbir/internal/logging"
	"mudabbir/internal/middleware"
)

type Provider string

const (
	ProviderOllama           Provider = "ollama"
	ProviderOpenAI           Provider = "openai"
	ProviderOpenAICompatible Provider = "openai_compatible"
	ProviderAnthropic        Provider = "anthropic"
	ProviderGemini           Provider = "gemini"
)

// Config selects a provider. An empty APIKey falls back to the provider's
// conventional environment variable.
type Config struct {
	Provider Provider
	Model    string
	BaseURL  string
	APIKey   string
}

func NewAdapter(ctx context.Context, cfg Config) (chat.Adapter, error) {
	var (
		client llms.Model
		model  = cfg.Model
		err    error
	)
	switch Provider(strings.ToLower(string(cfg.Provider))) {
	case ProviderOllama, "":
		client, err = newOllama(cfg)
	case ProviderOpenAI:
		client, err = newOpenAI(cfg)
	case ProviderOpenAICompatible:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("provider %s needs a base URL", cfg.Provider)
		}
		client, err = newOpenAI(cfg)
	case ProviderAnthropic:
		client, err = newAnthropic(cfg)
	case ProviderGemini:
		client, model, err = newGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%s client: %w", cfg.Provider, err)
	}
	return &adapter{
		provider: cfg.Provider,
		client:   client,
		model:    model,
		log:      logging.For("llm"),
	}, nil
}

type adapter struct {
	provider Provider
	client   llms.Model
	model    string
	log      zerolog.Logger
}

func (a *adapter) ReplyStream(ctx context.Context, history []chat.Message, params *middleware.RunParams, streamFn func(string)) (string, []chat.ToolCall, error) {
	resp, err := a.client.GenerateContent(ctx, convertHistory(history), callOptions(a.model, params, streamFn)...)
	if err != nil {
		return "", nil, err
	}
	if len(resp.Choices) == 0 {
		return "", nil, fmt.Errorf("empty response from %s model", a.provider)
	}

	choice := resp.Choices[0]
	toolCalls := make([]chat.ToolCall, 0, len(choice.ToolCalls))
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		toolCalls = append(toolCalls, chat.ToolCall{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}
	if len(toolCalls) > 0 {
		a.log.Debug().Str("provider", string(a.provider)).Int("tool_calls", len(toolCalls)).Msg("model requested tools")
	}
	return choice.Content, toolCalls, nil
}

func callOptions(model string, params *middleware.RunParams, streamFn func(string)) []llms.CallOption {
	opts := make([]llms.CallOption, 0, 8)
	if model != "" {
		opts = append(opts, llms.WithModel(model))
	}
	if params != nil {
		if params.Model != "" {
			opts = append(opts, llms.WithModel(params.Model))
		}
		if params.Temperature != 0 {
			opts = append(opts, llms.WithTemperature(params.Temperature))
		}
		if params.MaxTokens != 0 {
			opts = append(opts, llms.WithMaxTokens(params.MaxTokens))
		}
		if len(params.Tools) > 0 {
			opts = append(opts, llms.WithTools(params.Tools))
		}
	}
	if streamFn != nil {
		opts = append(opts, llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			streamFn(string(chunk))
			return nil
		}))
	}
	return opts
}

func convertHistory(history []chat.Message) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case chat.RoleUser:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, m.Content))
		case chat.RoleAssistant:
			var parts []llms.ContentPart
			if m.Content != "" {
				parts = append(parts, llms.TextPart(m.Content))
			}
			for _, tc := range m.ToolCalls {
				parts = append(parts, llms.ToolCall{
					ID:   tc.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			// Providers reject an assistant turn with no parts.
			if len(parts) == 0 {
				parts = append(parts, llms.TextPart(" "))
			}
			messages = append(messages, llms.MessageContent{Role: llms.ChatMessageTypeAI, Parts: parts})
		case chat.RoleSystem:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, m.Content))
		case chat.RoleTool:
			messages = append(messages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: m.ToolCallID,
						Name:       m.ToolName,
						Content:    m.Content,
					},
				},
			})
		}
	}
	return messages
}
