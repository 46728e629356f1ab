package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mudabbir/internal/config"
)

var (
	ErrUnknownBackend     = errors.New("unknown backend")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

const DefaultBackend = "claude_agent_sdk"

// Deps are the shared services a backend may use.
type Deps struct {
	Config *config.Config
	// Tools executes desktop actions for backends that can call tools. It may
	// be nil.
	Tools ToolExecutor
}

type factory func(ctx context.Context, info Info, deps Deps) (Backend, error)

type entry struct {
	info Info
	new  factory
}

var entries = []entry{
	{
		info: Info{
			Name:         "claude_agent_sdk",
			DisplayName:  "Claude SDK",
			Description:  "Anthropic Claude with tool calling and streaming.",
			Capabilities: Streaming | Tools | MCP | MultiTurn | CustomSystemPrompt,
			Aliases:      []string{"claude", "claude_sdk", "default", "claude_code"},
			InstallHint:  "set llm.api_key or ANTHROPIC_API_KEY",
		},
		new: llmFactory("anthropic"),
	},
	{
		info: Info{
			Name:         "Mudabbir_native",
			DisplayName:  "Mudabbir Native",
			Description:  "Native orchestrator on the configured LLM provider with first-party desktop tools.",
			Capabilities: Streaming | Tools | MultiTurn | CustomSystemPrompt,
			Aliases:      []string{"mudabbir", "native", "mudabbir_native"},
			InstallHint:  "run ollama locally or configure llm.provider",
		},
		new: llmFactory(""),
	},
	{
		info: Info{
			Name:         "open_interpreter",
			DisplayName:  "Open Interpreter",
			Description:  "Standalone Open Interpreter backend (experimental).",
			Capabilities: Streaming | Tools | MultiTurn | CustomSystemPrompt,
			Aliases:      []string{"oi", "gemini_cli"},
			InstallHint:  "pip install open-interpreter",
			Beta:         true,
		},
		new: cliFactory("interpreter", "--plain", "--auto_run", "--fast"),
	},
	{
		info: Info{
			Name:         "openai_agents",
			DisplayName:  "OpenAI Agents",
			Description:  "OpenAI chat models with function calling.",
			Capabilities: Streaming | Tools | MultiTurn | CustomSystemPrompt,
			Aliases:      []string{"openai"},
			InstallHint:  "set llm.api_key or OPENAI_API_KEY",
		},
		new: llmFactory("openai"),
	},
	{
		info: Info{
			Name:         "google_adk",
			DisplayName:  "Google ADK",
			Description:  "Google Gemini models with function calling.",
			Capabilities: Streaming | Tools | MultiTurn | CustomSystemPrompt,
			Aliases:      []string{"adk", "gemini"},
			InstallHint:  "set llm.api_key or GOOGLE_API_KEY",
		},
		new: llmFactory("gemini"),
	},
	{
		info: Info{
			Name:         "codex_cli",
			DisplayName:  "Codex CLI",
			Description:  "Codex CLI subprocess backend with JSON event parsing.",
			Capabilities: Streaming | Tools | MultiTurn | CustomSystemPrompt,
			Aliases:      []string{"codex"},
			InstallHint:  "npm install -g @openai/codex",
			Beta:         true,
		},
		new: newCodex,
	},
	{
		info: Info{
			Name:         "opencode",
			DisplayName:  "OpenCode",
			Description:  "OpenCode server backend via REST API.",
			Capabilities: Streaming | Tools | MultiTurn | CustomSystemPrompt,
			InstallHint:  "go install github.com/opencode-ai/opencode@latest && opencode --server",
			Beta:         true,
		},
		new: newOpenCode,
	},
	{
		info: Info{
			Name:         "copilot_sdk",
			DisplayName:  "Copilot",
			Description:  "GitHub Copilot CLI subprocess backend.",
			Capabilities: Streaming | Tools | MultiTurn,
			Aliases:      []string{"copilot"},
			InstallHint:  "npm install -g @github/copilot",
			Beta:         true,
		},
		new: cliFactory("copilot", "--allow-all-tools", "-p"),
	},
}

var lookup = func() map[string]int {
	m := make(map[string]int, len(entries)*3)
	for i, e := range entries {
		m[strings.ToLower(e.info.Name)] = i
		for _, a := range e.info.Aliases {
			m[strings.ToLower(a)] = i
		}
	}
	return m
}()

// NormalizeName maps a backend name or alias, in any case, to its canonical
// name. Unknown or empty names yield fallback.
func NormalizeName(name, fallback string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if i, ok := lookup[key]; ok && key != "" {
		return entries[i].info.Name
	}
	return fallback
}

// Names returns the canonical backend names in registry order.
func Names() []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.info.Name
	}
	return out
}

// Infos returns every backend's description in registry order.
func Infos() []Info {
	out := make([]Info, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// Lookup returns the description of a backend by name or alias.
func Lookup(name string) (Info, error) {
	canonical := NormalizeName(name, "")
	if canonical == "" {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return entries[lookup[strings.ToLower(canonical)]].info, nil
}

// Create builds the backend for a name or alias.
func Create(ctx context.Context, name string, deps Deps) (Backend, error) {
	canonical := NormalizeName(name, "")
	if canonical == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	if deps.Config == nil {
		deps.Config = config.Default()
	}
	e := entries[lookup[strings.ToLower(canonical)]]
	b, err := e.new(ctx, e.info, deps)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, canonical, err)
	}
	return b, nil
}
