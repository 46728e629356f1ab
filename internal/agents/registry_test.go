package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mudabbir/internal/config"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"claude":          "claude_agent_sdk",
		"  Claude_Code ":  "claude_agent_sdk",
		"default":         "claude_agent_sdk",
		"NATIVE":          "Mudabbir_native",
		"mudabbir_native": "Mudabbir_native",
		"oi":              "open_interpreter",
		"gemini_cli":      "open_interpreter",
		"openai":          "openai_agents",
		"codex":           "codex_cli",
		"copilot":         "copilot_sdk",
		"opencode":        "opencode",
		"google_adk":      "google_adk",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in, ""), in)
	}
	assert.Equal(t, "fallback", NormalizeName("hal9000", "fallback"))
	assert.Equal(t, "fallback", NormalizeName("", "fallback"))
}

func TestRegistryListing(t *testing.T) {
	names := Names()
	require.Len(t, names, 8)
	assert.Equal(t, DefaultBackend, names[0])

	infos := Infos()
	require.Len(t, infos, len(names))
	for i, info := range infos {
		assert.Equal(t, names[i], info.Name)
		assert.NotEmpty(t, info.DisplayName, info.Name)
		assert.NotEmpty(t, info.InstallHint, info.Name)
	}

	info, err := Lookup("oi")
	require.NoError(t, err)
	assert.Equal(t, "open_interpreter", info.Name)
	assert.True(t, info.Beta)

	_, err = Lookup("hal9000")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "none", Capability(0).String())
	assert.Equal(t, "streaming, tools", (Streaming | Tools).String())
	all := Streaming | Tools | MCP | MultiTurn | CustomSystemPrompt
	assert.Equal(t, "streaming, tools, mcp, multi turn, custom system prompt", all.String())
	assert.True(t, all.Has(MCP|Tools))
	assert.False(t, (Streaming | Tools).Has(MCP))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	_, err := Create(ctx, "hal9000", Deps{})
	assert.ErrorIs(t, err, ErrUnknownBackend)

	b, err := Create(ctx, "codex", Deps{})
	require.NoError(t, err)
	codex, ok := b.(*codexBackend)
	require.True(t, ok)
	assert.Equal(t, "codex", codex.binary)
	assert.Equal(t, defaultCodexModel, codex.model)
	assert.Equal(t, "codex_cli", b.Info().Name)

	cfg := config.Default()
	cfg.Codex.Binary = "/opt/codex/bin/codex"
	cfg.Codex.Model = "o4-mini"
	b, err = Create(ctx, "codex_cli", Deps{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "/opt/codex/bin/codex", b.(*codexBackend).binary)
	assert.Equal(t, "o4-mini", b.(*codexBackend).model)

	b, err = Create(ctx, "copilot", Deps{})
	require.NoError(t, err)
	cli := b.(*cliBackend)
	assert.Equal(t, "copilot", cli.binary)
	assert.Equal(t, []string{"--allow-all-tools", "-p"}, cli.args)

	cfg = config.Default()
	cfg.LLM.Provider = "openai_compatible"
	cfg.LLM.BaseURL = ""
	_, err = Create(ctx, "native", Deps{Config: cfg})
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
