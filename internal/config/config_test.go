package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "claude_agent_sdk", cfg.Agent.Backend)
	assert.Equal(t, 90*time.Second, cfg.Agent.FirstChunkTimeout)
	assert.Equal(t, 120*time.Second, cfg.Agent.StreamChunkTimeout)
	assert.Equal(t, 5, cfg.Agent.MaxConcurrent)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
agent:
  backend: codex_cli
  first_chunk_timeout: 30s
llm:
  provider: openai
  model: gpt-4o-mini
middlewares:
  disabled: [token_budget]
`), 0o600))

	t.Setenv("MUDABBIR_LLM_MODEL", "gpt-4o")
	t.Setenv("MUDABBIR_TELEGRAM_ALLOWED", "12, 34,x")
	t.Setenv("MUDABBIR_MAX_CONCURRENT", "-1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "codex_cli", cfg.Agent.Backend)
	assert.Equal(t, 30*time.Second, cfg.Agent.FirstChunkTimeout)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, []string{"token_budget"}, cfg.Middlewares.Disabled)
	assert.Equal(t, []int64{12, 34}, cfg.Telegram.AllowedChatIDs)
	assert.Equal(t, 5, cfg.Agent.MaxConcurrent)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agent: [oops"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Agent.Backend = "opencode"
	cfg.Telegram.Token = "123:abc"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "opencode", got.Agent.Backend)
	assert.Equal(t, "123:abc", got.Telegram.Token)
	assert.Equal(t, cfg.Agent.StreamChunkTimeout, got.Agent.StreamChunkTimeout)
}

func TestProviderAPIKey(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "anthropic"
	t.Setenv("ANTHROPIC_API_KEY", "from-env")
	assert.Equal(t, "from-env", cfg.ProviderAPIKey())
	cfg.LLM.APIKey = "explicit"
	assert.Equal(t, "explicit", cfg.ProviderAPIKey())
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agent:\n  backend: codex_cli\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var backend atomic.Value
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zerolog.Nop(), func(c *Config) { backend.Store(c.Agent.Backend) })
	}()

	require.Eventually(t, func() bool {
		// Rewrite until the watcher is registered and picks the change up.
		_ = os.WriteFile(path, []byte("agent:\n  backend: opencode\n"), 0o600)
		v, _ := backend.Load().(string)
		return v == "opencode"
	}, 5*time.Second, 400*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
