package onboarding

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mudabbir/internal/config"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := NewModel(config.Default(), path)
	m.discover = func() []item {
		return []item{{title: "qwen2.5"}, {title: "llama3.2"}}
	}
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 60})
	return m, path
}

func TestWizardOllamaFlow(t *testing.T) {
	m, path := newTestModel(t)

	m, _ = step(t, m, key("down"), key("enter"))
	assert.Equal(t, stateProvider, m.state)
	assert.Equal(t, "Mudabbir_native", m.Config().Agent.Backend)

	m, _ = step(t, m, key("enter"))
	require.Equal(t, stateModel, m.state)
	assert.Equal(t, "ollama", m.Config().LLM.Provider)

	m, _ = step(t, m, key("enter"))
	require.Equal(t, stateTelegram, m.state)
	assert.Equal(t, "qwen2.5", m.Config().LLM.Model)

	m, _ = step(t, m, key("123:abc"), key("enter"))
	require.Equal(t, stateMiddlewares, m.state)
	assert.Equal(t, "123:abc", m.Config().Telegram.Token)

	m, cmd := step(t, m, key(" "), key("enter"))
	require.Equal(t, stateDone, m.state)
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())
	assert.True(t, m.saved)
	assert.NoError(t, m.err)
	assert.Contains(t, m.View(), "Saved configuration")

	saved, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Mudabbir_native", saved.Agent.Backend)
	assert.Equal(t, "qwen2.5", saved.LLM.Model)
	assert.Equal(t, "123:abc", saved.Telegram.Token)
	assert.Equal(t, []string{"fastpath"}, saved.Middlewares.Disabled)
}

func TestWizardCloudProviderAsksForKey(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = step(t, m, key("enter"), key("down"), key("enter"))
	require.Equal(t, stateAPIKey, m.state)
	assert.Equal(t, "openai", m.Config().LLM.Provider)
	assert.Contains(t, m.View(), "OpenAI API key")

	// q is text here, not a quit key.
	m, _ = step(t, m, key("sk-q"), key("enter"))
	require.Equal(t, stateModel, m.state)
	assert.Equal(t, "sk-q", m.Config().LLM.APIKey)

	m, _ = step(t, m, key("enter"))
	assert.Equal(t, "gpt-4o", m.Config().LLM.Model)
}

func TestWizardQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := step(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestWizardMiddlewareDefaultsFromConfig(t *testing.T) {
	base := config.Default()
	base.Middlewares.Disabled = []string{"token_budget"}
	m := NewModel(base, filepath.Join(t.TempDir(), "c.yaml"))
	for _, tg := range m.middlewares {
		assert.Equal(t, tg.id != "token_budget", tg.enabled, tg.id)
	}
}

func TestOllamaModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:latest"},{"name":"mistral"}]}`))
	}))
	defer srv.Close()

	got := ollamaModels(srv.URL)
	require.Len(t, got, 2)
	assert.Equal(t, "llama3.2:latest", got[0].title)
	assert.Equal(t, "mistral", got[1].title)

	srv.Close()
	fallback := ollamaModels(srv.URL)
	require.Len(t, fallback, 1)
	assert.Equal(t, "llama3.2", fallback[0].title)
}
