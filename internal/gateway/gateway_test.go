package gateway

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mudabbir/internal/agents"
	"mudabbir/internal/bus"
	"mudabbir/internal/config"
	"mudabbir/internal/memory"
)

type echoBackend struct{}

func (echoBackend) Info() agents.Info {
	return agents.Info{Name: "echo", DisplayName: "Echo"}
}

func (echoBackend) Run(_ context.Context, message, _ string, _ []memory.Message) (<-chan agents.Event, error) {
	out := make(chan agents.Event, 4)
	out <- agents.Event{Kind: agents.EventToolUse, Content: "lookup", Metadata: map[string]any{"name": "system_info"}}
	out <- agents.Event{Kind: agents.EventMessage, Content: "echo: "}
	out <- agents.Event{Kind: agents.EventMessage, Content: message}
	out <- agents.Event{Kind: agents.EventDone}
	close(out)
	return out, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Memory.Driver = "memory"
	cfg.Metrics.Addr = ""
	cfg.WebSocket.Addr = ""
	cfg.Telegram.Token = ""
	cfg.Desktop.DryRun = true
	cfg.Middlewares.DebugLog = filepath.Join(t.TempDir(), "debug.jsonl")
	return cfg
}

func openTest(t *testing.T, cfg *config.Config) *Gateway {
	t.Helper()
	g, err := Open("", WithConfig(cfg), WithBackend(echoBackend{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func TestAskStreamsReply(t *testing.T) {
	g := openTest(t, testConfig(t))

	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, g.Ask(ctx, "tell me a story", &out))

	assert.Contains(t, out.String(), "system_info")
	assert.Contains(t, out.String(), "echo: tell me a story")

	history, err := g.Store.History(ctx, "cli:local", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "tell me a story", history[0].Content)
	assert.Equal(t, "echo: tell me a story", history[1].Content)
}

func TestAskRejectsEmpty(t *testing.T) {
	g := openTest(t, testConfig(t))
	assert.Error(t, g.Ask(context.Background(), "   ", &bytes.Buffer{}))
}

func TestAskFastpath(t *testing.T) {
	g := openTest(t, testConfig(t))

	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, g.Ask(ctx, "shutdown the pc now", &out))
	assert.NotContains(t, out.String(), "echo:")
}

func TestChatSession(t *testing.T) {
	g := openTest(t, testConfig(t))

	in := strings.NewReader("/help\n\nsummarize my notes\n/exit\nnever sent\n")
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, g.Chat(ctx, in, &out))

	got := out.String()
	assert.Contains(t, got, "Mudabbir Commands")
	assert.Contains(t, got, "echo: summarize my notes")
	assert.NotContains(t, got, "never sent")
}

func TestChatEndsAtEOF(t *testing.T) {
	g := openTest(t, testConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, g.Chat(ctx, strings.NewReader(""), &bytes.Buffer{}))
}

func TestConfigChangeResetsRouter(t *testing.T) {
	g := openTest(t, testConfig(t))
	assert.Equal(t, "claude_agent_sdk", g.Router.Info().Name)

	require.NoError(t, g.Live.Update(func(c *config.Config) { c.Agent.Backend = "codex" }))
	assert.Equal(t, "codex_cli", g.Router.Info().Name)
}

func TestOpenUnknownMemoryDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Memory.Driver = "redis"
	_, err := Open("", WithConfig(cfg))
	assert.ErrorContains(t, err, "open memory")
}

func TestOpenLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := testConfig(t)
	cfg.LLM.Model = "qwen2.5"
	require.NoError(t, cfg.Save(path))

	g, err := Open(path)
	require.NoError(t, err)
	defer g.Close()
	assert.Equal(t, "qwen2.5", g.Live.Get().LLM.Model)
	assert.Equal(t, path, g.Live.Path)
}

func TestServe(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Addr = "127.0.0.1:0"
	g := openTest(t, cfg)

	outbound, unsub := g.Bus.SubscribeOutbound(bus.ChannelCLI)
	defer unsub()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Serve(ctx) }()

	msg := bus.InboundMessage{ID: "m1", Channel: bus.ChannelCLI, ChatID: "x", Content: "tell me a story"}
	require.NoError(t, g.Bus.PublishInbound(ctx, msg))

	var text strings.Builder
	deadline := time.After(5 * time.Second)
recv:
	for {
		select {
		case o := <-outbound:
			if o.StreamEnd {
				break recv
			}
			text.WriteString(o.Content)
		case <-deadline:
			t.Fatal("no reply")
		}
	}
	assert.Equal(t, "echo: tell me a story", text.String())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not stop")
	}
}

func TestServeHTTPStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- serveHTTP(ctx, srv) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownGrace + time.Second):
		t.Fatal("server did not stop")
	}
}
