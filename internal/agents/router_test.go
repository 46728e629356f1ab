package agents

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mudabbir/internal/config"
	"mudabbir/internal/memory"
)

// fakeBackend runs fn on a goroutine and closes the channel when it returns.
type fakeBackend struct {
	info Info
	fn   func(ctx context.Context, out chan<- Event, message string, history []memory.Message)
}

func (f *fakeBackend) Info() Info { return f.info }

func (f *fakeBackend) Run(ctx context.Context, message, _ string, history []memory.Message) (<-chan Event, error) {
	out := make(chan Event, 8)
	go func() {
		defer close(out)
		f.fn(ctx, out, message, history)
	}()
	return out, nil
}

func replying(name string, chunks ...string) *fakeBackend {
	info, _ := Lookup(name)
	return &fakeBackend{info: info, fn: func(ctx context.Context, out chan<- Event, _ string, _ []memory.Message) {
		for _, c := range chunks {
			send(ctx, out, Event{Kind: EventMessage, Content: c})
		}
		send(ctx, out, Event{Kind: EventDone})
	}}
}

type creator struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (c *creator) create(_ context.Context, name string, _ Deps) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, name)
	if c.fail[name] {
		return nil, errors.New(name + " is not installed")
	}
	return replying(name, "from "+name), nil
}

func newTestRouter(cfg *config.Config, c *creator) *Router {
	r := NewRouter(cfg, nil)
	r.create = c.create
	return r
}

func TestRouterBuildsOnce(t *testing.T) {
	cfg := config.Default()
	cfg.Agent.Backend = "codex"
	c := &creator{}
	r := newTestRouter(cfg, c)
	assert.Equal(t, "codex_cli", r.Info().Name)

	for i := 0; i < 2; i++ {
		events := drain(must(r.Run(context.Background(), "hi", "", nil)))
		assert.Equal(t, "from codex_cli", events[0].Content)
	}
	assert.Equal(t, []string{"codex_cli"}, c.calls)

	cfg2 := config.Default()
	cfg2.Agent.Backend = "opencode"
	r.Reset(cfg2)
	events := drain(must(r.Run(context.Background(), "hi", "", nil)))
	assert.Equal(t, "from opencode", events[0].Content)
	assert.Equal(t, []string{"codex_cli", "opencode"}, c.calls)
}

func TestRouterFallsBack(t *testing.T) {
	cfg := config.Default()
	c := &creator{fail: map[string]bool{"claude_agent_sdk": true}}
	r := newTestRouter(cfg, c)

	events := drain(must(r.Run(context.Background(), "hi", "", nil)))
	assert.Equal(t, "from Mudabbir_native", events[0].Content)
	assert.Equal(t, "Mudabbir_native", r.Info().Name)
	assert.Equal(t, []string{"claude_agent_sdk", "Mudabbir_native"}, c.calls)
}

func TestRouterNothingAvailable(t *testing.T) {
	cfg := config.Default()
	c := &creator{fail: map[string]bool{"claude_agent_sdk": true, "Mudabbir_native": true}}
	r := newTestRouter(cfg, c)

	events := drain(must(r.Run(context.Background(), "hi", "", nil)))
	require.Equal(t, []EventKind{EventError, EventDone}, kinds(events))
	assert.Contains(t, events[0].Content, "No agent backend is available: ")
	assert.Contains(t, events[0].Content, "claude_agent_sdk is not installed")
	assert.Contains(t, events[0].Content, "Mudabbir_native is not installed")

	cfg.Agent.FallbackBackend = "claude"
	r.Reset(cfg)
	events = drain(must(r.Run(context.Background(), "hi", "", nil)))
	assert.Equal(t, EventError, events[0].Kind)
	assert.Equal(t, []string{"claude_agent_sdk", "Mudabbir_native", "claude_agent_sdk"}, c.calls)
}

func TestRouterNormalizesUnknownName(t *testing.T) {
	cfg := config.Default()
	cfg.Agent.Backend = "hal9000"
	c := &creator{}
	r := newTestRouter(cfg, c)
	drain(must(r.Run(context.Background(), "hi", "", nil)))
	assert.Equal(t, []string{DefaultBackend}, c.calls)
}
