package agents

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mudabbir/internal/bus"
	"mudabbir/internal/config"
	"mudabbir/internal/fastpath"
	"mudabbir/internal/logging"
	"mudabbir/internal/memory"
	"mudabbir/internal/middleware"
	mwfastpath "mudabbir/middlewares/fastpath"
)

type harness struct {
	bus   *bus.MessageBus
	store *memory.MemStore
	out   <-chan bus.OutboundMessage
	loop  *Loop
}

func newHarness(t *testing.T, backend Backend, cfg config.AgentConfig, opts ...LoopOption) *harness {
	t.Helper()
	b := bus.New(16)
	out, unsubscribe := b.SubscribeOutbound(bus.ChannelCLI)
	t.Cleanup(func() {
		unsubscribe()
		b.Close()
	})
	store := memory.NewMemStore()
	opts = append([]LoopOption{WithLoopLogger(logging.Nop())}, opts...)
	return &harness{bus: b, store: store, out: out, loop: NewLoop(b, store, backend, cfg, opts...)}
}

func cliMsg(chat, content string) bus.InboundMessage {
	return bus.InboundMessage{Channel: bus.ChannelCLI, ChatID: chat, SenderID: "user", Content: content}
}

// turnText reads one streamed turn and returns its text without the end marker.
func (h *harness) turnText(t *testing.T) string {
	t.Helper()
	var sb strings.Builder
	deadline := time.After(3 * time.Second)
	for {
		select {
		case m := <-h.out:
			if m.StreamEnd {
				return sb.String()
			}
			sb.WriteString(m.Content)
		case <-deadline:
			t.Fatal("turn did not finish")
		}
	}
}

// turns reads n interleaved turns and returns their text by chat.
func (h *harness) turns(t *testing.T, n int) map[string]string {
	t.Helper()
	texts := make(map[string]string)
	deadline := time.After(3 * time.Second)
	for n > 0 {
		select {
		case m := <-h.out:
			if m.StreamEnd {
				n--
				continue
			}
			texts[m.ChatID] += m.Content
		case <-deadline:
			t.Fatal("turns did not finish")
		}
	}
	return texts
}

func (h *harness) history(t *testing.T, key string) []string {
	t.Helper()
	msgs, err := h.store.History(context.Background(), key, 0)
	require.NoError(t, err)
	var out []string
	for _, m := range msgs {
		out = append(out, m.Role+": "+m.Content)
	}
	return out
}

type recordingBackend struct {
	*fakeBackend
	mu        sync.Mutex
	messages  []string
	histories [][]memory.Message
	resets    int
}

func (r *recordingBackend) Run(ctx context.Context, message, systemPrompt string, history []memory.Message) (<-chan Event, error) {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.histories = append(r.histories, history)
	r.mu.Unlock()
	return r.fakeBackend.Run(ctx, message, systemPrompt, history)
}

func (r *recordingBackend) Reset(*config.Config) {
	r.mu.Lock()
	r.resets++
	r.mu.Unlock()
}

func (r *recordingBackend) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func recording(fb *fakeBackend) *recordingBackend { return &recordingBackend{fakeBackend: fb} }

type staticCommands map[string]string

func (c staticCommands) Handle(_ context.Context, msg bus.InboundMessage) (string, bool, error) {
	reply, ok := c[msg.Content]
	if !ok {
		return "", false, nil
	}
	if reply == "!fail" {
		return "", true, errors.New("store offline")
	}
	return reply, true, nil
}

type funcMiddleware struct {
	id string
	fn func(e *middleware.Event) middleware.Decision
}

func (f funcMiddleware) ID() string    { return f.id }
func (f funcMiddleware) Priority() int { return 50 }
func (f funcMiddleware) OnEvent(_ context.Context, e *middleware.Event) (middleware.Decision, error) {
	return f.fn(e), nil
}

func TestLoopBackendTurn(t *testing.T) {
	backend := recording(replying("Mudabbir_native", "Hello ", "there."))
	h := newHarness(t, backend, config.AgentConfig{})
	sys, unsubscribe := h.bus.SubscribeSystem()
	defer unsubscribe()
	ctx := context.Background()

	h.loop.Process(ctx, cliMsg("local", "hi"))
	assert.Equal(t, "Hello there.", h.turnText(t))
	select {
	case ev := <-sys:
		assert.Equal(t, bus.EventThinking, ev.Type)
		assert.Equal(t, "cli:local", ev.Data["session_key"])
	default:
		t.Fatal("no thinking event")
	}

	h.loop.Process(ctx, cliMsg("local", "again"))
	h.turnText(t)

	assert.Equal(t, []string{"hi", "again"}, backend.Messages())
	assert.Empty(t, backend.histories[0])
	assert.Len(t, backend.histories[1], 2)
	assert.Equal(t, []string{"user: hi", "assistant: Hello there.", "user: again", "assistant: Hello there."}, h.history(t, "cli:local"))
}

func TestLoopCommands(t *testing.T) {
	backend := recording(replying("Mudabbir_native", "unused"))
	cmds := staticCommands{"/ping": "pong", "/broken": "!fail"}
	h := newHarness(t, backend, config.AgentConfig{}, WithCommands(cmds))
	ctx := context.Background()

	h.loop.Process(ctx, cliMsg("local", "/ping"))
	assert.Equal(t, "pong", h.turnText(t))
	h.loop.Process(ctx, cliMsg("local", "/broken"))
	assert.Equal(t, "Command failed: store offline", h.turnText(t))

	assert.Empty(t, backend.Messages())
	assert.Empty(t, h.history(t, "cli:local"))
}

func TestLoopFastpathIntercept(t *testing.T) {
	var actions []string
	exec := fastpath.ExecutorFunc(func(_ context.Context, action string, _ map[string]any) (string, error) {
		actions = append(actions, action)
		return `{"ok":true,"level_percent":37,"muted":false}`, nil
	})
	orch := fastpath.New(exec, fastpath.NewSessionStore(), fastpath.WithLogger(logging.Nop()))
	backend := recording(replying("Mudabbir_native", "unused"))
	h := newHarness(t, backend, config.AgentConfig{}, WithChain(middleware.NewChain(mwfastpath.New(orch))))

	h.loop.Process(context.Background(), cliMsg("local", "كم نسبة الصوت؟"))
	assert.Equal(t, "مستوى الصوت الحالي: 37%", h.turnText(t))
	assert.Equal(t, []string{"volume"}, actions)
	assert.Empty(t, backend.Messages())
	assert.Equal(t, []string{"user: كم نسبة الصوت؟", "assistant: مستوى الصوت الحالي: 37%"}, h.history(t, "cli:local"))
}

func TestLoopMiddlewareBlocksAndRewrites(t *testing.T) {
	backend := recording(replying("Mudabbir_native", "raw reply"))
	chain := middleware.NewChain(funcMiddleware{id: "policy", fn: func(e *middleware.Event) middleware.Decision {
		switch {
		case e.Name == middleware.EventBeforeAgentRun && strings.Contains(e.UserText, "secret"):
			return middleware.Decision{Cancel: true, Reason: "contains a secret"}
		case e.Name == middleware.EventBeforeAgentRun:
			text := strings.ToUpper(e.UserText)
			return middleware.Decision{ReplaceText: &text}
		case e.Name == middleware.EventAfterAgentReply:
			text := "polished reply"
			return middleware.Decision{ReplaceText: &text}
		}
		return middleware.Decision{}
	}})
	h := newHarness(t, backend, config.AgentConfig{}, WithChain(chain))
	ctx := context.Background()

	h.loop.Process(ctx, cliMsg("local", "my secret is 1234"))
	assert.Equal(t, "Your message was blocked: contains a secret", h.turnText(t))

	h.loop.Process(ctx, cliMsg("local", "hello"))
	assert.Equal(t, "raw reply", h.turnText(t))
	assert.Equal(t, []string{"HELLO"}, backend.Messages())
	assert.Equal(t, []string{"user: HELLO", "assistant: polished reply"}, h.history(t, "cli:local"))
}

func blocking(name string, before ...string) *fakeBackend {
	info, _ := Lookup(name)
	return &fakeBackend{info: info, fn: func(ctx context.Context, out chan<- Event, _ string, _ []memory.Message) {
		for _, c := range before {
			send(ctx, out, Event{Kind: EventMessage, Content: c})
		}
		<-ctx.Done()
	}}
}

func TestLoopFirstChunkTimeout(t *testing.T) {
	backend := recording(blocking("codex_cli"))
	h := newHarness(t, backend, config.AgentConfig{FirstChunkTimeout: 50 * time.Millisecond})

	h.loop.Process(context.Background(), cliMsg("local", "hi"))
	assert.Equal(t, timeoutMessage("codex_cli"), h.turnText(t))
	assert.Equal(t, 1, backend.resets)
	assert.Equal(t, []string{"user: hi"}, h.history(t, "cli:local"))
}

func TestLoopStreamTimeoutKeepsPartialReply(t *testing.T) {
	backend := recording(blocking("opencode", "partial"))
	h := newHarness(t, backend, config.AgentConfig{StreamChunkTimeout: 50 * time.Millisecond})

	h.loop.Process(context.Background(), cliMsg("local", "hi"))
	assert.Equal(t, "partial"+timeoutMessage("opencode"), h.turnText(t))
	assert.Equal(t, []string{"user: hi", "assistant: partial"}, h.history(t, "cli:local"))
}

func TestLoopBackendErrorEvent(t *testing.T) {
	info, _ := Lookup("codex_cli")
	backend := &fakeBackend{info: info, fn: func(ctx context.Context, out chan<- Event, _ string, _ []memory.Message) {
		fail(ctx, out, "Codex CLI exited with code 1")
	}}
	h := newHarness(t, backend, config.AgentConfig{})

	h.loop.Process(context.Background(), cliMsg("local", "hi"))
	assert.Equal(t, "Codex CLI exited with code 1", h.turnText(t))
	assert.Equal(t, []string{"user: hi"}, h.history(t, "cli:local"))
}

func TestLoopCancelSession(t *testing.T) {
	started := make(chan struct{})
	info, _ := Lookup("opencode")
	backend := &fakeBackend{info: info, fn: func(ctx context.Context, _ chan<- Event, _ string, _ []memory.Message) {
		close(started)
		<-ctx.Done()
	}}
	h := newHarness(t, backend, config.AgentConfig{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.loop.Process(context.Background(), cliMsg("local", "long task"))
	}()
	<-started
	assert.True(t, h.loop.CancelSession("cli:local"))
	assert.Equal(t, "", h.turnText(t))
	<-done
	assert.False(t, h.loop.CancelSession("cli:local"))
}

func TestLoopRunKeepsSessionOrder(t *testing.T) {
	info, _ := Lookup("Mudabbir_native")
	backend := recording(&fakeBackend{info: info, fn: func(ctx context.Context, out chan<- Event, message string, _ []memory.Message) {
		if message == "one" {
			select {
			case <-time.After(50 * time.Millisecond):
			case <-ctx.Done():
				return
			}
		}
		send(ctx, out, Event{Kind: EventMessage, Content: "re: " + message})
		send(ctx, out, Event{Kind: EventDone})
	}})
	h := newHarness(t, backend, config.AgentConfig{MaxConcurrent: 4})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- h.loop.Run(ctx) }()

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, h.bus.PublishInbound(ctx, cliMsg("local", text)))
	}
	for _, want := range []string{"re: one", "re: two", "re: three"} {
		assert.Equal(t, want, h.turnText(t))
	}
	assert.Equal(t, []string{"one", "two", "three"}, backend.Messages())

	cancel()
	require.NoError(t, <-errc)
}

func TestLoopRunsChatsConcurrently(t *testing.T) {
	otherStarted := make(chan struct{})
	info, _ := Lookup("Mudabbir_native")
	backend := &fakeBackend{info: info, fn: func(ctx context.Context, out chan<- Event, message string, _ []memory.Message) {
		if message == "first" {
			select {
			case <-otherStarted:
			case <-time.After(2 * time.Second):
				send(ctx, out, Event{Kind: EventMessage, Content: "serialized"})
			}
		} else {
			close(otherStarted)
		}
		send(ctx, out, Event{Kind: EventMessage, Content: "ok"})
		send(ctx, out, Event{Kind: EventDone})
	}}
	h := newHarness(t, backend, config.AgentConfig{MaxConcurrent: 2})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); h.loop.Process(context.Background(), cliMsg("a", "first")) }()
	go func() { defer wg.Done(); h.loop.Process(context.Background(), cliMsg("b", "second")) }()
	wg.Wait()

	assert.Equal(t, map[string]string{"a": "ok", "b": "ok"}, h.turns(t, 2))
}
