package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"mudabbir/internal/bus"
	"mudabbir/internal/config"
	"mudabbir/internal/logging"
	"mudabbir/internal/memory"
	"mudabbir/internal/metrics"
	"mudabbir/internal/middleware"
)

const (
	DefaultFirstChunkTimeout  = 90 * time.Second
	DefaultStreamChunkTimeout = 120 * time.Second
	defaultHistoryLimit       = 20
	publishGrace              = 5 * time.Second
)

// Commands answers slash commands. handled is false for ordinary messages.
type Commands interface {
	Handle(ctx context.Context, msg bus.InboundMessage) (reply string, handled bool, err error)
}

type LoopOption func(*Loop)

func WithChain(c *middleware.Chain) LoopOption { return func(l *Loop) { l.chain = c } }

func WithCommands(c Commands) LoopOption { return func(l *Loop) { l.commands = c } }

func WithLoopLogger(log zerolog.Logger) LoopOption { return func(l *Loop) { l.log = log } }

// Loop consumes inbound messages and answers them: slash commands first, then
// the middleware chain (where the fast path lives), then the agent backend.
// Turns run concurrently up to MaxConcurrent; turns of one session run in
// arrival order.
type Loop struct {
	bus      *bus.MessageBus
	store    memory.Store
	backend  Backend
	chain    *middleware.Chain
	commands Commands
	cfg      config.AgentConfig
	sem      *semaphore.Weighted
	log      zerolog.Logger

	turnsMu sync.Mutex
	turns   map[string]chan struct{}

	flightMu sync.Mutex
	flights  map[string]map[uint64]context.CancelFunc
	nextID   uint64
}

// turn is a reserved place in a chat's queue. It may start once prev is
// closed; closing done lets the next turn start.
type turn struct {
	prev <-chan struct{}
	done chan struct{}
}

func NewLoop(b *bus.MessageBus, store memory.Store, backend Backend, cfg config.AgentConfig, opts ...LoopOption) *Loop {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 5
	}
	if cfg.FirstChunkTimeout <= 0 {
		cfg.FirstChunkTimeout = DefaultFirstChunkTimeout
	}
	if cfg.StreamChunkTimeout <= 0 {
		cfg.StreamChunkTimeout = DefaultStreamChunkTimeout
	}
	l := &Loop{
		bus:     b,
		store:   store,
		backend: backend,
		cfg:     cfg,
		sem:     semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		log:     logging.For("loop"),
		turns:   make(map[string]chan struct{}),
		flights: make(map[string]map[uint64]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run processes inbound messages until ctx is done or the bus closes, then
// waits for in-flight turns.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info().Str("backend", l.backend.Info().Name).Int("max_concurrent", l.cfg.MaxConcurrent).Msg("agent loop started")
	defer l.log.Info().Msg("agent loop stopped")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			msg, err := l.bus.ConsumeInbound(gctx)
			if err != nil {
				if errors.Is(err, bus.ErrClosed) || gctx.Err() != nil {
					return nil
				}
				return err
			}
			t := l.reserve(msg.SessionKey())
			g.Go(func() error {
				l.process(gctx, msg, t)
				return nil
			})
		}
	})
	return g.Wait()
}

// CancelSession cancels every running or queued turn of the chat with the
// given base session key. It reports whether anything was cancelled.
func (l *Loop) CancelSession(baseKey string) bool {
	l.flightMu.Lock()
	defer l.flightMu.Unlock()
	cancels := l.flights[baseKey]
	for _, cancel := range cancels {
		cancel()
	}
	if len(cancels) > 0 {
		l.log.Info().Str("session", baseKey).Int("turns", len(cancels)).Msg("cancelled in-flight turns")
	}
	return len(cancels) > 0
}

// Process answers one message under the concurrency limits, after any turn
// of the same chat that is already queued.
func (l *Loop) Process(ctx context.Context, msg bus.InboundMessage) {
	l.process(ctx, msg, l.reserve(msg.SessionKey()))
}

func (l *Loop) process(ctx context.Context, msg bus.InboundMessage, t turn) {
	base := msg.SessionKey()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	id := l.track(base, cancel)
	defer l.untrack(base, id)

	if !l.wait(ctx, base, t) {
		return
	}
	defer l.release(base, t)

	if err := l.sem.Acquire(ctx, 1); err != nil {
		return
	}
	defer l.sem.Release(1)
	metrics.SessionStarted()
	defer metrics.SessionFinished()

	// Resolved only now so a preceding /new or /resume is honoured.
	key, err := l.store.ResolveSessionKey(ctx, base)
	if err != nil {
		l.log.Warn().Err(err).Str("session", base).Msg("resolve session key")
		key = base
	}
	l.log.Debug().Str("session", key).Str("channel", msg.Channel).Msg("processing message")
	l.handle(ctx, msg, key)
}

func (l *Loop) handle(ctx context.Context, msg bus.InboundMessage, key string) {
	if l.commands != nil {
		reply, handled, err := l.commands.Handle(ctx, msg)
		if handled {
			if err != nil {
				l.log.Warn().Err(err).Str("session", key).Msg("command failed")
				reply = "Command failed: " + err.Error()
			}
			l.finish(ctx, msg, reply)
			return
		}
	}

	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return
	}

	info := l.backend.Info()
	ev := &middleware.Event{
		Name:     middleware.EventBeforeAgentRun,
		UserText: text,
		Params:   &middleware.RunParams{Backend: info.Name, SystemPrompt: l.cfg.SystemPrompt},
		Context:  make(map[string]any, len(msg.Metadata)+2),
	}
	for k, v := range msg.Metadata {
		ev.Context[k] = v
	}
	ev.Context[middleware.CtxSessionKey] = key
	ev.Context[middleware.CtxChannel] = msg.Channel

	results, err := l.chain.Dispatch(ctx, ev)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		l.log.Error().Err(err).Str("session", key).Msg("middleware dispatch failed")
		l.finish(ctx, msg, "An error occurred: "+err.Error())
		return
	}
	if reply, ok := middleware.Intercepted(results); ok {
		if reply = strings.TrimSpace(reply); reply == "" {
			reply = "Done."
		}
		l.remember(ctx, key, memory.RoleUser, text)
		l.publish(ctx, msg.Chunk(reply))
		l.publish(ctx, msg.StreamEnd())
		l.remember(ctx, key, memory.RoleAssistant, reply)
		return
	}
	if reason, blocked := blockedBy(results); blocked {
		l.log.Info().Str("session", key).Str("reason", reason).Msg("turn blocked by middleware")
		l.finish(ctx, msg, "Your message was blocked: "+reason)
		return
	}

	history, err := l.store.History(ctx, key, defaultHistoryLimit)
	if err != nil {
		l.log.Warn().Err(err).Str("session", key).Msg("load history")
	}
	l.remember(ctx, key, memory.RoleUser, ev.UserText)
	l.bus.PublishSystem(bus.SystemEvent{Type: bus.EventThinking, Data: map[string]any{"session_key": key}})

	l.runBackend(ctx, msg, key, ev.UserText, ev.Params, history)
}

func (l *Loop) runBackend(ctx context.Context, msg bus.InboundMessage, key, text string, params *middleware.RunParams, history []memory.Message) {
	info := l.backend.Info()
	start := time.Now()
	outcome := "ok"
	defer func() { metrics.RecordBackendRun(info.Name, outcome) }()

	runCtx, cancel := context.WithCancel(WithRunParams(WithSessionKey(ctx, key), params))
	defer cancel()

	systemPrompt := l.cfg.SystemPrompt
	if params != nil {
		systemPrompt = params.SystemPrompt
	}
	events, err := l.backend.Run(runCtx, text, systemPrompt, history)
	if err != nil {
		outcome = "error"
		l.log.Error().Err(err).Str("backend", info.Name).Msg("backend run failed")
		l.finish(ctx, msg, "An error occurred: "+err.Error())
		return
	}

	var reply strings.Builder
	timer := time.NewTimer(l.cfg.FirstChunkTimeout)
	defer timer.Stop()
	first := true

recv:
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				break recv
			}
			if first {
				metrics.ObserveFirstChunk(info.Name, time.Since(start))
				first = false
			}
			timer.Reset(l.cfg.StreamChunkTimeout)

			switch ev.Kind {
			case EventMessage:
				if ev.Content == "" {
					continue
				}
				reply.WriteString(ev.Content)
				l.publish(ctx, msg.Chunk(ev.Content))
			case EventError:
				outcome = "error"
				l.log.Warn().Str("backend", info.Name).Str("error", ev.Content).Msg("backend reported an error")
				l.bus.PublishSystem(bus.SystemEvent{Type: bus.EventError, Data: map[string]any{"session_key": key, "message": ev.Content}})
				l.publish(ctx, msg.Chunk(ev.Content))
			case EventToolUse:
				l.bus.PublishSystem(bus.SystemEvent{Type: bus.EventToolStart, Data: eventData(key, ev)})
			case EventToolResult:
				l.bus.PublishSystem(bus.SystemEvent{Type: bus.EventToolResult, Data: eventData(key, ev)})
			case EventThinking:
				l.bus.PublishSystem(bus.SystemEvent{Type: bus.EventThinking, Data: eventData(key, ev)})
			case EventStatus:
				l.bus.PublishSystem(bus.SystemEvent{Type: bus.EventStatus, Data: eventData(key, ev)})
			case EventDone:
				break recv
			}
		case <-timer.C:
			phase := "stream"
			limit := l.cfg.StreamChunkTimeout
			if first {
				phase, limit = "first", l.cfg.FirstChunkTimeout
			}
			outcome = "timeout"
			cancel()
			l.log.Error().Str("session", key).Str("backend", info.Name).Str("phase", phase).Dur("timeout", limit).Msg("backend timed out")
			if r, ok := l.backend.(interface{ Reset(*config.Config) }); ok {
				r.Reset(nil)
			}
			l.publish(ctx, msg.Chunk(timeoutMessage(info.Name)))
			break recv
		case <-ctx.Done():
			outcome = "canceled"
			l.log.Info().Str("session", key).Msg("turn cancelled")
			break recv
		}
	}

	text = reply.String()
	if text != "" && ctx.Err() == nil {
		after := &middleware.Event{
			Name:      middleware.EventAfterAgentReply,
			UserText:  text,
			ReplyText: text,
			Context:   map[string]any{middleware.CtxSessionKey: key, middleware.CtxChannel: msg.Channel},
		}
		if _, err := l.chain.Dispatch(ctx, after); err != nil {
			l.log.Warn().Err(err).Msg("after-reply middleware failed")
		} else {
			text = after.ReplyText
		}
		l.remember(ctx, key, memory.RoleAssistant, text)
	}
	l.publish(context.WithoutCancel(ctx), msg.StreamEnd())
}

// finish sends a complete reply followed by the end-of-stream marker.
func (l *Loop) finish(ctx context.Context, msg bus.InboundMessage, text string) {
	l.publish(ctx, msg.Reply(text))
	l.publish(ctx, msg.StreamEnd())
}

func (l *Loop) publish(ctx context.Context, out bus.OutboundMessage) {
	ctx, cancel := context.WithTimeout(ctx, publishGrace)
	defer cancel()
	if err := l.bus.PublishOutbound(ctx, out); err != nil && !errors.Is(err, bus.ErrClosed) {
		l.log.Warn().Err(err).Str("channel", out.Channel).Str("chat_id", out.ChatID).Msg("outbound message dropped")
	}
}

func (l *Loop) remember(ctx context.Context, key, role, content string) {
	if err := l.store.AddMessage(ctx, key, role, content); err != nil {
		l.log.Warn().Err(err).Str("session", key).Str("role", role).Msg("store message")
	}
}

func (l *Loop) track(key string, cancel context.CancelFunc) uint64 {
	l.flightMu.Lock()
	defer l.flightMu.Unlock()
	l.nextID++
	if l.flights[key] == nil {
		l.flights[key] = make(map[uint64]context.CancelFunc)
	}
	l.flights[key][l.nextID] = cancel
	return l.nextID
}

func (l *Loop) untrack(key string, id uint64) {
	l.flightMu.Lock()
	defer l.flightMu.Unlock()
	delete(l.flights[key], id)
	if len(l.flights[key]) == 0 {
		delete(l.flights, key)
	}
}

// reserve queues a turn for the chat behind every turn reserved before it.
func (l *Loop) reserve(base string) turn {
	l.turnsMu.Lock()
	defer l.turnsMu.Unlock()
	t := turn{prev: l.turns[base], done: make(chan struct{})}
	l.turns[base] = t.done
	return t
}

// wait blocks until t may run. A turn cancelled while queued still hands
// its place on only after its predecessor finishes.
func (l *Loop) wait(ctx context.Context, base string, t turn) bool {
	if t.prev == nil {
		return true
	}
	select {
	case <-t.prev:
		return true
	case <-ctx.Done():
		go func() {
			<-t.prev
			l.release(base, t)
		}()
		return false
	}
}

func (l *Loop) release(base string, t turn) {
	close(t.done)
	l.turnsMu.Lock()
	if l.turns[base] == t.done {
		delete(l.turns, base)
	}
	l.turnsMu.Unlock()
}

func blockedBy(results []middleware.DecisionResult) (string, bool) {
	for _, r := range results {
		if r.Decision.Cancel {
			reason := r.Decision.Reason
			if reason == "" {
				reason = r.MiddlewareID
			}
			return reason, true
		}
	}
	return "", false
}

func eventData(key string, ev Event) map[string]any {
	data := map[string]any{"session_key": key, "content": ev.Content}
	for k, v := range ev.Metadata {
		data[k] = v
	}
	return data
}

func timeoutMessage(backend string) string {
	var hints []string
	switch backend {
	case "claude_agent_sdk":
		hints = append(hints, "- Check the Anthropic API key (llm.api_key or ANTHROPIC_API_KEY).")
	case "Mudabbir_native":
		hints = append(hints, "- Ensure Ollama is running and the selected model is available locally.")
	case "openai_agents", "google_adk":
		hints = append(hints, "- Check the API key and model name in the configuration.")
	case "codex_cli", "open_interpreter", "copilot_sdk":
		hints = append(hints, "- Make sure the agent CLI is installed and signed in.")
	case "opencode":
		hints = append(hints, "- Make sure the OpenCode server is running.")
	}
	hints = append(hints, "- You can switch backend with /backend <name>.")
	return fmt.Sprintf("Request timed out: %s didn't respond.\n\nPossible causes:\n%s", backend, strings.Join(hints, "\n"))
}
