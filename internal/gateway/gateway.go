// Package gateway assembles the assistant: configuration, desktop tools, the
// fast path, middlewares, memory, the message bus, the agent loop and the
// chat channels.
package gateway

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"mudabbir/internal/agents"
	"mudabbir/internal/bus"
	"mudabbir/internal/commands"
	"mudabbir/internal/communicators"
	"mudabbir/internal/config"
	"mudabbir/internal/desktop"
	"mudabbir/internal/fastpath"
	"mudabbir/internal/logging"
	"mudabbir/internal/memory"
	"mudabbir/internal/metrics"
	"mudabbir/internal/middleware"
	mwfastpath "mudabbir/middlewares/fastpath"

	_ "mudabbir/internal/communicators/telegram"
	_ "mudabbir/internal/communicators/ws"
	_ "mudabbir/middlewares/autoload"
)

// LocalChatID is the chat the terminal talks as.
const LocalChatID = "local"

const shutdownGrace = 5 * time.Second

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	toolStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type Gateway struct {
	Live     *config.Live
	Bus      *bus.MessageBus
	Store    memory.Store
	Router   *agents.Router
	Loop     *agents.Loop
	Commands *commands.Handler

	log      zerolog.Logger
	debugLog io.Closer
}

type options struct {
	cfg     *config.Config
	backend agents.Backend
	runner  desktop.Runner
}

type Option func(*options)

// WithConfig uses cfg instead of loading the file.
func WithConfig(cfg *config.Config) Option { return func(o *options) { o.cfg = cfg } }

// WithBackend drives the loop with b instead of the configured backend.
func WithBackend(b agents.Backend) Option { return func(o *options) { o.backend = b } }

// WithRunner sets the command runner behind the desktop tools.
func WithRunner(r desktop.Runner) Option { return func(o *options) { o.runner = r } }

// Open loads the configuration at path and builds every component. Nothing
// runs until Serve, Chat or Ask.
func Open(path string, opts ...Option) (*Gateway, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.cfg
	if cfg == nil {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	log := logging.For("gateway")
	live := config.NewLive(cfg, path)

	execOpts := []desktop.Option{desktop.WithDryRun(cfg.Desktop.DryRun), desktop.WithLogger(logging.For("desktop"))}
	if o.runner != nil {
		execOpts = append(execOpts, desktop.WithRunner(o.runner))
	}
	exec := desktop.New(execOpts...)
	orch := fastpath.New(exec, fastpath.NewSessionStore(), fastpath.WithLogger(logging.For("fastpath")))

	g := &Gateway{Live: live, log: log}

	var debugW io.Writer
	if p := cfg.Middlewares.DebugLog; p != "" {
		f, err := middleware.OpenDebugLog(config.ExpandHome(p))
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("middleware debug log disabled")
		} else {
			debugW, g.debugLog = f, f
		}
	}
	chain := middleware.NewChainFromRegistry(debugW, cfg.Middlewares.Disabled, mwfastpath.New(orch))

	store, err := memory.Open(cfg.Memory.Driver, config.ExpandHome(cfg.Memory.Path))
	if err != nil {
		g.closeDebugLog()
		return nil, fmt.Errorf("open memory: %w", err)
	}
	g.Store = store
	g.Bus = bus.New(bus.DefaultInboundSize)
	g.Router = agents.NewRouter(cfg, exec)
	g.Commands = commands.New(store, live, commands.WithSessionState(orch.Store()))

	var backend agents.Backend = g.Router
	if o.backend != nil {
		backend = o.backend
	}
	g.Loop = agents.NewLoop(g.Bus, store, backend, cfg.Agent,
		agents.WithChain(chain),
		agents.WithCommands(g.Commands),
		agents.WithLoopLogger(logging.For("loop")),
	)

	live.OnChange(func(c *config.Config) {
		g.Router.Reset(c)
		g.log.Info().Str("backend", c.Agent.Backend).Str("model", c.LLM.Model).Msg("configuration changed")
	})
	return g, nil
}

// Serve runs the agent loop, every configured channel, the metrics endpoint
// and the config watcher until ctx is done.
func (g *Gateway) Serve(ctx context.Context) error {
	cfg := g.Live.Get()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return g.Loop.Run(ctx) })

	for _, c := range communicators.All() {
		eg.Go(func() error {
			if err := c.Start(ctx, g.Bus, cfg); err != nil && ctx.Err() == nil {
				g.log.Error().Err(err).Str("channel", c.ID()).Msg("channel stopped")
			}
			return nil
		})
	}

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		eg.Go(func() error {
			if err := serveHTTP(ctx, srv); err != nil {
				g.log.Error().Err(err).Str("addr", srv.Addr).Msg("metrics server failed")
			}
			return nil
		})
		g.log.Info().Str("addr", srv.Addr).Msg("metrics endpoint enabled")
	}

	if g.Live.Path != "" {
		eg.Go(func() error {
			if err := config.Watch(ctx, g.Live.Path, logging.For("config"), g.Live.Set); err != nil && ctx.Err() == nil {
				g.log.Warn().Err(err).Str("path", g.Live.Path).Msg("config hot reload disabled")
			}
			return nil
		})
	}

	return eg.Wait()
}

func serveHTTP(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

// Chat runs an interactive session on the terminal: each line of in is one
// message, replies stream to out. It returns at EOF, on /exit or when ctx is
// done.
func (g *Gateway) Chat(ctx context.Context, in io.Reader, out io.Writer) error {
	return g.withLoop(ctx, func(ctx context.Context, t *terminal) error {
		cfg := g.Live.Get()
		fmt.Fprintln(out, promptStyle.Render("Mudabbir"))
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("backend=%s, provider=%s, model=%s", cfg.Agent.Backend, cfg.LLM.Provider, cfg.LLM.Model)))
		fmt.Fprintln(out, dimStyle.Render("Type /exit to quit, /help for commands."))

		lines := make(chan string)
		go func() {
			defer close(lines)
			sc := bufio.NewScanner(in)
			for sc.Scan() {
				select {
				case lines <- sc.Text():
				case <-ctx.Done():
					return
				}
			}
		}()

		for {
			fmt.Fprint(out, promptStyle.Render("> "))
			var line string
			select {
			case l, ok := <-lines:
				if !ok {
					fmt.Fprintln(out)
					return nil
				}
				line = strings.TrimSpace(l)
			case <-ctx.Done():
				fmt.Fprintln(out)
				return nil
			}
			switch line {
			case "":
				continue
			case "/exit", "exit", "quit":
				return nil
			}
			if err := t.send(ctx, line, out); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				fmt.Fprintln(out, errStyle.Render("error: "+err.Error()))
			}
		}
	})
}

// Ask sends a single message and streams the reply to out.
func (g *Gateway) Ask(ctx context.Context, text string, out io.Writer) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("empty message")
	}
	return g.withLoop(ctx, func(ctx context.Context, t *terminal) error {
		return t.send(ctx, text, out)
	})
}

type terminal struct {
	bus      *bus.MessageBus
	outbound <-chan bus.OutboundMessage
	system   <-chan bus.SystemEvent
}

func (g *Gateway) withLoop(ctx context.Context, fn func(context.Context, *terminal) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outbound, unsub := g.Bus.SubscribeOutbound(bus.ChannelCLI)
	defer unsub()
	system, unsubSys := g.Bus.SubscribeSystem()
	defer unsubSys()

	done := make(chan error, 1)
	go func() { done <- g.Loop.Run(ctx) }()

	err := fn(ctx, &terminal{bus: g.Bus, outbound: outbound, system: system})
	cancel()
	if lerr := <-done; err == nil {
		err = lerr
	}
	return err
}

// send publishes one message and prints the reply until its stream ends.
func (t *terminal) send(ctx context.Context, text string, out io.Writer) error {
	msg := bus.InboundMessage{
		ID:        uuid.NewString(),
		Channel:   bus.ChannelCLI,
		SenderID:  LocalChatID,
		ChatID:    LocalChatID,
		Content:   text,
		CreatedAt: time.Now(),
	}
	if err := t.bus.PublishInbound(ctx, msg); err != nil {
		return err
	}

	base := msg.SessionKey()
	for {
		select {
		case o := <-t.outbound:
			if o.ReplyTo != msg.ID {
				continue
			}
			if o.StreamEnd {
				fmt.Fprintln(out)
				return nil
			}
			fmt.Fprint(out, o.Content)
		case ev := <-t.system:
			if ev.Type != bus.EventToolStart {
				continue
			}
			key, _ := ev.Data["session_key"].(string)
			if key != base && !strings.HasPrefix(key, base+":") {
				continue
			}
			name, _ := ev.Data["name"].(string)
			fmt.Fprintln(out, toolStyle.Render("⚙ "+name))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close releases the store, the bus and the debug log.
func (g *Gateway) Close() error {
	g.Bus.Close()
	err := g.Store.Close()
	g.closeDebugLog()
	return err
}

func (g *Gateway) closeDebugLog() {
	if g.debugLog != nil {
		_ = g.debugLog.Close()
		g.debugLog = nil
	}
}
