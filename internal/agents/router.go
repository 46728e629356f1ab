package agents

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"mudabbir/internal/config"
	"mudabbir/internal/logging"
	"mudabbir/internal/memory"
)

// Router is the Backend the loop talks to. It builds the configured backend
// lazily, falls back to the fallback backend when that fails, and rebuilds
// after Reset.
type Router struct {
	tools ToolExecutor
	log   zerolog.Logger

	mu      sync.Mutex
	cfg     *config.Config
	backend Backend
	create  func(ctx context.Context, name string, deps Deps) (Backend, error)
}

func NewRouter(cfg *config.Config, tools ToolExecutor) *Router {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Router{cfg: cfg, tools: tools, log: logging.For("router"), create: Create}
}

// Reset drops the current backend; the next run builds one from cfg.
func (r *Router) Reset(cfg *config.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg != nil {
		r.cfg = cfg
	}
	r.backend = nil
}

func (r *Router) current(ctx context.Context) (Backend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend != nil {
		return r.backend, nil
	}

	requested := r.cfg.Agent.Backend
	name := NormalizeName(requested, DefaultBackend)
	if requested != "" && requested != name {
		r.log.Warn().Str("requested", requested).Str("backend", name).Msg("backend name normalized")
	}
	deps := Deps{Config: r.cfg, Tools: r.tools}

	b, err := r.create(ctx, name, deps)
	if err == nil {
		r.log.Info().Str("backend", name).Msg("backend loaded")
		r.backend = b
		return b, nil
	}
	info, _ := Lookup(name)
	r.log.Error().Err(err).Str("backend", name).Str("install_hint", info.InstallHint).Msg("could not load backend")

	fallback := NormalizeName(r.cfg.Agent.FallbackBackend, DefaultBackend)
	if fallback == name {
		return nil, err
	}
	r.log.Warn().Str("fallback", fallback).Msg("falling back")
	fb, fbErr := r.create(ctx, fallback, deps)
	if fbErr != nil {
		fbInfo, _ := Lookup(fallback)
		r.log.Error().Err(fbErr).Str("backend", fallback).Str("install_hint", fbInfo.InstallHint).Msg("fallback backend failed to load")
		return nil, errors.Join(err, fbErr)
	}
	r.backend = fb
	return fb, nil
}

// Info describes the backend in use, or the configured one when nothing is
// loaded yet.
func (r *Router) Info() Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend != nil {
		return r.backend.Info()
	}
	info, _ := Lookup(NormalizeName(r.cfg.Agent.Backend, DefaultBackend))
	return info
}

func (r *Router) Run(ctx context.Context, message, systemPrompt string, history []memory.Message) (<-chan Event, error) {
	b, err := r.current(ctx)
	if err != nil {
		out := make(chan Event, 2)
		out <- Event{Kind: EventError, Content: "No agent backend is available: " + err.Error()}
		out <- Event{Kind: EventDone}
		close(out)
		return out, nil
	}
	return b.Run(ctx, message, systemPrompt, history)
}
