// Package fastpath plugs the deterministic device-command path into the
// middleware chain so recognized commands never reach an agent backend.
package fastpath

import (
	"context"
	"fmt"
	"strings"

	"mudabbir/internal/fastpath"
	mw "mudabbir/internal/middleware"
)

const ID = "fastpath"

// Router intercepts before_agent_run events and answers them locally when
// the orchestrator recognizes the text.
type Router struct {
	orch *fastpath.Orchestrator
}

func New(orch *fastpath.Orchestrator) *Router {
	return &Router{orch: orch}
}

func (r *Router) ID() string    { return ID }
func (r *Router) Priority() int { return 120 } // ahead of everything that shapes the backend request

// ShouldLoad honours a per-event opt-out in Context["fastpath"].
func (r *Router) ShouldLoad(_ context.Context, e *mw.Event) bool {
	if e != nil && e.Context != nil {
		if v, ok := e.Context[ID].(bool); ok {
			return v
		}
	}
	return true
}

func (r *Router) OnEvent(ctx context.Context, e *mw.Event) (mw.Decision, error) {
	if e == nil || e.Name != mw.EventBeforeAgentRun {
		return mw.Decision{}, nil
	}
	input := strings.TrimSpace(e.UserText)
	if input == "" {
		return mw.Decision{}, nil
	}

	handled, reply := r.orch.TryFastpath(ctx, input, e.SessionKey())
	if !handled {
		return mw.Decision{}, nil
	}
	return mw.Decision{
		Cancel:      true,
		ReplaceText: &reply,
		Reason:      fmt.Sprintf("fastpath: handled locally (%d chars)", len(reply)),
	}, nil
}
