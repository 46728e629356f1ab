package middleware

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

type EventName string

const (
	// EventBeforeAgentRun fires once per user turn, before the message is
	// handed to an agent backend.
	EventBeforeAgentRun EventName = "before_agent_run"
	// EventAfterAgentReply fires with the complete backend reply.
	EventAfterAgentReply EventName = "after_agent_reply"
)

// Well-known Event.Context keys.
const (
	CtxSessionKey  = "session_key"
	CtxChannel     = "channel"
	CtxTokenBudget = "token_budget"
)

type RunParams struct {
	Backend      string
	Model        string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
	Tools        []llms.Tool
}

type Decision struct {
	Cancel      bool   // stop the pipeline for this event
	Reason      string // for logs
	ReplaceText *string

	// Optional: change the run parameters and continue.
	OverrideParams *RunParams
}

type Event struct {
	Name      EventName
	UserText  string     // for before_agent_run
	ReplyText string     // for after_agent_reply
	Params    *RunParams // mutable
	Context   map[string]any
}

// SessionKey returns the session the event belongs to, if the loop set one.
func (e *Event) SessionKey() string {
	if e == nil {
		return ""
	}
	s, _ := e.Context[CtxSessionKey].(string)
	return s
}

type Middleware interface {
	ID() string
	Priority() int
	OnEvent(ctx context.Context, e *Event) (Decision, error)
}

// ConditionalMiddleware lets a middleware opt out per event. Skipped
// middlewares still appear in the dispatch results.
type ConditionalMiddleware interface {
	ShouldLoad(ctx context.Context, e *Event) bool
}
