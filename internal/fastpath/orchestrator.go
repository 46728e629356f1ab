// Package fastpath answers device-control requests directly, without a model
// round trip: resolve the intent, gate destructive actions behind an explicit
// confirmation, execute, and render a localized reply.
package fastpath

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"mudabbir/internal/intent"
	"mudabbir/internal/logging"
	"mudabbir/internal/metrics"
)

const defaultCloseTarget = "notepad"

type Orchestrator struct {
	exec  Executor
	store *SessionStore
	log   zerolog.Logger
}

type Option func(*Orchestrator)

func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

func New(exec Executor, store *SessionStore, opts ...Option) *Orchestrator {
	if store == nil {
		store = NewSessionStore()
	}
	o := &Orchestrator{exec: exec, store: store, log: logging.For("fastpath")}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) Store() *SessionStore { return o.store }

// TryFastpath handles text for session if it is a known device command. It
// returns handled=false when the message should go to an agent backend.
func (o *Orchestrator) TryFastpath(ctx context.Context, text, session string) (handled bool, reply string) {
	locale := LocaleFor(text)

	if _, ok := o.store.Pending(session); ok {
		switch {
		case intent.IsConfirmation(text):
			pending, _ := o.store.TakePending(session)
			metrics.RecordFastpath("confirmed")
			o.log.Info().Str("session", session).Str("capability", pending.CapabilityID).Msg("destructive action confirmed")
			return true, o.dispatch(ctx, locale, session, pending)
		case intent.IsCancel(text):
			o.store.TakePending(session)
			metrics.RecordFastpath("canceled")
			return true, Message(MsgCanceled, locale)
		default:
			metrics.RecordFastpath("reprompt")
			return true, Message(MsgPendingReprompt, locale)
		}
	}

	res := intent.Resolve(text)
	if !res.Matched {
		metrics.RecordFastpath("fallthrough")
		return false, ""
	}
	metrics.RecordIntent(res.CapabilityID)

	if res.Unsupported {
		metrics.RecordFastpath("unsupported")
		if res.UnsupportedReason != "" {
			return true, res.UnsupportedReason
		}
		return true, Message(MsgUnsupported, locale)
	}
	if res.Action == "" {
		metrics.RecordFastpath("fallthrough")
		return false, ""
	}

	if res.Risk == intent.RiskDestructive && !intent.IsConfirmation(text) {
		o.store.SetPending(session, res)
		metrics.RecordFastpath("confirm_prompt")
		o.log.Info().Str("session", session).Str("capability", res.CapabilityID).Msg("awaiting confirmation")
		return true, Message(MsgConfirmPrompt, locale)
	}

	return true, o.dispatch(ctx, locale, session, res)
}

func (o *Orchestrator) dispatch(ctx context.Context, locale Locale, session string, res intent.Resolution) string {
	params := o.enrich(session, res)

	raw, err := o.execute(ctx, res.Action, params)
	if err != nil {
		metrics.RecordFastpath("failed")
		o.log.Warn().Err(err).Str("action", res.Action).Msg("executor failed")
		return Message(MsgFailed, locale, err.Error())
	}

	text, failed := render(locale, session, res.Action, params, raw)
	if failed {
		metrics.RecordFastpath("failed")
		o.log.Warn().Str("action", res.Action).Str("result", raw).Msg("executor reported failure")
		return text
	}

	var result map[string]any
	_ = json.Unmarshal([]byte(strings.TrimSpace(raw)), &result)
	o.store.Remember(session, res.Action, params, result)
	metrics.RecordFastpath("executed")
	o.log.Debug().Str("session", session).Str("capability", res.CapabilityID).Msg("fast-path executed")
	return text
}

// execute runs the action, turning an executor panic into an error so one
// bad handler cannot take the turn down with it.
func (o *Orchestrator) execute(ctx context.Context, action string, params map[string]any) (raw string, err error) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error().Str("action", action).Interface("panic", r).Msg("executor panicked")
			err = fmt.Errorf("%s: internal error", action)
		}
	}()
	return o.exec.Execute(ctx, action, params)
}

// enrich fills elliptical references from the session's entity memory.
func (o *Orchestrator) enrich(session string, res intent.Resolution) map[string]any {
	params := res.Clone().Params
	if params == nil {
		params = map[string]any{}
	}
	ents := o.store.Entities(session)
	switch res.Action {
	case "service_tools":
		if firstString(params, "name") == "" && ents.LastService != "" {
			params["name"] = ents.LastService
		}
	case "close_app":
		if firstString(params, "process_name") == "" {
			if ents.LastApp != "" {
				params["process_name"] = ents.LastApp
			} else {
				params["process_name"] = defaultCloseTarget
			}
		}
	case "window_control":
		if strings.EqualFold(firstString(params, "mode"), "bring_to_front") && firstString(params, "query") == "" && ents.LastApp != "" {
			params["query"] = ents.LastApp
		}
	}
	return params
}
