package agents

import (
	"context"

	"mudabbir/internal/middleware"
)

type sessionKeyCtx struct{}

type runParamsCtx struct{}

// WithSessionKey tells backends that keep server-side state which session a
// run belongs to.
func WithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKeyCtx{}, key)
}

func sessionKeyFrom(ctx context.Context) string {
	k, _ := ctx.Value(sessionKeyCtx{}).(string)
	return k
}

// WithRunParams passes middleware-adjusted model parameters to a run.
func WithRunParams(ctx context.Context, p *middleware.RunParams) context.Context {
	return context.WithValue(ctx, runParamsCtx{}, p)
}

func runParamsFrom(ctx context.Context) *middleware.RunParams {
	p, _ := ctx.Value(runParamsCtx{}).(*middleware.RunParams)
	return p
}
