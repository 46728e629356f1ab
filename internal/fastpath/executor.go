package fastpath

import "context"

// Executor runs one desktop capability. It returns a JSON object such as
// {"ok":true,...} or a plain string; a string starting with "error:" is a
// failure, as is a non-nil error.
type Executor interface {
	Execute(ctx context.Context, action string, params map[string]any) (string, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, action string, params map[string]any) (string, error)

func (f ExecutorFunc) Execute(ctx context.Context, action string, params map[string]any) (string, error) {
	return f(ctx, action, params)
}
