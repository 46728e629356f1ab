package fastpath

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "mudabbir/internal/fastpath"
	"mudabbir/internal/logging"
	mw "mudabbir/internal/middleware"
)

func newRouter(result string, calls *int) *Router {
	exec := core.ExecutorFunc(func(_ context.Context, _ string, _ map[string]any) (string, error) {
		*calls++
		return result, nil
	})
	return New(core.New(exec, core.NewSessionStore(), core.WithLogger(logging.Nop())))
}

func TestRouterInterceptsKnownCommand(t *testing.T) {
	calls := 0
	c := mw.NewChain(newRouter(`{"ok":true,"level_percent":37,"muted":false}`, &calls))

	e := &mw.Event{
		Name:     mw.EventBeforeAgentRun,
		UserText: "كم نسبة الصوت",
		Context:  map[string]any{mw.CtxSessionKey: "cli:local"},
	}
	results, err := c.Dispatch(context.Background(), e)
	require.NoError(t, err)

	reply, ok := mw.Intercepted(results)
	require.True(t, ok)
	assert.Equal(t, "مستوى الصوت الحالي: 37%", reply)
	assert.Equal(t, 1, calls)
}

func TestRouterPassesThroughChat(t *testing.T) {
	calls := 0
	r := newRouter("", &calls)

	dec, err := r.OnEvent(context.Background(), &mw.Event{Name: mw.EventBeforeAgentRun, UserText: "tell me a joke"})
	require.NoError(t, err)
	assert.False(t, dec.Cancel)
	assert.Nil(t, dec.ReplaceText)
	assert.Zero(t, calls)
}

func TestRouterIgnoresOtherEvents(t *testing.T) {
	calls := 0
	r := newRouter(`{"ok":true}`, &calls)

	dec, err := r.OnEvent(context.Background(), &mw.Event{Name: mw.EventAfterAgentReply, UserText: "lock screen"})
	require.NoError(t, err)
	assert.False(t, dec.Cancel)
	assert.Zero(t, calls)
}

func TestRouterConfirmationIsPerSession(t *testing.T) {
	calls := 0
	r := newRouter(`{"ok":true}`, &calls)
	ctx := context.Background()
	event := func(text, session string) *mw.Event {
		return &mw.Event{Name: mw.EventBeforeAgentRun, UserText: text, Context: map[string]any{mw.CtxSessionKey: session}}
	}

	dec, err := r.OnEvent(ctx, event("shutdown the pc now", "a"))
	require.NoError(t, err)
	require.True(t, dec.Cancel)
	assert.Zero(t, calls)

	dec, _ = r.OnEvent(ctx, event("yes", "b"))
	assert.False(t, dec.Cancel)

	dec, _ = r.OnEvent(ctx, event("yes", "a"))
	assert.True(t, dec.Cancel)
	assert.Equal(t, 1, calls)
}

func TestRouterShouldLoad(t *testing.T) {
	r := New(nil)
	assert.True(t, r.ShouldLoad(context.Background(), &mw.Event{}))
	assert.False(t, r.ShouldLoad(context.Background(), &mw.Event{Context: map[string]any{ID: false}}))
}
