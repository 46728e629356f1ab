package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMW struct {
	id       string
	priority int
	cancel   bool
	replace  string
	err      error
	seen     *[]string
}

func (m testMW) ID() string    { return m.id }
func (m testMW) Priority() int { return m.priority }
func (m testMW) OnEvent(_ context.Context, _ *Event) (Decision, error) {
	*m.seen = append(*m.seen, m.id)
	if m.err != nil {
		return Decision{}, m.err
	}
	dec := Decision{Cancel: m.cancel, Reason: m.id}
	if m.replace != "" {
		text := m.replace
		dec.ReplaceText = &text
	}
	return dec, nil
}

type conditionalTestMW struct {
	testMW
	enabled bool
}

func (m conditionalTestMW) ShouldLoad(_ context.Context, _ *Event) bool { return m.enabled }

func TestChainPriorityAndCancel(t *testing.T) {
	var seen []string
	c := NewChain(
		testMW{id: "low", priority: 1, seen: &seen},
		testMW{id: "high", priority: 10, cancel: true, replace: "handled", seen: &seen},
		testMW{id: "mid", priority: 5, seen: &seen},
	)

	e := &Event{Name: EventBeforeAgentRun, UserText: "hi"}
	results, err := c.Dispatch(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, []string{"high"}, seen)
	assert.Equal(t, "handled", e.UserText)

	reply, ok := Intercepted(results)
	assert.True(t, ok)
	assert.Equal(t, "handled", reply)
}

func TestChainConditionalMiddlewareSkip(t *testing.T) {
	var seen []string
	c := NewChain(
		conditionalTestMW{testMW: testMW{id: "off", priority: 10, seen: &seen}, enabled: false},
		conditionalTestMW{testMW: testMW{id: "on", priority: 5, seen: &seen}, enabled: true},
	)

	results, err := c.Dispatch(context.Background(), &Event{Name: EventBeforeAgentRun})
	require.NoError(t, err)
	assert.Equal(t, []string{"on"}, seen)
	require.Len(t, results, 2)
	assert.Equal(t, "off", results[0].MiddlewareID)
	assert.NotEmpty(t, results[0].Decision.Reason)

	_, ok := Intercepted(results)
	assert.False(t, ok)
}

func TestChainStableOrderOnEqualPriority(t *testing.T) {
	var seen []string
	c := NewChain(
		testMW{id: "a", priority: 5, seen: &seen},
		testMW{id: "b", priority: 5, seen: &seen},
		testMW{id: "c", priority: 5, seen: &seen},
	)

	_, err := c.Dispatch(context.Background(), &Event{Name: EventBeforeAgentRun})
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", strings.Join(seen, ","))
}

func TestChainErrorStopsDispatch(t *testing.T) {
	var seen []string
	boom := errors.New("boom")
	c := NewChain(
		testMW{id: "first", priority: 10, err: boom, seen: &seen},
		testMW{id: "second", priority: 1, seen: &seen},
	)

	_, err := c.Dispatch(context.Background(), &Event{Name: EventBeforeAgentRun})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first"}, seen)
}

func TestNilChainDispatch(t *testing.T) {
	var c *Chain
	results, err := c.Dispatch(context.Background(), &Event{Name: EventBeforeAgentRun})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestChainDebugLog(t *testing.T) {
	var seen []string
	var buf bytes.Buffer
	c := NewChain(testMW{id: "rewrite", priority: 1, replace: "short", seen: &seen})
	c.SetDebugWriter(&buf)

	e := &Event{
		Name:     EventBeforeAgentRun,
		UserText: "please could you kindly turn the volume all the way down",
		Context:  map[string]any{CtxSessionKey: "telegram:42"},
	}
	_, err := c.Dispatch(context.Background(), e)
	require.NoError(t, err)

	var entry debugEntry
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "rewrite", entry.MiddlewareID)
	assert.Equal(t, "telegram:42", entry.Session)
	assert.Equal(t, string(EventBeforeAgentRun), entry.Event)
	assert.Positive(t, entry.SavedTokens)
}

func TestNewChainFromRegistryDisabled(t *testing.T) {
	var seen []string
	c := NewChainFromRegistry(nil, []string{" skip "},
		testMW{id: "keep", priority: 2, seen: &seen},
		testMW{id: "skip", priority: 3, seen: &seen},
	)
	require.NotNil(t, c)
	var ids []string
	for _, mw := range c.List() {
		ids = append(ids, mw.ID())
	}
	assert.Contains(t, ids, "keep")
	assert.NotContains(t, ids, "skip")
}

func TestOpenDebugLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "middleware.debug.jsonl")
	f, err := OpenDebugLog(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens(""))
	assert.Equal(t, 3, estimateTokens("hello world"))
	assert.GreaterOrEqual(t, estimateTokens("!!!!!!!!"), 8)
}
