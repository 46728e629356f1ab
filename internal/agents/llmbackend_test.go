package agents

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mudabbir/internal/chat"
	"mudabbir/internal/memory"
	"mudabbir/internal/middleware"
)

type turnReply struct {
	chunks []string
	text   string
	calls  []chat.ToolCall
	err    error
}

// scriptedAdapter answers successive ReplyStream calls from replies.
type scriptedAdapter struct {
	mu       sync.Mutex
	replies  []turnReply
	requests [][]chat.Message
	params   []*middleware.RunParams
}

func (a *scriptedAdapter) ReplyStream(_ context.Context, history []chat.Message, params *middleware.RunParams, streamFn func(string)) (string, []chat.ToolCall, error) {
	a.mu.Lock()
	a.requests = append(a.requests, append([]chat.Message(nil), history...))
	a.params = append(a.params, params)
	r := a.replies[0]
	if len(a.replies) > 1 {
		a.replies = a.replies[1:]
	}
	a.mu.Unlock()
	for _, c := range r.chunks {
		streamFn(c)
	}
	return r.text, r.calls, r.err
}

type toolRecorder struct {
	mu     sync.Mutex
	calls  []string
	params []map[string]any
}

func (r *toolRecorder) Execute(_ context.Context, action string, params map[string]any) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, action)
	r.params = append(r.params, params)
	if action == "explode" {
		return "", errors.New("not supported")
	}
	return `{"ok":true,"level_percent":40}`, nil
}

func nativeInfo(t *testing.T) Info {
	t.Helper()
	info, err := Lookup("native")
	require.NoError(t, err)
	return info
}

func TestLLMBackendToolRound(t *testing.T) {
	adapter := &scriptedAdapter{replies: []turnReply{
		{text: "Checking.", calls: []chat.ToolCall{{ID: "call_1", Name: desktopTool, Arguments: `{"action":"volume","params":{"mode":"get"}}`}}},
		{chunks: []string{"Volume is ", "40%."}, text: "Volume is 40%."},
	}}
	tools := &toolRecorder{}
	b := newLLMBackend(nativeInfo(t), adapter, tools)

	history := []memory.Message{{Role: memory.RoleUser, Content: "hi"}, {Role: memory.RoleAssistant, Content: "Hello."}}
	ctx := WithRunParams(context.Background(), &middleware.RunParams{Model: "llama3.2", MaxTokens: 512})
	events := drain(must(b.Run(ctx, "what's the volume?", "Be brief.", history)))

	assert.Equal(t, []EventKind{EventMessage, EventToolUse, EventToolResult, EventMessage, EventMessage, EventDone}, kinds(events))
	assert.Equal(t, "Checking.", events[0].Content)
	assert.Equal(t, "desktop", events[1].Metadata["name"])
	assert.Equal(t, map[string]any{"action": "volume", "params": map[string]any{"mode": "get"}}, events[1].Metadata["input"])
	assert.Equal(t, `{"ok":true,"level_percent":40}`, events[2].Content)

	assert.Equal(t, []string{"volume"}, tools.calls)
	assert.Equal(t, map[string]any{"mode": "get"}, tools.params[0])

	require.Len(t, adapter.requests, 2)
	first := adapter.requests[0]
	require.Len(t, first, 4)
	assert.Equal(t, chat.RoleSystem, first[0].Role)
	assert.Equal(t, chat.RoleAssistant, first[2].Role)
	assert.Equal(t, "what's the volume?", first[3].Content)

	second := adapter.requests[1]
	require.Len(t, second, 6)
	assert.Equal(t, "call_1", second[4].ToolCalls[0].ID)
	assert.Equal(t, chat.RoleTool, second[5].Role)
	assert.Equal(t, "call_1", second[5].ToolCallID)

	p := adapter.params[0]
	assert.Equal(t, "llama3.2", p.Model)
	assert.Equal(t, 512, p.MaxTokens)
	require.Len(t, p.Tools, 1)
	assert.Equal(t, desktopTool, p.Tools[0].Function.Name)
}

func TestLLMBackendToolErrors(t *testing.T) {
	b := newLLMBackend(nativeInfo(t), &scriptedAdapter{}, &toolRecorder{})
	ctx := context.Background()
	assert.Equal(t, "error: unknown tool browser", b.callTool(ctx, "browser", nil))
	assert.Equal(t, "error: missing action", b.callTool(ctx, desktopTool, map[string]any{}))
	assert.Equal(t, "error: not supported", b.callTool(ctx, desktopTool, map[string]any{"action": "explode"}))
}

func TestLLMBackendStopsAfterMaxRounds(t *testing.T) {
	adapter := &scriptedAdapter{replies: []turnReply{
		{calls: []chat.ToolCall{{ID: "c", Name: desktopTool, Arguments: `{"action":"battery"}`}}},
	}}
	tools := &toolRecorder{}
	b := newLLMBackend(nativeInfo(t), adapter, tools)

	events := drain(must(b.Run(context.Background(), "loop forever", "", nil)))
	assert.Equal(t, EventDone, events[len(events)-1].Kind)
	assert.Len(t, tools.calls, maxToolRounds)
	assert.Len(t, adapter.requests, maxToolRounds+1)
}

func TestLLMBackendWithoutTools(t *testing.T) {
	adapter := &scriptedAdapter{replies: []turnReply{
		{text: "No tools here.", calls: []chat.ToolCall{{ID: "c", Name: desktopTool, Arguments: `{}`}}},
	}}
	b := newLLMBackend(nativeInfo(t), adapter, nil)

	events := drain(must(b.Run(context.Background(), "hi", "", nil)))
	assert.Equal(t, []Event{{Kind: EventMessage, Content: "No tools here."}, {Kind: EventDone}}, events)
	assert.Empty(t, adapter.params[0].Tools)
}

func TestLLMBackendModelError(t *testing.T) {
	adapter := &scriptedAdapter{replies: []turnReply{{err: errors.New("connection refused")}}}
	b := newLLMBackend(nativeInfo(t), adapter, nil)

	events := drain(must(b.Run(context.Background(), "hi", "", nil)))
	require.Equal(t, []EventKind{EventError, EventDone}, kinds(events))
	assert.Equal(t, "Mudabbir Native error: connection refused", events[0].Content)
}

func TestConversation(t *testing.T) {
	msgs := conversation("  ", nil, "hello")
	assert.Equal(t, []chat.Message{{Role: chat.RoleUser, Content: "hello"}}, msgs)
}
