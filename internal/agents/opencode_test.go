package agents

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mudabbir/internal/config"
)

type openCodeServer struct {
	mu       sync.Mutex
	sessions int
	bodies   []map[string]any
}

func (s *openCodeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPost && r.URL.Path == "/session":
		s.mu.Lock()
		s.sessions++
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "ses_1"})
	case r.Method == http.MethodPost && r.URL.Path == "/session/ses_1/message":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.mu.Lock()
		s.bodies = append(s.bodies, body)
		s.mu.Unlock()
		_, _ = w.Write([]byte(`{"parts":[
			{"type":"tool","tool":{"name":"bash"},"state":{"output":"README.md"}},
			{"type":"text","text":"There is one file."}
		]}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestOpenCode(t *testing.T, url string) *openCodeBackend {
	t.Helper()
	cfg := config.Default()
	cfg.OpenCode.BaseURL = url + "/"
	cfg.OpenCode.Model = "anthropic/claude-sonnet-4-5"
	info, err := Lookup("opencode")
	require.NoError(t, err)
	b, err := newOpenCode(context.Background(), info, Deps{Config: cfg})
	require.NoError(t, err)
	oc := b.(*openCodeBackend)
	t.Cleanup(oc.client.CloseIdleConnections)
	return oc
}

func TestOpenCodeRun(t *testing.T) {
	srv := &openCodeServer{}
	ts := httptest.NewServer(srv)
	defer ts.Close()
	b := newTestOpenCode(t, ts.URL)
	assert.Equal(t, ts.URL, b.baseURL)

	ctx := WithSessionKey(context.Background(), "cli:local")
	for i := 0; i < 2; i++ {
		ch, err := b.Run(ctx, "list files", "Be brief.", nil)
		require.NoError(t, err)
		events := drain(ch)
		assert.Equal(t, []EventKind{EventToolUse, EventToolResult, EventMessage, EventDone}, kinds(events))
		assert.Equal(t, "bash", events[0].Metadata["name"])
		assert.Equal(t, "README.md", events[1].Content)
		assert.Equal(t, "There is one file.", events[2].Content)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, 1, srv.sessions)
	require.Len(t, srv.bodies, 2)
	assert.Equal(t, "Be brief.", srv.bodies[0]["system"])
	assert.Equal(t, "anthropic/claude-sonnet-4-5", srv.bodies[0]["model"])
	want := []any{map[string]any{"type": "text", "text": "list files"}}
	assert.Empty(t, cmp.Diff(want, srv.bodies[0]["parts"]))
}

func TestOpenCodeUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	b := newTestOpenCode(t, url)

	ch, err := b.Run(context.Background(), "hi", "", nil)
	require.NoError(t, err)
	events := drain(ch)
	require.Equal(t, []EventKind{EventError, EventDone}, kinds(events))
	assert.Equal(t, "OpenCode server is unreachable at "+url+".\n\nStart it with: opencode --server", events[0].Content)
}

func TestOpenCodeServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			return
		}
		if r.URL.Path == "/session" {
			_, _ = w.Write([]byte(`{"id":"ses_9"}`))
			return
		}
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()
	b := newTestOpenCode(t, ts.URL)

	events := drain(must(b.Run(context.Background(), "hi", "", nil)))
	require.Equal(t, []EventKind{EventError, EventDone}, kinds(events))
	assert.Contains(t, events[0].Content, "OpenCode server error:")
	assert.Contains(t, events[0].Content, "status 502")
}

func TestOpenCodeEvents(t *testing.T) {
	var reply openCodeReply
	require.NoError(t, json.Unmarshal([]byte(`{"content":"plain answer"}`), &reply))
	assert.Equal(t, []Event{{Kind: EventMessage, Content: "plain answer"}}, openCodeEvents(reply))

	require.NoError(t, json.Unmarshal([]byte(`{"parts":[{"type":"tool","tool":"grep"}]}`), &reply))
	events := openCodeEvents(reply)
	require.Len(t, events, 1)
	assert.Equal(t, "Using grep...", events[0].Content)

	assert.Equal(t, "tool", toolName(nil))
	assert.Equal(t, "edit", toolName(json.RawMessage(`{"name":"edit"}`)))
}

func must(ch <-chan Event, err error) <-chan Event {
	if err != nil {
		panic(err)
	}
	return ch
}
