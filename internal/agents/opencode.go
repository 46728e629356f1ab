package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"mudabbir/internal/httpx"
	"mudabbir/internal/logging"
	"mudabbir/internal/memory"
)

const healthTimeout = 5 * time.Second

// openCodeBackend talks to a running OpenCode server. Each Mudabbir session
// maps to one server-side session, so history stays on the server.
type openCodeBackend struct {
	info    Info
	baseURL string
	model   string
	client  *http.Client
	log     zerolog.Logger

	mu       sync.Mutex
	sessions map[string]string
}

func newOpenCode(_ context.Context, info Info, deps Deps) (Backend, error) {
	base := strings.TrimRight(deps.Config.OpenCode.BaseURL, "/")
	if base == "" {
		base = "http://localhost:4096"
	}
	return &openCodeBackend{
		info:     info,
		baseURL:  base,
		model:    deps.Config.OpenCode.Model,
		client:   httpx.NewClient(0),
		log:      logging.For("agent.opencode"),
		sessions: make(map[string]string),
	}, nil
}

func (b *openCodeBackend) Info() Info { return b.info }

func (b *openCodeBackend) Run(ctx context.Context, message, systemPrompt string, _ []memory.Message) (<-chan Event, error) {
	out := make(chan Event, 16)
	go func() {
		defer close(out)
		b.run(ctx, out, message, systemPrompt)
	}()
	return out, nil
}

type openCodePart struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	Tool  json.RawMessage `json:"tool,omitempty"`
	State struct {
		Output any `json:"output"`
	} `json:"state"`
}

type openCodeReply struct {
	Parts   []openCodePart `json:"parts"`
	Content string         `json:"content"`
	Text    string         `json:"text"`
}

func (b *openCodeBackend) run(ctx context.Context, out chan<- Event, message, systemPrompt string) {
	if !b.healthy(ctx) {
		fail(ctx, out, fmt.Sprintf("OpenCode server is unreachable at %s.\n\nStart it with: opencode --server", b.baseURL))
		return
	}
	key := sessionKeyFrom(ctx)
	if key == "" {
		key = "_default"
	}
	id, err := b.session(ctx, key)
	if err != nil {
		b.log.Warn().Err(err).Msg("create session")
		fail(ctx, out, fmt.Sprintf("OpenCode backend error: %v", err))
		return
	}

	payload := map[string]any{"parts": []map[string]string{{"type": "text", "text": message}}}
	if systemPrompt != "" {
		payload["system"] = systemPrompt
	}
	if b.model != "" {
		payload["model"] = b.model
	}
	var reply openCodeReply
	if err := b.do(ctx, http.MethodPost, "/session/"+id+"/message", payload, &reply); err != nil {
		if ctx.Err() != nil {
			return
		}
		b.log.Warn().Err(err).Msg("post message")
		fail(ctx, out, fmt.Sprintf("OpenCode server error: %v", err))
		return
	}

	for _, ev := range openCodeEvents(reply) {
		if !send(ctx, out, ev) {
			return
		}
	}
	send(ctx, out, Event{Kind: EventDone})
}

func openCodeEvents(reply openCodeReply) []Event {
	var events []Event
	for _, part := range reply.Parts {
		switch part.Type {
		case "", "text":
			if part.Text != "" {
				events = append(events, Event{Kind: EventMessage, Content: part.Text})
			}
		case "tool":
			name := toolName(part.Tool)
			events = append(events, Event{Kind: EventToolUse, Content: "Using " + name + "...", Metadata: map[string]any{"name": name}})
			if o := outputText(part.State.Output); o != "" {
				events = append(events, toolResult(name, o))
			}
		}
	}
	if len(reply.Parts) == 0 {
		if text := firstNonEmpty(reply.Content, reply.Text); text != "" {
			events = append(events, Event{Kind: EventMessage, Content: text})
		}
	}
	return events
}

// toolName accepts both {"name": "bash"} and "bash".
func toolName(raw json.RawMessage) string {
	var obj struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &obj) == nil && obj.Name != "" {
		return obj.Name
	}
	var s string
	if json.Unmarshal(raw, &s) == nil && s != "" {
		return s
	}
	return "tool"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (b *openCodeBackend) healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode < http.StatusInternalServerError
}

func (b *openCodeBackend) session(ctx context.Context, key string) (string, error) {
	b.mu.Lock()
	id, ok := b.sessions[key]
	b.mu.Unlock()
	if ok {
		return id, nil
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := b.do(ctx, http.MethodPost, "/session", nil, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("server returned no session id")
	}
	b.mu.Lock()
	b.sessions[key] = created.ID
	b.mu.Unlock()
	return created.ID, nil
}

func (b *openCodeBackend) do(ctx context.Context, method, path string, body, into any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if into == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
