// Package agents runs the slow path: a pluggable agent backend selected by
// name, driven by a loop that consumes the message bus.
package agents

import (
	"context"
	"strings"

	"mudabbir/internal/memory"
)

type EventKind string

const (
	EventMessage    EventKind = "message"
	EventToolUse    EventKind = "tool_use"
	EventToolResult EventKind = "tool_result"
	EventThinking   EventKind = "thinking"
	EventError      EventKind = "error"
	EventDone       EventKind = "done"
	EventStatus     EventKind = "status"
)

// Event is one item of a backend's reply stream. Message events carry text
// to show the user; the rest describe what the backend is doing.
type Event struct {
	Kind     EventKind
	Content  string
	Metadata map[string]any
}

// Backend runs one user turn. The returned channel is closed once the turn is
// finished; a well-behaved backend sends EventDone last. Cancelling ctx stops
// the run.
type Backend interface {
	Info() Info
	Run(ctx context.Context, message, systemPrompt string, history []memory.Message) (<-chan Event, error)
}

// Capability is a bit set describing what a backend supports.
type Capability uint8

const (
	Streaming Capability = 1 << iota
	Tools
	MCP
	MultiTurn
	CustomSystemPrompt
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{Streaming, "streaming"},
	{Tools, "tools"},
	{MCP, "mcp"},
	{MultiTurn, "multi turn"},
	{CustomSystemPrompt, "custom system prompt"},
}

func (c Capability) Has(flag Capability) bool { return c&flag == flag }

// String lists the set flags, or "none".
func (c Capability) String() string {
	var names []string
	for _, n := range capabilityNames {
		if c.Has(n.c) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// Info is the static description of a backend.
type Info struct {
	Name         string
	DisplayName  string
	Description  string
	Capabilities Capability
	Aliases      []string
	InstallHint  string
	Beta         bool
}

// send delivers ev unless ctx is done. It reports whether the event was sent.
func send(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// fail sends an error followed by done.
func fail(ctx context.Context, out chan<- Event, msg string) {
	if send(ctx, out, Event{Kind: EventError, Content: msg}) {
		send(ctx, out, Event{Kind: EventDone})
	}
}
