package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"mudabbir/internal/logging"
	"mudabbir/internal/memory"
)

const defaultCodexModel = "gpt-4o"

type codexBackend struct {
	process
	model string
}

func newCodex(_ context.Context, info Info, deps Deps) (Backend, error) {
	binary := deps.Config.Codex.Binary
	if binary == "" {
		binary = "codex"
	}
	model := deps.Config.Codex.Model
	if model == "" {
		model = defaultCodexModel
	}
	return &codexBackend{
		process: process{info: info, binary: binary, log: logging.For("agent.codex")},
		model:   model,
	}, nil
}

func (b *codexBackend) Info() Info { return b.info }

func (b *codexBackend) Run(ctx context.Context, message, systemPrompt string, history []memory.Message) (<-chan Event, error) {
	out := make(chan Event, 16)
	go func() {
		defer close(out)
		if !b.available() {
			b.missing(ctx, out)
			return
		}
		args := []string{"exec", "--json", "--full-auto", "--model", b.model, buildPrompt(systemPrompt, history, message)}
		b.stream(ctx, out, args, parseCodexLine)
	}()
	return out, nil
}

type codexItem struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Command  string `json:"command"`
	Filename string `json:"filename"`
	Query    string `json:"query"`
	Output   any    `json:"output"`
}

type codexLine struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Item    codexItem `json:"item"`
}

// parseCodexLine maps one line of `codex exec --json` output to events.
// Lines that are not JSON, and event types nobody shows, yield nothing.
func parseCodexLine(line []byte) []Event {
	var ev codexLine
	if err := json.Unmarshal(line, &ev); err != nil {
		return nil
	}
	it := ev.Item
	filename := it.Filename
	if filename == "" {
		filename = "unknown"
	}

	switch ev.Type {
	case "item.started":
		switch it.Type {
		case "command_execution":
			return []Event{toolUse("shell", "Running: "+it.Command, map[string]any{"command": it.Command})}
		case "file_change":
			return []Event{toolUse("file_edit", "Editing: "+filename, map[string]any{"filename": filename})}
		case "web_search":
			return []Event{toolUse("web_search", "Searching: "+it.Query, map[string]any{"query": it.Query})}
		}
	case "item.completed":
		switch it.Type {
		case "agent_message":
			if it.Text != "" {
				return []Event{{Kind: EventMessage, Content: it.Text}}
			}
		case "command_execution":
			return []Event{toolResult("shell", outputText(it.Output))}
		case "file_change":
			return []Event{toolResult("file_edit", "Updated "+filename)}
		case "web_search":
			return []Event{toolResult("web_search", outputText(it.Output))}
		case "reasoning":
			if it.Text != "" {
				return []Event{{Kind: EventThinking, Content: it.Text}}
			}
		}
	case "error":
		msg := ev.Message
		if msg == "" {
			msg = "Codex error"
		}
		return []Event{{Kind: EventError, Content: msg}}
	}
	return nil
}

func toolUse(name, content string, input map[string]any) Event {
	return Event{Kind: EventToolUse, Content: content, Metadata: map[string]any{"name": name, "input": input}}
}

func toolResult(name, content string) Event {
	return Event{Kind: EventToolResult, Content: preview(content, resultPreview), Metadata: map[string]any{"name": name}}
}

func outputText(v any) string {
	switch o := v.(type) {
	case nil:
		return ""
	case string:
		return o
	}
	return fmt.Sprint(v)
}
