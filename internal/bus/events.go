package bus

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChannelCLI       = "cli"
	ChannelTelegram  = "telegram"
	ChannelWebSocket = "websocket"
)

// InboundMessage is a user message arriving from a channel.
type InboundMessage struct {
	ID        string
	Channel   string
	SenderID  string
	ChatID    string
	Content   string
	Metadata  map[string]any
	CreatedAt time.Time
}

// SessionKey is the base session key for the chat, "channel:chat_id".
// Memory aliases may point it at a different active session.
func (m InboundMessage) SessionKey() string {
	if m.Metadata != nil {
		if k, ok := m.Metadata["session_key"].(string); ok && k != "" {
			return k
		}
	}
	return m.Channel + ":" + m.ChatID
}

// OutboundMessage is a reply headed for a channel. Streamed replies arrive as
// chunks followed by one message with StreamEnd set and empty content.
type OutboundMessage struct {
	ID          string
	Channel     string
	ChatID      string
	Content     string
	ReplyTo     string
	StreamChunk bool
	StreamEnd   bool
	Metadata    map[string]any
	CreatedAt   time.Time
}

// Reply builds a complete (non-streamed) answer to m.
func (m InboundMessage) Reply(content string) OutboundMessage {
	return OutboundMessage{
		ID:        uuid.NewString(),
		Channel:   m.Channel,
		ChatID:    m.ChatID,
		Content:   content,
		ReplyTo:   m.ID,
		CreatedAt: time.Now(),
	}
}

// Chunk builds one streamed piece of an answer to m.
func (m InboundMessage) Chunk(content string) OutboundMessage {
	out := m.Reply(content)
	out.StreamChunk = true
	return out
}

// StreamEnd marks the end of a streamed answer to m.
func (m InboundMessage) StreamEnd() OutboundMessage {
	out := m.Reply("")
	out.StreamEnd = true
	return out
}

// SystemEvent reports loop activity (thinking, tool use, errors) to
// observers such as the WebSocket dashboard.
type SystemEvent struct {
	Type      string
	Data      map[string]any
	CreatedAt time.Time
}

const (
	EventThinking   = "thinking"
	EventToolStart  = "tool_start"
	EventToolResult = "tool_result"
	EventError      = "error"
	EventStatus     = "status"
)
