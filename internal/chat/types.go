package chat

import (
	"encoding/json"
	"strings"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

type Message struct {
	Role    Role
	Content string

	// For Assistant messages: the tool calls they made
	ToolCalls []ToolCall

	// For Tool messages: the ID of the call being answered
	ToolCallID string
	ToolName   string
}

// ParseToolArgs decodes a tool call's JSON arguments. Arguments that are not
// a JSON object come back as {"raw": args}.
func ParseToolArgs(args string) map[string]any {
	out := map[string]any{}
	if strings.TrimSpace(args) == "" {
		return out
	}
	if err := json.Unmarshal([]byte(args), &out); err != nil || out == nil {
		return map[string]any{"raw": args}
	}
	return out
}
