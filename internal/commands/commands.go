// Package commands answers the slash commands every channel understands.
// Commands never reach an agent backend and are not stored in memory.
package commands

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"mudabbir/internal/agents"
	"mudabbir/internal/bus"
	"mudabbir/internal/config"
	"mudabbir/internal/desktop"
	"mudabbir/internal/intent"
	"mudabbir/internal/memory"
)

var ErrNotCommand = errors.New("not a command")

// "!cmd" works on channels whose clients swallow unknown /commands.
var cmdRe = regexp.MustCompile(`(?s)^([/!]\w+)(?:@\S+)?\s*(.*)`)

type command func(h *Handler, ctx context.Context, msg bus.InboundMessage, args string) (string, error)

var table = map[string]command{
	"/new":      (*Handler).newSession,
	"/sessions": (*Handler).sessions,
	"/resume":   (*Handler).resume,
	"/help":     (*Handler).help,
	"/clear":    (*Handler).clear,
	"/rename":   (*Handler).rename,
	"/status":   (*Handler).status,
	"/delete":   (*Handler).delete,
	"/backend":  (*Handler).backend,
	"/backends": (*Handler).backends,
	"/model":    (*Handler).model,
	"/tools":    (*Handler).tools,
}

// Handler keeps, per chat, the last session list it showed so /resume <n>
// refers to what the user saw.
type Handler struct {
	store    memory.Store
	settings *config.Live
	state    SessionState

	mu        sync.Mutex
	lastShown map[string][]memory.SessionInfo
}

// SessionState is per-session state held outside the memory store, such as
// a pending confirmation. It is dropped when the session is cleared.
type SessionState interface {
	Forget(key string)
}

type Option func(*Handler)

func WithSessionState(s SessionState) Option {
	return func(h *Handler) { h.state = s }
}

func New(store memory.Store, settings *config.Live, opts ...Option) *Handler {
	if settings == nil {
		settings = config.NewLive(nil, "")
	}
	h := &Handler{store: store, settings: settings, lastShown: make(map[string][]memory.SessionInfo)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) forget(key string) {
	if h.state != nil {
		h.state.Forget(key)
	}
}

// Parse splits content into a normalized command name and its arguments.
func Parse(content string) (cmd, args string, ok bool) {
	m := cmdRe.FindStringSubmatch(strings.TrimSpace(content))
	if m == nil {
		return "", "", false
	}
	cmd = strings.ToLower(m[1])
	if strings.HasPrefix(cmd, "!") {
		cmd = "/" + cmd[1:]
	}
	if _, known := table[cmd]; !known {
		return "", "", false
	}
	return cmd, strings.TrimSpace(m[2]), true
}

func IsCommand(content string) bool {
	_, _, ok := Parse(content)
	return ok
}

// Execute runs the command in msg and returns the reply, or ErrNotCommand.
func (h *Handler) Execute(ctx context.Context, msg bus.InboundMessage) (string, error) {
	cmd, args, ok := Parse(msg.Content)
	if !ok {
		return "", ErrNotCommand
	}
	return table[cmd](h, ctx, msg, args)
}

// Handle adapts Execute to the agent loop.
func (h *Handler) Handle(ctx context.Context, msg bus.InboundMessage) (string, bool, error) {
	reply, err := h.Execute(ctx, msg)
	if errors.Is(err, ErrNotCommand) {
		return "", false, nil
	}
	return reply, true, err
}

func (h *Handler) newSession(ctx context.Context, msg bus.InboundMessage, _ string) (string, error) {
	base := msg.SessionKey()
	next := base + ":" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if err := h.store.SetAlias(ctx, base, next); err != nil {
		return "", err
	}
	return "Started a new conversation. Previous sessions are preserved. Use /sessions to list them.", nil
}

func (h *Handler) sessions(ctx context.Context, msg bus.InboundMessage, _ string) (string, error) {
	base := msg.SessionKey()
	list, err := h.store.ListSessions(ctx, base)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "No sessions found. Start chatting to create one!", nil
	}
	h.remember(base, list)
	return sessionList("**Sessions:**\n", list), nil
}

func (h *Handler) resume(ctx context.Context, msg bus.InboundMessage, args string) (string, error) {
	if args == "" {
		return h.sessions(ctx, msg, "")
	}
	base := msg.SessionKey()

	if n, err := strconv.Atoi(args); err == nil && isDigits(args) {
		shown := h.shown(base)
		if len(shown) == 0 {
			if shown, err = h.store.ListSessions(ctx, base); err != nil {
				return "", err
			}
			h.remember(base, shown)
		}
		if len(shown) == 0 {
			return "No sessions found.", nil
		}
		if n < 1 || n > len(shown) {
			return fmt.Sprintf("Invalid session number. Choose 1-%d.", len(shown)), nil
		}
		return h.switchTo(ctx, base, shown[n-1])
	}

	list, err := h.store.ListSessions(ctx, base)
	if err != nil {
		return "", err
	}
	query := strings.ToLower(args)
	var matches []memory.SessionInfo
	for _, s := range list {
		if strings.Contains(strings.ToLower(s.Title), query) || strings.Contains(strings.ToLower(s.Preview), query) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return fmt.Sprintf("No sessions matching %q. Use /sessions to see all.", args), nil
	case 1:
		return h.switchTo(ctx, base, matches[0])
	}
	h.remember(base, matches)
	return sessionList(fmt.Sprintf("Multiple sessions match %q:\n", args), matches), nil
}

func (h *Handler) switchTo(ctx context.Context, base string, s memory.SessionInfo) (string, error) {
	if err := h.store.SetAlias(ctx, base, s.Key); err != nil {
		return "", err
	}
	return "Resumed session: " + titleOf(s), nil
}

func (h *Handler) clear(ctx context.Context, msg bus.InboundMessage, _ string) (string, error) {
	key, err := h.store.ResolveSessionKey(ctx, msg.SessionKey())
	if err != nil {
		return "", err
	}
	n, err := h.store.ClearSession(ctx, key)
	if err != nil {
		return "", err
	}
	h.forget(key)
	if n == 0 {
		return "Session is already empty.", nil
	}
	return fmt.Sprintf("Cleared %d messages from the current session.", n), nil
}

func (h *Handler) rename(ctx context.Context, msg bus.InboundMessage, args string) (string, error) {
	if args == "" {
		return "Usage: /rename <new title>", nil
	}
	key, err := h.store.ResolveSessionKey(ctx, msg.SessionKey())
	if err != nil {
		return "", err
	}
	if err := h.store.SetTitle(ctx, key, args); err != nil {
		if errors.Is(err, memory.ErrSessionNotFound) {
			return "Could not rename: session not found.", nil
		}
		return "", err
	}
	return fmt.Sprintf("Session renamed to %q.", args), nil
}

func (h *Handler) status(ctx context.Context, msg bus.InboundMessage, _ string) (string, error) {
	base := msg.SessionKey()
	key, err := h.store.ResolveSessionKey(ctx, base)
	if err != nil {
		return "", err
	}
	list, err := h.store.ListSessions(ctx, base)
	if err != nil {
		return "", err
	}
	title, count := "Default", 0
	for _, s := range list {
		if s.Active {
			title, count = titleOf(s), s.MessageCount
			break
		}
	}
	lines := []string{
		"**Session Status:**\n",
		"Title: " + title,
		fmt.Sprintf("Messages: %d", count),
		"Channel: " + msg.Channel,
		"Session key: " + key,
		"Backend: " + agents.NormalizeName(h.settings.Get().Agent.Backend, agents.DefaultBackend),
	}
	if key != base {
		lines = append(lines, "Base key: "+base)
	}
	return strings.Join(lines, "\n"), nil
}

func (h *Handler) delete(ctx context.Context, msg bus.InboundMessage, _ string) (string, error) {
	base := msg.SessionKey()
	key, err := h.store.ResolveSessionKey(ctx, base)
	if err != nil {
		return "", err
	}
	deleted, err := h.store.DeleteSession(ctx, key)
	if err != nil {
		return "", err
	}
	h.forget(key)
	if err := h.store.RemoveAlias(ctx, base); err != nil {
		return "", err
	}
	h.remember(base, nil)
	if !deleted {
		return "No session to delete.", nil
	}
	return "Session deleted. Your next message will start a fresh conversation.", nil
}

func (h *Handler) backends(context.Context, bus.InboundMessage, string) (string, error) {
	active := agents.NormalizeName(h.settings.Get().Agent.Backend, agents.DefaultBackend)
	lines := []string{"**Available Backends:**\n"}
	for _, info := range agents.Infos() {
		marker := ""
		if info.Name == active {
			marker = " (active)"
		}
		lines = append(lines,
			fmt.Sprintf("- **%s** (`%s`)%s: %s", info.DisplayName, info.Name, marker, info.Capabilities),
			"  "+info.Description)
	}
	lines = append(lines, "\nUse /backend <name> to switch.")
	return strings.Join(lines, "\n"), nil
}

func (h *Handler) backend(_ context.Context, _ bus.InboundMessage, args string) (string, error) {
	current := agents.NormalizeName(h.settings.Get().Agent.Backend, agents.DefaultBackend)
	if args == "" {
		info, err := agents.Lookup(current)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Current backend: **%s** (`%s`)\nCapabilities: %s", info.DisplayName, info.Name, info.Capabilities), nil
	}

	name := agents.NormalizeName(args, "")
	if name == "" {
		choices := make([]string, 0, len(agents.Names()))
		for _, n := range agents.Names() {
			choices = append(choices, "`"+n+"`")
		}
		return fmt.Sprintf("Unknown backend `%s`. Available: %s", args, strings.Join(choices, ", ")), nil
	}
	if name == current {
		return fmt.Sprintf("Already using `%s`.", name), nil
	}
	if err := h.settings.Update(func(c *config.Config) { c.Agent.Backend = name }); err != nil {
		return "", fmt.Errorf("save settings: %w", err)
	}
	info, _ := agents.Lookup(name)
	return fmt.Sprintf("Switched backend to **%s** (`%s`).", info.DisplayName, info.Name), nil
}

func (h *Handler) model(_ context.Context, _ bus.InboundMessage, args string) (string, error) {
	cfg := h.settings.Get()
	provider := cfg.LLM.Provider
	if args == "" {
		display := "default"
		if cfg.LLM.Model != "" {
			display = "`" + cfg.LLM.Model + "`"
		}
		return fmt.Sprintf("Current model for provider `%s`: %s", provider, display), nil
	}
	if err := h.settings.Update(func(c *config.Config) { c.LLM.Model = args }); err != nil {
		return "", fmt.Errorf("save settings: %w", err)
	}
	return fmt.Sprintf("Model for provider `%s` updated to **%s**.", provider, h.settings.Get().LLM.Model), nil
}

func (h *Handler) tools(context.Context, bus.InboundMessage, string) (string, error) {
	info, err := agents.Lookup(agents.NormalizeName(h.settings.Get().Agent.Backend, agents.DefaultBackend))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Backend: **%s** (`%s`)\nCapabilities: %s\nFast-path commands: %d\nDesktop actions: %s",
		info.DisplayName, info.Name, info.Capabilities, len(intent.Rules()), strings.Join(desktop.Actions(), ", ")), nil
}

const helpText = `**Mudabbir Commands:**

/new - Start a fresh conversation
/sessions - List your conversation sessions
/resume <n> - Resume session #n from the list
/resume <text> - Search and resume a session by title
/clear - Clear the current session history
/rename <title> - Rename the current session
/status - Show current session info
/delete - Delete the current session
/backend - Show or switch agent backend
/backends - List available backends
/model - Show or set model for active provider
/tools - Show backend capabilities and desktop actions
/help - Show this help message

_Tip: Use !command instead of /command on channels where / is intercepted._`

func (h *Handler) help(context.Context, bus.InboundMessage, string) (string, error) {
	return helpText, nil
}

func (h *Handler) remember(base string, list []memory.SessionInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if list == nil {
		delete(h.lastShown, base)
		return
	}
	h.lastShown[base] = list
}

func (h *Handler) shown(base string) []memory.SessionInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastShown[base]
}

func sessionList(header string, list []memory.SessionInfo) string {
	lines := []string{header}
	for i, s := range list {
		marker := ""
		if s.Active {
			marker = " (active)"
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%d msgs)%s", i+1, titleOf(s), s.MessageCount, marker))
	}
	lines = append(lines, "\nUse /resume <number> to switch.")
	return strings.Join(lines, "\n")
}

func titleOf(s memory.SessionInfo) string {
	if s.Title == "" {
		return "New Chat"
	}
	return s.Title
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
