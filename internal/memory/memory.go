// Package memory persists conversation history per session key and tracks
// session aliases, which is how /new and /resume switch conversations without
// the channel changing its key.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	titleRunes   = 50
	previewRunes = 80
)

type Message struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

type SessionInfo struct {
	Key          string
	Title        string
	Preview      string
	MessageCount int
	Active       bool
	UpdatedAt    time.Time
}

// Store is implemented by the in-memory and SQLite backends.
type Store interface {
	AddMessage(ctx context.Context, sessionKey, role, content string) error
	// History returns the last limit messages, oldest first. limit <= 0 means all.
	History(ctx context.Context, sessionKey string, limit int) ([]Message, error)
	// ListSessions returns the sessions that belong to a chat: baseKey itself
	// and any key derived from it, most recently updated first.
	ListSessions(ctx context.Context, baseKey string) ([]SessionInfo, error)
	// ResolveSessionKey maps a channel's base key to the session currently
	// in use, following an alias when one is set.
	ResolveSessionKey(ctx context.Context, baseKey string) (string, error)
	SetAlias(ctx context.Context, baseKey, target string) error
	RemoveAlias(ctx context.Context, baseKey string) error
	SetTitle(ctx context.Context, sessionKey, title string) error
	DeleteSession(ctx context.Context, sessionKey string) (bool, error)
	ClearSession(ctx context.Context, sessionKey string) (int, error)
	// Search returns up to k messages of the session ranked by token overlap
	// with query.
	Search(ctx context.Context, sessionKey, query string, k int) ([]string, error)
	Close() error
}

// Open returns the store selected by driver: "memory" or "sqlite".
func Open(driver, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "memory":
		return NewMemStore(), nil
	case "sqlite":
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("unknown memory driver %q", driver)
}

func belongsTo(key, baseKey string) bool {
	return key == baseKey || strings.HasPrefix(key, baseKey+":")
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func defaultTitle(content string) string { return truncate(content, titleRunes) }

// rank orders docs by token overlap with query, keeping at most k.
func rank(docs []string, query string, k int) []string {
	if len(docs) == 0 || strings.TrimSpace(query) == "" || k <= 0 {
		return nil
	}
	qset := tokenSet(query)
	type scored struct {
		text  string
		score int
	}
	var sc []scored
	for _, d := range docs {
		if d == "" {
			continue
		}
		if score := overlap(qset, tokenSet(d)); score > 0 {
			sc = append(sc, scored{text: d, score: score})
		}
	}
	sort.SliceStable(sc, func(i, j int) bool {
		if sc[i].score == sc[j].score {
			return len(sc[i].text) < len(sc[j].text)
		}
		return sc[i].score > sc[j].score
	})
	if len(sc) > k {
		sc = sc[:k]
	}
	out := make([]string, 0, len(sc))
	for _, s := range sc {
		out = append(out, s.text)
	}
	return out
}

func tokenSet(s string) map[string]struct{} {
	parts := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, ".,;:!?()[]{}\"'؟،")
		if len([]rune(p)) < 2 {
			continue
		}
		set[p] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	count := 0
	for k := range a {
		if _, ok := b[k]; ok {
			count++
		}
	}
	return count
}
