package fastpath

import (
	"strings"
	"sync"

	"mudabbir/internal/intent"
)

// Entities are the things a session last referred to, used to fill in
// elliptical follow-ups such as "restart the service".
type Entities struct {
	LastApp     string
	LastService string
}

// SessionStore owns per-session pending confirmations and entity memory.
// The mutex only guards the maps; turns within one session are serialized by
// the caller.
type SessionStore struct {
	mu       sync.Mutex
	pending  map[string]intent.Resolution
	entities map[string]Entities
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		pending:  make(map[string]intent.Resolution),
		entities: make(map[string]Entities),
	}
}

// Pending returns the resolution awaiting confirmation for key.
func (s *SessionStore) Pending(key string) (intent.Resolution, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.pending[key]
	return res, ok
}

// SetPending stores a snapshot of res unless one is already pending. It
// reports whether res was stored.
func (s *SessionStore) SetPending(key string, res intent.Resolution) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pending[key]; exists {
		return false
	}
	s.pending[key] = res.Clone()
	return true
}

// TakePending removes and returns the pending resolution for key.
func (s *SessionStore) TakePending(key string) (intent.Resolution, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.pending[key]
	delete(s.pending, key)
	return res, ok
}

func (s *SessionStore) Entities(key string) Entities {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entities[key]
}

// Remember records entity references from a successful call. Values reported
// by the executor win over the request parameters.
func (s *SessionStore) Remember(key, action string, params, result map[string]any) {
	app := firstString(result, "query", "top_app")
	service := ""
	if name := firstString(result, "name"); name != "" {
		if action == "service_tools" {
			service = name
		} else if app == "" {
			app = name
		}
	}
	switch action {
	case "service_tools":
		if service == "" {
			service = firstString(params, "name")
		}
	case "close_app":
		if app == "" {
			app = firstString(params, "process_name")
		}
	default:
		if app == "" {
			app = firstString(params, "query")
		}
	}
	if app == "" && service == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entities[key]
	if app != "" {
		e.LastApp = app
	}
	if service != "" {
		e.LastService = service
	}
	s.entities[key] = e
}

// Forget drops all state for key.
func (s *SessionStore) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
	delete(s.entities, key)
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
