package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type memSession struct {
	title    string
	messages []Message
	updated  time.Time
}

// MemStore keeps everything in process memory.
type MemStore struct {
	mu       sync.RWMutex
	sessions map[string]*memSession
	aliases  map[string]string
	now      func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		sessions: make(map[string]*memSession),
		aliases:  make(map[string]string),
		now:      time.Now,
	}
}

func (s *MemStore) AddMessage(_ context.Context, key, role, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		sess = &memSession{}
		s.sessions[key] = sess
	}
	now := s.now()
	if sess.title == "" && role == RoleUser {
		sess.title = defaultTitle(content)
	}
	sess.messages = append(sess.messages, Message{Role: role, Content: content, CreatedAt: now})
	sess.updated = now
	return nil
}

func (s *MemStore) History(_ context.Context, key string, limit int) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[key]
	if !ok {
		return nil, nil
	}
	msgs := sess.messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]Message(nil), msgs...), nil
}

func (s *MemStore) ListSessions(_ context.Context, baseKey string) ([]SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	active := s.resolveLocked(baseKey)
	var out []SessionInfo
	for key, sess := range s.sessions {
		if !belongsTo(key, baseKey) {
			continue
		}
		info := SessionInfo{
			Key:          key,
			Title:        sess.title,
			MessageCount: len(sess.messages),
			Active:       key == active,
			UpdatedAt:    sess.updated,
		}
		if n := len(sess.messages); n > 0 {
			info.Preview = truncate(sess.messages[n-1].Content, previewRunes)
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].Key < out[j].Key
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *MemStore) resolveLocked(baseKey string) string {
	if target, ok := s.aliases[baseKey]; ok && target != "" {
		return target
	}
	return baseKey
}

func (s *MemStore) ResolveSessionKey(_ context.Context, baseKey string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolveLocked(baseKey), nil
}

func (s *MemStore) SetAlias(_ context.Context, baseKey, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if target == baseKey {
		delete(s.aliases, baseKey)
		return nil
	}
	s.aliases[baseKey] = target
	return nil
}

func (s *MemStore) RemoveAlias(_ context.Context, baseKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.aliases, baseKey)
	return nil
}

func (s *MemStore) SetTitle(_ context.Context, key, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		return ErrSessionNotFound
	}
	sess.title = strings.TrimSpace(title)
	return nil
}

func (s *MemStore) DeleteSession(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[key]
	delete(s.sessions, key)
	return ok, nil
}

func (s *MemStore) ClearSession(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		return 0, nil
	}
	n := len(sess.messages)
	sess.messages = nil
	return n, nil
}

func (s *MemStore) Search(_ context.Context, key, query string, k int) ([]string, error) {
	s.mu.RLock()
	sess, ok := s.sessions[key]
	var docs []string
	if ok {
		for _, m := range sess.messages {
			docs = append(docs, m.Content)
		}
	}
	s.mu.RUnlock()
	return rank(docs, query, k), nil
}

func (s *MemStore) Close() error { return nil }
