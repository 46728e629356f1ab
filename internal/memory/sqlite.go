package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_key TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_key TEXT NOT NULL,
	role        TEXT NOT NULL,
	content     TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_key, id);
CREATE TABLE IF NOT EXISTS session_aliases (
	base_key   TEXT PRIMARY KEY,
	target_key TEXT NOT NULL
);
`

// SQLiteStore persists sessions in a single SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create memory dir: %w", err)
	}
	dsn := path + "?" + url.Values{
		"_pragma": []string{
			"busy_timeout(10000)",
			"journal_mode(WAL)",
			"synchronous(NORMAL)",
		},
	}.Encode()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		return nil, fmt.Errorf("init memory schema: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) AddMessage(ctx context.Context, key, role, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	now := s.now().UnixNano()
	title := ""
	if role == RoleUser {
		title = defaultTitle(content)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (session_key, title, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(session_key) DO UPDATE SET
			updated_at = excluded.updated_at,
			title = CASE WHEN sessions.title = '' THEN excluded.title ELSE sessions.title END`,
		key, title, now, now); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO messages (session_key, role, content, created_at) VALUES (?, ?, ?, ?)`,
		key, role, content, now); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) History(ctx context.Context, key string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content, created_at FROM (
			SELECT id, role, content, created_at FROM messages
			WHERE session_key = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var ts int64
		if err := rows.Scan(&m.Role, &m.Content, &ts); err != nil {
			return nil, err
		}
		m.CreatedAt = time.Unix(0, ts)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ListSessions(ctx context.Context, baseKey string) ([]SessionInfo, error) {
	active, err := s.ResolveSessionKey(ctx, baseKey)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.session_key, s.title, s.updated_at,
			(SELECT COUNT(*) FROM messages m WHERE m.session_key = s.session_key),
			COALESCE((SELECT content FROM messages m WHERE m.session_key = s.session_key ORDER BY id DESC LIMIT 1), '')
		FROM sessions s
		WHERE s.session_key = ? OR substr(s.session_key, 1, ?) = ?
		ORDER BY s.updated_at DESC, s.session_key ASC`,
		baseKey, utf8.RuneCountInString(baseKey)+1, baseKey+":")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var ts int64
		var last string
		if err := rows.Scan(&info.Key, &info.Title, &ts, &info.MessageCount, &last); err != nil {
			return nil, err
		}
		info.UpdatedAt = time.Unix(0, ts)
		info.Preview = truncate(last, previewRunes)
		info.Active = info.Key == active
		out = append(out, info)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ResolveSessionKey(ctx context.Context, baseKey string) (string, error) {
	var target string
	err := s.db.QueryRowContext(ctx, `SELECT target_key FROM session_aliases WHERE base_key = ?`, baseKey).Scan(&target)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return baseKey, nil
	case err != nil:
		return "", fmt.Errorf("resolve session key: %w", err)
	case target == "":
		return baseKey, nil
	}
	return target, nil
}

func (s *SQLiteStore) SetAlias(ctx context.Context, baseKey, target string) error {
	if target == baseKey {
		return s.RemoveAlias(ctx, baseKey)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_aliases (base_key, target_key) VALUES (?, ?)
		ON CONFLICT(base_key) DO UPDATE SET target_key = excluded.target_key`, baseKey, target)
	if err != nil {
		return fmt.Errorf("set alias: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RemoveAlias(ctx context.Context, baseKey string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_aliases WHERE base_key = ?`, baseKey); err != nil {
		return fmt.Errorf("remove alias: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SetTitle(ctx context.Context, key, title string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET title = ? WHERE session_key = ?`, strings.TrimSpace(title), key)
	if err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, key string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_key = ?`, key); err != nil {
		return false, fmt.Errorf("delete messages: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE session_key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, tx.Commit()
}

func (s *SQLiteStore) ClearSession(ctx context.Context, key string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE session_key = ?`, key)
	if err != nil {
		return 0, fmt.Errorf("clear session: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *SQLiteStore) Search(ctx context.Context, key, query string, k int) ([]string, error) {
	msgs, err := s.History(ctx, key, 0)
	if err != nil {
		return nil, err
	}
	docs := make([]string, len(msgs))
	for i, m := range msgs {
		docs[i] = m.Content
	}
	return rank(docs, query, k), nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
