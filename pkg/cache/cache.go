// Package cache persists analysis payloads in a small sqlite database so
// repeated runs against the same URL can skip the browser entirely. The cache
// is advisory: every error degrades to a miss (reads) or a dropped write, and
// concurrent runs racing on the same key simply overwrite each other with the
// same deterministic payload.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	sql *sql.DB
}

// Open creates the database (and its parent directory) if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS analysis_cache (
  key        TEXT PRIMARY KEY,
  url        TEXT NOT NULL,
  tool       TEXT NOT NULL,
  payload    TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  expires_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cache_expiry ON analysis_cache(expires_at);
CREATE INDEX IF NOT EXISTS idx_cache_url ON analysis_cache(url);
	`); err != nil {
		return nil, err
	}
	return &Store{sql: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}

// Key derives a deterministic cache key from the tool name and target URL.
func Key(tool, rawURL string) string {
	sum := sha256.Sum256([]byte(tool + "|" + rawURL))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached payload for key, or ok=false when absent or expired.
// Expired rows are deleted on the way out.
func (s *Store) Get(ctx context.Context, key string) (payload []byte, ok bool, err error) {
	var body, expiresStr string
	row := s.sql.QueryRowContext(ctx,
		"SELECT payload, expires_at FROM analysis_cache WHERE key = ?", key)
	if err := row.Scan(&body, &expiresStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	if time.Now().UTC().After(parseSQLiteTime(expiresStr)) {
		_, _ = s.sql.ExecContext(ctx, "DELETE FROM analysis_cache WHERE key = ?", key)
		return nil, false, nil
	}
	return []byte(body), true, nil
}

// parseSQLiteTime handles both the CURRENT_TIMESTAMP format and RFC3339,
// which is what we get back depending on who wrote the column.
func parseSQLiteTime(s string) time.Time {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

// Put stores a payload under key, replacing any previous row.
func (s *Store) Put(ctx context.Context, key, rawURL, tool string, payload []byte, ttl time.Duration) error {
	expires := time.Now().UTC().Add(ttl).Format("2006-01-02 15:04:05")
	_, err := s.sql.ExecContext(ctx, `
INSERT INTO analysis_cache(key, url, tool, payload, created_at, expires_at)
VALUES(?,?,?,?,CURRENT_TIMESTAMP,?)
ON CONFLICT(key) DO UPDATE SET
  url = excluded.url,
  tool = excluded.tool,
  payload = excluded.payload,
  created_at = CURRENT_TIMESTAMP,
  expires_at = excluded.expires_at`,
		key, rawURL, tool, string(payload), expires)
	return err
}

// Clear removes expired rows, or every row when all is true. Returns the
// number of rows deleted.
func (s *Store) Clear(ctx context.Context, all bool) (int64, error) {
	var res sql.Result
	var err error
	if all {
		res, err = s.sql.ExecContext(ctx, "DELETE FROM analysis_cache")
	} else {
		res, err = s.sql.ExecContext(ctx, "DELETE FROM analysis_cache WHERE expires_at < ?", time.Now().UTC().Format("2006-01-02 15:04:05"))
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Entry is one cached row as listed by Entries.
type Entry struct {
	Key       string
	URL       string
	Host      string
	Tool      string
	Payload   []byte
	Bytes     int
	CreatedAt time.Time
	ExpiresAt time.Time
	Expired   bool
}

// Entries lists every cached row, newest first.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.sql.QueryContext(ctx,
		"SELECT key, url, tool, payload, created_at, expires_at FROM analysis_cache ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now().UTC()
	var out []Entry
	for rows.Next() {
		var e Entry
		var body, createdStr, expiresStr string
		if err := rows.Scan(&e.Key, &e.URL, &e.Tool, &body, &createdStr, &expiresStr); err != nil {
			return nil, err
		}
		e.Payload = []byte(body)
		e.Bytes = len(body)
		e.CreatedAt = parseSQLiteTime(createdStr)
		e.ExpiresAt = parseSQLiteTime(expiresStr)
		e.Expired = now.After(e.ExpiresAt)
		if u, perr := url.Parse(e.URL); perr == nil {
			e.Host = u.Hostname()
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
