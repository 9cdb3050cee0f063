// Package cache persists resolved classifications in a SQLite database so
// intent resolution survives restarts. Expired or malformed rows behave
// as misses.
package cache

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/pkg/filesystem"
	"github.com/doeshing/voxa/internal/ports"
)

// SQLiteCache implements ports.CacheRepository on modernc.org/sqlite.
type SQLiteCache struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteCache creates (or opens) the cache database at the given path.
// An empty path defaults to ~/.voxa/cache/intents.db.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	if path == "" {
		path = filepath.Join(filesystem.UserHomeDir(), ".voxa", "cache", "intents.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteCache{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (c *SQLiteCache) init() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS intent_cache (
		key TEXT PRIMARY KEY,
		utterance TEXT,
		classification TEXT,
		created_at TEXT,
		ttl_seconds INTEGER
	);`)
	return err
}

// Get implements ports.CacheRepository. Expired rows are deleted on sight
// and reported as misses.
func (c *SQLiteCache) Get(key string, now time.Time) (domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	row := c.db.QueryRow(
		`SELECT utterance, classification, created_at, ttl_seconds FROM intent_cache WHERE key = ?`, key)

	var utterance, raw, createdAt string
	var ttlSeconds int64
	if err := row.Scan(&utterance, &raw, &createdAt, &ttlSeconds); err != nil {
		return domain.CacheEntry{}, false
	}

	entry, err := decodeEntry(key, utterance, raw, createdAt, ttlSeconds)
	if err != nil {
		_, _ = c.db.Exec(`DELETE FROM intent_cache WHERE key = ?`, key)
		return domain.CacheEntry{}, false
	}
	if entry.Expired(now) {
		_, _ = c.db.Exec(`DELETE FROM intent_cache WHERE key = ?`, key)
		return domain.CacheEntry{}, false
	}
	return entry, true
}

// Set implements ports.CacheRepository.
func (c *SQLiteCache) Set(entry domain.CacheEntry) error {
	raw, err := json.Marshal(entry.Classification)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO intent_cache (key, utterance, classification, created_at, ttl_seconds)
		VALUES (?, ?, ?, ?, ?)`,
		entry.Key,
		entry.Utterance,
		string(raw),
		entry.CreatedAt.Format(time.RFC3339),
		int64(entry.TTL/time.Second),
	)
	return err
}

// Entries returns every stored entry, newest first. Malformed rows are
// skipped, not fatal.
func (c *SQLiteCache) Entries() ([]domain.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.Query(
		`SELECT key, utterance, classification, created_at, ttl_seconds FROM intent_cache
		ORDER BY datetime(created_at) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CacheEntry
	for rows.Next() {
		var key, utterance, raw, createdAt string
		var ttlSeconds int64
		if err := rows.Scan(&key, &utterance, &raw, &createdAt, &ttlSeconds); err != nil {
			continue
		}
		entry, err := decodeEntry(key, utterance, raw, createdAt, ttlSeconds)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear implements ports.CacheRepository.
func (c *SQLiteCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.db.Exec(`DELETE FROM intent_cache`)
	return err
}

// Close implements ports.CacheRepository.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

func decodeEntry(key, utterance, raw, createdAt string, ttlSeconds int64) (domain.CacheEntry, error) {
	var classification domain.Classification
	if err := json.Unmarshal([]byte(raw), &classification); err != nil {
		return domain.CacheEntry{}, err
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return domain.CacheEntry{}, err
	}
	return domain.CacheEntry{
		Key:            key,
		Utterance:      utterance,
		Classification: classification,
		CreatedAt:      created,
		TTL:            time.Duration(ttlSeconds) * time.Second,
	}, nil
}

var _ ports.CacheRepository = (*SQLiteCache)(nil)
