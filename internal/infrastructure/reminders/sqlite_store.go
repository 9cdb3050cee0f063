// Package reminders persists personal reminders in a SQLite database under
// the VOXA home directory.
package reminders

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/pkg/filesystem"
	"github.com/doeshing/voxa/internal/ports"
)

// SQLiteStore implements ports.ReminderStore.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore creates (or opens) the reminders database. An empty path
// defaults to ~/.voxa/reminders.db.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = filepath.Join(filesystem.UserHomeDir(), ".voxa", "reminders.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS reminders (
		id TEXT PRIMARY KEY,
		text TEXT,
		due_at TEXT,
		created_at TEXT,
		done INTEGER
	);`)
	return err
}

// Add implements ports.ReminderStore.
func (s *SQLiteStore) Add(reminder domain.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO reminders (id, text, due_at, created_at, done) VALUES (?, ?, ?, ?, ?)`,
		reminder.ID,
		reminder.Text,
		reminder.DueAt.Format(time.RFC3339),
		reminder.CreatedAt.Format(time.RFC3339),
		boolToInt(reminder.Done),
	)
	return err
}

// List implements ports.ReminderStore, soonest due first.
func (s *SQLiteStore) List() ([]domain.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, text, due_at, created_at, done FROM reminders ORDER BY datetime(due_at) ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		var rec domain.Reminder
		var dueAt, createdAt string
		var done int
		if err := rows.Scan(&rec.ID, &rec.Text, &dueAt, &createdAt, &done); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, dueAt); err == nil {
			rec.DueAt = t
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = t
		}
		rec.Done = done == 1
		reminders = append(reminders, rec)
	}
	return reminders, rows.Err()
}

// Complete implements ports.ReminderStore.
func (s *SQLiteStore) Complete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`UPDATE reminders SET done = 1 WHERE id = ?`, id)
	return err
}

// Close implements ports.ReminderStore.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.ReminderStore = (*SQLiteStore)(nil)
