package domain

import "time"

// HistoryEntry captures one dispatched command and its outcome. History is
// kept in memory only; entries disappear on restart.
type HistoryEntry struct {
	Seq       uint64          `json:"seq"`
	Command   Command         `json:"command"`
	Result    ExecutionResult `json:"result"`
	Timestamp time.Time       `json:"timestamp"`
}

// CacheEntry stores a resolved classification keyed by utterance hash.
type CacheEntry struct {
	Key            string         `json:"key"`
	Utterance      string         `json:"utterance"`
	Classification Classification `json:"classification"`
	CreatedAt      time.Time      `json:"created_at"`
	TTL            time.Duration  `json:"ttl"`
}

// Expired reports whether the entry is past its lifetime at the given
// moment.
func (e CacheEntry) Expired(now time.Time) bool {
	return now.Sub(e.CreatedAt) > e.TTL
}

// Reminder is a persisted personal reminder.
type Reminder struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	DueAt     time.Time `json:"due_at"`
	CreatedAt time.Time `json:"created_at"`
	Done      bool      `json:"done"`
}
