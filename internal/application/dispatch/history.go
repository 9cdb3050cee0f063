package dispatch

import "github.com/doeshing/voxa/internal/domain"

// ring is a fixed-capacity history buffer. When full, appending evicts the
// oldest entry. Not safe for concurrent use; the Service serializes access.
type ring struct {
	entries []domain.HistoryEntry
	limit   int
}

func newRing(limit int) *ring {
	if limit <= 0 {
		limit = 100
	}
	return &ring{limit: limit}
}

func (r *ring) append(entry domain.HistoryEntry) {
	r.entries = append(r.entries, entry)
	if len(r.entries) > r.limit {
		r.entries = r.entries[len(r.entries)-r.limit:]
	}
}

// recent returns up to limit entries, newest first. limit <= 0 means all.
func (r *ring) recent(limit int) []domain.HistoryEntry {
	n := len(r.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.HistoryEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.entries[i])
	}
	return out
}

func (r *ring) clear() {
	r.entries = nil
}

func (r *ring) size() int {
	return len(r.entries)
}
