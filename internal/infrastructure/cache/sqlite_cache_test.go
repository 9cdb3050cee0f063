package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/voxa/internal/domain"
)

func newTestCache(t *testing.T) *SQLiteCache {
	t.Helper()
	store, err := NewSQLiteCache(filepath.Join(t.TempDir(), "intents.db"))
	if err != nil {
		t.Fatalf("NewSQLiteCache() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func entry(key string, createdAt time.Time, ttl time.Duration) domain.CacheEntry {
	return domain.CacheEntry{
		Key:       key,
		Utterance: "open chrome",
		Classification: domain.Classification{
			Intent:     domain.IntentOpenApp,
			Entities:   map[string]any{"app_name": "chrome"},
			Confidence: 0.92,
		},
		CreatedAt: createdAt,
		TTL:       ttl,
	}
}

func TestSQLiteCacheRoundTrip(t *testing.T) {
	store := newTestCache(t)
	now := time.Now().Truncate(time.Second)

	want := entry("k1", now, time.Hour)
	if err := store.Set(want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := store.Get("k1", now)
	if !ok {
		t.Fatal("Get() missed a fresh entry")
	}
	if diff := cmp.Diff(want.Classification, got.Classification); diff != "" {
		t.Fatalf("classification mismatch (-want +got):\n%s", diff)
	}
	if got.Utterance != want.Utterance {
		t.Fatalf("utterance = %q, want %q", got.Utterance, want.Utterance)
	}
	if got.TTL != time.Hour {
		t.Fatalf("ttl = %v, want 1h", got.TTL)
	}
}

func TestSQLiteCacheMissOnUnknownKey(t *testing.T) {
	store := newTestCache(t)
	if _, ok := store.Get("missing", time.Now()); ok {
		t.Fatal("Get() should miss for unknown key")
	}
}

func TestSQLiteCacheExpiredEntryIsDeleted(t *testing.T) {
	store := newTestCache(t)
	now := time.Now()

	if err := store.Set(entry("old", now.Add(-2*time.Hour), time.Hour)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, ok := store.Get("old", now); ok {
		t.Fatal("expired entry must be a miss")
	}

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expired row should be gone, have %d entries", len(entries))
	}
}

func TestSQLiteCacheReplaceOnSameKey(t *testing.T) {
	store := newTestCache(t)
	now := time.Now()

	first := entry("k1", now, time.Hour)
	if err := store.Set(first); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	second := first
	second.Classification.Intent = domain.IntentCloseApp
	if err := store.Set(second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := store.Get("k1", now)
	if !ok {
		t.Fatal("Get() missed after replace")
	}
	if got.Classification.Intent != domain.IntentCloseApp {
		t.Fatalf("intent = %q, want replacement", got.Classification.Intent)
	}

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
}

func TestSQLiteCacheEntriesNewestFirst(t *testing.T) {
	store := newTestCache(t)
	now := time.Now()

	if err := store.Set(entry("older", now.Add(-time.Minute), time.Hour)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(entry("newer", now, time.Hour)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Key != "newer" {
		t.Fatalf("unexpected order: %+v", entries)
	}
}

func TestSQLiteCacheClear(t *testing.T) {
	store := newTestCache(t)

	if err := store.Set(entry("k1", time.Now(), time.Hour)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %d after clear, want 0", len(entries))
	}
}

func TestMemoryCacheHonorsExpiry(t *testing.T) {
	store := NewMemoryCache()
	now := time.Now()

	if err := store.Set(entry("k1", now.Add(-2*time.Hour), time.Hour)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok := store.Get("k1", now); ok {
		t.Fatal("expired entry must be a miss")
	}

	if err := store.Set(entry("k2", now, time.Hour)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok := store.Get("k2", now); !ok {
		t.Fatal("fresh entry must be a hit")
	}
}
