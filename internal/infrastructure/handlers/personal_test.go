package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doeshing/voxa/internal/domain"
)

func TestSetReminderPersists(t *testing.T) {
	store := &stubReminderStore{}
	h := NewPersonalHandler(store, nil, testLogger())

	result := h.SetReminder(context.Background(), domain.Command{
		Intent: domain.IntentSetReminder,
		Entities: map[string]any{
			"message":    "water the plants",
			"time_value": float64(30),
			"time_unit":  "minutes",
		},
	})

	if !result.Success {
		t.Fatalf("SetReminder() failed: %+v", result)
	}
	if len(store.added) != 1 {
		t.Fatalf("stored %d reminders, want 1", len(store.added))
	}
	saved := store.added[0]
	if saved.Text != "water the plants" {
		t.Fatalf("text = %q", saved.Text)
	}
	if saved.ID == "" {
		t.Fatal("reminder must get an id")
	}
	until := time.Until(saved.DueAt)
	if until < 29*time.Minute || until > 31*time.Minute {
		t.Fatalf("due in %v, want about 30m", until)
	}
}

func TestSetReminderDefaultsToAnHour(t *testing.T) {
	store := &stubReminderStore{}
	h := NewPersonalHandler(store, nil, testLogger())

	result := h.SetReminder(context.Background(), domain.Command{
		Intent:   domain.IntentSetReminder,
		Entities: map[string]any{"message": "stretch"},
	})
	if !result.Success {
		t.Fatalf("SetReminder() failed: %+v", result)
	}

	until := time.Until(store.added[0].DueAt)
	if until < 59*time.Minute || until > 61*time.Minute {
		t.Fatalf("due in %v, want about 1h", until)
	}
}

func TestSetReminderRequiresText(t *testing.T) {
	h := NewPersonalHandler(&stubReminderStore{}, nil, testLogger())

	result := h.SetReminder(context.Background(), domain.Command{Intent: domain.IntentSetReminder})
	if result.Success {
		t.Fatal("expected failure without reminder text")
	}
}

func TestSetReminderStoreFailure(t *testing.T) {
	h := NewPersonalHandler(&stubReminderStore{addErr: errors.New("disk full")}, nil, testLogger())

	result := h.SetReminder(context.Background(), domain.Command{
		Intent:   domain.IntentSetReminder,
		Entities: map[string]any{"message": "backup"},
	})
	if result.Success {
		t.Fatal("expected failure when the store errors")
	}
}

func TestSetTimerTracksAndStops(t *testing.T) {
	h := NewPersonalHandler(&stubReminderStore{}, nil, testLogger())

	result := h.SetTimer(context.Background(), domain.Command{
		Intent:   domain.IntentSetTimer,
		Entities: map[string]any{"time_value": float64(5), "time_unit": "minutes"},
	})
	if !result.Success {
		t.Fatalf("SetTimer() failed: %+v", result)
	}
	if result.Message != "Timer set for 5 minutes" {
		t.Fatalf("message = %q", result.Message)
	}
	if h.ActiveTimers() != 1 {
		t.Fatalf("active timers = %d, want 1", h.ActiveTimers())
	}

	h.StopAll()
	if h.ActiveTimers() != 0 {
		t.Fatalf("active timers = %d after StopAll, want 0", h.ActiveTimers())
	}
}

func TestSetTimerRequiresDuration(t *testing.T) {
	h := NewPersonalHandler(&stubReminderStore{}, nil, testLogger())

	result := h.SetTimer(context.Background(), domain.Command{Intent: domain.IntentSetTimer})
	if result.Success {
		t.Fatal("expected failure without a duration")
	}
}

func TestEntityDuration(t *testing.T) {
	if got := entityDuration(5, "minutes"); got != 5*time.Minute {
		t.Errorf("entityDuration(5, minutes) = %v", got)
	}
	if got := entityDuration(2, "hours"); got != 2*time.Hour {
		t.Errorf("entityDuration(2, hours) = %v", got)
	}
	if got := entityDuration(1, "hour"); got != time.Hour {
		t.Errorf("entityDuration(1, hour) = %v", got)
	}
	if got := entityDuration(3, ""); got != 3*time.Minute {
		t.Errorf("entityDuration(3, empty) = %v, minutes are the default", got)
	}
}

type stubReminderStore struct {
	added  []domain.Reminder
	addErr error
}

func (s *stubReminderStore) Add(reminder domain.Reminder) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, reminder)
	return nil
}

func (s *stubReminderStore) List() ([]domain.Reminder, error) { return s.added, nil }
func (s *stubReminderStore) Complete(string) error            { return nil }
func (s *stubReminderStore) Close() error                     { return nil }
