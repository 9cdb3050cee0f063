package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// PersonalHandler manages reminders and timers. Reminders are persisted;
// timers live only for the process lifetime.
type PersonalHandler struct {
	Store  ports.ReminderStore
	Audio  ports.Audio
	Logger ports.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewPersonalHandler builds the handler.
func NewPersonalHandler(store ports.ReminderStore, audio ports.Audio, log ports.Logger) *PersonalHandler {
	return &PersonalHandler{
		Store:  store,
		Audio:  audio,
		Logger: log,
		timers: map[string]*time.Timer{},
	}
}

// SetReminder handles the set_reminder intent.
func (h *PersonalHandler) SetReminder(_ context.Context, cmd domain.Command) domain.ExecutionResult {
	text := strings.TrimSpace(cmd.StringEntity("message"))
	if text == "" {
		return failed("I need to know what to remind you about", "missing message entity")
	}

	due := time.Now()
	if value, ok := cmd.NumberEntity("time_value"); ok && value > 0 {
		due = due.Add(entityDuration(value, cmd.StringEntity("time_unit")))
	} else {
		// no explicit time, default to an hour out
		due = due.Add(time.Hour)
	}

	reminder := domain.Reminder{
		ID:        uuid.NewString(),
		Text:      text,
		DueAt:     due,
		CreatedAt: time.Now(),
	}
	if err := h.Store.Add(reminder); err != nil {
		return failed("I couldn't save the reminder", err.Error())
	}

	h.Logger.Info("reminder saved", map[string]interface{}{"id": reminder.ID, "due_at": due.Format(time.RFC3339)})
	return success(
		fmt.Sprintf("I'll remind you to %s", text),
		map[string]any{"id": reminder.ID, "due_at": due.Format(time.RFC3339)})
}

// SetTimer handles the set_timer intent. The timer fires asynchronously
// and announces itself through the speech engine.
func (h *PersonalHandler) SetTimer(_ context.Context, cmd domain.Command) domain.ExecutionResult {
	value, ok := cmd.NumberEntity("time_value")
	if !ok || value <= 0 {
		return failed("I need a duration for the timer", "missing or invalid time_value entity")
	}
	duration := entityDuration(value, cmd.StringEntity("time_unit"))

	id := uuid.NewString()
	timer := time.AfterFunc(duration, func() {
		h.mu.Lock()
		delete(h.timers, id)
		h.mu.Unlock()
		if h.Audio != nil {
			_ = h.Audio.Speak("Your timer is up")
		}
	})

	h.mu.Lock()
	h.timers[id] = timer
	h.mu.Unlock()

	return success(
		fmt.Sprintf("Timer set for %s", spokenDuration(duration)),
		map[string]any{"id": id, "duration": duration.String()})
}

// ActiveTimers reports how many timers are pending.
func (h *PersonalHandler) ActiveTimers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.timers)
}

// StopAll cancels pending timers, used at shutdown.
func (h *PersonalHandler) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, timer := range h.timers {
		timer.Stop()
		delete(h.timers, id)
	}
}

func entityDuration(value float64, unit string) time.Duration {
	if strings.HasPrefix(strings.ToLower(unit), "hour") {
		return time.Duration(value * float64(time.Hour))
	}
	return time.Duration(value * float64(time.Minute))
}

func spokenDuration(d time.Duration) string {
	if d >= time.Hour {
		return fmt.Sprintf("%.0f hours", d.Hours())
	}
	return fmt.Sprintf("%.0f minutes", d.Minutes())
}
