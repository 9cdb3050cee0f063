// Package dispatch routes validated commands to their handlers. Dispatch
// never fails outward: every failure path is a failed ExecutionResult, and
// every outcome lands in the bounded in-memory history.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// ErrConfirmationRequired marks the distinguished confirmation-needed
// outcome. The handler is not invoked for such a result.
const ErrConfirmationRequired = "Confirmation required"

// Stats exposes the dispatcher's monotonic counters.
type Stats struct {
	Executed        uint64    `json:"executed"`
	Failed          uint64    `json:"failed"`
	LastCommandTime time.Time `json:"last_command_time"`
	HistorySize     int       `json:"history_size"`
}

// Service implements command dispatching with a confirmation gate,
// timeout-bounded execution and undo support.
type Service struct {
	Validator ports.Validator
	Registry  ports.HandlerRegistry
	Logger    ports.Logger
	Timeout   time.Duration

	mu       sync.Mutex
	history  *ring
	seq      uint64
	executed uint64
	failed   uint64
	lastAt   time.Time
}

// NewService builds a dispatcher with the given history capacity.
func NewService(validator ports.Validator, registry ports.HandlerRegistry, log ports.Logger, timeout time.Duration, historyLimit int) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		Validator: validator,
		Registry:  registry,
		Logger:    log,
		Timeout:   timeout,
		history:   newRing(historyLimit),
	}
}

// Dispatch validates and executes one command. The result is recorded in
// history regardless of outcome.
func (s *Service) Dispatch(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	return s.dispatch(ctx, cmd, false)
}

// DispatchConfirmed executes a command whose confirmation requirement has
// been explicitly satisfied by the user. Validation still applies; only
// the confirmation gate is skipped.
func (s *Service) DispatchConfirmed(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	return s.dispatch(ctx, cmd, true)
}

func (s *Service) dispatch(ctx context.Context, cmd domain.Command, confirmed bool) domain.ExecutionResult {
	start := time.Now()
	result := s.run(ctx, cmd, confirmed)
	result.ExecutionTime = time.Since(start)
	result.Timestamp = time.Now()
	s.record(cmd, result)
	return result
}

func (s *Service) run(ctx context.Context, cmd domain.Command, confirmed bool) domain.ExecutionResult {
	if validation := s.Validator.Validate(cmd); !validation.Valid() {
		s.Logger.Info("command rejected", map[string]interface{}{
			"intent":  cmd.Intent,
			"reasons": strings.Join(validation.Reasons, "; "),
		})
		return failure("Command validation failed", strings.Join(validation.Reasons, "; "))
	}

	handler, ok := s.Registry.Lookup(cmd.Intent)
	if !ok {
		return failure("I don't know how to do that yet", fmt.Sprintf("no handler for intent %q", cmd.Intent))
	}

	if cmd.RequiresConfirmation && !confirmed {
		return domain.ExecutionResult{
			Success: false,
			Message: fmt.Sprintf("Command %q requires confirmation. Please confirm to proceed.", cmd.Intent),
			Error:   ErrConfirmationRequired,
			Data:    map[string]any{"requires_confirmation": true},
		}
	}

	return s.execute(ctx, handler, cmd)
}

// execute runs the handler in a worker goroutine and waits up to the
// configured deadline. An abandoned handler may still finish its side
// effects after the deadline; only the waiting stops.
func (s *Service) execute(ctx context.Context, handler ports.Handler, cmd domain.Command) domain.ExecutionResult {
	execCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	done := make(chan domain.ExecutionResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- failure("Something went wrong", fmt.Sprintf("handler panic: %v", r))
			}
		}()
		done <- handler.Execute(execCtx, cmd)
	}()

	select {
	case result := <-done:
		return result
	case <-execCtx.Done():
		s.Logger.Warn("handler timed out", map[string]interface{}{
			"intent":  cmd.Intent,
			"timeout": s.Timeout.String(),
		})
		return failure("That took too long, I gave up waiting", "timeout")
	}
}

// UndoLast reverses the most recent successful command when its intent is
// reversible. The inverse command goes through the full dispatch pipeline
// so it is re-validated.
func (s *Service) UndoLast(ctx context.Context) domain.ExecutionResult {
	s.mu.Lock()
	var last *domain.HistoryEntry
	for i := len(s.history.entries) - 1; i >= 0; i-- {
		if s.history.entries[i].Result.Success {
			entry := s.history.entries[i]
			last = &entry
			break
		}
	}
	s.mu.Unlock()

	if last == nil {
		return failure("There is nothing to undo", "no successful command in history")
	}

	inverse, ok := domain.UndoPairs[last.Command.Intent]
	if !ok {
		return failure("I can't undo that", fmt.Sprintf("intent %q is not reversible", last.Command.Intent))
	}

	entities := make(map[string]any, len(last.Command.Entities))
	if inverse != domain.IntentPauseMusic {
		for k, v := range last.Command.Entities {
			entities[k] = v
		}
	}

	undo := domain.Command{
		Intent:               inverse,
		Entities:             entities,
		Confidence:           last.Command.Confidence,
		RequiresConfirmation: false,
		RawText:              undoRawText(inverse, last.Command),
		Source:               last.Command.Source,
		ProcessingMethod:     last.Command.ProcessingMethod,
		Timestamp:            time.Now(),
	}
	return s.Dispatch(ctx, undo)
}

// History returns up to limit entries, newest first. limit <= 0 returns
// everything retained.
func (s *Service) History(limit int) []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.recent(limit)
}

// ClearHistory drops all retained entries. Counters are monotonic and keep
// their values.
func (s *Service) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.clear()
}

// Stats returns a snapshot of the dispatch counters.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Executed:        s.executed,
		Failed:          s.failed,
		LastCommandTime: s.lastAt,
		HistorySize:     s.history.size(),
	}
}

func (s *Service) record(cmd domain.Command, result domain.ExecutionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.executed++
	if !result.Success {
		s.failed++
	}
	s.lastAt = time.Now()
	s.history.append(domain.HistoryEntry{
		Seq:       s.seq,
		Command:   cmd,
		Result:    result,
		Timestamp: s.lastAt,
	})
}

// ConfirmationNeeded reports whether a result is the distinguished
// confirmation-needed outcome.
func ConfirmationNeeded(result domain.ExecutionResult) bool {
	return !result.Success && result.Error == ErrConfirmationRequired
}

func undoRawText(inverse string, original domain.Command) string {
	switch inverse {
	case domain.IntentCloseApp:
		return "Close " + original.StringEntity("app_name")
	case domain.IntentOpenApp:
		return "Open " + original.StringEntity("app_name")
	case domain.IntentPauseMusic:
		return "Pause music"
	}
	return original.RawText
}

func failure(message, reason string) domain.ExecutionResult {
	return domain.ExecutionResult{
		Success: false,
		Message: message,
		Error:   reason,
	}
}
