// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like databases, HTTP clients, or audio tooling.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Resolver, Handler)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"time"

	"github.com/doeshing/voxa/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.voxa/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Resolver turns a raw utterance into a structured command. The source tag
// travels with the command so downstream policy can distinguish capture
// paths.
type Resolver interface {
	Resolve(ctx context.Context, utterance string, source domain.Source) (domain.Command, error)
	Stats() ResolverStats
}

// ResolverStats exposes counters for the resolution paths.
type ResolverStats struct {
	Remote   uint64 `json:"remote"`
	Cache    uint64 `json:"cache"`
	Fallback uint64 `json:"fallback"`
}

// Validator checks a resolved command against the validation policy.
// Implementations must be pure: no I/O, no mutation of the command.
type Validator interface {
	Validate(domain.Command) domain.ValidationResult
}

// Handler executes one intent. Implementations must honor context
// cancellation on long operations and report failures through the result,
// not panics.
type Handler interface {
	Execute(ctx context.Context, cmd domain.Command) domain.ExecutionResult
}

// HandlerRegistry maps intents to their handlers.
type HandlerRegistry interface {
	Lookup(intent string) (Handler, bool)
	Intents() []string
}

// CompletionClient classifies an utterance via a remote language model.
type CompletionClient interface {
	Classify(ctx context.Context, utterance string) (domain.Classification, error)
}

// CacheRepository persists resolved classifications across restarts.
// Expired entries behave as misses.
type CacheRepository interface {
	Get(key string, now time.Time) (domain.CacheEntry, bool)
	Set(entry domain.CacheEntry) error
	Entries() ([]domain.CacheEntry, error)
	Clear() error
	Close() error
}

// Audio abstracts speech capture and synthesis. Recognize blocks for up to
// the given timeout and reports ok=false when nothing usable was heard.
type Audio interface {
	Recognize(ctx context.Context, timeout time.Duration) (text string, ok bool)
	Speak(text string) error
}

// Confirmer asks the user to approve a sensitive command before it runs.
type Confirmer interface {
	Confirm(cmd domain.Command) (bool, error)
}

// ReminderStore persists personal reminders.
type ReminderStore interface {
	Add(reminder domain.Reminder) error
	List() ([]domain.Reminder, error)
	Complete(id string) error
	Close() error
}

// TriggerListener accepts external push-to-talk signals, typically over a
// local socket, and reports each one as a hotkey capture request.
type TriggerListener interface {
	Listen(ctx context.Context, fire func(utterance string)) error
	Close() error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
