// Package handlers implements the intent handlers behind the dispatcher.
// Each handler family wraps one OS facility or external API; all failures
// are reported through the ExecutionResult, never as panics.
package handlers

import (
	"context"
	"sort"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// HandlerFunc adapts a function to the ports.Handler interface.
type HandlerFunc func(ctx context.Context, cmd domain.Command) domain.ExecutionResult

// Execute implements ports.Handler.
func (f HandlerFunc) Execute(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	return f(ctx, cmd)
}

// Registry is an immutable intent-to-handler map populated once at
// startup.
type Registry struct {
	handlers map[string]ports.Handler
}

// NewRegistry builds a registry from the given map. The map is copied so
// later mutation by the caller cannot affect dispatch.
func NewRegistry(handlers map[string]ports.Handler) *Registry {
	copied := make(map[string]ports.Handler, len(handlers))
	for intent, handler := range handlers {
		copied[intent] = handler
	}
	return &Registry{handlers: copied}
}

// Lookup implements ports.HandlerRegistry. A missing intent is a normal
// outcome, not an error.
func (r *Registry) Lookup(intent string) (ports.Handler, bool) {
	handler, ok := r.handlers[intent]
	return handler, ok
}

// Intents implements ports.HandlerRegistry, sorted for stable output.
func (r *Registry) Intents() []string {
	out := make([]string, 0, len(r.handlers))
	for intent := range r.handlers {
		out = append(out, intent)
	}
	sort.Strings(out)
	return out
}

func success(message string, data map[string]any) domain.ExecutionResult {
	return domain.ExecutionResult{Success: true, Message: message, Data: data}
}

func failed(message, reason string) domain.ExecutionResult {
	return domain.ExecutionResult{Success: false, Message: message, Error: reason}
}

var _ ports.HandlerRegistry = (*Registry)(nil)
