package handlers

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry(map[string]ports.Handler{
		domain.IntentGetTime: HandlerFunc(func(context.Context, domain.Command) domain.ExecutionResult {
			return domain.ExecutionResult{Success: true}
		}),
	})

	if _, ok := registry.Lookup(domain.IntentGetTime); !ok {
		t.Fatal("registered intent not found")
	}
	if _, ok := registry.Lookup(domain.IntentOpenApp); ok {
		t.Fatal("unregistered intent should not be found")
	}
}

func TestRegistryCopiesInput(t *testing.T) {
	source := map[string]ports.Handler{
		domain.IntentGetTime: HandlerFunc(func(context.Context, domain.Command) domain.ExecutionResult {
			return domain.ExecutionResult{Success: true}
		}),
	}
	registry := NewRegistry(source)
	delete(source, domain.IntentGetTime)

	if _, ok := registry.Lookup(domain.IntentGetTime); !ok {
		t.Fatal("registry must not share the caller's map")
	}
}

func TestRegistryIntentsSorted(t *testing.T) {
	noop := HandlerFunc(func(context.Context, domain.Command) domain.ExecutionResult {
		return domain.ExecutionResult{Success: true}
	})
	registry := NewRegistry(map[string]ports.Handler{
		domain.IntentGetTime:  noop,
		domain.IntentCloseApp: noop,
		domain.IntentOpenApp:  noop,
	})

	want := []string{domain.IntentCloseApp, domain.IntentGetTime, domain.IntentOpenApp}
	if diff := cmp.Diff(want, registry.Intents()); diff != "" {
		t.Fatalf("Intents() mismatch (-want +got):\n%s", diff)
	}
}
