// Package domain defines core business entities and value objects for VOXA.
//
// This file contains the command pipeline types: a resolved Command, the
// result of executing it, and the classification shape returned by the
// remote completion service. The domain layer is independent of
// infrastructure concerns and represents pure data structures.
package domain

import "time"

// Source identifies which capture path produced an utterance.
type Source string

const (
	SourceWakeWord Source = "wake_word"
	SourceHotkey   Source = "hotkey"
)

// ProcessingMethod records how a Command was resolved.
type ProcessingMethod string

const (
	MethodRemote   ProcessingMethod = "remote"
	MethodCache    ProcessingMethod = "cache"
	MethodFallback ProcessingMethod = "fallback"
)

// Command is an utterance resolved into a structured action. Commands are
// immutable once produced by the resolver; an undo command is a freshly
// constructed Command, never a mutation of the original.
type Command struct {
	Intent               string           `json:"intent"`
	Entities             map[string]any   `json:"entities"`
	Confidence           float64          `json:"confidence"`
	RequiresConfirmation bool             `json:"requires_confirmation"`
	RawText              string           `json:"raw_text"`
	Source               Source           `json:"source"`
	ProcessingMethod     ProcessingMethod `json:"processing_method"`
	Timestamp            time.Time        `json:"timestamp"`
}

// StringEntity returns the named entity as a trimmed string, or "" when
// absent or of another type.
func (c Command) StringEntity(key string) string {
	v, ok := c.Entities[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// NumberEntity returns the named entity as a float64. JSON decoding and the
// fallback extractor both store numbers as float64.
func (c Command) NumberEntity(key string) (float64, bool) {
	v, ok := c.Entities[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ExecutionResult wraps the outcome of dispatching a Command. All failure
// paths produce a failed result; handlers never panic outward.
type ExecutionResult struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Data          map[string]any `json:"data,omitempty"`
	Error         string         `json:"error,omitempty"`
	ExecutionTime time.Duration  `json:"execution_time"`
	Timestamp     time.Time      `json:"timestamp"`
}

// Classification is the schema the remote completion service must return.
// Any reply that does not parse into this shape is a resolver-level failure.
type Classification struct {
	Intent               string         `json:"intent"`
	Entities             map[string]any `json:"entities"`
	Confidence           float64        `json:"confidence"`
	RequiresConfirmation bool           `json:"requires_confirmation"`
}
