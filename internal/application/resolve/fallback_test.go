package resolve

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/voxa/internal/domain"
)

func TestClassifyFallback(t *testing.T) {
	tests := []struct {
		name           string
		utterance      string
		wantIntent     string
		wantConfidence float64
		wantConfirm    bool
		wantEntities   map[string]any
	}{
		{
			name:           "open app",
			utterance:      "open chrome",
			wantIntent:     domain.IntentOpenApp,
			wantConfidence: 0.7,
			wantEntities:   map[string]any{"app_name": "chrome"},
		},
		{
			name:           "open app with suffix",
			utterance:      "launch spotify app",
			wantIntent:     domain.IntentOpenApp,
			wantConfidence: 0.7,
			wantEntities:   map[string]any{"app_name": "spotify"},
		},
		{
			name:           "close app",
			utterance:      "close firefox",
			wantIntent:     domain.IntentCloseApp,
			wantConfidence: 0.7,
			wantEntities:   map[string]any{"app_name": "firefox"},
		},
		{
			name:           "shutdown is sensitive",
			utterance:      "shutdown the computer",
			wantIntent:     domain.IntentShutdown,
			wantConfidence: 0.7,
			wantConfirm:    true,
			wantEntities:   map[string]any{},
		},
		{
			name:           "restart is sensitive",
			utterance:      "reboot the system",
			wantIntent:     domain.IntentRestart,
			wantConfidence: 0.7,
			wantConfirm:    true,
			wantEntities:   map[string]any{},
		},
		{
			name:           "time",
			utterance:      "what time is it",
			wantIntent:     domain.IntentGetTime,
			wantConfidence: 0.7,
			wantEntities:   map[string]any{},
		},
		{
			name:           "timer with value",
			utterance:      "set a timer for 10 minutes",
			wantIntent:     domain.IntentSetTimer,
			wantConfidence: 0.7,
			wantEntities:   map[string]any{"time_value": float64(10), "time_unit": "minutes"},
		},
		{
			name:           "youtube",
			utterance:      "play cat videos on youtube",
			wantIntent:     domain.IntentSearchYT,
			wantConfidence: 0.7,
			wantEntities:   map[string]any{"query": "cat videos"},
		},
		{
			name:           "weather with city",
			utterance:      "what's the weather in tokyo",
			wantIntent:     domain.IntentGetWeather,
			wantConfidence: 0.7,
			wantEntities:   map[string]any{"query": "tokyo"},
		},
		{
			name:           "email is sensitive",
			utterance:      "send an email to bob@example.com saying hello there",
			wantIntent:     domain.IntentSendEmail,
			wantConfidence: 0.7,
			wantConfirm:    true,
			wantEntities:   map[string]any{"recipient": "bob@example.com", "message": "hello there"},
		},
		{
			name:           "sensitive lexicon forces confirmation",
			utterance:      "search how to delete my account",
			wantIntent:     domain.IntentSearchWeb,
			wantConfidence: 0.7,
			wantConfirm:    true,
			wantEntities:   map[string]any{"query": "how to delete my account"},
		},
		{
			name:           "unmatched becomes general query",
			utterance:      "hmm let me think about dinner",
			wantIntent:     domain.IntentGeneralQuery,
			wantConfidence: 0.3,
			wantEntities:   map[string]any{"query": "hmm let me think about dinner"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyFallback(tt.utterance, nil)
			if got.Intent != tt.wantIntent {
				t.Fatalf("intent = %q, want %q", got.Intent, tt.wantIntent)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.RequiresConfirmation != tt.wantConfirm {
				t.Errorf("requiresConfirmation = %v, want %v", got.RequiresConfirmation, tt.wantConfirm)
			}
			if diff := cmp.Diff(tt.wantEntities, got.Entities); diff != "" {
				t.Errorf("entities mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyFallbackCustomSensitiveMatcher(t *testing.T) {
	always := func(string) bool { return true }
	got := classifyFallback("open chrome", always)
	if !got.RequiresConfirmation {
		t.Fatal("custom matcher should force confirmation")
	}

	never := func(string) bool { return false }
	got = classifyFallback("shutdown the computer", never)
	if !got.RequiresConfirmation {
		t.Fatal("sensitive intents require confirmation regardless of the lexicon")
	}
}
