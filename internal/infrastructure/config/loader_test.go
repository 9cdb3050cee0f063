package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSeedsDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config was not written: %v", err)
	}
	if cfg.Audio.WakeWord != "voxa" {
		t.Fatalf("wake word = %q, want voxa", cfg.Audio.WakeWord)
	}
	if !cfg.AI.CacheEnabled {
		t.Fatal("cache should be enabled by default")
	}
	if cfg.AI.CacheTTLOverrides["get_time"] != 30 {
		t.Fatalf("get_time ttl override = %d, want 30", cfg.AI.CacheTTLOverrides["get_time"])
	}
	if cfg.System.HistoryLimit != 100 {
		t.Fatalf("history limit = %d, want 100", cfg.System.HistoryLimit)
	}
	if !cfg.Privacy.Enabled {
		t.Fatal("privacy policy should be enabled by default")
	}
	if !cfg.ShouldConfirmHotkeyOnly() {
		t.Fatal("sensitive commands should require the hotkey by default")
	}
}

func TestLoadKeepsHotkeyOnlyDefaultWhenKeyAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("system:\n  history_limit: 7\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.ShouldConfirmHotkeyOnly() {
		t.Fatal("absent confirm_hotkey_only must not disable the policy")
	}

	content = []byte("system:\n  confirm_hotkey_only: false\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	cfg, err = NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ShouldConfirmHotkeyOnly() {
		t.Fatal("explicit false must disable the policy")
	}
}

func TestLoadReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("audio:\n  wake_word: jeeves\nsystem:\n  history_limit: 7\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Audio.WakeWord != "jeeves" {
		t.Fatalf("wake word = %q, want jeeves", cfg.Audio.WakeWord)
	}
	if cfg.System.HistoryLimit != 7 {
		t.Fatalf("history limit = %d, want 7", cfg.System.HistoryLimit)
	}
	// Unset fields are hydrated, not left at zero.
	if cfg.System.QueueCapacity != 100 {
		t.Fatalf("queue capacity = %d, want hydrated default 100", cfg.System.QueueCapacity)
	}
	if cfg.Audio.PollIntervalMS != 1000 {
		t.Fatalf("poll interval = %d, want hydrated default 1000", cfg.Audio.PollIntervalMS)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("audio: ["), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestResolvePathPrefersEnvOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv("VOXA_CONFIG", custom)

	loader := NewFileLoader("")
	if got := loader.Path(); got != custom {
		t.Fatalf("Path() = %q, want %q", got, custom)
	}

	// An explicit path beats the environment.
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	if got := NewFileLoader(explicit).Path(); got != explicit {
		t.Fatalf("Path() = %q, want %q", got, explicit)
	}
}
