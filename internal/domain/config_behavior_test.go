package domain

import (
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config

	if got := cfg.GetWakeWord(); got != "voxa" {
		t.Errorf("GetWakeWord() = %q, want voxa", got)
	}
	if got := cfg.GetPollInterval(); got != time.Second {
		t.Errorf("GetPollInterval() = %v, want 1s", got)
	}
	if got := cfg.GetListenTimeout(); got != 5*time.Second {
		t.Errorf("GetListenTimeout() = %v, want 5s", got)
	}
	if got := cfg.GetCommandTimeout(); got != 30*time.Second {
		t.Errorf("GetCommandTimeout() = %v, want 30s", got)
	}
	if got := cfg.GetHistoryLimit(); got != 100 {
		t.Errorf("GetHistoryLimit() = %d, want 100", got)
	}
	if got := cfg.GetQueueCapacity(); got != 100 {
		t.Errorf("GetQueueCapacity() = %d, want 100", got)
	}
	if got := cfg.GetRequestTimeout(); got != 10*time.Second {
		t.Errorf("GetRequestTimeout() = %v, want 10s", got)
	}
	if got := cfg.GetModel(); got != "gpt-4o-mini" {
		t.Errorf("GetModel() = %q, want gpt-4o-mini", got)
	}
	if got := cfg.GetDefaultCity(); got != "London" {
		t.Errorf("GetDefaultCity() = %q, want London", got)
	}
	if got := cfg.GetLogLevel(); got != "info" {
		t.Errorf("GetLogLevel() = %q, want info", got)
	}
	if got := cfg.GetLogFormat(); got != "text" {
		t.Errorf("GetLogFormat() = %q, want text", got)
	}
	if got := cfg.GetPhraseTimeLimit(); got != 10*time.Second {
		t.Errorf("GetPhraseTimeLimit() = %v, want 10s", got)
	}
	if !cfg.ShouldConfirmHotkeyOnly() {
		t.Error("ShouldConfirmHotkeyOnly() must default to true")
	}
}

func TestShouldConfirmHotkeyOnlyExplicitOff(t *testing.T) {
	var cfg Config
	off := false
	cfg.System.ConfirmHotkeyOnly = &off

	if cfg.ShouldConfirmHotkeyOnly() {
		t.Error("explicit false must disable the hotkey-only policy")
	}

	on := true
	cfg.System.ConfirmHotkeyOnly = &on
	if !cfg.ShouldConfirmHotkeyOnly() {
		t.Error("explicit true must keep the hotkey-only policy")
	}
}

func TestConfigExplicitValuesWin(t *testing.T) {
	var cfg Config
	cfg.Audio.WakeWord = "jeeves"
	cfg.Audio.PollIntervalMS = 250
	cfg.System.CommandTimeoutSec = 5
	cfg.AI.Model = "gpt-4o"

	if got := cfg.GetWakeWord(); got != "jeeves" {
		t.Errorf("GetWakeWord() = %q, want jeeves", got)
	}
	if got := cfg.GetPollInterval(); got != 250*time.Millisecond {
		t.Errorf("GetPollInterval() = %v, want 250ms", got)
	}
	if got := cfg.GetCommandTimeout(); got != 5*time.Second {
		t.Errorf("GetCommandTimeout() = %v, want 5s", got)
	}
	if got := cfg.GetModel(); got != "gpt-4o" {
		t.Errorf("GetModel() = %q, want gpt-4o", got)
	}
}

func TestGetCacheTTLOverrides(t *testing.T) {
	var cfg Config
	cfg.AI.CacheTTLSec = 3600
	cfg.AI.CacheTTLOverrides = map[string]int{
		IntentGetTime:    30,
		IntentGetWeather: 600,
	}

	if got := cfg.GetCacheTTL(IntentGetTime); got != 30*time.Second {
		t.Errorf("GetCacheTTL(get_time) = %v, want 30s", got)
	}
	if got := cfg.GetCacheTTL(IntentGetWeather); got != 600*time.Second {
		t.Errorf("GetCacheTTL(get_weather) = %v, want 10m", got)
	}
	if got := cfg.GetCacheTTL(IntentOpenApp); got != time.Hour {
		t.Errorf("GetCacheTTL(open_app) = %v, want 1h", got)
	}

	cfg.AI.CacheTTLSec = 0
	if got := cfg.GetCacheTTL(IntentOpenApp); got != time.Hour {
		t.Errorf("GetCacheTTL() zero global = %v, want default 1h", got)
	}
}

func TestCacheEntryExpired(t *testing.T) {
	now := time.Now()
	entry := CacheEntry{CreatedAt: now, TTL: time.Hour}

	if entry.Expired(now.Add(30 * time.Minute)) {
		t.Error("entry should be fresh before the TTL elapses")
	}
	if !entry.Expired(now.Add(2 * time.Hour)) {
		t.Error("entry should expire after the TTL elapses")
	}
}
