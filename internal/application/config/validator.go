// Package config validates the loaded configuration for internal
// consistency before the assistant starts.
package config

import (
	"fmt"
	"strings"

	"github.com/doeshing/voxa/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateAudio(cfg.Audio); err != nil {
		return err
	}
	if err := validateAI(cfg.AI); err != nil {
		return err
	}
	if err := validateSystem(cfg.System); err != nil {
		return err
	}
	if err := validateLogging(cfg.Logging); err != nil {
		return err
	}
	if cfg.Email.SMTPPort < 0 || cfg.Email.SMTPPort > 65535 {
		return fmt.Errorf("email smtp_port %d is out of range", cfg.Email.SMTPPort)
	}
	return nil
}

func validateAudio(audio domain.AudioSettings) error {
	if audio.WakeWordEnabled && strings.TrimSpace(audio.WakeWord) == "" {
		return fmt.Errorf("wake_word must be set when wake_word_enabled is true")
	}
	if audio.ListenTimeoutSec < 0 {
		return fmt.Errorf("audio listen_timeout must not be negative")
	}
	if audio.PollIntervalMS < 0 {
		return fmt.Errorf("audio poll_interval_ms must not be negative")
	}
	return nil
}

func validateAI(ai domain.AISettings) error {
	if ai.Temperature < 0 || ai.Temperature > 2 {
		return fmt.Errorf("ai temperature %.2f is out of range (0-2)", ai.Temperature)
	}
	if ai.CacheTTLSec < 0 {
		return fmt.Errorf("ai cache_ttl must not be negative")
	}
	for intent, ttl := range ai.CacheTTLOverrides {
		if ttl <= 0 {
			return fmt.Errorf("ai cache_ttl_overrides[%s] must be positive", intent)
		}
		if _, known := domain.KnownIntents[intent]; !known {
			return fmt.Errorf("ai cache_ttl_overrides names unknown intent %q", intent)
		}
	}
	return nil
}

func validateSystem(system domain.SystemSettings) error {
	if system.CommandTimeoutSec < 0 {
		return fmt.Errorf("system command_timeout must not be negative")
	}
	if system.HistoryLimit < 0 {
		return fmt.Errorf("system history_limit must not be negative")
	}
	if system.QueueCapacity < 0 {
		return fmt.Errorf("system queue_capacity must not be negative")
	}
	return nil
}

func validateLogging(logging domain.LoggingSettings) error {
	switch strings.ToLower(logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("logging level %q is not recognized", logging.Level)
}
