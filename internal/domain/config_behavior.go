package domain

import "time"

// GetWakeWord returns the configured wake word, falling back to the default.
func (c *Config) GetWakeWord() string {
	const defaultWakeWord = "voxa"

	if c.Audio.WakeWord == "" {
		return defaultWakeWord
	}
	return c.Audio.WakeWord
}

// GetPollInterval returns how long an idle producer sleeps between capture
// attempts.
func (c *Config) GetPollInterval() time.Duration {
	const defaultPollMS = 1000

	if c.Audio.PollIntervalMS <= 0 {
		return defaultPollMS * time.Millisecond
	}
	return time.Duration(c.Audio.PollIntervalMS) * time.Millisecond
}

// GetListenTimeout returns the speech capture timeout.
func (c *Config) GetListenTimeout() time.Duration {
	const defaultListenSec = 5

	if c.Audio.ListenTimeoutSec <= 0 {
		return defaultListenSec * time.Second
	}
	return time.Duration(c.Audio.ListenTimeoutSec) * time.Second
}

// GetPhraseTimeLimit bounds how long a single utterance may run once the
// user starts speaking.
func (c *Config) GetPhraseTimeLimit() time.Duration {
	const defaultPhraseSec = 10

	if c.Audio.PhraseLimitSec <= 0 {
		return defaultPhraseSec * time.Second
	}
	return time.Duration(c.Audio.PhraseLimitSec) * time.Second
}

// GetCommandTimeout returns the per-command execution deadline.
func (c *Config) GetCommandTimeout() time.Duration {
	const defaultTimeoutSec = 30

	if c.System.CommandTimeoutSec <= 0 {
		return defaultTimeoutSec * time.Second
	}
	return time.Duration(c.System.CommandTimeoutSec) * time.Second
}

// GetHistoryLimit returns the size of the in-memory history ring.
func (c *Config) GetHistoryLimit() int {
	const defaultHistoryLimit = 100

	if c.System.HistoryLimit <= 0 {
		return defaultHistoryLimit
	}
	return c.System.HistoryLimit
}

// GetQueueCapacity returns the bounded command queue size.
func (c *Config) GetQueueCapacity() int {
	const defaultQueueCapacity = 100

	if c.System.QueueCapacity <= 0 {
		return defaultQueueCapacity
	}
	return c.System.QueueCapacity
}

// GetCacheTTL returns the cache lifetime for a resolved intent. Per-intent
// overrides win over the global setting.
func (c *Config) GetCacheTTL(intent string) time.Duration {
	const defaultTTLSec = 3600

	if sec, ok := c.AI.CacheTTLOverrides[intent]; ok && sec > 0 {
		return time.Duration(sec) * time.Second
	}
	if c.AI.CacheTTLSec <= 0 {
		return defaultTTLSec * time.Second
	}
	return time.Duration(c.AI.CacheTTLSec) * time.Second
}

// GetRequestTimeout returns the remote classifier request deadline.
func (c *Config) GetRequestTimeout() time.Duration {
	const defaultRequestSec = 10

	if c.AI.RequestTimeoutSec <= 0 {
		return defaultRequestSec * time.Second
	}
	return time.Duration(c.AI.RequestTimeoutSec) * time.Second
}

// GetModel returns the classifier model name.
func (c *Config) GetModel() string {
	const defaultModel = "gpt-4o-mini"

	if c.AI.Model == "" {
		return defaultModel
	}
	return c.AI.Model
}

// IsCacheEnabled checks whether resolved intents should be cached.
func (c *Config) IsCacheEnabled() bool {
	return c.AI.CacheEnabled
}

// IsPrivacyEnabled checks whether the validation policy is enforced.
func (c *Config) IsPrivacyEnabled() bool {
	return c.Privacy.Enabled
}

// ShouldConfirmHotkeyOnly reports whether confirmation prompts are limited
// to hotkey-sourced commands. Enabled unless the configuration turns it
// off explicitly.
func (c *Config) ShouldConfirmHotkeyOnly() bool {
	if c.System.ConfirmHotkeyOnly == nil {
		return true
	}
	return *c.System.ConfirmHotkeyOnly
}

// GetDefaultCity returns the city used when a weather query names none.
func (c *Config) GetDefaultCity() string {
	const defaultCity = "London"

	if c.Web.DefaultCity == "" {
		return defaultCity
	}
	return c.Web.DefaultCity
}

// GetLogLevel returns the configured log level.
func (c *Config) GetLogLevel() string {
	const defaultLevel = "info"

	if c.Logging.Level == "" {
		return defaultLevel
	}
	return c.Logging.Level
}

// GetLogFormat returns the configured log output format.
func (c *Config) GetLogFormat() string {
	const defaultFormat = "text"

	if c.Logging.Format == "" {
		return defaultFormat
	}
	return c.Logging.Format
}
