package domain

// Config mirrors ~/.voxa/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Audio               AudioSettings   `yaml:"audio"`
	AI                  AISettings      `yaml:"ai"`
	System              SystemSettings  `yaml:"system"`
	Web                 WebSettings     `yaml:"web"`
	Media               MediaSettings   `yaml:"media"`
	Email               EmailSettings   `yaml:"email"`
	Privacy             PrivacySettings `yaml:"privacy"`
	Logging             LoggingSettings `yaml:"logging"`
}

// AudioSettings configures the capture and speech layer.
type AudioSettings struct {
	WakeWord           string  `yaml:"wake_word"`
	WakeWordEnabled    bool    `yaml:"wake_word_enabled"`
	ListenTimeoutSec   int     `yaml:"listen_timeout"`
	PhraseLimitSec     int     `yaml:"phrase_time_limit"`
	PollIntervalMS     int     `yaml:"poll_interval_ms"`
	SpeechRate         int     `yaml:"speech_rate"`
	SpeechVolume       float64 `yaml:"speech_volume"`
	RecognizeCommand   string  `yaml:"recognize_command"`
	SynthesizerCommand string  `yaml:"synthesizer_command"`
}

// AISettings configures the remote classifier and its cache.
type AISettings struct {
	Model             string         `yaml:"model"`
	BaseURL           string         `yaml:"base_url"`
	MaxTokens         int            `yaml:"max_tokens"`
	Temperature       float64        `yaml:"temperature"`
	RequestTimeoutSec int            `yaml:"request_timeout"`
	CacheEnabled      bool           `yaml:"cache_enabled"`
	CacheTTLSec       int            `yaml:"cache_ttl"`
	CacheTTLOverrides map[string]int `yaml:"cache_ttl_overrides"`
}

// SystemSettings controls dispatching behavior.
type SystemSettings struct {
	CommandTimeoutSec int `yaml:"command_timeout"`
	HistoryLimit      int `yaml:"history_limit"`
	QueueCapacity     int `yaml:"queue_capacity"`
	// ConfirmHotkeyOnly is a pointer so an absent key keeps the safe
	// default (true) instead of silently disabling the policy.
	ConfirmHotkeyOnly   *bool `yaml:"confirm_hotkey_only"`
	AllowShutdown       bool  `yaml:"allow_shutdown"`
	OpenAppAllowUnknown bool  `yaml:"open_app_allow_unknown"`
}

// WebSettings carries endpoints and keys for information handlers.
type WebSettings struct {
	WeatherAPIKey  string `yaml:"weather_api_key"`
	WeatherBaseURL string `yaml:"weather_base_url"`
	NewsAPIKey     string `yaml:"news_api_key"`
	NewsBaseURL    string `yaml:"news_base_url"`
	DefaultCity    string `yaml:"default_city"`
	BrowserCommand string `yaml:"browser_command"`
}

// MediaSettings configures the music handler.
type MediaSettings struct {
	PlayerCommand string `yaml:"player_command"`
	MusicDir      string `yaml:"music_dir"`
}

// EmailSettings configures the SMTP sender.
type EmailSettings struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
	From     string `yaml:"from"`
	Password string `yaml:"password"`
}

// PrivacySettings controls retention of sensitive data and names the
// validation policy source.
type PrivacySettings struct {
	Enabled    bool   `yaml:"enabled"`
	PolicyFile string `yaml:"policy_file"`
}

// LoggingSettings controls the structured log output.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
