package domain

// Canonical intent names. Every Command carries exactly one of these; the
// resolver maps anything it cannot place to IntentUnknown and the validator
// rejects IntentUnknown unconditionally.
const (
	IntentOpenApp      = "open_app"
	IntentCloseApp     = "close_app"
	IntentGetWeather   = "get_weather"
	IntentGetNews      = "get_news"
	IntentSearchWeb    = "search_web"
	IntentSearchYT     = "search_youtube"
	IntentSearchWiki   = "search_wikipedia"
	IntentSetReminder  = "set_reminder"
	IntentSetTimer     = "set_timer"
	IntentPlayMusic    = "play_music"
	IntentPauseMusic   = "pause_resume_music"
	IntentSendEmail    = "send_email"
	IntentGetTime      = "get_time"
	IntentGetDate      = "get_date"
	IntentShutdown     = "shutdown_system"
	IntentRestart      = "restart_system"
	IntentSystemInfo   = "get_system_info"
	IntentGeneralQuery = "general_query"
	IntentUnknown      = "unknown"
)

// KnownIntents is the closed set the validator accepts.
var KnownIntents = map[string]struct{}{
	IntentOpenApp:      {},
	IntentCloseApp:     {},
	IntentGetWeather:   {},
	IntentGetNews:      {},
	IntentSearchWeb:    {},
	IntentSearchYT:     {},
	IntentSearchWiki:   {},
	IntentSetReminder:  {},
	IntentSetTimer:     {},
	IntentPlayMusic:    {},
	IntentPauseMusic:   {},
	IntentSendEmail:    {},
	IntentGetTime:      {},
	IntentGetDate:      {},
	IntentShutdown:     {},
	IntentRestart:      {},
	IntentSystemInfo:   {},
	IntentGeneralQuery: {},
	IntentUnknown:      {},
}

// UndoPairs maps an intent to the intent that reverses it. Intents absent
// from this map cannot be undone.
var UndoPairs = map[string]string{
	IntentOpenApp:   IntentCloseApp,
	IntentCloseApp:  IntentOpenApp,
	IntentPlayMusic: IntentPauseMusic,
}

// SensitiveIntents always require confirmation regardless of what the
// resolver reported.
var SensitiveIntents = map[string]struct{}{
	IntentShutdown:  {},
	IntentRestart:   {},
	IntentSendEmail: {},
}
