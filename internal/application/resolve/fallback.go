package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/doeshing/voxa/internal/domain"
)

// fallbackRule binds one intent to its ordered pattern set. Rules are tried
// in declaration order and the first matching pattern wins, so order
// encodes priority.
type fallbackRule struct {
	intent   string
	patterns []*regexp.Regexp
}

const (
	fallbackConfidence = 0.7
	generalConfidence  = 0.3
)

var fallbackRules = []fallbackRule{
	{domain.IntentOpenApp, compileAll(
		`(?:open|launch|start|run)\s+(.+?)(?:\s+(?:app|application|program))?$`,
		`(?:start|run)\s+(.+?)$`,
		`open\s+(.+?)\s+app$`,
	)},
	{domain.IntentCloseApp, compileAll(
		`(?:close|quit|exit|stop)\s+(.+?)(?:\s+(?:app|application|program))?$`,
		`(?:close|quit)\s+(.+?)$`,
		`shutdown\s+(.+?)\s+app$`,
	)},
	{domain.IntentGetWeather, compileAll(
		`(?:what'?s?|tell me|show me)\s+(?:the\s+)?weather(?:\s+(?:in|for|at)\s+(.+))?$`,
		`weather(?:\s+(?:in|for|at)\s+(.+))?$`,
		`(?:how'?s?|what'?s? the) weather(?:\s+(?:in|for|at)\s+(.+))?$`,
	)},
	{domain.IntentSearchWeb, compileAll(
		`(?:search|google|look up)\s+(.+?)\s*(?:on\s+google)?$`,
		`(?:find|find out|tell me about)\s+(.+?)$`,
		`(?:what\s+is|who\s+is|where\s+is)\s+(.+?)$`,
	)},
	{domain.IntentSearchYT, compileAll(
		`(?:search|play|find)\s+(.+?)\s+on\s+youtube$`,
		`youtube\s+(.+?)$`,
		`(?:play|watch)\s+(.+?)\s+on\s+youtube$`,
	)},
	{domain.IntentSearchWiki, compileAll(
		`(?:search|look up)\s+(.+?)\s+on\s+wikipedia$`,
		`wikipedia\s+(.+?)$`,
		`tell me about\s+(.+?)$`,
	)},
	{domain.IntentSetReminder, compileAll(
		`(?:remind|reminder)\s+(?:me\s+)?(?:to\s+)?(.+?)(?:\s+in\s+(\d+)\s+(minute|minutes|hour|hours))?$`,
		`(?:set\s+)?reminder\s+(?:to\s+)?(.+?)$`,
		`remind\s+me\s+(.+?)$`,
	)},
	{domain.IntentSetTimer, compileAll(
		`(?:set\s+)?(?:a\s+)?timer\s+for\s+(\d+)\s+(minute|minutes|hour|hours)$`,
		`timer\s+(\d+)\s+(minute|minutes|hour|hours)$`,
		`(?:count|countdown)\s+(.+?)$`,
	)},
	{domain.IntentPlayMusic, compileAll(
		`(?:play|start)\s+(.+?)(?:\s+(?:music|song|track))?$`,
		`(?:listen to|hear)\s+(.+?)$`,
		`music\s+(.+?)$`,
	)},
	{domain.IntentSendEmail, compileAll(
		`(?:send|write)\s+(?:an\s+)?email\s+(?:to\s+)?(.+?)(?:\s+saying\s+(.+?))?$`,
		`email\s+(.+?)(?:\s+saying\s+(.+?))?$`,
		`(?:message|contact)\s+(.+?)$`,
	)},
	{domain.IntentGetTime, compileAll(
		`(?:what\s+)?time\s+is\s+it$`,
		`(?:current\s+)?time$`,
		`(?:tell me the time|what time)$`,
	)},
	{domain.IntentGetDate, compileAll(
		`(?:what\s+)?(?:day|date)\s+is\s+it$`,
		`(?:current\s+)?(?:day|date)$`,
		`(?:tell me the date|what date)$`,
	)},
	{domain.IntentShutdown, compileAll(
		`(?:shutdown|turn off|power off)\s+(?:the\s+)?(?:computer|pc|system)$`,
		`(?:shut\s+down|power\s+down)$`,
	)},
	{domain.IntentRestart, compileAll(
		`(?:restart|reboot)\s+(?:the\s+)?(?:computer|pc|system)$`,
		`(?:restart\s+computer|reboot\s+system)$`,
	)},
	{domain.IntentGetNews, compileAll(
		`(?:what'?s?\s+(?:the\s+)?latest\s+)?news(?:\s+(?:about|on)\s+(.+?))?$`,
		`(?:tell|show)\s+(?:me\s+)?(?:the\s+)?news(?:\s+(?:about|on)\s+(.+?))?$`,
		`(?:news|headlines)(?:\s+(?:about|on)\s+(.+?))?$`,
	)},
}

// The lexicon matches anywhere in the utterance, unlike the intent
// patterns which are anchored to the start.
var sensitiveLexicon = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(password|secret|token|key|credential)\b`),
	regexp.MustCompile(`(?i)\b(delete|remove|uninstall)\s+.+`),
	regexp.MustCompile(`(?i)\b(format|erase|wipe)\s+.+`),
	regexp.MustCompile(`(?i)\b(administrator|root|sudo)\b`),
}

// defaultSensitive is the built-in lexical denylist, used when no policy
// matcher is wired in.
func defaultSensitive(text string) bool {
	for _, re := range sensitiveLexicon {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)^`+p))
	}
	return out
}

// classifyFallback resolves an utterance with the offline rule set. It
// never fails: an utterance that matches nothing becomes a low-confidence
// general query.
func classifyFallback(text string, isSensitive func(string) bool) domain.Classification {
	text = strings.ToLower(strings.TrimSpace(text))

	if isSensitive == nil {
		isSensitive = defaultSensitive
	}
	sensitive := isSensitive(text)

	for _, rule := range fallbackRules {
		for _, re := range rule.patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			_, intentSensitive := domain.SensitiveIntents[rule.intent]
			return domain.Classification{
				Intent:               rule.intent,
				Entities:             extractEntities(rule.intent, m),
				Confidence:           fallbackConfidence,
				RequiresConfirmation: sensitive || intentSensitive,
			}
		}
	}

	return domain.Classification{
		Intent:               domain.IntentGeneralQuery,
		Entities:             map[string]any{"query": text},
		Confidence:           generalConfidence,
		RequiresConfirmation: false,
	}
}

// extractEntities maps match groups to entity keys positionally. m[0] is
// the full match; optional groups may be empty strings.
func extractEntities(intent string, m []string) map[string]any {
	entities := map[string]any{}
	group := func(i int) string {
		if i < len(m) {
			return strings.TrimSpace(m[i])
		}
		return ""
	}

	switch intent {
	case domain.IntentOpenApp, domain.IntentCloseApp:
		entities["app_name"] = group(1)
	case domain.IntentGetWeather, domain.IntentSearchWeb, domain.IntentSearchYT, domain.IntentSearchWiki, domain.IntentGetNews:
		if q := group(1); q != "" {
			entities["query"] = q
		}
	case domain.IntentSetReminder:
		entities["message"] = group(1)
		if value := group(2); value != "" {
			if n, err := strconv.Atoi(value); err == nil {
				entities["time_value"] = float64(n)
				entities["time_unit"] = group(3)
			}
		}
	case domain.IntentSetTimer:
		if n, err := strconv.Atoi(group(1)); err == nil {
			entities["time_value"] = float64(n)
		}
		entities["time_unit"] = group(2)
	case domain.IntentPlayMusic:
		entities["song_or_playlist"] = group(1)
	case domain.IntentSendEmail:
		entities["recipient"] = group(1)
		if msg := group(2); msg != "" {
			entities["message"] = msg
		}
	}
	return entities
}
