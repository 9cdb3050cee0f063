// Package security implements the command validation policy. The validator
// is a pure function over a compiled policy: it never mutates the command
// and performs no I/O after construction.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/voxa/assets"
	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// Validator implements the ports.Validator port against a compiled policy.
type Validator struct {
	minConfidence   float64
	deniedApps      map[string]struct{}
	sensitive       []compiledRule
	maxTimerMinutes int
	maxQueryLength  int
}

type compiledRule struct {
	name string
	re   *regexp.Regexp
}

// NewValidator loads the policy document from disk. A missing file is
// seeded from the embedded defaults; a malformed one is an error rather
// than a silent fallback.
func NewValidator(path string) (*Validator, error) {
	policy, err := loadPolicy(path)
	if err != nil {
		return nil, err
	}
	return NewValidatorFromPolicy(policy)
}

// NewValidatorFromPolicy compiles an in-memory policy, useful in tests.
func NewValidatorFromPolicy(policy domain.ValidationPolicy) (*Validator, error) {
	policy = hydratePolicy(policy)

	denied := make(map[string]struct{}, len(policy.DeniedApps))
	for _, app := range policy.DeniedApps {
		denied[strings.ToLower(strings.TrimSpace(app))] = struct{}{}
	}

	var rules []compiledRule
	for _, raw := range policy.SensitivePatterns {
		re, err := regexp.Compile(raw.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile policy rule %s: %w", raw.Name, err)
		}
		rules = append(rules, compiledRule{name: raw.Name, re: re})
	}

	return &Validator{
		minConfidence:   policy.MinConfidence,
		deniedApps:      denied,
		sensitive:       rules,
		maxTimerMinutes: policy.MaxTimerMinutes,
		maxQueryLength:  policy.MaxQueryLength,
	}, nil
}

// Validate implements ports.Validator.
func (v *Validator) Validate(cmd domain.Command) domain.ValidationResult {
	result := domain.ValidationResult{Verdict: domain.VerdictAccept}

	reject := func(reason string) {
		result.Verdict = domain.VerdictReject
		result.Reasons = append(result.Reasons, reason)
	}

	if cmd.Confidence < v.minConfidence {
		reject(fmt.Sprintf("confidence %.2f below threshold %.2f", cmd.Confidence, v.minConfidence))
		return result
	}
	if cmd.Intent == domain.IntentUnknown {
		reject("intent could not be determined")
		return result
	}
	if _, known := domain.KnownIntents[cmd.Intent]; !known {
		reject(fmt.Sprintf("unrecognized intent %q", cmd.Intent))
		return result
	}

	switch cmd.Intent {
	case domain.IntentOpenApp:
		app := strings.ToLower(strings.TrimSpace(cmd.StringEntity("app_name")))
		if app == "" {
			reject("application name is required")
			break
		}
		if _, denied := v.deniedApps[app]; denied {
			reject(fmt.Sprintf("application %q is not allowed by policy", app))
			result.MatchedRules = append(result.MatchedRules, "denied_apps")
		}
	case domain.IntentCloseApp:
		// Closing is lower risk than opening; only the name is required.
		if strings.TrimSpace(cmd.StringEntity("app_name")) == "" {
			reject("application name is required")
		}
	case domain.IntentSetTimer:
		value, ok := cmd.NumberEntity("time_value")
		if !ok || value <= 0 {
			reject("timer duration must be a positive number")
			break
		}
		minutes := value
		if strings.HasPrefix(strings.ToLower(cmd.StringEntity("time_unit")), "hour") {
			minutes = value * 60
		}
		if int(minutes) > v.maxTimerMinutes {
			reject(fmt.Sprintf("timer duration exceeds %d minutes", v.maxTimerMinutes))
		}
	case domain.IntentSetReminder:
		if strings.TrimSpace(cmd.StringEntity("message")) == "" {
			reject("reminder text is required")
		}
	case domain.IntentSendEmail:
		recipient := strings.TrimSpace(cmd.StringEntity("recipient"))
		if strings.TrimSpace(cmd.StringEntity("message")) == "" {
			reject("email body is required")
		}
		if recipient == "" {
			reject("email recipient is required")
			break
		}
		at := strings.Index(recipient, "@")
		if at < 0 || !strings.Contains(recipient[at:], ".") {
			reject(fmt.Sprintf("recipient %q does not look like an email address", recipient))
		}
	case domain.IntentSearchWeb, domain.IntentSearchYT, domain.IntentSearchWiki:
		// general_query is deliberately absent: the answering handler
		// falls back to the raw utterance when no query entity exists.
		query := strings.TrimSpace(cmd.StringEntity("query"))
		if query == "" {
			reject("query text is required")
			break
		}
		if len(query) > v.maxQueryLength {
			reject(fmt.Sprintf("query exceeds %d characters", v.maxQueryLength))
		}
	case domain.IntentShutdown, domain.IntentRestart:
		// Confirmation is never auto-granted here. If the resolver did not
		// flag the command, validation fails rather than upgrading it.
		if !cmd.RequiresConfirmation {
			reject("system-altering command arrived without confirmation flag")
		}
	}

	return result
}

// SensitiveMatcher builds the lexical denylist matcher the resolver uses
// to force confirmation on fallback matches.
func (v *Validator) SensitiveMatcher() func(string) bool {
	rules := v.sensitive
	return func(text string) bool {
		for _, rule := range rules {
			if rule.re.MatchString(text) {
				return true
			}
		}
		return false
	}
}

func loadPolicy(path string) (domain.ValidationPolicy, error) {
	var policy domain.ValidationPolicy
	data, err := os.ReadFile(path)
	if err != nil {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			_ = os.WriteFile(path, assets.DefaultPolicyYAML, 0o600)
		}
		data = assets.DefaultPolicyYAML
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return domain.ValidationPolicy{}, err
	}
	return policy, nil
}

func hydratePolicy(policy domain.ValidationPolicy) domain.ValidationPolicy {
	if policy.MinConfidence <= 0 {
		policy.MinConfidence = 0.3
	}
	if len(policy.DeniedApps) == 0 {
		policy.DeniedApps = defaultDeniedApps()
	}
	if len(policy.SensitivePatterns) == 0 {
		policy.SensitivePatterns = defaultSensitivePatterns()
	}
	if policy.MaxTimerMinutes <= 0 {
		policy.MaxTimerMinutes = 1440
	}
	if policy.MaxQueryLength <= 0 {
		policy.MaxQueryLength = 1000
	}
	return policy
}

func defaultDeniedApps() []string {
	return []string{"regedit", "cmd", "powershell", "terminal", "taskmgr"}
}

func defaultSensitivePatterns() []domain.PolicyRule {
	return []domain.PolicyRule{
		{Name: "credentials", Pattern: `(?i)\b(password|secret|token|key|credential)\b`},
		{Name: "destructive", Pattern: `(?i)\b(delete|remove|uninstall)\s+.+`},
		{Name: "storage", Pattern: `(?i)\b(format|erase|wipe)\s+.+`},
		{Name: "privilege", Pattern: `(?i)\b(administrator|root|sudo)\b`},
	}
}

var _ ports.Validator = (*Validator)(nil)
