package domain

// Verdict enumerates validation outcomes.
type Verdict string

const (
	VerdictAccept Verdict = "accept"
	VerdictReject Verdict = "reject"
)

// ValidationResult aggregates the validator's decision for one command.
type ValidationResult struct {
	Verdict      Verdict  `json:"verdict"`
	Reasons      []string `json:"reasons,omitempty"`
	MatchedRules []string `json:"matched_rules,omitempty"`
}

// Valid reports whether the command may proceed to a handler.
func (r ValidationResult) Valid() bool {
	return r.Verdict == VerdictAccept
}

// ValidationPolicy mirrors the policy YAML document. Empty sections fall
// back to built-in defaults at load time.
type ValidationPolicy struct {
	PolicyFormatVersion string       `yaml:"policy_format_version"`
	MinConfidence       float64      `yaml:"min_confidence"`
	DeniedApps          []string     `yaml:"denied_apps"`
	SensitivePatterns   []PolicyRule `yaml:"sensitive_patterns"`
	MaxTimerMinutes     int          `yaml:"max_timer_minutes"`
	MaxQueryLength      int          `yaml:"max_query_length"`
}

// PolicyRule is one named regex in the sensitive pattern list.
type PolicyRule struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}
