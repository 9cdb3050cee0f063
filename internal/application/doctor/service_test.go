package doctor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

func TestRunReportsHealthyEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	var cfg domain.Config
	cfg.ConfigFormatVersion = "1"
	cfg.Web.WeatherAPIKey = "wk"
	cfg.Web.NewsAPIKey = "nk"

	svc := &Service{
		ConfigProvider: stubProvider{cfg: cfg},
		Validator:      acceptAll{},
		CacheStore:     stubCache{},
		Registry:       stubRegistry{intents: []string{domain.IntentGetTime}},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Healthy() {
		t.Fatalf("report should be healthy (warnings allowed): %+v", report.Checks)
	}
	if len(report.Checks) == 0 {
		t.Fatal("report has no checks")
	}

	byName := map[string]domain.HealthCheck{}
	for _, check := range report.Checks {
		byName[check.Name] = check
	}
	if byName["Config file"].Status != domain.HealthOK {
		t.Fatalf("config check = %+v", byName["Config file"])
	}
	if byName["Validation policy"].Status != domain.HealthOK {
		t.Fatalf("policy check = %+v", byName["Validation policy"])
	}
	if byName["Handler registry"].Status != domain.HealthOK {
		t.Fatalf("registry check = %+v", byName["Handler registry"])
	}
}

func TestRunFailsWhenConfigUnloadable(t *testing.T) {
	svc := &Service{ConfigProvider: stubProvider{err: errors.New("corrupt yaml")}}

	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for unloadable config")
	}
	if report.Healthy() {
		t.Fatal("report must not be healthy when config fails to load")
	}
}

func TestRunFlagsMisconfiguredPolicy(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubProvider{cfg: domain.Config{ConfigFormatVersion: "1"}},
		Validator:      rejectAll{},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Healthy() {
		t.Fatal("a policy that rejects benign commands must fail the report")
	}
}

func TestRunWarnsOnMissingAPIKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	svc := &Service{ConfigProvider: stubProvider{cfg: domain.Config{ConfigFormatVersion: "1"}}}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	warned := 0
	for _, check := range report.Checks {
		if check.Status == domain.HealthWarn {
			warned++
		}
	}
	if warned == 0 {
		t.Fatal("missing keys and tools should produce warnings")
	}
	if !report.Healthy() {
		t.Fatalf("warnings alone must not fail the report: %+v", report.Checks)
	}
}

type stubProvider struct {
	cfg domain.Config
	err error
}

func (s stubProvider) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type acceptAll struct{}

func (acceptAll) Validate(domain.Command) domain.ValidationResult {
	return domain.ValidationResult{Verdict: domain.VerdictAccept}
}

type rejectAll struct{}

func (rejectAll) Validate(domain.Command) domain.ValidationResult {
	return domain.ValidationResult{Verdict: domain.VerdictReject, Reasons: []string{"nope"}}
}

type stubCache struct{}

func (stubCache) Get(string, time.Time) (domain.CacheEntry, bool) { return domain.CacheEntry{}, false }
func (stubCache) Set(domain.CacheEntry) error                     { return nil }
func (stubCache) Entries() ([]domain.CacheEntry, error)           { return nil, nil }
func (stubCache) Clear() error                                    { return nil }
func (stubCache) Close() error                                    { return nil }

type stubRegistry struct {
	intents []string
}

func (r stubRegistry) Lookup(string) (ports.Handler, bool) { return nil, false }
func (r stubRegistry) Intents() []string                   { return r.intents }
