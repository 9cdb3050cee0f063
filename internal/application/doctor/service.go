// Package doctor runs environment diagnostics for the assistant: config,
// policy, cache, speech tooling and API credentials.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Validator      ports.Validator
	CacheStore     ports.CacheRepository
	Registry       ports.HandlerRegistry
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))

	if s.Validator != nil {
		probe := domain.Command{Intent: domain.IntentGetTime, Confidence: 1}
		if s.Validator.Validate(probe).Valid() {
			checks = append(checks, ok("Validation policy", "rules loaded"))
		} else {
			checks = append(checks, fail("Validation policy", "benign command rejected, policy is misconfigured"))
		}
	} else {
		checks = append(checks, warn("Validation policy", "validator not initialized"))
	}

	if s.CacheStore != nil {
		if entries, err := s.CacheStore.Entries(); err != nil {
			checks = append(checks, warn("Intent cache", err.Error()))
		} else {
			checks = append(checks, ok("Intent cache", fmt.Sprintf("%d entries", len(entries))))
		}
	}

	if s.Registry != nil {
		intents := s.Registry.Intents()
		checks = append(checks, ok("Handler registry", fmt.Sprintf("%d intents registered", len(intents))))
	}

	checks = append(checks, toolCheck("Speech recognizer", cfg.Audio.RecognizeCommand))
	checks = append(checks, toolCheck("Speech synthesizer", cfg.Audio.SynthesizerCommand))
	checks = append(checks, apiKeyCheck("OpenAI API key", "OPENAI_API_KEY"))

	if cfg.Web.WeatherAPIKey == "" {
		checks = append(checks, warn("Weather API key", "not configured, get_weather will fail"))
	} else {
		checks = append(checks, ok("Weather API key", "configured"))
	}
	if cfg.Web.NewsAPIKey == "" {
		checks = append(checks, warn("News API key", "not configured, get_news will fail"))
	} else {
		checks = append(checks, ok("News API key", "configured"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func toolCheck(name, command string) domain.HealthCheck {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return warn(name, "not configured")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return warn(name, fmt.Sprintf("%s not found in PATH", fields[0]))
	}
	return ok(name, fields[0]+" found")
}

func apiKeyCheck(name, envVar string) domain.HealthCheck {
	if os.Getenv(envVar) == "" {
		return warn(name, envVar+" missing, remote classification disabled")
	}
	return ok(name, envVar+" set")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthFail, Details: details}
}
