package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/pkg/logger"
)

func testLogger() *logger.SlogLogger {
	return logger.NewWith(slog.New(slog.DiscardHandler))
}

func infoHandlerFor(t *testing.T, handler http.HandlerFunc) (*InfoHandler, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var cfg domain.Config
	cfg.Web.WeatherAPIKey = "test-key"
	cfg.Web.WeatherBaseURL = server.URL
	cfg.Web.NewsAPIKey = "test-key"
	cfg.Web.NewsBaseURL = server.URL

	return NewInfoHandler(cfg, testLogger(), nil), server
}

func TestWeatherParsesResponse(t *testing.T) {
	h, _ := infoHandlerFor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "Tokyo" {
			t.Errorf("city query = %q, want Tokyo", r.URL.Query().Get("q"))
		}
		w.Write([]byte(`{
			"name": "Tokyo",
			"main": {"temp": 21.4, "feels_like": 22.0, "humidity": 60},
			"weather": [{"description": "light rain"}]
		}`))
	})

	result := h.Weather(context.Background(), domain.Command{
		Intent:   domain.IntentGetWeather,
		Entities: map[string]any{"query": "Tokyo"},
	})

	if !result.Success {
		t.Fatalf("Weather() failed: %+v", result)
	}
	if result.Message != "It's 21 degrees with light rain in Tokyo" {
		t.Fatalf("message = %q", result.Message)
	}
	if result.Data["humidity"].(int64) != 60 {
		t.Fatalf("data = %+v", result.Data)
	}
}

func TestWeatherWithoutAPIKey(t *testing.T) {
	h := NewInfoHandler(domain.Config{}, testLogger(), nil)

	result := h.Weather(context.Background(), domain.Command{Intent: domain.IntentGetWeather})
	if result.Success {
		t.Fatal("expected failure without an API key")
	}
}

func TestWeatherUpstreamError(t *testing.T) {
	h, _ := infoHandlerFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	result := h.Weather(context.Background(), domain.Command{Intent: domain.IntentGetWeather})
	if result.Success {
		t.Fatal("expected failure on upstream error")
	}
}

func TestNewsCollectsHeadlines(t *testing.T) {
	h, _ := infoHandlerFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles": [
			{"title": "First headline"},
			{"title": "Second headline"}
		]}`))
	})

	result := h.News(context.Background(), domain.Command{Intent: domain.IntentGetNews})
	if !result.Success {
		t.Fatalf("News() failed: %+v", result)
	}
	headlines := result.Data["headlines"].([]any)
	if len(headlines) != 2 || headlines[0] != "First headline" {
		t.Fatalf("headlines = %v", headlines)
	}
}

func TestNewsEmptyResponse(t *testing.T) {
	h, _ := infoHandlerFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles": []}`))
	})

	result := h.News(context.Background(), domain.Command{Intent: domain.IntentGetNews})
	if result.Success {
		t.Fatal("expected failure for empty article list")
	}
}

func TestGeneralQueryUsesAnswerer(t *testing.T) {
	h := NewInfoHandler(domain.Config{}, testLogger(), stubAnswerer{answer: "Paris is the capital of France."})

	result := h.GeneralQuery(context.Background(), domain.Command{
		Intent:   domain.IntentGeneralQuery,
		Entities: map[string]any{"query": "capital of france"},
	})
	if !result.Success {
		t.Fatalf("GeneralQuery() failed: %+v", result)
	}
	if result.Message != "Paris is the capital of France." {
		t.Fatalf("message = %q", result.Message)
	}
}

func TestGeneralQueryWithoutAnswerer(t *testing.T) {
	h := NewInfoHandler(domain.Config{}, testLogger(), nil)

	result := h.GeneralQuery(context.Background(), domain.Command{
		Intent:  domain.IntentGeneralQuery,
		RawText: "what is the meaning of life",
	})
	if result.Success {
		t.Fatal("expected failure without an answer service")
	}
}

func TestGeneralQueryAnswererError(t *testing.T) {
	h := NewInfoHandler(domain.Config{}, testLogger(), stubAnswerer{err: errors.New("model offline")})

	result := h.GeneralQuery(context.Background(), domain.Command{
		Intent:   domain.IntentGeneralQuery,
		Entities: map[string]any{"query": "anything"},
	})
	if result.Success {
		t.Fatal("expected failure when the answerer errors")
	}
}

func TestTimeAndDateAlwaysSucceed(t *testing.T) {
	h := NewInfoHandler(domain.Config{}, testLogger(), nil)

	if result := h.Time(context.Background(), domain.Command{}); !result.Success {
		t.Fatalf("Time() failed: %+v", result)
	}
	if result := h.Date(context.Background(), domain.Command{}); !result.Success {
		t.Fatalf("Date() failed: %+v", result)
	}
	if result := h.SystemInfo(context.Background(), domain.Command{}); !result.Success {
		t.Fatalf("SystemInfo() failed: %+v", result)
	}
}

type stubAnswerer struct {
	answer string
	err    error
}

func (s stubAnswerer) Answer(context.Context, string) (string, error) {
	return s.answer, s.err
}
