package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"time"

	"github.com/tidwall/gjson"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// Answerer answers free-form questions, typically via the same language
// model that classifies intents.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// InfoHandler serves informational intents: weather, news, time, date,
// system status and general questions.
type InfoHandler struct {
	Config   domain.Config
	Logger   ports.Logger
	HTTP     *http.Client
	Answerer Answerer
}

// NewInfoHandler builds the handler with a timeout-bounded HTTP client.
func NewInfoHandler(cfg domain.Config, log ports.Logger, answerer Answerer) *InfoHandler {
	return &InfoHandler{
		Config:   cfg,
		Logger:   log,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Answerer: answerer,
	}
}

// Weather handles the get_weather intent via OpenWeatherMap.
func (h *InfoHandler) Weather(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	if h.Config.Web.WeatherAPIKey == "" {
		return failed("Weather API key not configured", "missing weather API key")
	}

	city := cmd.StringEntity("query")
	if city == "" {
		city = cmd.StringEntity("location")
	}
	if city == "" {
		city = h.Config.GetDefaultCity()
	}

	endpoint := fmt.Sprintf("%s?q=%s&appid=%s&units=metric",
		h.Config.Web.WeatherBaseURL, url.QueryEscape(city), h.Config.Web.WeatherAPIKey)
	body, err := h.fetch(ctx, endpoint)
	if err != nil {
		return failed(fmt.Sprintf("I couldn't get the weather for %s", city), err.Error())
	}

	temp := gjson.GetBytes(body, "main.temp").Float()
	feels := gjson.GetBytes(body, "main.feels_like").Float()
	desc := gjson.GetBytes(body, "weather.0.description").String()
	humidity := gjson.GetBytes(body, "main.humidity").Int()
	name := gjson.GetBytes(body, "name").String()
	if name == "" {
		name = city
	}

	return success(
		fmt.Sprintf("It's %.0f degrees with %s in %s", temp, desc, name),
		map[string]any{
			"location":    name,
			"temperature": temp,
			"feels_like":  feels,
			"description": desc,
			"humidity":    humidity,
		})
}

// News handles the get_news intent via NewsAPI top headlines.
func (h *InfoHandler) News(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	if h.Config.Web.NewsAPIKey == "" {
		return failed("News API key not configured", "missing news API key")
	}

	endpoint := fmt.Sprintf("%s?country=us&pageSize=5&apiKey=%s",
		h.Config.Web.NewsBaseURL, h.Config.Web.NewsAPIKey)
	if topic := cmd.StringEntity("query"); topic != "" {
		endpoint += "&q=" + url.QueryEscape(topic)
	}

	body, err := h.fetch(ctx, endpoint)
	if err != nil {
		return failed("I couldn't fetch the news", err.Error())
	}

	var headlines []any
	gjson.GetBytes(body, "articles.#.title").ForEach(func(_, value gjson.Result) bool {
		headlines = append(headlines, value.String())
		return true
	})
	if len(headlines) == 0 {
		return failed("No headlines found", "empty news response")
	}

	return success(
		fmt.Sprintf("Here are the top headlines. First: %v", headlines[0]),
		map[string]any{"headlines": headlines})
}

// Time handles the get_time intent.
func (h *InfoHandler) Time(_ context.Context, _ domain.Command) domain.ExecutionResult {
	now := time.Now()
	return success(
		fmt.Sprintf("It's %s", now.Format("3:04 PM")),
		map[string]any{"time": now.Format(time.RFC3339)})
}

// Date handles the get_date intent.
func (h *InfoHandler) Date(_ context.Context, _ domain.Command) domain.ExecutionResult {
	now := time.Now()
	return success(
		fmt.Sprintf("Today is %s", now.Format("Monday, January 2, 2006")),
		map[string]any{"date": now.Format("2006-01-02")})
}

// SystemInfo handles the get_system_info intent.
func (h *InfoHandler) SystemInfo(_ context.Context, _ domain.Command) domain.ExecutionResult {
	hostname, _ := os.Hostname()
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return success(
		fmt.Sprintf("Running on %s with %d CPUs", hostname, runtime.NumCPU()),
		map[string]any{
			"hostname":   hostname,
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
			"cpus":       runtime.NumCPU(),
			"goroutines": runtime.NumGoroutine(),
			"heap_bytes": mem.HeapAlloc,
		})
}

// GeneralQuery handles the general_query intent. Without an answerer the
// question is redirected to a web search.
func (h *InfoHandler) GeneralQuery(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	question := cmd.StringEntity("query")
	if question == "" {
		question = cmd.RawText
	}

	if h.Answerer == nil {
		return failed("I can't answer that right now", "no answer service configured")
	}

	answer, err := h.Answerer.Answer(ctx, question)
	if err != nil {
		return failed("I couldn't find an answer", err.Error())
	}
	return success(answer, map[string]any{"question": question})
}

func (h *InfoHandler) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}
