package handlers

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// WebHandler opens search results in the configured browser.
type WebHandler struct {
	Config domain.Config
	Logger ports.Logger
}

// NewWebHandler builds the handler.
func NewWebHandler(cfg domain.Config, log ports.Logger) *WebHandler {
	return &WebHandler{Config: cfg, Logger: log}
}

// SearchWeb handles the search_web intent.
func (h *WebHandler) SearchWeb(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	return h.open(ctx, cmd, "https://www.google.com/search?q=%s", "Searching the web for %s")
}

// SearchYouTube handles the search_youtube intent.
func (h *WebHandler) SearchYouTube(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	return h.open(ctx, cmd, "https://www.youtube.com/results?search_query=%s", "Searching YouTube for %s")
}

// SearchWikipedia handles the search_wikipedia intent.
func (h *WebHandler) SearchWikipedia(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	return h.open(ctx, cmd, "https://en.wikipedia.org/wiki/Special:Search?search=%s", "Searching Wikipedia for %s")
}

func (h *WebHandler) open(ctx context.Context, cmd domain.Command, urlFormat, messageFormat string) domain.ExecutionResult {
	query := cmd.StringEntity("query")
	if query == "" {
		return failed("I need something to search for", "missing query entity")
	}

	browser := h.Config.Web.BrowserCommand
	if browser == "" {
		browser = "xdg-open"
	}

	target := fmt.Sprintf(urlFormat, url.QueryEscape(query))
	if err := exec.CommandContext(ctx, browser, target).Start(); err != nil {
		return failed("I couldn't open the browser", err.Error())
	}

	h.Logger.Info("opened search in browser", map[string]interface{}{"url": target})
	return success(fmt.Sprintf(messageFormat, query), map[string]any{"query": query, "url": target})
}
