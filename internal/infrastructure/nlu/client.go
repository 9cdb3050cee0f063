// Package nlu wraps the OpenAI chat completion API as the remote intent
// classifier. Any malformed reply is an error the resolver degrades from;
// nothing here propagates to the user.
package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

const systemPrompt = `You are VOXA, a voice assistant that helps users with daily computer tasks. Parse user commands into structured JSON format.

Common intents:
- open_app: Launch an application
- close_app: Close a running application
- get_weather: Get weather information
- search_web: Search the internet
- search_youtube: Search YouTube videos
- search_wikipedia: Search Wikipedia articles
- set_reminder: Set a reminder
- set_timer: Set a timer
- play_music: Play music
- pause_resume_music: Pause or resume music
- send_email: Send an email
- get_time: Get current time
- get_date: Get current date
- shutdown_system: Shutdown the computer
- restart_system: Restart the computer
- get_system_info: Report system status
- get_news: Get news headlines
- general_query: Anything else

Response format (JSON only):
{
    "intent": "command_intent",
    "entities": {
        "key": "value"
    },
    "confidence": 0.95,
    "requires_confirmation": false
}

Only respond with valid JSON. No additional text.`

// Client implements the ports.CompletionClient port.
type Client struct {
	api         openai.Client
	model       string
	maxTokens   int
	temperature float64
}

// New constructs a classifier client. The API key comes from the
// OPENAI_API_KEY environment variable; baseURL overrides the endpoint for
// self-hosted compatible services.
func New(cfg domain.Config) (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.AI.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.AI.BaseURL))
	}

	return &Client{
		api:         openai.NewClient(opts...),
		model:       cfg.GetModel(),
		maxTokens:   cfg.AI.MaxTokens,
		temperature: cfg.AI.Temperature,
	}, nil
}

// Classify implements ports.CompletionClient.
func (c *Client) Classify(ctx context.Context, utterance string) (domain.Classification, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(utterance),
		},
		Model:               openai.ChatModel(c.model),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
		Temperature:         openai.Float(c.temperature),
	})
	if err != nil {
		return domain.Classification{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Classification{}, fmt.Errorf("no choices in response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return domain.Classification{}, fmt.Errorf("empty message content")
	}

	return parseClassification(content)
}

// Answer responds to a free-form question in at most a couple of spoken
// sentences. Used by the general_query handler.
func (c *Client) Answer(ctx context.Context, question string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are VOXA, a helpful voice assistant. Answer in one or two short spoken sentences."),
			openai.UserMessage(question),
		},
		Model:               openai.ChatModel(c.model),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty answer")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// parseClassification decodes the model reply strictly into the expected
// schema. Replies wrapped in prose or code fences are tolerated by
// extracting the outermost JSON object.
func parseClassification(content string) (domain.Classification, error) {
	raw := extractJSON(content)

	var out domain.Classification
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return domain.Classification{}, fmt.Errorf("unmarshal classification: %w (raw: %s)", err, content)
	}
	if out.Intent == "" {
		return domain.Classification{}, fmt.Errorf("classification is missing an intent (raw: %s)", content)
	}
	if out.Entities == nil {
		out.Entities = map[string]any{}
	}
	return out, nil
}

func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}

var _ ports.CompletionClient = (*Client)(nil)
