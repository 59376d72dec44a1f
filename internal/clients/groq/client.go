package groq

import (
	"context"
	"errors"
	"fmt"

	"medicare-call-server/internal/observability"

	"github.com/openai/openai-go"
	openaiOption "github.com/openai/openai-go/option"
)

// Groq exposes an OpenAI-compatible chat completions API, so the openai-go
// SDK is pointed at Groq's base URL.
const groqBaseURL = "https://api.groq.com/openai/v1"

// Generation parameters kept low-temperature so field extraction stays
// deterministic.
const (
	defaultTemperature = 0.2
	defaultMaxTokens   = 1024
	defaultTopP        = 0.9
)

// Message is a single chat turn sent to the model
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client calls the Groq chat completions API
type Client struct {
	apiKey string
	model  string
	logger *observability.Logger
}

func NewClient(apiKey, model string, logger *observability.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("Groq API key is required")
	}
	if model == "" {
		return nil, errors.New("Groq model is required")
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}, nil
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.model
}

// Complete sends the messages to the model and returns the assistant's reply.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	client := openai.NewClient(
		openaiOption.WithAPIKey(c.apiKey),
		openaiOption.WithBaseURL(groqBaseURL),
	)

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(defaultTemperature),
		MaxTokens:   openai.Int(defaultMaxTokens),
		TopP:        openai.Float(defaultTopP),
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.logger.Error(ctx, "chat completion request failed", err)
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
