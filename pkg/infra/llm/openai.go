package llm

import (
	"context"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/domain/model"
)

// DefaultGroqBaseURL is the OpenAI-compatible endpoint of Groq
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

type openAIClient struct {
	client *openai.Client
}

type openAIConfig struct {
	baseURL string
	timeout time.Duration
}

// OpenAIOption configures the OpenAI-compatible client
type OpenAIOption func(*openAIConfig)

// WithBaseURL overrides the API root
func WithBaseURL(baseURL string) OpenAIOption {
	return func(c *openAIConfig) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) OpenAIOption {
	return func(c *openAIConfig) {
		c.timeout = timeout
	}
}

// NewOpenAI creates a chat completion client for any OpenAI-compatible API.
// The default base URL is Groq's.
func NewOpenAI(apiKey string, opts ...OpenAIOption) interfaces.LLMClient {
	cfg := &openAIConfig{
		baseURL: DefaultGroqBaseURL,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = cfg.baseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.timeout}

	return &openAIClient{
		client: openai.NewClientWithConfig(clientCfg),
	}
}

// Complete sends a chat completion with an optional system message
func (c *openAIClient) Complete(ctx context.Context, req *model.CompletionRequest) (string, error) {
	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", goerr.Wrap(err, "chat completion failed", goerr.V("model", req.Model))
	}

	if len(resp.Choices) == 0 {
		return "", goerr.New("chat completion returned no choices", goerr.V("model", req.Model))
	}

	text := resp.Choices[0].Message.Content
	ctxlog.From(ctx).Debug("chat completion",
		"model", req.Model,
		"prompt_length", len(req.UserPrompt),
		"response_length", len(text),
		"tokens_used", resp.Usage.TotalTokens,
	)

	return text, nil
}
