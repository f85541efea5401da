package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ChatConfig configures an OpenAI-compatible chat completions endpoint
type ChatConfig struct {
	Name             string
	APIKey           string
	BaseURL          string
	Model            string
	Timeout          time.Duration
	StructuredOutput bool
}

// ChatClient calls an OpenAI-compatible chat completions API (Groq by default)
type ChatClient struct {
	client     openaigo.Client
	name       string
	model      string
	structured bool
}

// NewChatClient creates a chat client. Retries are left to the caller, so the
// SDK's own retry loop is disabled.
func NewChatClient(cfg ChatConfig, httpClient *http.Client) *ChatClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	name := cfg.Name
	if name == "" {
		name = ProviderOpenAI
	}
	return &ChatClient{
		client:     openaigo.NewClient(opts...),
		name:       name,
		model:      cfg.Model,
		structured: cfg.StructuredOutput,
	}
}

// Name returns the provider name
func (c *ChatClient) Name() string {
	return c.name
}

// Model returns the chat model in use
func (c *ChatClient) Model() string {
	return c.model
}

// Complete sends one system + user exchange and returns the assistant content
func (c *ChatClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	params := openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(c.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.SystemMessage(req.SystemPrompt),
			openaigo.UserMessage(req.UserPrompt),
		},
		Temperature: openaigo.Float(0.2),
	}
	if c.structured && req.Schema != nil {
		params.ResponseFormat = openaigo.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openaigo.ResponseFormatJSONSchemaParam{
				JSONSchema: openaigo.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        req.SchemaName,
					Description: openaigo.String("Meeting report fields"),
					Schema:      req.Schema,
					Strict:      openaigo.Bool(true),
				},
			},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.name)
	}
	return resp.Choices[0].Message.Content, nil
}
