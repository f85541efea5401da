package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openaigo "github.com/openai/openai-go/v3"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	"github.com/johnquangdev/meeting-summarizer/pkg/jobcontext"
)

// Provider names accepted by NewProvider
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1/"
	defaultGroqModel   = "llama-3.3-70b-versatile"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultGeminiModel = "gemini-2.0-flash"
)

// CompletionRequest is one structured extraction call. Schema is a JSON schema
// document; providers that support structured output enforce it.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	SchemaName   string
	Schema       any
}

// Provider is an LLM that turns a prompt into raw response text
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
	Model() string
}

// NewProvider builds the provider selected by cfg.Provider
func NewProvider(ctx context.Context, cfg config.LLMConfig, httpClient *http.Client) (Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required for provider %q", cfg.Provider)
	}
	switch cfg.Provider {
	case ProviderGroq, "":
		return NewChatClient(ChatConfig{
			Name:             ProviderGroq,
			APIKey:           cfg.APIKey,
			BaseURL:          firstNonEmpty(cfg.BaseURL, defaultGroqBaseURL),
			Model:            firstNonEmpty(cfg.Model, defaultGroqModel),
			Timeout:          cfg.Timeout,
			StructuredOutput: cfg.StructuredOutput,
		}, httpClient), nil
	case ProviderOpenAI:
		return NewChatClient(ChatConfig{
			Name:             ProviderOpenAI,
			APIKey:           cfg.APIKey,
			BaseURL:          cfg.BaseURL,
			Model:            firstNonEmpty(cfg.Model, defaultOpenAIModel),
			Timeout:          cfg.Timeout,
			StructuredOutput: cfg.StructuredOutput,
		}, httpClient), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, firstNonEmpty(cfg.Model, defaultGeminiModel), httpClient)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}

// IsRetryable reports whether a provider error is worth one more attempt.
// Rate limits and server errors are; client errors and cancellations are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openaigo.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}

	return jobcontext.IsRetryableError(err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
