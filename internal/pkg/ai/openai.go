package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	apperrors "github.com/commitgen/commitgen/internal/pkg/errors"
)

const (
	// MaxOutputTokens caps the completion length; a commit message is one line.
	MaxOutputTokens = 100
)

// OpenAIGenerator implements Generator against the OpenAI chat API.
type OpenAIGenerator struct {
	client   *openai.Client
	config   GeneratorConfig
	fallback string
}

// NewOpenAIGenerator creates a generator for the given configuration.
// The API key is not validated here: construction must stay cheap so the
// pipeline can short-circuit on an empty staging area before configuration
// problems are surfaced. Generate checks the key before any network call.
func NewOpenAIGenerator(config GeneratorConfig) *OpenAIGenerator {
	clientConfig := openai.DefaultConfig(config.APIKey)

	// Support custom endpoints (for OpenAI-compatible APIs)
	if config.Endpoint != "" {
		clientConfig.BaseURL = config.Endpoint
	}

	// Pooled HTTP client. No request timeout is set here: a single
	// synchronous call per invocation, cancelled only by the caller.
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: transport,
	}

	fallback := config.Fallback
	if fallback == "" {
		fallback = FallbackMessage
	}

	return &OpenAIGenerator{
		client:   openai.NewClientWithConfig(clientConfig),
		config:   config,
		fallback: fallback,
	}
}

// Model returns the configured model name.
func (g *OpenAIGenerator) Model() string {
	return g.config.Model
}

// Generate sends the fixed two-message exchange and extracts the commit
// message from the first candidate. An empty response yields the fallback
// placeholder rather than an error. Failures are not retried.
// A missing API key is a hard stop before any request is issued.
func (g *OpenAIGenerator) Generate(ctx context.Context, diff string) (string, error) {
	if g.config.APIKey == "" {
		return "", apperrors.NewMissingAPIKeyError()
	}

	if diff == "" {
		return "", errors.New("diff cannot be empty")
	}

	userPrompt := UserPrompt(diff)

	req := openai.ChatCompletionRequest{
		Model: g.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		MaxTokens: MaxOutputTokens,
	}

	apperrors.LogAPIRequest(g.config.Model, len(userPrompt))
	startTime := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapAPIError(err)
	}

	responseLen := 0
	if len(resp.Choices) > 0 {
		responseLen = len(resp.Choices[0].Message.Content)
	}
	apperrors.LogAPIResponse(g.config.Model, responseLen, time.Since(startTime))

	if len(resp.Choices) == 0 {
		return g.fallback, nil
	}

	message := ExtractMessage(resp.Choices[0].Message.Content)
	if message == "" {
		return g.fallback, nil
	}

	return message, nil
}

// wrapAPIError maps transport and API failures onto the error taxonomy.
func wrapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.NewAuthenticationError().WithContext("detail", apiErr.Message)
		default:
			return apperrors.NewUpstreamError(err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(err)
	}

	return apperrors.NewUpstreamError(err)
}
