package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/commitgen/commitgen/internal/pkg/errors"
)

func TestGenerate_MissingAPIKeyStopsBeforeRequest(t *testing.T) {
	requestSeen := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestSeen = true
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	gen := NewOpenAIGenerator(GeneratorConfig{
		Model:    "gpt-4o-mini",
		Endpoint: server.URL + "/v1",
	})

	_, err := gen.Generate(context.Background(), "+change")

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrMissingAPIKey, appErr.Code)
	assert.Equal(t, 1, apperrors.GetExitCode(err))
	assert.False(t, requestSeen, "no request should be issued without an API key")
}

// completionServer returns a test server that records the request and
// responds with the given content, plus a generator pointed at it.
func completionServer(t *testing.T, content string) (*openaiRequest, Generator) {
	t.Helper()

	recorded := &openaiRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(recorded))

		resp := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{
					"index": 0,
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": content,
					},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	gen := NewOpenAIGenerator(GeneratorConfig{
		APIKey:   "sk-test",
		Model:    "gpt-4o-mini",
		Endpoint: server.URL + "/v1",
	})

	return recorded, gen
}

// openaiRequest mirrors the fields of the request body we assert on.
type openaiRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens int `json:"max_tokens"`
}

func TestGenerate_RequestShape(t *testing.T) {
	recorded, gen := completionServer(t, "feat: add login")

	message, err := gen.Generate(context.Background(), "+func Login() {}")

	require.NoError(t, err)
	assert.Equal(t, "feat: add login", message)

	assert.Equal(t, "gpt-4o-mini", recorded.Model)
	assert.Equal(t, MaxOutputTokens, recorded.MaxTokens)
	require.Len(t, recorded.Messages, 2)
	assert.Equal(t, "system", recorded.Messages[0].Role)
	assert.Equal(t, SystemPrompt, recorded.Messages[0].Content)
	assert.Equal(t, "user", recorded.Messages[1].Role)
	assert.Equal(t, "Changes:\n+func Login() {}", recorded.Messages[1].Content)
}

func TestGenerate_TrimsResponse(t *testing.T) {
	_, gen := completionServer(t, "\n  fix: handle nil pointer  \n")

	message, err := gen.Generate(context.Background(), "+if x == nil {")

	require.NoError(t, err)
	assert.Equal(t, "fix: handle nil pointer", message)
}

func TestGenerate_BlankResponseFallsBack(t *testing.T) {
	_, gen := completionServer(t, "   \n  ")

	message, err := gen.Generate(context.Background(), "+change")

	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, message)
}

func TestGenerate_NoChoicesFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","choices":[]}`))
	}))
	t.Cleanup(server.Close)

	gen := NewOpenAIGenerator(GeneratorConfig{
		APIKey:   "sk-test",
		Model:    "gpt-4o-mini",
		Endpoint: server.URL + "/v1",
	})

	message, err := gen.Generate(context.Background(), "+change")

	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, message)
}

func TestGenerate_CustomFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","choices":[]}`))
	}))
	t.Cleanup(server.Close)

	gen := NewOpenAIGenerator(GeneratorConfig{
		APIKey:   "sk-test",
		Model:    "gpt-4o-mini",
		Endpoint: server.URL + "/v1",
		Fallback: "chore: update",
	})

	message, err := gen.Generate(context.Background(), "+change")

	require.NoError(t, err)
	assert.Equal(t, "chore: update", message)
}

func TestGenerate_EmptyDiffRejected(t *testing.T) {
	_, gen := completionServer(t, "feat: never sent")

	_, err := gen.Generate(context.Background(), "")

	require.Error(t, err)
}

func TestGenerate_AuthFailureMapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	t.Cleanup(server.Close)

	gen := NewOpenAIGenerator(GeneratorConfig{
		APIKey:   "sk-bad",
		Model:    "gpt-4o-mini",
		Endpoint: server.URL + "/v1",
	})

	_, err := gen.Generate(context.Background(), "+change")

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrAuthenticationFailed, appErr.Code)
	assert.Equal(t, 3, apperrors.GetExitCode(err))
}

func TestGenerate_ServerErrorMapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	t.Cleanup(server.Close)

	gen := NewOpenAIGenerator(GeneratorConfig{
		APIKey:   "sk-test",
		Model:    "gpt-4o-mini",
		Endpoint: server.URL + "/v1",
	})

	_, err := gen.Generate(context.Background(), "+change")

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrUpstreamFailed, appErr.Code)
}

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"plain message", "feat: add feature", "feat: add feature"},
		{"surrounding whitespace", "  feat: add feature \n", "feat: add feature"},
		{"whitespace only", " \n\t ", ""},
		{"empty", "", ""},
		{"interior whitespace preserved", "feat: add  feature", "feat: add  feature"},
		{"quotes preserved verbatim", `"feat: quoted"`, `"feat: quoted"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractMessage(tt.content))
		})
	}
}

func TestUserPrompt(t *testing.T) {
	assert.Equal(t, "Changes:\n+added line", UserPrompt("+added line"))
}
