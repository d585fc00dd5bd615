package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/studymate-backend/internal/logging"
)

const testKey = "test-secret-key"

func newTestClient(baseURL string) *Client {
	return NewClient(Options{
		APIKey:  testKey,
		Model:   "gemini-test",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(b)
}

func TestClient_Generate_RequestShape(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, testKey, r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateBody(`{"concept":"c"}`)))
	}))
	defer server.Close()

	schema := &Schema{
		Type:       "OBJECT",
		Properties: map[string]*Schema{"concept": {Type: "STRING"}},
		Required:   []string{"concept"},
	}
	text, err := newTestClient(server.URL).Generate(context.Background(), GenerateRequest{
		Operation: "test",
		Prompt:    "hello",
		Schema:    schema,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"concept":"c"}`, text)

	contents := got["contents"].([]any)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 1)
	assert.Equal(t, "hello", parts[0].(map[string]any)["text"])

	gen := got["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", gen["responseMimeType"])
	rs := gen["responseSchema"].(map[string]any)
	assert.Equal(t, "OBJECT", rs["type"])
	assert.Equal(t, []any{"concept"}, rs["required"])
}

func TestClient_Generate_NoSchemaOmitsGenerationConfig(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(candidateBody("plain text")))
	}))
	defer server.Close()

	text, err := newTestClient(server.URL).Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "plain text", text)
	_, present := got["generationConfig"]
	assert.False(t, present)
}

func TestClient_Generate_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamStatus)
	assert.Contains(t, err.Error(), "400")
}

func TestClient_Generate_MissingCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no candidates key", `{}`},
		{"empty candidates", `{"candidates":[]}`},
		{"blocked prompt", `{"promptFeedback":{"blockReason":"SAFETY"}}`},
		{"no parts", `{"candidates":[{"content":{"parts":[]},"finishReason":"MAX_TOKENS"}]}`},
		{"part without text", `{"candidates":[{"content":{"parts":[{}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Generate(context.Background(), GenerateRequest{Prompt: "hi"})
			assert.ErrorIs(t, err, ErrEmptyCandidates)
		})
	}
}

func TestClient_Generate_MalformedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Generate_UnreachableDoesNotLeakKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var buf bytes.Buffer
	logging.SetOutput(&buf)
	defer logging.SetOutput(io.Discard)

	_, err := newTestClient(url).Generate(context.Background(), GenerateRequest{Operation: "unreachable", Prompt: "hi"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testKey)
	assert.NotContains(t, buf.String(), testKey)
	assert.Contains(t, buf.String(), "unreachable")
}

func TestClient_Generate_MissingKey(t *testing.T) {
	c := NewClient(Options{Model: "m", BaseURL: "http://127.0.0.1:1"})
	assert.False(t, c.Enabled())

	_, err := c.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClient_Generate_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server.URL).Generate(ctx, GenerateRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
