package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rogerjeasy/bav-roger/internal/integrations/upstream"
)

// ---------------------------------------------------------------------------
// chatURL helper
// ---------------------------------------------------------------------------

func TestChatURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"https://api.openai.com/v1", "https://api.openai.com/v1/chat/completions"},
		{"https://api.openai.com/v1/", "https://api.openai.com/v1/chat/completions"},
		{"http://localhost:8080", "http://localhost:8080/v1/chat/completions"},
		{"", "https://api.openai.com/v1/chat/completions"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, chatURL(tc.base), "base=%q", tc.base)
	}
}

// ---------------------------------------------------------------------------
// NewClient
// ---------------------------------------------------------------------------

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("", ModelGPT4Turbo)
	require.Error(t, err)
	require.Contains(t, err.Error(), "api key")

	_, err = NewClient("sk-test", " ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "model")
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient("sk-test", ModelGPT35)
	require.NoError(t, err)
	require.Equal(t, "https://api.openai.com/v1", c.baseURL)
	require.Equal(t, ModelGPT35, c.model)
}

// ---------------------------------------------------------------------------
// Generate
// ---------------------------------------------------------------------------

func newTestClient(t *testing.T, handler http.HandlerFunc, model string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient("sk-test", model, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestGenerate_HappyPath(t *testing.T) {
	var got chatRequest
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"cmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"hello there"}}]}`))
	}, ModelGPT4Turbo)

	out, err := c.Generate(context.Background(), "What do you do?")
	require.NoError(t, err)
	require.Equal(t, "hello there", out)

	require.Equal(t, "Bearer sk-test", auth)
	require.Equal(t, ModelGPT4Turbo, got.Model)
	require.Len(t, got.Messages, 1)
	require.Equal(t, "user", got.Messages[0].Role)
	require.Equal(t, "What do you do?", got.Messages[0].Content)
	require.NotNil(t, got.Temperature)
	require.InDelta(t, 0.7, *got.Temperature, 1e-9)
}

func TestGenerate_EmptyContent_IsSuccess(t *testing.T) {
	// An empty completion is not this layer's problem; the dispatch path
	// decides what to do with it.
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":""}}]}`))
	}, ModelGPT35)

	out, err := c.Generate(context.Background(), "hi")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestGenerate_NoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}, ModelGPT4Turbo)

	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no choices")
}

func TestGenerate_UpstreamStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}, ModelGPT4Turbo)

	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)

	var statusErr *upstream.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	require.Contains(t, statusErr.Body, "rate limited")
}

func TestGenerate_MalformedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}, ModelGPT4Turbo)

	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode response")
}
