package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rogerjeasy/bav-roger/internal/integrations/upstream"
)

func TestMessagesURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"https://api.anthropic.com/v1", "https://api.anthropic.com/v1/messages"},
		{"http://localhost:8080", "http://localhost:8080/v1/messages"},
		{"", "https://api.anthropic.com/v1/messages"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, messagesURL(tc.base), "base=%q", tc.base)
	}
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "api key")

	_, err = NewClient("sk-ant", WithModel(" "))
	require.Error(t, err)
	require.Contains(t, err.Error(), "model")
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient("sk-ant", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestGenerate_HappyPath(t *testing.T) {
	var got messagesRequest
	var apiKey, version string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/messages", r.URL.Path)
		apiKey = r.Header.Get("x-api-key")
		version = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"msg-1","type":"message","role":"assistant","content":[{"type":"text","text":"Roger is a software engineer."}]}`))
	})

	out, err := c.Generate(context.Background(), "Who is Roger?")
	require.NoError(t, err)
	require.Equal(t, "Roger is a software engineer.", out)

	require.Equal(t, "sk-ant", apiKey)
	require.Equal(t, anthropicVersion, version)
	require.Equal(t, DefaultModel, got.Model)
	require.Equal(t, 1024, got.MaxTokens)
	require.Contains(t, got.System, "AI assistant for Roger Jeasy")
	require.Len(t, got.Messages, 1)
	require.Equal(t, "user", got.Messages[0].Role)
	require.Equal(t, "Who is Roger?", got.Messages[0].Content)
}

func TestGenerate_FirstBlockNotText_ReturnsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"tool_use","text":""}]}`))
	})

	out, err := c.Generate(context.Background(), "hi")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestGenerate_NoContentBlocks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	})

	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no content blocks")
}

func TestGenerate_UpstreamStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"type":"authentication_error"}}`, http.StatusUnauthorized)
	})

	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)

	var statusErr *upstream.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}
