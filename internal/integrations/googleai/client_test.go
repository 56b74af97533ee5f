package googleai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rogerjeasy/bav-roger/internal/integrations/upstream"
)

func TestGenerateURL(t *testing.T) {
	require.Equal(t,
		"https://generativelanguage.googleapis.com/v1beta/models/gemini-1.0-pro:generateContent",
		generateURL("", DefaultModel))
	require.Equal(t,
		"http://localhost:8080/models/gemini-1.0-pro:generateContent",
		generateURL("http://localhost:8080/", DefaultModel))
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "api key")

	_, err = NewClient("key", WithModel(" "))
	require.Error(t, err)
	require.Contains(t, err.Error(), "model")
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient("g-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestGenerate_HappyPath(t *testing.T) {
	var got generateRequest
	var apiKey string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-1.0-pro:generateContent", r.URL.Path)
		apiKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Gemini says hi."}]}}]}`))
	})

	out, err := c.Generate(context.Background(), "Say hi")
	require.NoError(t, err)
	require.Equal(t, "Gemini says hi.", out)

	require.Equal(t, "g-key", apiKey)
	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	require.Equal(t, "Say hi", got.Contents[0].Parts[0].Text)
}

func TestGenerate_NoCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no candidates")
}

func TestGenerate_NoParts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[]}}]}`))
	})

	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no parts")
}

func TestGenerate_UpstreamStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"status":"PERMISSION_DENIED"}}`, http.StatusForbidden)
	})

	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)

	var statusErr *upstream.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}
