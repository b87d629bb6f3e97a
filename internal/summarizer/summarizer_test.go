package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
)

type generateBody struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  *bool                  `json:"stream"`
	Options map[string]interface{} `json:"options"`
}

// fakeOllama serves the liveness root and /api/generate.
func fakeOllama(t *testing.T, generate http.HandlerFunc) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Ollama is running"))
	})
	mux.HandleFunc("POST /api/generate", generate)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newOllamaOptions(baseURL string) Options {
	return Options{
		Backend:         BackendOllama,
		Model:           "llama3.2:1b",
		BaseURL:         baseURL,
		Temperature:     0.3,
		NumCtx:          2048,
		ProbeTimeout:    time.Second,
		GenerateTimeout: 5 * time.Second,
	}
}

func TestOllamaSummarize(t *testing.T) {
	var got generateBody
	srv := fakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3.2:1b","response":"  A short summary. \n","done":true}`))
	})

	s, err := New(context.Background(), newOllamaOptions(srv.URL), logger.Nop())
	require.NoError(t, err)

	summary := s.Summarize(context.Background(), "hello world")
	assert.Equal(t, "A short summary.", summary)

	assert.Equal(t, "llama3.2:1b", got.Model)
	assert.Equal(t, BuildPrompt("hello world"), got.Prompt)
	require.NotNil(t, got.Stream)
	assert.False(t, *got.Stream)
	assert.InDelta(t, 0.3, got.Options["temperature"], 1e-9)
	assert.InDelta(t, 2048, got.Options["num_ctx"], 1e-9)
}

func TestOllamaSummarizeHTTPError(t *testing.T) {
	srv := fakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'llama3.2:1b' not found"}`))
	})

	s, err := New(context.Background(), newOllamaOptions(srv.URL), logger.Nop())
	require.NoError(t, err)

	summary := s.Summarize(context.Background(), "text")
	assert.True(t, strings.HasPrefix(summary, "Error generating summary:"), summary)
	assert.Contains(t, summary, "not found")
}

func TestOllamaSummarizeConnectionLost(t *testing.T) {
	srv := fakeOllama(t, func(w http.ResponseWriter, r *http.Request) {})

	s, err := New(context.Background(), newOllamaOptions(srv.URL), logger.Nop())
	require.NoError(t, err)
	srv.Close()

	summary := s.Summarize(context.Background(), "text")
	assert.NotEmpty(t, summary)
	assert.True(t, strings.HasPrefix(summary, "Error: Could not connect"), summary)
}

func TestOllamaSummarizeTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := fakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	opts := newOllamaOptions(srv.URL)
	opts.GenerateTimeout = 50 * time.Millisecond
	s, err := New(context.Background(), opts, logger.Nop())
	require.NoError(t, err)

	summary := s.Summarize(context.Background(), "text")
	assert.Contains(t, summary, "Error")
}

func TestNewProbeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(context.Background(), newOllamaOptions(url), logger.Nop())
	require.Error(t, err)

	var probeErr *ProbeError
	require.True(t, errors.As(err, &probeErr))
	assert.Equal(t, ProbeUnreachable, probeErr.Kind)
	assert.Contains(t, err.Error(), "could not connect")
}

func TestNewProbeTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	opts := newOllamaOptions(srv.URL)
	opts.ProbeTimeout = 50 * time.Millisecond

	_, err := New(context.Background(), opts, logger.Nop())
	var probeErr *ProbeError
	require.True(t, errors.As(err, &probeErr))
	assert.Equal(t, ProbeTimeout, probeErr.Kind)
}

func TestNewProbeBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(context.Background(), newOllamaOptions(srv.URL), logger.Nop())
	var probeErr *ProbeError
	require.True(t, errors.As(err, &probeErr))
	assert.Equal(t, ProbeOther, probeErr.Kind)
}

func TestNewInvalidURL(t *testing.T) {
	_, err := New(context.Background(), newOllamaOptions("localhost"), logger.Nop())
	assert.Error(t, err)
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(context.Background(), Options{Backend: "llamafile"}, logger.Nop())
	assert.Error(t, err)
}

func TestGeminiSummarize(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Gemini summary."}]}}]}`))
	}))
	defer srv.Close()

	s, err := New(context.Background(), Options{
		Backend:     BackendGemini,
		Model:       "gemini-2.5-flash",
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		Temperature: 0.3,
	}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "Gemini summary.", s.Summarize(context.Background(), "text"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeminiSummarizeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	s, err := New(context.Background(), Options{
		Backend: BackendGemini,
		Model:   "gemini-2.5-flash",
		BaseURL: srv.URL,
		APIKey:  "test-key",
	}, logger.Nop())
	require.NoError(t, err)

	assert.Contains(t, s.Summarize(context.Background(), "text"), "Error")
}

func TestGeminiRequiresKey(t *testing.T) {
	_, err := New(context.Background(), Options{Backend: BackendGemini}, logger.Nop())
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("hello world")
	assert.Contains(t, p, "TEXT:\nhello world\n")
	assert.Contains(t, p, "Do not repeat yourself. Capture the main points.")
	assert.True(t, strings.HasSuffix(p, "SUMMARY:\n"))
}

func TestProbeKindString(t *testing.T) {
	assert.Equal(t, "unreachable", ProbeUnreachable.String())
	assert.Equal(t, "timeout", ProbeTimeout.String())
	assert.Equal(t, "error", ProbeOther.String())
}
