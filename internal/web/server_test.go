package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
	"github.com/nguyentantai21042004/tube-digest/internal/processor"
	"github.com/nguyentantai21042004/tube-digest/internal/summarizer"
	"github.com/nguyentantai21042004/tube-digest/internal/transcriber"
)

type fakeProcessor struct {
	result *processor.Result
	err    error
	urls   []string
}

func (f *fakeProcessor) Process(ctx context.Context, url string) (*processor.Result, error) {
	f.urls = append(f.urls, url)
	return f.result, f.err
}

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return "", nil
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(ctx context.Context, text string) string { return "" }

func newTestServer(t *testing.T, proc processor.Processor, handles *processor.Handles) *Server {
	t.Helper()
	s, err := New(Options{Addr: "127.0.0.1:0"}, proc, handles, logger.Nop())
	require.NoError(t, err)
	return s
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{}, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `action="/summarize"`)
	assert.NotContains(t, rec.Body.String(), `class="error"`)
}

func TestUnknownPath(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{}, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		result      *processor.Result
		err         error
		wantCalls   int
		wantContain []string
	}{
		{
			name:        "blank url",
			url:         "   ",
			wantCalls:   0,
			wantContain: []string{"Please provide a video URL."},
		},
		{
			name: "success",
			url:  "https://youtu.be/abc123",
			result: &processor.Result{
				Title:             "Rust & Go",
				Summary:           "Short summary.",
				TranscriptPreview: "hello world",
				Source:            processor.SourceCaptions,
			},
			wantCalls:   1,
			wantContain: []string{"Rust &amp; Go", "Short summary.", "hello world", `action="/summarize.docx"`},
		},
		{
			name:        "model init failure",
			url:         "https://youtu.be/abc123",
			err:         &processor.ModelInitError{Component: "transcriber", Err: errors.New("model file missing")},
			wantCalls:   1,
			wantContain: []string{"Failed to load models: model file missing", `value="https://youtu.be/abc123"`},
		},
		{
			name:        "pipeline failure",
			url:         "https://youtu.be/abc123",
			err:         errors.New("download failed"),
			wantCalls:   1,
			wantContain: []string{"Error processing video: download failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := &fakeProcessor{result: tt.result, err: tt.err}
			s := newTestServer(t, proc, nil)

			rec := postForm(t, s.Handler(), "/summarize", url.Values{"url": {tt.url}})

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, proc.urls, tt.wantCalls)
			for _, want := range tt.wantContain {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestSummarizeEscapesOutput(t *testing.T) {
	proc := &fakeProcessor{result: &processor.Result{
		Title:   "<script>alert(1)</script>",
		Summary: "ok",
	}}
	s := newTestServer(t, proc, nil)

	rec := postForm(t, s.Handler(), "/summarize", url.Values{"url": {"https://youtu.be/x"}})

	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestExport(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{}, nil)

	t.Run("builds a document", func(t *testing.T) {
		rec := postForm(t, s.Handler(), "/summarize.docx", url.Values{
			"title":      {"My: Video?"},
			"summary":    {"## Key points\n- **first**\n- second"},
			"transcript": {"hello world"},
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="My Video.docx"`, rec.Header().Get("Content-Disposition"))
		// docx is a zip archive
		assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
	})

	t.Run("missing summary", func(t *testing.T) {
		rec := postForm(t, s.Handler(), "/summarize.docx", url.Values{"title": {"x"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	handles := processor.NewHandles(processor.Loaders{
		Transcriber: func(ctx context.Context) (transcriber.Transcriber, error) { return stubTranscriber{}, nil },
		Summarizer:  func(ctx context.Context) (summarizer.Summarizer, error) { return stubSummarizer{}, nil },
	})
	s := newTestServer(t, &fakeProcessor{}, handles)

	get := func() string {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Body.String()
	}

	assert.Equal(t, "ok - models not loaded yet", get())

	_, err := handles.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ok - models loaded", get())
}

func TestStatic(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{}, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}

func TestReloadFromDisk(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	write("index.html", "v1 {{.Error}}")
	write("result.html", "{{.Title}}")

	s, err := New(Options{TemplatesDir: dir, Reload: true}, &fakeProcessor{}, nil, logger.Nop())
	require.NoError(t, err)

	body := func() string {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec.Body.String()
	}
	assert.Equal(t, "v1 ", body())

	write("index.html", "v2 {{.Error}}")
	require.NoError(t, s.onTemplateChange(context.Background(), filepath.Join(dir, "index.html")))
	assert.Equal(t, "v2 ", body())

	// a broken template keeps the previous set
	write("index.html", "{{.Error")
	assert.Error(t, s.onTemplateChange(context.Background(), filepath.Join(dir, "index.html")))
	assert.Equal(t, "v2 ", body())
}

func TestFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Plain title", "Plain title"},
		{"a/b\\c:d", "abcd"},
		{"???", "summary"},
		{strings.Repeat("x", 100), strings.Repeat("x", 80)},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, fileName(tt.title))
		})
	}
}
