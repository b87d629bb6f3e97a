package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
	"github.com/nguyentantai21042004/tube-digest/internal/processor"
	"github.com/nguyentantai21042004/tube-digest/internal/summarizer"
	"github.com/nguyentantai21042004/tube-digest/internal/watcher"
)

// Options configures the web front.
type Options struct {
	Addr string
	// TemplatesDir, when set together with Reload, serves templates from
	// disk and re-parses them whenever a file changes.
	TemplatesDir string
	Reload       bool
}

// Server is the single page form in front of the processor.
type Server struct {
	opts    Options
	proc    processor.Processor
	handles *processor.Handles
	render  *renderer
	logger  logger.Logger
}

type indexView struct {
	URL   string
	Error string
}

type resultView struct {
	Title      string
	Summary    string
	Transcript string
}

// New creates the web Server.
func New(opts Options, proc processor.Processor, handles *processor.Handles, log logger.Logger) (*Server, error) {
	fsys := embeddedTemplates()
	if opts.Reload && opts.TemplatesDir != "" {
		fsys = os.DirFS(opts.TemplatesDir)
	}
	r, err := newRenderer(fsys)
	if err != nil {
		return nil, err
	}
	return &Server{
		opts:    opts,
		proc:    proc,
		handles: handles,
		render:  r,
		logger:  log,
	}, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	static, _ := fs.Sub(staticFS, "static")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.HandleFunc("POST /summarize.docx", s.handleExport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.opts.Reload && s.opts.TemplatesDir != "" {
		w, err := watcher.New(s.opts.TemplatesDir, []string{".html"}, s.onTemplateChange, s.logger)
		if err != nil {
			return fmt.Errorf("watch templates: %w", err)
		}
		defer w.Stop()
		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error(ctx, "Template watcher error: %v", err)
			}
		}()
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Listening on http://%s", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Shutting down web server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) onTemplateChange(ctx context.Context, path string) error {
	if err := s.render.reload(); err != nil {
		return err
	}
	s.logger.Info(ctx, "Templates reloaded after change to %s", path)
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, "index.html", indexView{})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.PostFormValue("url"))
	if url == "" {
		s.page(w, r, "index.html", indexView{Error: "Please provide a video URL."})
		return
	}

	res, err := s.proc.Process(r.Context(), url)
	if err != nil {
		s.page(w, r, "index.html", indexView{URL: url, Error: processor.UserMessage(err)})
		return
	}

	s.page(w, r, "result.html", resultView{
		Title:      res.Title,
		Summary:    res.Summary,
		Transcript: res.TranscriptPreview,
	})
}

// handleExport renders a result the browser already holds as .docx.
// Nothing is kept server side, so the fields come back with the form.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.PostFormValue("title"))
	summary := r.PostFormValue("summary")
	if title == "" || strings.TrimSpace(summary) == "" {
		http.Error(w, "title and summary are required", http.StatusBadRequest)
		return
	}

	data, err := summarizer.Export(title, summary, r.PostFormValue("transcript"))
	if err != nil {
		s.logger.Error(r.Context(), "Failed to export %q: %v", title, err)
		http.Error(w, "could not build document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.docx"`, fileName(title)))
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if s.handles != nil && s.handles.Loaded() {
		fmt.Fprint(w, "ok - models loaded")
		return
	}
	fmt.Fprint(w, "ok - models not loaded yet")
}

func (s *Server) page(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.render.render(&buf, name, data); err != nil {
		s.logger.Error(r.Context(), "Failed to render %s: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

var reUnsafeName = regexp.MustCompile(`[^A-Za-z0-9._ -]+`)

func fileName(title string) string {
	name := strings.TrimSpace(reUnsafeName.ReplaceAllString(title, ""))
	if name == "" {
		return "summary"
	}
	if len(name) > 80 {
		name = strings.TrimSpace(name[:80])
	}
	return name
}
