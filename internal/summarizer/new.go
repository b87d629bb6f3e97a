package summarizer

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
)

const (
	BackendOllama = "ollama"
	BackendGemini = "gemini"
)

// Options configures a Summarizer backend.
type Options struct {
	Backend         string
	Model           string
	BaseURL         string
	APIKey          string
	Temperature     float64
	NumCtx          int
	ProbeTimeout    time.Duration
	GenerateTimeout time.Duration
}

// New creates a Summarizer for the configured backend. For Ollama the
// server must answer a liveness probe; any failure here is fatal to the
// summarizer and returned as *ProbeError.
func New(ctx context.Context, opts Options, log logger.Logger) (Summarizer, error) {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 5 * time.Second
	}

	switch opts.Backend {
	case "", BackendOllama:
		o, err := newOllama(ctx, opts, log)
		if err != nil {
			return nil, err
		}
		return o, nil
	case BackendGemini:
		g, err := newGemini(ctx, opts, log)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unsupported summarizer backend %q", opts.Backend)
	}
}
