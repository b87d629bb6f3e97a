package processor

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/tube-digest/internal/summarizer"
	"github.com/nguyentantai21042004/tube-digest/internal/transcriber"
)

// Models is the pair of heavy engines shared by all requests.
type Models struct {
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
}

// Loaders construct the engines on first use.
type Loaders struct {
	Transcriber func(ctx context.Context) (transcriber.Transcriber, error)
	Summarizer  func(ctx context.Context) (summarizer.Summarizer, error)
}

// Handles lazily initializes Models. The first caller to succeed wins and
// every later caller gets the same instances. A failed load is reported to
// that caller and attempted again by the next one; an engine that loaded
// successfully is kept even if its sibling failed.
type Handles struct {
	loaders Loaders

	mu     sync.Mutex
	models Models
}

// NewHandles creates an empty holder.
func NewHandles(loaders Loaders) *Handles {
	return &Handles{loaders: loaders}
}

// Get returns the initialized models, loading whichever is missing.
func (h *Handles) Get(ctx context.Context) (Models, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.models.Transcriber == nil {
		t, err := h.loaders.Transcriber(ctx)
		if err != nil {
			return Models{}, &ModelInitError{Component: "transcriber", Err: err}
		}
		h.models.Transcriber = t
	}
	if h.models.Summarizer == nil {
		s, err := h.loaders.Summarizer(ctx)
		if err != nil {
			return Models{}, &ModelInitError{Component: "summarizer", Err: err}
		}
		h.models.Summarizer = s
	}

	return h.models, nil
}

// Loaded reports whether both models are ready, without loading anything.
func (h *Handles) Loaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.models.Transcriber != nil && h.models.Summarizer != nil
}
