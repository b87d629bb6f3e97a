package processor

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/nguyentantai21042004/tube-digest/internal/transcriber"
)

const captionsTitle = "Video (Instant Captions)"

// Process orchestrates the summarization pipeline for one URL. It is the
// only place where failures of the individual steps are turned into a
// request failure; nothing is retried and no partial result is returned.
func (p *implProcessor) Process(ctx context.Context, url string) (res *Result, err error) {
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(ctx, "Panic while processing %s: %v\n%s", url, r, debug.Stack())
			res, err = nil, fmt.Errorf("internal error: %v", r)
		}
		if err != nil {
			p.logger.Error(ctx, "Failed to process %s: %v", url, err)
		}
	}()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting video processing: %s", url)
	p.logger.Info(ctx, "========================================")

	// Step 1: Make sure the engines are loaded
	models, err := p.handles.Get(ctx)
	if err != nil {
		return nil, err
	}

	// Step 2: Captions, falling back to download + transcription
	transcript, title, source, err := p.obtainTranscript(ctx, url, models.Transcriber)
	if err != nil {
		return nil, err
	}

	// Step 3: Summarize
	p.logger.Info(ctx, "Summarizing (Length: %d chars)...", len(transcript))
	summary := models.Summarizer.Summarize(ctx, transcript)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Title: %s (%s)", title, source)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return &Result{
		Title:             title,
		Summary:           summary,
		TranscriptPreview: Preview(transcript),
		Source:            source,
	}, nil
}

func (p *implProcessor) obtainTranscript(ctx context.Context, url string, t transcriber.Transcriber) (string, string, Source, error) {
	if p.opts.Captions {
		p.logger.Info(ctx, "Checking for captions for %s...", url)
		if res := p.captions.Fetch(ctx, url); res.Usable() {
			p.logger.Info(ctx, "Captions found! Skipping audio download & transcription.")
			return res.Text, captionsTitle, SourceCaptions, nil
		}
	}

	p.logger.Info(ctx, "No captions found. Downloading audio %s...", url)
	artifact, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", "", "", err
	}
	defer p.fetcher.Release(ctx, artifact)

	p.logger.Info(ctx, "Transcribing %s...", artifact.Title)
	text, err := t.Transcribe(ctx, artifact.Path)
	if err != nil {
		return "", "", "", fmt.Errorf("transcribe: %w", err)
	}

	return text, artifact.Title, SourceAudio, nil
}
