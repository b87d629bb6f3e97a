package captions

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/tube-digest/internal/video"
)

// Fetch looks up a caption track for url in the configured language order.
func (s *implSource) Fetch(ctx context.Context, url string) Result {
	id, ok := video.ExtractID(url)
	if !ok {
		s.logger.Debug(ctx, "No video ID in %s, skipping caption lookup", url)
		return Result{Status: NotAvailable}
	}

	if err := os.MkdirAll(s.opts.Dir, 0755); err != nil {
		return s.failed(ctx, id, fmt.Errorf("create caption dir: %w", err))
	}

	prefix := filepath.Join(s.opts.Dir, "captions-"+uuid.NewString())
	defer s.removeScratch(ctx, prefix)

	s.logger.Info(ctx, "Attempting to fetch captions for video ID: %s", id)

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", strings.Join(s.opts.Languages, ","),
		"--sub-format", "vtt",
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"--output", prefix + ".%(ext)s",
		"https://www.youtube.com/watch?v=" + id,
	}

	if _, err := s.executor.Execute(ctx, s.opts.YtDlp, args...); err != nil {
		return s.failed(ctx, id, fmt.Errorf("yt-dlp subtitles: %w", err))
	}

	for _, lang := range s.opts.Languages {
		path := fmt.Sprintf("%s.%s.vtt", prefix, lang)
		text, err := readTranscript(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return s.failed(ctx, id, err)
		}
		if text == "" {
			continue
		}
		s.logger.Info(ctx, "Captions found for %s (%s, %d chars)", id, lang, len(text))
		return Result{Status: Found, Text: text}
	}

	s.logger.Info(ctx, "No captions available for %s", id)
	return Result{Status: NotAvailable}
}

func (s *implSource) failed(ctx context.Context, id string, err error) Result {
	s.logger.Warn(ctx, "Could not fetch captions for %s: %v", id, err)
	return Result{Status: Failed, Err: err}
}

// removeScratch deletes every file yt-dlp wrote under prefix.
func (s *implSource) removeScratch(ctx context.Context, prefix string) {
	matches, err := filepath.Glob(prefix + "*")
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn(ctx, "Failed to remove caption file %s: %v", m, err)
		}
	}
}

func readTranscript(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	cues, err := ParseVTT(f)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return JoinCues(cues), nil
}
