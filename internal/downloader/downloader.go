package downloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const unknownTitle = "Unknown Title"

// videoInfo is the subset of yt-dlp's info JSON we rely on.
type videoInfo struct {
	Title    string `json:"title"`
	Ext      string `json:"ext"`
	Filename string `json:"filename"`
	Legacy   string `json:"_filename"`
}

// Fetch downloads the best audio stream of url.
func (f *implFetcher) Fetch(ctx context.Context, url string) (Artifact, error) {
	name := uuid.NewString()

	f.logger.Info(ctx, "Downloading audio %s as %s", url, name)

	args := []string{
		"--format", "bestaudio/best",
		"--output", filepath.Join(f.outputDir, name+".%(ext)s"),
		"--no-playlist",
		"--no-mtime",
		"--quiet",
		"--no-warnings",
		"--no-progress",
		"--dump-single-json",
		"--no-simulate",
		url,
	}

	stdout, err := f.executor.Execute(ctx, f.ytDlp, args...)
	if err != nil {
		f.removeByName(ctx, name)
		return Artifact{}, &DownloadError{URL: url, Err: err}
	}

	var info videoInfo
	if err := json.Unmarshal([]byte(lastJSONLine(stdout)), &info); err != nil {
		f.removeByName(ctx, name)
		return Artifact{}, &DownloadError{URL: url, Err: fmt.Errorf("parse yt-dlp info: %w", err)}
	}

	path, err := f.resolvePath(name, info)
	if err != nil {
		return Artifact{}, &DownloadError{URL: url, Err: err}
	}

	title := strings.TrimSpace(info.Title)
	if title == "" {
		title = unknownTitle
	}

	f.logger.Info(ctx, "Audio downloaded to: %s", path)
	return Artifact{Path: path, Title: title}, nil
}

// resolvePath checks that the file yt-dlp declared exists. If it does not,
// the output directory is scanned for an entry containing the unique name,
// since the reported extension can differ from the one written to disk.
func (f *implFetcher) resolvePath(name string, info videoInfo) (string, error) {
	declared := info.Filename
	if declared == "" {
		declared = info.Legacy
	}
	if declared == "" && info.Ext != "" {
		declared = filepath.Join(f.outputDir, name+"."+info.Ext)
	}
	if declared != "" {
		if _, err := os.Stat(declared); err == nil {
			return declared, nil
		}
	}

	entries, err := os.ReadDir(f.outputDir)
	if err != nil {
		return "", fmt.Errorf("scan output dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.Contains(e.Name(), name) {
			return filepath.Join(f.outputDir, e.Name()), nil
		}
	}

	return "", fmt.Errorf("%w (expected %s)", ErrArtifactMissing, declared)
}

// Release deletes the artifact file, best-effort.
func (f *implFetcher) Release(ctx context.Context, a Artifact) {
	if a.Path == "" {
		return
	}
	if err := os.Remove(a.Path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn(ctx, "Failed to cleanup audio file %s: %v", a.Path, err)
		}
		return
	}
	f.logger.Debug(ctx, "Cleaned up audio file: %s", a.Path)
}

// removeByName drops partial downloads (.part, .ytdl) left by a failed run.
func (f *implFetcher) removeByName(ctx context.Context, name string) {
	matches, err := filepath.Glob(filepath.Join(f.outputDir, name+"*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		f.Release(ctx, Artifact{Path: m})
	}
}

// lastJSONLine returns the last line of out that looks like a JSON object.
// yt-dlp prints exactly one with --dump-single-json, but extractor plugins
// occasionally write to stdout too.
func lastJSONLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if strings.HasPrefix(l, "{") {
			return l
		}
	}
	return strings.TrimSpace(out)
}
