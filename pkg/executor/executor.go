package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	stdout, _, err := e.ExecuteCombined(ctx, name, args...)
	return stdout, err
}

// ExecuteCombined runs an external command and returns stdout and stderr
// separately. Tools like whisper.cpp report diagnostics on stderr only.
func (e *implExecutor) ExecuteCombined(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Include stderr in error message for debugging
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return stdout.String(), stderr.String(), fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, lastLines(stderrStr, 20))
		}
		return stdout.String(), stderr.String(), fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), stderr.String(), nil
}

// PrependPath puts dir in front of PATH so child processes (yt-dlp,
// whisper) resolve the bundled ffmpeg before any system copy.
func PrependPath(dir string) error {
	if dir == "" {
		return nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve tool dir %s: %w", dir, err)
	}
	current := os.Getenv("PATH")
	for _, p := range filepath.SplitList(current) {
		if p == abs {
			return nil
		}
	}
	if current == "" {
		return os.Setenv("PATH", abs)
	}
	return os.Setenv("PATH", abs+string(os.PathListSeparator)+current)
}

// LookPath reports whether name resolves to an executable.
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
