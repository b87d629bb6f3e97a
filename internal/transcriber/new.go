package transcriber

import (
	"fmt"
	"os"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
	"github.com/nguyentantai21042004/tube-digest/pkg/executor"
)

// Options configures the whisper.cpp transcriber.
type Options struct {
	BinaryPath string
	ModelPath  string
	Language   string
	Threads    int
	BeamSize   int
}

type implTranscriber struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Transcriber bound to a model file that must already exist
// on local disk. Nothing is ever downloaded.
func New(opts Options, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	if opts.Language == "" {
		opts.Language = "auto"
	}
	if opts.Threads <= 0 {
		opts.Threads = 4
	}
	if opts.BeamSize <= 0 {
		opts.BeamSize = 5
	}

	fi, err := os.Stat(opts.ModelPath)
	if err != nil || fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrModelMissing, opts.ModelPath)
	}
	if _, err := executor.LookPath(opts.BinaryPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBinaryMissing, opts.BinaryPath, err)
	}

	return &implTranscriber{
		opts:     opts,
		executor: exec,
		logger:   log,
	}, nil
}
