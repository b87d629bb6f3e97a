package captions

import (
	"github.com/nguyentantai21042004/tube-digest/internal/logger"
	"github.com/nguyentantai21042004/tube-digest/pkg/executor"
)

// Options configures the yt-dlp backed caption source.
type Options struct {
	// YtDlp is the yt-dlp binary name or path.
	YtDlp string
	// Dir is where caption files are written before being parsed and removed.
	Dir string
	// Languages is the caption language preference list, most preferred first.
	Languages []string
}

type implSource struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
}

// New creates a caption Source backed by yt-dlp.
func New(opts Options, exec executor.Executor, log logger.Logger) Source {
	if opts.YtDlp == "" {
		opts.YtDlp = "yt-dlp"
	}
	if len(opts.Languages) == 0 {
		opts.Languages = []string{"en", "en-US", "ta", "ta-IN"}
	}
	return &implSource{
		opts:     opts,
		executor: exec,
		logger:   log,
	}
}
