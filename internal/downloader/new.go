package downloader

import (
	"fmt"
	"os"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
	"github.com/nguyentantai21042004/tube-digest/pkg/executor"
)

type implFetcher struct {
	ytDlp     string
	outputDir string
	executor  executor.Executor
	logger    logger.Logger
}

// New creates a yt-dlp backed Fetcher writing into outputDir, which is
// created if absent.
func New(ytDlp, outputDir string, exec executor.Executor, log logger.Logger) (Fetcher, error) {
	if ytDlp == "" {
		ytDlp = "yt-dlp"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}
	return &implFetcher{
		ytDlp:     ytDlp,
		outputDir: outputDir,
		executor:  exec,
		logger:    log,
	}, nil
}
