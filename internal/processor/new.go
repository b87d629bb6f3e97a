package processor

import (
	"github.com/nguyentantai21042004/tube-digest/internal/captions"
	"github.com/nguyentantai21042004/tube-digest/internal/downloader"
	"github.com/nguyentantai21042004/tube-digest/internal/logger"
)

// Options toggles optional pipeline steps.
type Options struct {
	// Captions enables the caption-first lookup.
	Captions bool
}

type implProcessor struct {
	opts     Options
	handles  *Handles
	captions captions.Source
	fetcher  downloader.Fetcher
	logger   logger.Logger
}

// New creates a new Processor instance
func New(opts Options, handles *Handles, src captions.Source, fetcher downloader.Fetcher, log logger.Logger) Processor {
	return &implProcessor{
		opts:     opts,
		handles:  handles,
		captions: src,
		fetcher:  fetcher,
		logger:   log,
	}
}
