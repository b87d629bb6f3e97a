package processor

import "context"

// Source tells where a transcript came from.
type Source string

const (
	SourceCaptions Source = "captions"
	SourceAudio    Source = "audio"
)

// Result is what a single summarization request produces.
type Result struct {
	Title             string
	Summary           string
	TranscriptPreview string
	Source            Source
}

// Processor defines the interface for the video summarization pipeline
type Processor interface {
	Process(ctx context.Context, url string) (*Result, error)
}
