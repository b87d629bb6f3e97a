package captions

import "context"

// Status classifies the outcome of a caption lookup.
type Status int

const (
	// NotAvailable means the video has no usable caption track (or the URL
	// does not identify a video). It is the normal signal to fall back to
	// the audio pipeline.
	NotAvailable Status = iota
	// Found means Text holds the caption transcript.
	Found
	// Failed means the caption service could not be queried; Err holds the cause.
	Failed
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Failed:
		return "failed"
	default:
		return "not available"
	}
}

// Result is the outcome of Source.Fetch.
type Result struct {
	Status Status
	Text   string
	Err    error
}

// Usable reports whether the result carries a non-empty transcript.
func (r Result) Usable() bool {
	return r.Status == Found && r.Text != ""
}

// Source retrieves an existing caption track for a video without
// downloading any media. Fetch never fails outright: errors are reported
// through Result.
type Source interface {
	Fetch(ctx context.Context, url string) Result
}
