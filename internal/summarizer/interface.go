package summarizer

import "context"

// Summarizer condenses arbitrary text.
//
// Summarize never fails: when the model cannot be reached or errors out,
// the returned string is a human readable message starting with "Error",
// so the caller can still show the rest of a successful pipeline.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}
