package transcriber

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrAudioNotFound is returned by Transcribe when the input file does not exist.
	ErrAudioNotFound = fmt.Errorf("audio file not found: %w", fs.ErrNotExist)
	// ErrModelMissing is returned by New when the model file is absent.
	ErrModelMissing = errors.New("whisper model not found on local disk")
	// ErrBinaryMissing is returned by New when the whisper binary cannot be resolved.
	ErrBinaryMissing = errors.New("whisper binary not found")
)

// Transcriber converts an audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
