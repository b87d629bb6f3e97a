package processor

import (
	"errors"
	"fmt"
)

// ModelInitError means the transcriber or summarizer could not be
// constructed, so the request cannot proceed.
type ModelInitError struct {
	Component string
	Err       error
}

func (e *ModelInitError) Error() string {
	return fmt.Sprintf("models not loaded: %s: %v", e.Component, e.Err)
}

func (e *ModelInitError) Unwrap() error {
	return e.Err
}

// UserMessage turns a pipeline error into the text shown to the user.
func UserMessage(err error) string {
	var initErr *ModelInitError
	if errors.As(err, &initErr) {
		return fmt.Sprintf("Failed to load models: %v", initErr.Err)
	}
	return fmt.Sprintf("Error processing video: %v", err)
}
