package downloader

import (
	"errors"
	"fmt"
)

// ErrArtifactMissing is returned when yt-dlp reports success but no file
// carrying the request's unique name exists in the output directory.
var ErrArtifactMissing = errors.New("downloaded audio file not found")

// DownloadError wraps any failure while fetching audio for URL.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download audio from %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
