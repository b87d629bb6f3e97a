package downloader

import "context"

// Artifact is a downloaded audio file owned by a single request.
type Artifact struct {
	Path  string
	Title string
}

// Fetcher downloads the best available audio track of a video.
type Fetcher interface {
	// Fetch downloads the audio of url into the output directory under a
	// collision-free name. The caller owns the returned file and must hand
	// it back to Release.
	Fetch(ctx context.Context, url string) (Artifact, error)
	// Release deletes the artifact. Failures are logged, never returned.
	Release(ctx context.Context, a Artifact)
}
