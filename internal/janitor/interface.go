package janitor

import "context"

// Janitor periodically removes stale files from the scratch directory.
// Artifacts are normally released by the request that created them; the
// janitor catches what a crash or kill left behind.
type Janitor interface {
	Start(ctx context.Context) error
	Sweep(ctx context.Context) (int, error)
}
