package janitor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
)

type implJanitor struct {
	opts   Options
	logger logger.Logger
	now    func() time.Time
	cron   *cron.Cron
}

// Start schedules Sweep and blocks until ctx is cancelled.
func (j *implJanitor) Start(ctx context.Context) error {
	_, err := j.cron.AddFunc(j.opts.Schedule, func() {
		if _, err := j.Sweep(ctx); err != nil {
			j.logger.Error(ctx, "Error sweeping %s: %v", j.opts.Dir, err)
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	j.logger.Info(ctx, "Janitor started for %s with schedule: %s", j.opts.Dir, j.opts.Schedule)
	j.cron.Start()

	<-ctx.Done()
	<-j.cron.Stop().Done()
	j.logger.Info(ctx, "Janitor stopped")
	return ctx.Err()
}

// Sweep removes regular files in Dir older than MaxAge and returns how
// many were deleted. Subdirectories are left alone.
func (j *implJanitor) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(j.opts.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read dir: %w", err)
	}

	cutoff := j.now().Add(-j.opts.MaxAge)
	removed := 0
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(j.opts.Dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
		j.logger.Debug(ctx, "Removed stale file: %s", path)
	}

	if removed > 0 {
		j.logger.Info(ctx, "Janitor removed %d stale file(s) from %s", removed, j.opts.Dir)
	}
	return removed, errors.Join(errs...)
}
