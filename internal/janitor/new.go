package janitor

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
)

// Options configures a Janitor.
type Options struct {
	Dir      string
	Schedule string
	MaxAge   time.Duration
}

// New creates a Janitor. The schedule uses standard cron syntax or the
// "@every <duration>" descriptor.
func New(opts Options, log logger.Logger) Janitor {
	return &implJanitor{
		opts:   opts,
		logger: log,
		now:    time.Now,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}
