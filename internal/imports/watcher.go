// Package imports tracks Goodreads CSV import jobs as the backend works
// through them.
package imports

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/readupapp/readup-go/internal/domain"
	"github.com/readupapp/readup-go/internal/readup"
)

// Clock abstracts time for the watcher so tests can fast-forward instead
// of sleeping on real timers.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// systemClock is the real-time Clock used outside tests.
type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock returns the wall-clock implementation.
func SystemClock() Clock { return systemClock{} }

// JobFetcher is the slice of the backend client the watcher uses.
// Implemented by *readup.Client.
type JobFetcher interface {
	FetchImport(ctx context.Context, id int64) (*domain.ImportJob, error)
}

var _ JobFetcher = (*readup.Client)(nil)

const (
	initialInterval = 2 * time.Second
	intervalStep    = time.Second
	maxInterval     = 10 * time.Second
)

// Watcher polls one import job until it reaches a terminal status. The
// poll interval self-adjusts: it starts at 2s and grows by 1s after every
// poll up to a 10s ceiling, easing the backend off as long imports grind
// on.
type Watcher struct {
	api   JobFetcher
	clock Clock
	log   zerolog.Logger

	// OnUpdate, when set, observes every successfully fetched snapshot,
	// terminal ones included.
	OnUpdate func(domain.ImportJob)
}

// NewWatcher creates a watcher with the real clock.
func NewWatcher(api JobFetcher, log zerolog.Logger) *Watcher {
	return &Watcher{api: api, clock: systemClock{}, log: log}
}

// NewWatcherWithClock creates a watcher with an injected clock for tests.
func NewWatcherWithClock(api JobFetcher, clock Clock, log zerolog.Logger) *Watcher {
	return &Watcher{api: api, clock: clock, log: log}
}

// nextInterval returns the interval to wait after the given number of
// completed polls.
func nextInterval(polls int) time.Duration {
	if polls < 0 {
		polls = 0
	}
	interval := initialInterval + time.Duration(polls)*intervalStep
	if interval > maxInterval {
		return maxInterval
	}
	return interval
}

// Watch polls the job until it completes or fails, returning the terminal
// snapshot. Cancellation stops the watcher between polls; a fetch error
// ends the watch rather than retrying, leaving retry policy to the caller.
func (w *Watcher) Watch(ctx context.Context, jobID int64) (*domain.ImportJob, error) {
	for polls := 0; ; polls++ {
		job, err := w.api.FetchImport(ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("poll import %d: %w", jobID, err)
		}
		if w.OnUpdate != nil {
			w.OnUpdate(*job)
		}
		if job.Status.Terminal() {
			w.log.Info().Int64("job_id", jobID).Str("status", string(job.Status)).
				Int("success_rows", job.SuccessRows).Int("failed_rows", job.FailedRows).
				Msg("import finished")
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-w.clock.After(nextInterval(polls)):
		}
	}
}
