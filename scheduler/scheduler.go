package scheduler

import (
	"context"
	"time"

	"newswire/logger"
)

// Scheduler invokes a job on a fixed interval. Job failures are
// logged and swallowed; the next tick is the recovery mechanism.
type Scheduler struct {
	interval time.Duration
	job      func(context.Context) error
}

func New(interval time.Duration, job func(context.Context) error) *Scheduler {
	return &Scheduler{interval: interval, job: job}
}

// Start runs the ticker loop until ctx is cancelled. The job runs
// once immediately, then on every tick.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.run(ctx)
		for {
			select {
			case <-ticker.C:
				s.run(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Scheduler) run(ctx context.Context) {
	if err := s.job(ctx); err != nil {
		logger.Log.Errorf("scheduled feed update failed: %v", err)
		return
	}
	logger.Log.Info("scheduled feed update complete")
}
