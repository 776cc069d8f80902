package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// activityPurger is the slice of the activity repository the sweeper needs.
type activityPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper runs the system's single periodic job: purging expired activity
// log entries once a day.
type Sweeper struct {
	activity  activityPurger
	retention time.Duration
	interval  time.Duration
	logger    *zap.Logger
	stopChan  chan struct{}
}

func NewSweeper(activity activityPurger, retention time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		activity:  activity,
		retention: retention,
		interval:  24 * time.Hour,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start launches the sweep loop. The first sweep runs immediately.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Starting activity log sweeper",
		zap.Duration("retention", s.retention))

	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	s.logger.Info("Stopping activity log sweeper")
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Sweeper cancelled")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.retention)

	purged, err := s.activity.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to purge activity logs", zap.Error(err))
		return
	}

	if purged > 0 {
		s.logger.Info("Purged expired activity logs", zap.Int64("count", purged))
	}
}
