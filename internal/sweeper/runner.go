package sweeper

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Sweeper fails expired pending reservations and releases their slots.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// Runner invokes the sweeper on a fixed interval until its context is
// cancelled. It is the safety net behind lazy expiry: abandoned holds get
// cleaned up even when nobody touches them again.
type Runner struct {
	svc      Sweeper
	interval time.Duration
	logger   *zap.Logger
}

func NewRunner(svc Sweeper, interval time.Duration, logger *zap.Logger) *Runner {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{svc: svc, interval: interval, logger: logger}
}

func (r *Runner) Run(ctx context.Context) error {
	if r.svc == nil {
		return errors.New("sweeper runner requires a sweep service")
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		swept, err := r.svc.SweepExpired(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			r.logger.Error("sweep failed", zap.Error(err))
			continue
		}
		if swept > 0 {
			r.logger.Info("swept expired reservations", zap.Int("count", swept))
		}
	}
}
