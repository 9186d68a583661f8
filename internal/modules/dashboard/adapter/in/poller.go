package in

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"

	"codestreak/internal/modules/dashboard/dto"
	dashboardin "codestreak/internal/modules/dashboard/port/in"
	apperrors "codestreak/internal/platform/errors"
)

// DefaultInterval is used when no refresh interval is configured.
const DefaultInterval = time.Minute

// Poller re-runs the sync at a fixed interval. Failed loads are retried
// sooner with exponential spacing that never exceeds the interval.
type Poller struct {
	usecase  dashboardin.Usecase
	interval time.Duration
	log      *log.Logger
	retry    *backoff.ExponentialBackOff
}

func NewPoller(usecase dashboardin.Usecase, interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = min(time.Second, interval)
	retry.MaxInterval = interval
	retry.MaxElapsedTime = 0
	return &Poller{usecase: usecase, interval: interval, log: logger, retry: retry}
}

// NextDelay returns the wait before the next load given the last result.
func (p *Poller) NextDelay(err error) time.Duration {
	if err == nil {
		p.retry.Reset()
		return p.interval
	}
	d := p.retry.NextBackOff()
	if d == backoff.Stop {
		return p.interval
	}
	return min(d, p.interval)
}

// Run loads immediately, then keeps loading until ctx is done or the
// session can no longer sync. Each result is handed to report.
func (p *Poller) Run(ctx context.Context, force bool, report func(dto.LoadOutput, error)) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		out, err := p.usecase.Load(ctx, force)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if report != nil {
			report(out, err)
		}
		if terminal(err) || out.Redirected {
			return err
		}
		delay := p.NextDelay(err)
		if err != nil {
			p.log.Warn("refresh failed; retrying", "in", delay, "kind", apperrors.Kind(err))
		}
		timer.Reset(delay)
	}
}

func terminal(err error) bool {
	return errors.Is(err, apperrors.ErrMissingIdentity) || errors.Is(err, apperrors.ErrSessionEnded)
}
