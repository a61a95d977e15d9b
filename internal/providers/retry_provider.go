package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/MatthewCK/CALBOT/internal/domain"
	"github.com/MatthewCK/CALBOT/internal/logging"
)

const (
	defaultRetryAttempts  = 3
	defaultInitialBackoff = 200 * time.Millisecond
)

// retryingProvider wraps a DataProvider with exponential backoff retries.
// Not-found results are treated as definitive and never retried.
type retryingProvider struct {
	inner       DataProvider
	logger      *slog.Logger
	maxAttempts int
	initial     time.Duration
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts
// or initial are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, maxAttempts int, initial time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		initial:     initial,
	}
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, date string, teamID int64) (domain.Schedule, error) {
	var out domain.Schedule
	err := r.retry(ctx, "FetchSchedule", func() error {
		var opErr error
		out, opErr = r.inner.FetchSchedule(ctx, date, teamID)
		return opErr
	})
	return out, err
}

func (r *retryingProvider) FetchLiveFeed(ctx context.Context, gamePk int64) (*domain.LiveFeed, error) {
	var out *domain.LiveFeed
	err := r.retry(ctx, "FetchLiveFeed", func() error {
		var opErr error
		out, opErr = r.inner.FetchLiveFeed(ctx, gamePk)
		return opErr
	})
	return out, err
}

func (r *retryingProvider) FetchSeasonStats(ctx context.Context, playerID int64, season int) (domain.SeasonStats, error) {
	var out domain.SeasonStats
	err := r.retry(ctx, "FetchSeasonStats", func() error {
		var opErr error
		out, opErr = r.inner.FetchSeasonStats(ctx, playerID, season)
		return opErr
	})
	return out, err
}

func (r *retryingProvider) retry(ctx context.Context, op string, fn func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initial
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	wrapped := func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if IsNotFound(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.RetryNotify(wrapped, policy, func(err error, delay time.Duration) {
		r.logWarn(ctx, "provider fetch retry",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("delay", delay),
			slog.Any("err", err),
		)
	})
	if err != nil {
		r.logWarn(ctx, "provider fetch failed",
			slog.String("op", op),
			slog.Int("attempts", attempt),
			slog.Any("err", err),
		)
	}
	return err
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
