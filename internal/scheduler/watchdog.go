package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// watchdog audits the recorded next wake time on a fixed period and forces a
// cycle if the timer appears to have gone missing. An in-flight cycle is
// healthy; the re-entrancy guard in runCycle makes a forced trigger during
// one a no-op. The check re-arms unconditionally for the life of ctx.
func (e *Engine) watchdog(ctx context.Context) {
	period := e.cfg.Polling.WatchdogPeriod
	if period <= 0 {
		period = 30 * time.Minute
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if e.checkStalled() {
				e.deps.Metrics.RecordWatchdogRecovery()
				e.runCycle()
			}
		}
	}
}

// checkStalled reports whether the next scheduled wake is overdue by more
// than the buffer, or was never recorded at all.
func (e *Engine) checkStalled() bool {
	e.mu.Lock()
	started := e.started
	stopped := e.stopped
	nextWake := e.nextWake
	e.mu.Unlock()

	if !started || stopped {
		return false
	}
	if e.inFlight.Load() {
		return false
	}

	now := e.now()
	if nextWake.IsZero() {
		e.logWarn("watchdog: no wake time recorded while polling, forcing cycle")
		return true
	}
	overdue := now.Sub(nextWake)
	if overdue > e.cfg.Polling.WatchdogBuffer {
		e.logWarn("watchdog: poll timer missed its wake, forcing cycle",
			slog.Time("next_wake", nextWake),
			slog.Duration("overdue", overdue),
		)
		return true
	}
	return false
}
