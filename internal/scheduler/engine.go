// Package scheduler runs the adaptive poll loop: it executes one poll cycle
// at a time, picks the next interval from the game phase and at-bat state,
// and re-arms a single-shot timer. A watchdog forces progress if the timer
// ever fails to fire.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MatthewCK/CALBOT/internal/config"
	"github.com/MatthewCK/CALBOT/internal/detector"
	"github.com/MatthewCK/CALBOT/internal/domain"
	"github.com/MatthewCK/CALBOT/internal/logging"
	"github.com/MatthewCK/CALBOT/internal/metrics"
	"github.com/MatthewCK/CALBOT/internal/notify"
	"github.com/MatthewCK/CALBOT/internal/providers"
	"github.com/MatthewCK/CALBOT/internal/timeutil"
	"github.com/MatthewCK/CALBOT/internal/tracker"
	"github.com/MatthewCK/CALBOT/internal/wager"
)

// Config carries the scheduler's tuning knobs.
type Config struct {
	Subject config.SubjectConfig
	Polling config.PollingConfig
	Notify  config.NotifyConfig
}

// Deps are the collaborators the engine drives each cycle.
type Deps struct {
	Provider  providers.DataProvider
	Tracker   *tracker.Tracker
	Detector  *detector.Detector
	Notifier  notify.Notifier
	Formatter notify.Formatter
	Ledger    wager.Ledger
	Dates     *timeutil.DateCache
	Logger    *slog.Logger
	Metrics   *metrics.Recorder
}

// Engine owns all mutable polling state. One control loop runs at a time;
// the re-entrancy guard keeps watchdog-forced cycles from overlapping a
// timer-fired one.
type Engine struct {
	cfg  Config
	deps Deps

	ctx      context.Context
	inFlight atomic.Bool
	seen     detector.SeenSet

	// loop-owned, only touched inside a cycle
	game     *domain.Game
	gameDate string
	// finished holds gamePks observed reaching a terminal state. The
	// schedule cache can keep serving a pre-final snapshot for its TTL,
	// so discovery must skip these by id rather than trust the status.
	finished map[int64]struct{}

	mu       sync.Mutex
	timer    *time.Timer
	nextWake time.Time
	started  bool
	stopped  bool

	lastCycle    time.Time
	lastErr      error
	failures     int
	engaged      bool
	notified     int
	statusPhase  domain.Phase
	statusGamePk *int64

	// phase is loop-owned; statusPhase mirrors it for concurrent readers.
	phase domain.Phase

	now func() time.Time
}

// New builds an engine. Deps.Provider, Deps.Tracker, and Deps.Detector are
// required; the rest degrade gracefully when nil.
func New(cfg Config, deps Deps) *Engine {
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}
	if deps.Dates == nil {
		deps.Dates = timeutil.NewDateCache(time.Hour)
	}
	if len(deps.Ledger) == 0 {
		deps.Ledger = wager.DefaultLedger()
	}
	return &Engine{
		cfg:         cfg,
		deps:        deps,
		ctx:         context.Background(),
		seen:        detector.NewSeenSet(),
		finished:    make(map[int64]struct{}),
		phase:       domain.PhaseUnknown,
		statusPhase: domain.PhaseUnknown,
		now:         time.Now,
	}
}

// Start runs the first cycle immediately and launches the watchdog. It
// returns once the loop is armed; polling continues on timer goroutines
// until ctx is cancelled.
func (e *Engine) Start(ctx context.Context) {
	e.ctx = ctx
	e.mu.Lock()
	e.started = true
	e.mu.Unlock()

	go e.watchdog(ctx)
	go e.runCycle()

	go func() {
		<-ctx.Done()
		e.Stop()
	}()
}

// Stop disarms the timer. In-flight cycles finish but do not re-arm.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// runCycle is the only entry point for cycle execution. The guard makes a
// concurrent call (watchdog vs timer) a no-op instead of a second loop.
func (e *Engine) runCycle() {
	if !e.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer e.inFlight.Store(false)

	start := e.now()
	delay, err := e.cycle(e.ctx)
	duration := e.now().Sub(start)

	e.deps.Metrics.RecordPollCycle(string(e.phase), duration, err)

	e.mu.Lock()
	e.lastCycle = e.now()
	e.lastErr = err
	if err != nil {
		e.failures++
	} else {
		e.failures = 0
	}
	e.statusPhase = e.phase
	e.notified = e.seen.Len()
	if e.game != nil {
		pk := e.game.GamePk
		e.statusGamePk = &pk
	} else {
		e.statusGamePk = nil
	}
	e.mu.Unlock()

	e.rearm(delay)
}

// rearm schedules exactly one timer for the next cycle and records when it
// should fire, which is what the watchdog audits.
func (e *Engine) rearm(delay time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.nextWake = e.now().Add(delay)
	e.timer = time.AfterFunc(delay, e.runCycle)

	e.logDebug("poll re-armed",
		slog.Duration(logging.FieldDelay, delay),
		slog.String(logging.FieldPhase, string(e.phase)),
	)
}

// cycle executes one poll pass and returns the delay until the next one.
// Errors never propagate past here; rule 6 turns them into a state reset
// plus a fixed retry delay.
func (e *Engine) cycle(ctx context.Context) (time.Duration, error) {
	today := e.deps.Dates.Today()

	// A tracked game from a previous day is stale once it is no longer
	// live. Drop it so discovery runs fresh.
	if e.game != nil && e.gameDate != today && e.phase != domain.PhaseInProgress {
		e.logInfo("tracked game crossed day boundary, rediscovering",
			slog.Int64(logging.FieldGamePk, e.game.GamePk))
		e.clearGame()
	}

	if e.game == nil {
		delay, found, err := e.discover(ctx, today)
		if err != nil {
			return e.onCycleError(err)
		}
		if !found {
			return delay, nil
		}
	}

	feed, err := e.deps.Provider.FetchLiveFeed(ctx, e.game.GamePk)
	if err != nil {
		if providers.IsNotFound(err) {
			// Expected before the upstream creates the feed.
			return e.pregameDelay(e.game.GameDate), nil
		}
		return e.onCycleError(err)
	}

	e.phase = feed.Phase()

	if e.phase.Terminal() {
		// Catch plays batch-finalized right at the end before walking away.
		e.detectAndNotify(ctx, feed)
		e.logInfo("tracked game finished, rediscovering next cycle",
			slog.Int64(logging.FieldGamePk, e.game.GamePk))
		e.finished[e.game.GamePk] = struct{}{}
		e.clearGame()
		return e.cfg.Polling.RetryDelay, nil
	}

	if e.phase == domain.PhaseInProgress {
		e.detectAndNotify(ctx, feed)
		e.observeAtBat(ctx, feed)

		if e.deps.Tracker.Engaged() {
			return e.cfg.Polling.FastInterval, nil
		}
		return e.cfg.Polling.ActiveInterval, nil
	}

	// Scheduled or pregame: pace off the start time.
	return e.pregameDelay(e.game.GameDate), nil
}

// discover finds today's game, or looks ahead for the next one. The bool
// reports whether a game for today is now tracked.
func (e *Engine) discover(ctx context.Context, today string) (time.Duration, bool, error) {
	sched, err := e.deps.Provider.FetchSchedule(ctx, today, e.cfg.Subject.TeamID)
	if err != nil {
		return 0, false, err
	}

	if game, ok := e.firstTrackable(sched); ok {
		e.game = &game
		e.gameDate = today
		e.phase = game.Phase()
		e.logInfo("tracking game",
			slog.Int64(logging.FieldGamePk, game.GamePk),
			slog.String(logging.FieldDate, today),
			slog.String(logging.FieldPhase, string(e.phase)),
		)
		return 0, true, nil
	}

	e.phase = domain.PhaseUnknown

	// No game today: look ahead for the next scheduled one.
	for day := 1; day <= e.cfg.Polling.LookaheadDays; day++ {
		date := timeutil.FormatDate(e.now().AddDate(0, 0, day))
		future, err := e.deps.Provider.FetchSchedule(ctx, date, e.cfg.Subject.TeamID)
		if err != nil {
			return 0, false, err
		}
		game, ok := e.firstTrackable(future)
		if !ok {
			continue
		}

		e.logInfo("next game found",
			slog.Int64(logging.FieldGamePk, game.GamePk),
			slog.String(logging.FieldDate, date),
		)
		delay := e.cfg.Polling.IdleRecheck
		if until := game.GameDate.Sub(e.now()) - e.cfg.Polling.PregameThreshold; until < delay {
			delay = until
		}
		if delay < e.cfg.Polling.PregameInterval {
			delay = e.cfg.Polling.PregameInterval
		}
		return delay, false, nil
	}

	e.logInfo("no games in lookahead window",
		slog.Int(logging.FieldCount, e.cfg.Polling.LookaheadDays))
	return e.cfg.Polling.NoGameBackoff, false, nil
}

// firstTrackable picks the first game that is neither terminal nor already
// seen finishing by this process. The second check matters when a cached
// schedule still reports a just-finished game as live.
func (e *Engine) firstTrackable(sched domain.Schedule) (domain.Game, bool) {
	for _, day := range sched.Dates {
		for _, game := range day.Games {
			if game.Phase().Terminal() {
				continue
			}
			if _, done := e.finished[game.GamePk]; done {
				continue
			}
			return game, true
		}
	}
	return domain.Game{}, false
}

// pregameDelay sleeps until just before first pitch, then polls at the
// short pregame interval.
func (e *Engine) pregameDelay(start time.Time) time.Duration {
	until := start.Sub(e.now())
	if until > e.cfg.Polling.PregameThreshold {
		return until - e.cfg.Polling.PregameThreshold
	}
	return e.cfg.Polling.PregameInterval
}

// detectAndNotify scans the feed for new home runs and sends at most one
// notification per event id across the life of the process.
func (e *Engine) detectAndNotify(ctx context.Context, feed *domain.LiveFeed) {
	events := e.deps.Detector.Detect(feed, e.seen)
	for _, event := range events {
		e.deps.Metrics.RecordDetection()
		e.logInfo("home run detected",
			slog.String(logging.FieldEventID, event.ID),
			slog.Int(logging.FieldPlayIndex, event.Play.About.AtBatIndex),
		)

		text := e.homeRunMessage(ctx, event.Play, feed)
		if err := e.deps.Notifier.Send(ctx, text); err != nil {
			e.logWarn("home run notification failed", slog.Any("err", err))
		}
		// Marked seen even on send failure: a broken channel must not
		// spam retries of the same event forever.
		e.seen.Add(event.ID)
	}
}

// homeRunMessage enriches the alert with season stats and wager standings
// when available; a stats failure degrades to the bare alert.
func (e *Engine) homeRunMessage(ctx context.Context, play domain.Play, feed *domain.LiveFeed) string {
	stats, err := e.deps.Provider.FetchSeasonStats(ctx, e.cfg.Subject.PlayerID, e.cfg.Subject.Season)
	if err != nil {
		e.logWarn("season stats unavailable for alert", slog.Any("err", err))
		return e.deps.Formatter.HomeRun(play, nil, feed, "")
	}

	section := wager.FormatSection(e.deps.Ledger, stats.HomeRuns+1, &stats, e.now())
	return e.deps.Formatter.HomeRun(play, &stats, feed, section)
}

// observeAtBat advances the tracker and emits the optional at-bat messages.
// Timeout exits stay silent: there is no reliable result to report.
func (e *Engine) observeAtBat(ctx context.Context, feed *domain.LiveFeed) {
	transition := e.deps.Tracker.Observe(feed)

	e.mu.Lock()
	e.engaged = e.deps.Tracker.Engaged()
	e.mu.Unlock()

	switch transition.Kind {
	case tracker.TransitionEntered:
		e.logInfo("subject up to bat", slog.Int(logging.FieldPlayIndex, transition.PlayIndex))
		if e.cfg.Notify.AtBat {
			if err := e.deps.Notifier.Send(ctx, e.deps.Formatter.AtBatEntered(feed)); err != nil {
				e.logWarn("at-bat notification failed", slog.Any("err", err))
			}
		}
	case tracker.TransitionExited:
		e.logInfo("subject at-bat finished",
			slog.Int(logging.FieldPlayIndex, transition.PlayIndex),
			slog.String("result", transition.Play.Result.EventType),
		)
		if e.cfg.Notify.AtBat && !detector.IsNotable(transition.Play) {
			// Home runs already get the full alert from the detector.
			if err := e.deps.Notifier.Send(ctx, e.deps.Formatter.AtBatResult(transition.Play)); err != nil {
				e.logWarn("at-bat notification failed", slog.Any("err", err))
			}
		}
	case tracker.TransitionExitedTimeout:
		e.logWarn("subject at-bat timed out without a result",
			slog.Int(logging.FieldPlayIndex, transition.PlayIndex))
	}
}

// onCycleError implements rule 6: reset all tracked state so the next cycle
// rediscovers from scratch, and come back after a fixed retry delay.
func (e *Engine) onCycleError(err error) (time.Duration, error) {
	e.logWarn("poll cycle failed, resetting tracked state", slog.Any("err", err))
	e.deps.Tracker.Reset()
	e.clearGame()

	e.mu.Lock()
	e.engaged = false
	e.mu.Unlock()

	return e.cfg.Polling.RetryDelay, err
}

func (e *Engine) clearGame() {
	e.game = nil
	e.gameDate = ""
	e.phase = domain.PhaseUnknown
}

func (e *Engine) logInfo(msg string, args ...any) {
	if e.deps.Logger != nil {
		e.deps.Logger.Info(msg, args...)
	}
}

func (e *Engine) logWarn(msg string, args ...any) {
	if e.deps.Logger != nil {
		e.deps.Logger.Warn(msg, args...)
	}
}

func (e *Engine) logDebug(msg string, args ...any) {
	if e.deps.Logger != nil {
		e.deps.Logger.Debug(msg, args...)
	}
}
