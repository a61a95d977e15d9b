// Package tracker maintains the Idle/Engaged state machine that tells the
// scheduler whether the tracked player is currently batting.
package tracker

import (
	"sync"
	"time"

	"github.com/MatthewCK/CALBOT/internal/domain"
)

// TransitionKind identifies what changed during one observation.
type TransitionKind int

const (
	// TransitionNone means the state did not change.
	TransitionNone TransitionKind = iota
	// TransitionEntered means the subject just came to bat.
	TransitionEntered
	// TransitionExited means the tracked at-bat acquired a result.
	TransitionExited
	// TransitionExitedTimeout means the tracked at-bat never acquired a
	// result within the timeout. No reliable outcome exists to report.
	TransitionExitedTimeout
)

// Transition describes a state change observed during one poll cycle. Play
// is populated only for TransitionExited.
type Transition struct {
	Kind      TransitionKind
	PlayIndex int
	Play      domain.Play
}

const defaultTimeout = 10 * time.Minute

// Tracker watches the feed's current play for one batter. Observe runs only
// on the scheduler's control loop; the mutex exists so Engaged and Snapshot
// can be read from the HTTP surface while a cycle is in flight.
type Tracker struct {
	subjectID int64
	timeout   time.Duration
	now       func() time.Time

	mu           sync.Mutex
	engaged      bool
	playIndex    int
	engagedSince time.Time
}

// New builds a tracker for the given batter. A timeout <= 0 uses the
// default ceiling.
func New(subjectID int64, timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Tracker{
		subjectID: subjectID,
		timeout:   timeout,
		now:       time.Now,
		playIndex: -1,
	}
}

// Engaged reports whether the subject is currently believed to be batting.
func (t *Tracker) Engaged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engaged
}

// Observe advances the state machine against a feed snapshot and returns the
// transition, if any. The state is only evaluated while the game is in
// progress; other phases leave it untouched.
func (t *Tracker) Observe(feed *domain.LiveFeed) Transition {
	t.mu.Lock()
	defer t.mu.Unlock()

	if feed == nil || feed.Phase() != domain.PhaseInProgress {
		return Transition{Kind: TransitionNone, PlayIndex: t.playIndex}
	}

	if t.engaged {
		return t.observeEngaged(feed)
	}
	return t.observeIdle(feed)
}

func (t *Tracker) observeEngaged(feed *domain.LiveFeed) Transition {
	// Result-available beats timeout: a finished play is always reportable.
	if play, ok := feed.PlayByIndex(t.playIndex); ok && play.HasResult() {
		index := t.playIndex
		t.resetState()
		return Transition{Kind: TransitionExited, PlayIndex: index, Play: play}
	}

	if t.now().Sub(t.engagedSince) > t.timeout {
		index := t.playIndex
		t.resetState()
		return Transition{Kind: TransitionExitedTimeout, PlayIndex: index}
	}

	// A new at-bat by the subject can appear before the previous play's
	// result lands in allPlays. Re-engage on the new index rather than
	// mistaking it for the stale one.
	current := feed.LiveData.Plays.CurrentPlay
	if current != nil && current.Matchup.Batter.ID == t.subjectID && current.About.AtBatIndex != t.playIndex {
		t.engage(current.About.AtBatIndex)
		return Transition{Kind: TransitionEntered, PlayIndex: t.playIndex}
	}

	return Transition{Kind: TransitionNone, PlayIndex: t.playIndex}
}

func (t *Tracker) observeIdle(feed *domain.LiveFeed) Transition {
	current := feed.LiveData.Plays.CurrentPlay
	if current == nil || current.Matchup.Batter.ID != t.subjectID {
		return Transition{Kind: TransitionNone, PlayIndex: t.playIndex}
	}
	t.engage(current.About.AtBatIndex)
	return Transition{Kind: TransitionEntered, PlayIndex: t.playIndex}
}

func (t *Tracker) engage(playIndex int) {
	t.engaged = true
	t.playIndex = playIndex
	t.engagedSince = t.now()
}

// Reset forces the tracker back to Idle. The scheduler calls this on any
// cycle error so a provider hiccup can never leave the state machine stuck
// in Engaged, pinning the poll loop at its fastest interval.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetState()
}

func (t *Tracker) resetState() {
	t.engaged = false
	t.playIndex = -1
	t.engagedSince = time.Time{}
}

// Snapshot is a read-only view of the tracker state for status reporting.
type Snapshot struct {
	Engaged      bool       `json:"engaged"`
	PlayIndex    *int       `json:"play_index,omitempty"`
	EngagedSince *time.Time `json:"engaged_since,omitempty"`
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{Engaged: t.engaged}
	if t.engaged {
		index := t.playIndex
		since := t.engagedSince
		snap.PlayIndex = &index
		snap.EngagedSince = &since
	}
	return snap
}
