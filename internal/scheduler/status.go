package scheduler

import (
	"time"

	"github.com/MatthewCK/CALBOT/internal/domain"
)

// consecutive cycle failures tolerated before readiness flips
const readinessFailureLimit = 3

// Status is a point-in-time view of the polling loop for the HTTP surface.
type Status struct {
	Started             bool         `json:"started"`
	GamePk              *int64       `json:"game_pk,omitempty"`
	Phase               domain.Phase `json:"phase"`
	Engaged             bool         `json:"engaged"`
	LastCycle           time.Time    `json:"last_cycle"`
	NextWake            time.Time    `json:"next_wake"`
	ConsecutiveFailures int          `json:"consecutive_failures"`
	LastError           string       `json:"last_error,omitempty"`
	NotifiedEvents      int          `json:"notified_events"`
}

// Status reports the engine's current state. Safe to call concurrently with
// a running cycle.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	status := Status{
		Started:             e.started,
		GamePk:              e.statusGamePk,
		Phase:               e.statusPhase,
		Engaged:             e.engaged,
		LastCycle:           e.lastCycle,
		NextWake:            e.nextWake,
		ConsecutiveFailures: e.failures,
		NotifiedEvents:      e.notified,
	}
	if e.lastErr != nil {
		status.LastError = e.lastErr.Error()
	}
	return status
}

// IsReady reports whether the loop is armed and not persistently failing.
func (e *Engine) IsReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started && e.failures < readinessFailureLimit
}
