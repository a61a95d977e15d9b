package domain

import "strings"

// Phase is the coarse lifecycle phase of a tracked game, derived from the
// provider's status strings.
type Phase string

const (
	PhaseScheduled  Phase = "scheduled"
	PhasePregame    Phase = "pregame"
	PhaseInProgress Phase = "in_progress"
	PhaseFinal      Phase = "final"
	PhaseUnknown    Phase = "unknown"
)

// Terminal reports whether the phase means the game will never resume.
func (p Phase) Terminal() bool {
	return p == PhaseFinal
}

// ClassifyStatus maps the StatsAPI abstract/detailed status pair onto a
// Phase. The upstream is inconsistent about which field carries the useful
// signal, so both are consulted.
func ClassifyStatus(abstract, detailed string) Phase {
	a := strings.ToLower(strings.TrimSpace(abstract))
	d := strings.ToLower(strings.TrimSpace(detailed))

	switch {
	case a == "final", a == "completed",
		strings.Contains(d, "final"),
		strings.Contains(d, "game over"),
		strings.Contains(d, "completed"),
		strings.Contains(d, "cancelled"),
		strings.Contains(d, "canceled"),
		strings.Contains(d, "postponed"),
		strings.Contains(d, "forfeit"):
		return PhaseFinal
	case a == "live",
		strings.Contains(d, "in progress"),
		strings.Contains(d, "manager challenge"),
		strings.Contains(d, "delayed"),
		strings.Contains(d, "suspended"):
		// Delays and suspensions can resume; keep polling at the live tier.
		return PhaseInProgress
	case strings.Contains(d, "warmup"),
		strings.Contains(d, "pre-game"),
		strings.Contains(d, "pregame"):
		return PhasePregame
	case a == "preview",
		strings.Contains(d, "scheduled"):
		return PhaseScheduled
	default:
		return PhaseUnknown
	}
}
