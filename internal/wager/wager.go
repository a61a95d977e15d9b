// Package wager projects the tracked player's season home-run total and
// turns a standing bet into probability-weighted outcomes.
package wager

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MatthewCK/CALBOT/internal/domain"
)

const (
	regularSeasonGames = 162

	// Total win probability is capped; something always slips through the
	// cracks of a season. Individual picks never drop below the floor.
	winProbabilityCap   = 0.85
	probabilityFloor    = 0.01
	noWinnerFloor       = 0.05
	inRangeDistance     = 2
	lateSeasonStdDev    = 2.0
	earlySeasonStdDevUp = 6.0
)

// Outcome is one participant's chance of winning the bet.
type Outcome struct {
	Name        string
	Picks       []int
	Probability float64
	InRange     bool
}

// Result carries the projection and the per-participant outcomes, sorted by
// probability descending, plus the chance nobody wins.
type Result struct {
	Current   int
	Projected int
	Outcomes  []Outcome
	NoWinner  float64
}

// seasonProgress maps now onto the Apr 1 to Sep 30 regular season window,
// clamped to [0, 1].
func seasonProgress(now time.Time) float64 {
	start := time.Date(now.Year(), time.April, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), time.September, 30, 0, 0, 0, 0, now.Location())

	progress := float64(now.Sub(start)) / float64(end.Sub(start))
	return math.Max(0, math.Min(1, progress))
}

// Project extrapolates the current home-run count to a full-season total.
// Games played is the preferred pace basis; when stats are unavailable the
// calendar position stands in for it.
func Project(currentHRs int, stats *domain.SeasonStats, now time.Time) int {
	var gamesPlayed int
	if stats != nil && stats.GamesPlayed > 0 {
		gamesPlayed = stats.GamesPlayed
	} else {
		gamesPlayed = int(math.Round(seasonProgress(now) * regularSeasonGames))
	}

	progress := math.Max(0, math.Min(1, float64(gamesPlayed)/regularSeasonGames))
	if progress == 0 || gamesPlayed == 0 {
		return currentHRs
	}
	return int(math.Round(float64(currentHRs) / progress))
}

// Probabilities scores each participant's picks against a normal
// distribution centered on the projection. Uncertainty shrinks as the
// season progresses.
func Probabilities(ledger Ledger, currentHRs, projected int, now time.Time) Result {
	remaining := 1 - seasonProgress(now)
	stdDev := lateSeasonStdDev + remaining*earlySeasonStdDevUp

	raw := make(map[string]float64, len(ledger))
	var total float64
	for _, name := range ledger.Names() {
		var p float64
		for _, pick := range ledger[name] {
			distance := float64(pick - projected)
			p += math.Exp(-(distance * distance) / (2 * stdDev * stdDev))
		}
		raw[name] = p
		total += p
	}

	factor := math.Min(winProbabilityCap, total)

	result := Result{Current: currentHRs, Projected: projected}
	var assigned float64
	for _, name := range ledger.Names() {
		var normalized float64
		if total > 0 {
			normalized = raw[name] / total * factor
		}
		prob := math.Max(probabilityFloor, normalized)
		assigned += prob

		result.Outcomes = append(result.Outcomes, Outcome{
			Name:        name,
			Picks:       ledger[name],
			Probability: prob,
			InRange:     anyWithin(ledger[name], projected, inRangeDistance),
		})
	}

	sort.SliceStable(result.Outcomes, func(i, j int) bool {
		return result.Outcomes[i].Probability > result.Outcomes[j].Probability
	})

	result.NoWinner = math.Max(noWinnerFloor, 1-assigned)
	return result
}

func anyWithin(picks []int, target, distance int) bool {
	for _, pick := range picks {
		if abs(pick-target) <= distance {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// FormatSection renders the wager standings as a compact multi-line block
// appended to home-run notifications.
func FormatSection(ledger Ledger, currentHRs int, stats *domain.SeasonStats, now time.Time) string {
	projected := Project(currentHRs, stats, now)
	result := Probabilities(ledger, currentHRs, projected, now)

	var b strings.Builder
	b.WriteString("\n\n🎯 WAGER UPDATE 🎯\n")
	fmt.Fprintf(&b, "📊 Current: %d HR\n", currentHRs)
	fmt.Fprintf(&b, "📈 Projected: %d HR\n\n", projected)

	medals := []string{"🥇", "🥈", "🥉"}
	for i, outcome := range result.Outcomes {
		medal := "🥉"
		if i < len(medals) {
			medal = medals[i]
		}
		indicator := ""
		if outcome.InRange {
			indicator = " 🎯"
		}
		fmt.Fprintf(&b, "%s %s: %.0f%% (%s)%s\n",
			medal, outcome.Name, outcome.Probability*100, joinPicks(outcome.Picks), indicator)
	}
	fmt.Fprintf(&b, "❌ No Winner: %.0f%%\n", result.NoWinner*100)

	return b.String()
}

func joinPicks(picks []int) string {
	parts := make([]string, len(picks))
	for i, pick := range picks {
		parts[i] = strconv.Itoa(pick)
	}
	return strings.Join(parts, ",")
}
