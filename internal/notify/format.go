package notify

import (
	"fmt"
	"strings"

	"github.com/MatthewCK/CALBOT/internal/domain"
)

// Formatter renders the bot's outbound messages. Lines are kept short so
// messages read well on a phone.
type Formatter struct {
	// Name is the tracked player's full name, e.g. "Cal Raleigh".
	Name string
	// Nickname is the short form used in headers, e.g. "Cal".
	Nickname string
	// SubjectID is the tracked player's MLB id, used for the game line.
	SubjectID int64
}

func (f Formatter) nick() string {
	if f.Nickname != "" {
		return f.Nickname
	}
	return f.Name
}

// HomeRun renders the home-run alert. The wager section, when non-empty, is
// appended as-is.
func (f Formatter) HomeRun(play domain.Play, stats *domain.SeasonStats, feed *domain.LiveFeed, wagerSection string) string {
	desc := play.Result.Description
	if desc == "" {
		desc = "Home run!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚨🚨🚨 %s DINGER! 🚨🚨🚨\n", strings.ToUpper(f.nick()))
	fmt.Fprintf(&b, "%s ⚾💥\n", desc)

	var situation []string
	if play.About.Inning > 0 {
		half := "Bottom"
		if play.About.IsTopInning {
			half = "Top"
		}
		situation = append(situation, fmt.Sprintf("%s %d", half, play.About.Inning))
	}
	situation = append(situation, fmt.Sprintf("%d RBI 🏃‍♂️", play.Result.RBI))
	b.WriteString(strings.Join(situation, " • "))
	b.WriteString("\n")

	if hit := play.HitData; hit != nil {
		var batted []string
		if hit.LaunchSpeed > 0 {
			batted = append(batted, fmt.Sprintf("EV %.1f mph", hit.LaunchSpeed))
		}
		if hit.LaunchAngle != 0 {
			batted = append(batted, fmt.Sprintf("LA %.0f°", hit.LaunchAngle))
		}
		if hit.TotalDistance > 0 {
			batted = append(batted, fmt.Sprintf("%.0f ft 🚀", hit.TotalDistance))
		}
		if len(batted) > 0 {
			b.WriteString(strings.Join(batted, " • "))
			b.WriteString("\n")
		}
	}

	if stats != nil {
		// The season stat line lags the play that triggered this alert.
		fmt.Fprintf(&b, "\n🏆 Season HR #%d\n", stats.HomeRuns+1)
	}

	if game := f.gameContext(feed); game != "" {
		b.WriteString("\n")
		b.WriteString(game)
	}

	if wagerSection != "" {
		b.WriteString(wagerSection)
	}
	return b.String()
}

// gameContext renders the score and the subject's game line, when the feed
// carries enough data for them.
func (f Formatter) gameContext(feed *domain.LiveFeed) string {
	if feed == nil {
		return ""
	}

	var b strings.Builder
	away := feed.GameData.Teams.Away.Abbreviation
	home := feed.GameData.Teams.Home.Abbreviation
	if away != "" && home != "" {
		fmt.Fprintf(&b, "📊 %s %d - %s %d\n",
			away, feed.LiveData.Linescore.Teams.Away.Runs,
			home, feed.LiveData.Linescore.Teams.Home.Runs)
	}
	if line := f.GameLine(feed, f.SubjectID); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// GameLine summarizes the subject's completed plate appearances in this
// game, e.g. "🏟️ Cal: 2/3 • 3 RBI".
func (f Formatter) GameLine(feed *domain.LiveFeed, subjectID int64) string {
	if feed == nil {
		return ""
	}
	plays := feed.PlaysByBatter(subjectID)
	if len(plays) == 0 {
		return ""
	}

	var hits, atBats, rbi int
	for _, play := range plays {
		rbi += play.Result.RBI
		switch play.Result.EventType {
		case "single", "double", "triple", "home_run":
			hits++
			atBats++
		case "walk", "intent_walk", "hit_by_pitch", "sac_fly", "sac_bunt", "catcher_interf":
			// not an official at-bat
		default:
			atBats++
		}
	}
	if atBats == 0 && rbi == 0 {
		return ""
	}
	return fmt.Sprintf("🏟️ %s: %d/%d • %d RBI", f.nick(), hits, atBats, rbi)
}

// AtBatEntered announces the subject stepping to the plate.
func (f Formatter) AtBatEntered(feed *domain.LiveFeed) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚾🚨 %s IS UP TO BAT! 🚨⚾\n", strings.ToUpper(f.nick()))
	if game := f.gameContext(feed); game != "" {
		b.WriteString("\n")
		b.WriteString(game)
	}
	b.WriteString("\n🔍 Monitoring for dinger... ⚾💥")
	return b.String()
}

// AtBatResult announces how an at-bat ended. Not used for timeout exits,
// where no reliable result exists.
func (f Formatter) AtBatResult(play domain.Play) string {
	desc := play.Result.Description
	if desc == "" {
		desc = play.Result.Event
	}
	return fmt.Sprintf("⚾ %s finished his at-bat\n%s", f.nick(), desc)
}

// Startup announces the bot coming online with the subject's season line.
func (f Formatter) Startup(stats *domain.SeasonStats, season int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚨🚨🚨 %s DINGER BOT IS READY! 🚨🚨🚨\n\n", strings.ToUpper(f.nick()))
	b.WriteString("📊 MLB API: ✅ Responding\n")
	if stats != nil {
		fmt.Fprintf(&b, "🏟️ %s's %d Stats:\n", f.nick(), season)
		fmt.Fprintf(&b, "   • HR: %d\n", stats.HomeRuns)
		fmt.Fprintf(&b, "   • RBI: %d\n", stats.RBI)
		fmt.Fprintf(&b, "   • AVG: %s\n", stats.AVG)
		fmt.Fprintf(&b, "   • OPS: %s\n", stats.OPS)
	}
	fmt.Fprintf(&b, "\n🔍 Monitoring for %s dingers... ⚾💥", f.nick())
	return b.String()
}
