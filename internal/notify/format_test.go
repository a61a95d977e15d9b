package notify

import (
	"strings"
	"testing"

	"github.com/MatthewCK/CALBOT/internal/domain"
)

const subjectID int64 = 668939

func formatter() Formatter {
	return Formatter{Name: "Cal Raleigh", Nickname: "Cal", SubjectID: subjectID}
}

func homeRunPlay() domain.Play {
	return domain.Play{
		Result: domain.PlayResult{
			EventType:   "home_run",
			Event:       "Home Run",
			Description: "Cal Raleigh homers (48) on a fly ball to center field.",
			RBI:         2,
		},
		About: domain.PlayAbout{Inning: 7, IsTopInning: false, AtBatIndex: 55},
		Matchup: domain.Matchup{
			Batter: domain.Person{ID: subjectID, FullName: "Cal Raleigh"},
		},
		HitData: &domain.HitData{LaunchSpeed: 109.3, LaunchAngle: 22, TotalDistance: 434},
	}
}

func gameFeed() *domain.LiveFeed {
	return &domain.LiveFeed{
		GameData: domain.GameData{
			Teams: domain.FeedTeams{
				Away: domain.TeamInfo{Name: "Seattle Mariners", Abbreviation: "SEA"},
				Home: domain.TeamInfo{Name: "Philadelphia Phillies", Abbreviation: "PHI"},
			},
		},
		LiveData: domain.LiveData{
			Linescore: domain.Linescore{
				Teams: domain.LinescoreTeams{
					Away: domain.LinescoreTeam{Runs: 5},
					Home: domain.LinescoreTeam{Runs: 5},
				},
			},
			Plays: domain.Plays{
				AllPlays: []domain.Play{
					{
						Result:  domain.PlayResult{EventType: "single", Description: "Cal Raleigh singles."},
						Matchup: domain.Matchup{Batter: domain.Person{ID: subjectID}},
					},
					{
						Result:  domain.PlayResult{EventType: "strikeout", Description: "Cal Raleigh strikes out."},
						Matchup: domain.Matchup{Batter: domain.Person{ID: subjectID}},
					},
					{
						Result:  domain.PlayResult{EventType: "home_run", Description: "Cal Raleigh homers (48).", RBI: 2},
						Matchup: domain.Matchup{Batter: domain.Person{ID: subjectID}},
					},
				},
			},
		},
	}
}

func TestHomeRunMessage(t *testing.T) {
	stats := &domain.SeasonStats{HomeRuns: 47, RBI: 101, AVG: ".251", OPS: ".955"}

	msg := formatter().HomeRun(homeRunPlay(), stats, gameFeed(), "\n\n🎯 WAGER UPDATE 🎯\n")

	for _, want := range []string{
		"🚨🚨🚨 CAL DINGER! 🚨🚨🚨",
		"Cal Raleigh homers (48)",
		"Bottom 7 • 2 RBI",
		"EV 109.3 mph • LA 22° • 434 ft 🚀",
		"🏆 Season HR #48",
		"📊 SEA 5 - PHI 5",
		"🏟️ Cal: 2/3 • 2 RBI",
		"🎯 WAGER UPDATE 🎯",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestHomeRunMessageWithoutExtras(t *testing.T) {
	play := homeRunPlay()
	play.HitData = nil
	play.Result.Description = ""

	msg := formatter().HomeRun(play, nil, nil, "")

	if !strings.Contains(msg, "Home run!") {
		t.Fatalf("expected description fallback:\n%s", msg)
	}
	if strings.Contains(msg, "Season HR") {
		t.Fatalf("season line requires stats:\n%s", msg)
	}
	if strings.Contains(msg, "EV ") {
		t.Fatalf("batted-ball line requires hit data:\n%s", msg)
	}
}

func TestGameLineCountsOfficialAtBats(t *testing.T) {
	feed := gameFeed()
	feed.LiveData.Plays.AllPlays = append(feed.LiveData.Plays.AllPlays, domain.Play{
		Result:  domain.PlayResult{EventType: "walk", Description: "Cal Raleigh walks."},
		Matchup: domain.Matchup{Batter: domain.Person{ID: subjectID}},
	})

	line := formatter().GameLine(feed, subjectID)
	if line != "🏟️ Cal: 2/3 • 2 RBI" {
		t.Fatalf("walks must not count as at-bats, got %q", line)
	}
}

func TestAtBatEnteredMessage(t *testing.T) {
	msg := formatter().AtBatEntered(gameFeed())

	if !strings.Contains(msg, "CAL IS UP TO BAT!") {
		t.Fatalf("missing header:\n%s", msg)
	}
	if !strings.Contains(msg, "📊 SEA 5 - PHI 5") {
		t.Fatalf("missing score:\n%s", msg)
	}
	if !strings.Contains(msg, "Monitoring for dinger") {
		t.Fatalf("missing footer:\n%s", msg)
	}
}

func TestAtBatResultMessage(t *testing.T) {
	play := domain.Play{
		Result: domain.PlayResult{EventType: "strikeout", Description: "Cal Raleigh strikes out swinging."},
	}

	msg := formatter().AtBatResult(play)
	if !strings.Contains(msg, "strikes out swinging") {
		t.Fatalf("missing result description:\n%s", msg)
	}
}

func TestStartupMessage(t *testing.T) {
	stats := &domain.SeasonStats{HomeRuns: 47, RBI: 101, AVG: ".251", OPS: ".955"}

	msg := formatter().Startup(stats, 2026)
	for _, want := range []string{
		"CAL DINGER BOT IS READY!",
		"Cal's 2026 Stats:",
		"HR: 47",
		"AVG: .251",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("startup message missing %q:\n%s", want, msg)
		}
	}
}
