package domain

import (
	"encoding/json"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		abstract, detailed string
		want               Phase
	}{
		{"Final", "Final", PhaseFinal},
		{"", "Game Over", PhaseFinal},
		{"Completed", "Completed Early", PhaseFinal},
		{"Preview", "Postponed", PhaseFinal},
		{"Live", "In Progress", PhaseInProgress},
		{"", "Delayed: Rain", PhaseInProgress},
		{"", "Suspended: Rain", PhaseInProgress},
		{"Preview", "Warmup", PhasePregame},
		{"Preview", "Pre-Game", PhasePregame},
		{"Preview", "Scheduled", PhaseScheduled},
		{"", "", PhaseUnknown},
		{"", "Instant Replay", PhaseUnknown},
	}

	for _, tc := range cases {
		if got := ClassifyStatus(tc.abstract, tc.detailed); got != tc.want {
			t.Fatalf("ClassifyStatus(%q, %q) = %s, want %s", tc.abstract, tc.detailed, got, tc.want)
		}
	}
}

func TestLiveFeedDecodeAndHelpers(t *testing.T) {
	raw := `{
		"gameData": {
			"status": {"abstractGameState": "Live", "detailedState": "In Progress"},
			"teams": {
				"away": {"name": "Philadelphia Phillies", "abbreviation": "PHI"},
				"home": {"name": "Seattle Mariners", "abbreviation": "SEA"}
			}
		},
		"liveData": {
			"plays": {
				"allPlays": [
					{
						"result": {"eventType": "home_run", "description": "Cal Raleigh homers (48).", "rbi": 2},
						"about": {"atBatIndex": 45, "inning": 7, "isTopInning": false, "halfInning": "bottom"},
						"matchup": {"batter": {"id": 668939, "fullName": "Cal Raleigh"}},
						"hitData": {"launchSpeed": 109.3, "launchAngle": 22, "totalDistance": 434}
					},
					{
						"result": {},
						"about": {"atBatIndex": 46},
						"matchup": {"batter": {"id": 111}}
					}
				],
				"currentPlay": {
					"result": {},
					"about": {"atBatIndex": 46},
					"matchup": {"batter": {"id": 111}}
				}
			},
			"linescore": {"teams": {"away": {"runs": 5}, "home": {"runs": 5}}}
		}
	}`

	var feed LiveFeed
	if err := json.Unmarshal([]byte(raw), &feed); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if feed.Phase() != PhaseInProgress {
		t.Fatalf("expected in-progress phase, got %s", feed.Phase())
	}

	play, ok := feed.PlayByIndex(45)
	if !ok {
		t.Fatal("expected play 45 found")
	}
	if !play.HasResult() {
		t.Fatal("expected play 45 to have a result")
	}
	if play.HitData == nil || play.HitData.TotalDistance != 434 {
		t.Fatalf("unexpected hit data: %+v", play.HitData)
	}

	next, ok := feed.PlayByIndex(46)
	if !ok {
		t.Fatal("expected play 46 found")
	}
	if next.HasResult() {
		t.Fatal("expected play 46 unresolved")
	}
	if next.HitData != nil {
		t.Fatal("expected absent hit data decoded as nil")
	}

	if plays := feed.PlaysByBatter(668939); len(plays) != 1 || plays[0].About.AtBatIndex != 45 {
		t.Fatalf("unexpected batter plays: %+v", plays)
	}
}
