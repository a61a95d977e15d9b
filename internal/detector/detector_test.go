package detector

import (
	"testing"

	"github.com/MatthewCK/CALBOT/internal/domain"
)

const subjectID int64 = 668939

func homeRunPlay(atBatIndex int, eventID string) domain.Play {
	play := domain.Play{
		Result: domain.PlayResult{
			EventType:   "home_run",
			Event:       "Home Run",
			Description: "Cal Raleigh homers (49) on a fly ball to center field.",
		},
		About:   domain.PlayAbout{AtBatIndex: atBatIndex},
		Matchup: domain.Matchup{Batter: domain.Person{ID: subjectID, FullName: "Cal Raleigh"}},
	}
	if eventID != "" {
		play.PlayEvents = []domain.PlayEvent{{Details: domain.EventDetails{EventID: eventID}}}
	}
	return play
}

func feedWith(plays ...domain.Play) *domain.LiveFeed {
	return &domain.LiveFeed{
		LiveData: domain.LiveData{Plays: domain.Plays{AllPlays: plays}},
	}
}

func TestDetectFindsHomeRunBySubject(t *testing.T) {
	d := New(subjectID)
	seen := NewSeenSet()

	events := d.Detect(feedWith(homeRunPlay(12, "evt-1")), seen)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID != "evt-1" {
		t.Fatalf("unexpected id %s", events[0].ID)
	}
}

func TestDetectIgnoresOtherBatters(t *testing.T) {
	play := homeRunPlay(3, "evt-2")
	play.Matchup.Batter.ID = 545361

	d := New(subjectID)
	if events := d.Detect(feedWith(play), NewSeenSet()); len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestDetectIgnoresNonNotablePlays(t *testing.T) {
	play := domain.Play{
		Result: domain.PlayResult{
			EventType:   "strikeout",
			Description: "Cal Raleigh strikes out swinging.",
		},
		About:   domain.PlayAbout{AtBatIndex: 5},
		Matchup: domain.Matchup{Batter: domain.Person{ID: subjectID}},
	}

	d := New(subjectID)
	if events := d.Detect(feedWith(play), NewSeenSet()); len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestDetectFallsBackToDescription(t *testing.T) {
	play := homeRunPlay(7, "evt-3")
	play.Result.EventType = ""

	d := New(subjectID)
	events := d.Detect(feedWith(play), NewSeenSet())
	if len(events) != 1 {
		t.Fatalf("expected description fallback to match, got %d events", len(events))
	}
}

func TestDetectSkipsIncompletePlays(t *testing.T) {
	play := homeRunPlay(9, "evt-4")
	play.Result.EventType = ""
	play.Result.Description = ""

	d := New(subjectID)
	if events := d.Detect(feedWith(play), NewSeenSet()); len(events) != 0 {
		t.Fatalf("plays without a result must not be reported, got %d", len(events))
	}
}

func TestDetectIsIdempotentAcrossPolls(t *testing.T) {
	d := New(subjectID)
	seen := NewSeenSet()
	feed := feedWith(homeRunPlay(12, "evt-5"))

	events := d.Detect(feed, seen)
	if len(events) != 1 {
		t.Fatalf("expected 1 event on first poll, got %d", len(events))
	}
	seen.Add(events[0].ID)

	for i := 0; i < 3; i++ {
		if repeat := d.Detect(feed, seen); len(repeat) != 0 {
			t.Fatalf("poll %d: already-notified event reappeared", i)
		}
	}
}

func TestDetectReportsBatchFinalizedPlays(t *testing.T) {
	d := New(subjectID)
	seen := NewSeenSet()

	events := d.Detect(feedWith(homeRunPlay(12, "evt-a"), homeRunPlay(20, "evt-b")), seen)
	if len(events) != 2 {
		t.Fatalf("expected both finalized plays, got %d", len(events))
	}
}

func TestEventIDFallbackChain(t *testing.T) {
	withEventID := homeRunPlay(1, "evt-x")
	if got := EventID(withEventID); got != "evt-x" {
		t.Fatalf("expected play event id, got %s", got)
	}

	withGUID := homeRunPlay(2, "")
	withGUID.PlayGUID = "guid-y"
	if got := EventID(withGUID); got != "guid-y" {
		t.Fatalf("expected play guid, got %s", got)
	}

	bare := homeRunPlay(3, "")
	if got := EventID(bare); got != "atbat-3" {
		t.Fatalf("expected index fallback, got %s", got)
	}
}
