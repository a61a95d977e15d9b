// Package detector scans live feed snapshots for the tracked player's home
// runs and deduplicates them by a stable event id.
package detector

import (
	"strconv"
	"strings"

	"github.com/MatthewCK/CALBOT/internal/domain"
)

// Event is a notable play that survived deduplication.
type Event struct {
	ID   string
	Play domain.Play
}

// SeenSet records event ids that have already been notified. It lives for
// the process lifetime only, so a restart may re-announce an event; that is
// an accepted tradeoff of keeping the bot stateless.
type SeenSet map[string]struct{}

func NewSeenSet() SeenSet {
	return make(SeenSet)
}

func (s SeenSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s SeenSet) Add(id string) {
	s[id] = struct{}{}
}

func (s SeenSet) Len() int {
	return len(s)
}

// Detector finds new home runs by one batter in a feed snapshot.
type Detector struct {
	subjectID int64
}

func New(subjectID int64) *Detector {
	return &Detector{subjectID: subjectID}
}

// Detect scans every completed play in the feed, not just the current one,
// since the upstream may finalize several plays between polls. Events whose
// id is already in seen are excluded; the caller adds returned ids to seen
// after notifying.
func (d *Detector) Detect(feed *domain.LiveFeed, seen SeenSet) []Event {
	if feed == nil {
		return nil
	}

	var events []Event
	for _, play := range feed.LiveData.Plays.AllPlays {
		if play.Matchup.Batter.ID != d.subjectID {
			continue
		}
		// No completeness gate here: the upstream sometimes leaves the
		// typed eventType empty on a finalized play, and an in-progress
		// play has no description for the fallback to match anyway.
		if !IsNotable(play) {
			continue
		}
		id := EventID(play)
		if seen.Has(id) {
			continue
		}
		events = append(events, Event{ID: id, Play: play})
	}
	return events
}

// IsNotable reports whether a play is a home run. The typed event field is
// preferred, with a substring check on the description as a fallback since
// the upstream is inconsistent about populating the typed field.
func IsNotable(play domain.Play) bool {
	if play.Result.EventType == "home_run" {
		return true
	}
	desc := strings.ToLower(play.Result.Description)
	return strings.Contains(desc, "homers") || strings.Contains(desc, "home run")
}

// EventID derives a stable id for a play. The upstream does not guarantee id
// presence for every event type, so this falls back from the play-level
// event id, to the per-play guid, to the at-bat sequence index.
func EventID(play domain.Play) string {
	if len(play.PlayEvents) > 0 {
		if id := play.PlayEvents[0].Details.EventID; id != "" {
			return id
		}
	}
	if play.PlayGUID != "" {
		return play.PlayGUID
	}
	return "atbat-" + strconv.Itoa(play.About.AtBatIndex)
}
