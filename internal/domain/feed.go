package domain

// LiveFeed is the subset of the StatsAPI live feed this service reads.
// Optional upstream fields are pointers so "absent" stays distinguishable
// from a zero value.
type LiveFeed struct {
	GameData GameData `json:"gameData"`
	LiveData LiveData `json:"liveData"`
}

// GameData carries game-level metadata from the feed.
type GameData struct {
	Status GameStatus `json:"status"`
	Teams  FeedTeams  `json:"teams"`
}

// FeedTeams names both clubs.
type FeedTeams struct {
	Away TeamInfo `json:"away"`
	Home TeamInfo `json:"home"`
}

// TeamInfo identifies a club in the feed.
type TeamInfo struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// LiveData carries the play-by-play and score state.
type LiveData struct {
	Plays     Plays     `json:"plays"`
	Linescore Linescore `json:"linescore"`
}

// Plays holds the ordered play list and the in-progress play, when any.
type Plays struct {
	AllPlays    []Play `json:"allPlays"`
	CurrentPlay *Play  `json:"currentPlay"`
}

// Linescore carries the running score.
type Linescore struct {
	Teams LinescoreTeams `json:"teams"`
}

// LinescoreTeams splits the score by side.
type LinescoreTeams struct {
	Away LinescoreTeam `json:"away"`
	Home LinescoreTeam `json:"home"`
}

// LinescoreTeam is one side's run total.
type LinescoreTeam struct {
	Runs int `json:"runs"`
}

// Play is a single plate appearance.
type Play struct {
	Result     PlayResult  `json:"result"`
	About      PlayAbout   `json:"about"`
	Matchup    Matchup     `json:"matchup"`
	HitData    *HitData    `json:"hitData,omitempty"`
	PlayEvents []PlayEvent `json:"playEvents,omitempty"`
	PlayGUID   string      `json:"playGuid,omitempty"`
}

// PlayResult is the outcome of a play. EventType stays empty while the play
// is in progress.
type PlayResult struct {
	EventType   string `json:"eventType"`
	Event       string `json:"event"`
	Description string `json:"description"`
	RBI         int    `json:"rbi"`
	AwayScore   int    `json:"awayScore"`
	HomeScore   int    `json:"homeScore"`
}

// PlayAbout locates a play within the game.
type PlayAbout struct {
	AtBatIndex  int    `json:"atBatIndex"`
	Inning      int    `json:"inning"`
	IsTopInning bool   `json:"isTopInning"`
	HalfInning  string `json:"halfInning"`
}

// Matchup identifies the participants of a play.
type Matchup struct {
	Batter Person `json:"batter"`
}

// Person is a player reference.
type Person struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// HitData carries Statcast metrics when the provider populates them.
type HitData struct {
	LaunchSpeed   float64 `json:"launchSpeed"`
	LaunchAngle   float64 `json:"launchAngle"`
	TotalDistance float64 `json:"totalDistance"`
}

// PlayEvent is one pitch/event within a play.
type PlayEvent struct {
	Details EventDetails `json:"details"`
}

// EventDetails carries the per-event identifier when present.
type EventDetails struct {
	EventID string `json:"eventId"`
}

// HasResult reports whether the play has a recorded outcome.
func (p Play) HasResult() bool {
	return p.Result.EventType != ""
}

// Phase classifies the feed's game status.
func (f *LiveFeed) Phase() Phase {
	return ClassifyStatus(f.GameData.Status.AbstractGameState, f.GameData.Status.DetailedState)
}

// PlayByIndex finds a play by its at-bat index.
func (f *LiveFeed) PlayByIndex(index int) (Play, bool) {
	for _, play := range f.LiveData.Plays.AllPlays {
		if play.About.AtBatIndex == index {
			return play, true
		}
	}
	return Play{}, false
}

// PlaysByBatter returns the completed plays credited to one batter, in feed
// order.
func (f *LiveFeed) PlaysByBatter(batterID int64) []Play {
	var plays []Play
	for _, play := range f.LiveData.Plays.AllPlays {
		if play.Matchup.Batter.ID == batterID && play.HasResult() {
			plays = append(plays, play)
		}
	}
	return plays
}
