package domain

// SeasonStats is a player's aggregate hitting line for one season. The
// rate stats arrive as formatted strings ("0.251") and are passed through
// untouched.
type SeasonStats struct {
	GamesPlayed int    `json:"gamesPlayed"`
	HomeRuns    int    `json:"homeRuns"`
	RBI         int    `json:"rbi"`
	AVG         string `json:"avg"`
	OPS         string `json:"ops"`
}
