package domain

import "time"

// Schedule is the StatsAPI schedule response for one team and date.
type Schedule struct {
	Dates []ScheduleDate `json:"dates"`
}

// ScheduleDate groups the games on a single calendar date.
type ScheduleDate struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// Game identifies one scheduled or live game.
type Game struct {
	GamePk   int64      `json:"gamePk"`
	GameDate time.Time  `json:"gameDate"`
	Status   GameStatus `json:"status"`
}

// GameStatus carries the provider's status string pair.
type GameStatus struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

// Phase classifies the game's status.
func (g Game) Phase() Phase {
	return ClassifyStatus(g.Status.AbstractGameState, g.Status.DetailedState)
}
