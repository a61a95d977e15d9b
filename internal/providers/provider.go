package providers

import (
	"context"

	"github.com/MatthewCK/CALBOT/internal/domain"
)

// ScheduleProvider fetches the games scheduled for a team on a given day.
// The date parameter should be a YYYY-MM-DD string.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, date string, teamID int64) (domain.Schedule, error)
}

// FeedProvider fetches the live play-by-play feed for a game.
type FeedProvider interface {
	FetchLiveFeed(ctx context.Context, gamePk int64) (*domain.LiveFeed, error)
}

// StatsProvider fetches a player's season hitting stats.
type StatsProvider interface {
	FetchSeasonStats(ctx context.Context, playerID int64, season int) (domain.SeasonStats, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	ScheduleProvider
	FeedProvider
	StatsProvider
}
