package logic

import (
	"context"
	"time"

	"github.com/pokernight/stats-api/internal/models"
)

// HistoryStore supplies the append-only log of completed games. The engine
// only reads it; if the history can change between calls, taking a
// consistent snapshot is the caller's concern.
type HistoryStore interface {
	ListPlayers(ctx context.Context) ([]string, error)
	ResultsForPlayer(ctx context.Context, playerID string) ([]models.GameResult, error)
	ListCompletedGames(ctx context.Context) ([]models.GameResult, error)
}

// StatsCache holds short-lived aggregated snapshots keyed by player.
type StatsCache interface {
	Get(ctx context.Context, playerID string) (*models.PlayerStats, bool)
	Set(ctx context.Context, stats *models.PlayerStats)
	Invalidate(ctx context.Context, playerIDs ...string)
}

type StatsService interface {
	GetPlayerStats(ctx context.Context, playerID string, now time.Time) (*models.PlayerStats, error)
	GetGroupStats(ctx context.Context, now time.Time) ([]models.PlayerStats, error)
	GetLeaderboard(ctx context.Context, now time.Time) ([]models.LeaderboardEntry, error)
}

type MilestoneService interface {
	GetUpcomingMilestones(ctx context.Context, now time.Time) ([]models.Milestone, error)
}

type ForecastService interface {
	ForecastRoster(ctx context.Context, playerIDs []string, now time.Time, seed int64) ([]models.ForecastEntry, error)
}
