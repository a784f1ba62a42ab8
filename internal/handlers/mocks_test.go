package handlers

import (
	"context"
	"time"

	"github.com/pokernight/stats-api/internal/models"
)

// MockIngestQueue implements IngestQueue for testing
type MockIngestQueue struct {
	Enqueued []*models.FinalizedGame
	Reject   bool
}

func (m *MockIngestQueue) Enqueue(game *models.FinalizedGame) bool {
	if m.Reject {
		return false
	}
	m.Enqueued = append(m.Enqueued, game)
	return true
}

func (m *MockIngestQueue) QueueDepth() int {
	return len(m.Enqueued)
}

// MockStatsService implements logic.StatsService for testing
type MockStatsService struct {
	PlayerStatsFunc func(ctx context.Context, playerID string, now time.Time) (*models.PlayerStats, error)
	LeaderboardFunc func(ctx context.Context, now time.Time) ([]models.LeaderboardEntry, error)
}

func (m *MockStatsService) GetPlayerStats(ctx context.Context, playerID string, now time.Time) (*models.PlayerStats, error) {
	return m.PlayerStatsFunc(ctx, playerID, now)
}

func (m *MockStatsService) GetGroupStats(ctx context.Context, now time.Time) ([]models.PlayerStats, error) {
	return nil, nil
}

func (m *MockStatsService) GetLeaderboard(ctx context.Context, now time.Time) ([]models.LeaderboardEntry, error) {
	return m.LeaderboardFunc(ctx, now)
}

// MockMilestoneService implements logic.MilestoneService for testing
type MockMilestoneService struct {
	Milestones []models.Milestone
	Err        error
}

func (m *MockMilestoneService) GetUpcomingMilestones(ctx context.Context, now time.Time) ([]models.Milestone, error) {
	return m.Milestones, m.Err
}

// MockForecastService implements logic.ForecastService for testing
type MockForecastService struct {
	ForecastFunc func(ctx context.Context, playerIDs []string, now time.Time, seed int64) ([]models.ForecastEntry, error)
	LastSeed     int64
}

func (m *MockForecastService) ForecastRoster(ctx context.Context, playerIDs []string, now time.Time, seed int64) ([]models.ForecastEntry, error) {
	m.LastSeed = seed
	return m.ForecastFunc(ctx, playerIDs, now, seed)
}
