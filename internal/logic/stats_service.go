package logic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pokernight/stats-api/internal/models"
)

type statsService struct {
	store HistoryStore
	cache StatsCache
}

// NewStatsService builds the aggregation service. cache may be nil, in which
// case every call recomputes from the store.
func NewStatsService(store HistoryStore, cache StatsCache) StatsService {
	return &statsService{store: store, cache: cache}
}

func (s *statsService) GetPlayerStats(ctx context.Context, playerID string, now time.Time) (*models.PlayerStats, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, playerID); ok {
			return cached, nil
		}
	}

	results, err := s.store.ResultsForPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", playerID, err)
	}

	stats := AggregatePlayerStats(playerID, results, now)
	if s.cache != nil {
		s.cache.Set(ctx, &stats)
	}
	return &stats, nil
}

// GetGroupStats aggregates every registered player from one history
// snapshot and returns them sorted by total profit descending.
func (s *statsService) GetGroupStats(ctx context.Context, now time.Time) ([]models.PlayerStats, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	games, err := s.store.ListCompletedGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list completed games: %w", err)
	}

	byPlayer := make(map[string][]models.GameResult, len(players))
	for _, g := range games {
		byPlayer[g.PlayerID] = append(byPlayer[g.PlayerID], g)
	}

	out := make([]models.PlayerStats, len(players))
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for i, id := range players {
		i, id := i, id
		eg.Go(func() error {
			out[i] = AggregatePlayerStats(id, byPlayer[id], now)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Write every aggregate through so a group read (including the nightly
	// warm-up job) leaves per-player snapshots behind.
	if s.cache != nil {
		for i := range out {
			snapshot := out[i]
			s.cache.Set(ctx, &snapshot)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalProfit > out[j].TotalProfit
	})
	return out, nil
}

func (s *statsService) GetLeaderboard(ctx context.Context, now time.Time) ([]models.LeaderboardEntry, error) {
	group, err := s.GetGroupStats(ctx, now)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, len(group))
	for i, p := range group {
		entries[i] = models.LeaderboardEntry{
			Rank:          i + 1,
			PlayerID:      p.PlayerID,
			GamesPlayed:   p.GamesPlayed,
			TotalProfit:   p.TotalProfit,
			AvgProfit:     p.AvgProfit,
			WinPercentage: p.WinPercentage,
			CurrentStreak: p.CurrentStreak,
		}
	}
	return entries, nil
}
