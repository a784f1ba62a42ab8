package logic

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pokernight/stats-api/internal/models"
)

type forecastService struct {
	stats StatsService

	// seeds hands out one seed per calibration so concurrent callers never
	// share a rand.Rand.
	mu    sync.Mutex
	seeds *rand.Rand
}

// NewForecastService builds the calibration service. seed fixes the seed
// stream for reproducible runs; pass 0 for a time-based stream.
func NewForecastService(stats StatsService, seed int64) ForecastService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &forecastService{stats: stats, seeds: rand.New(rand.NewSource(seed))}
}

func (s *forecastService) ForecastRoster(ctx context.Context, playerIDs []string, now time.Time, seed int64) ([]models.ForecastEntry, error) {
	if len(playerIDs) < 2 {
		return nil, ErrRosterTooSmall
	}

	roster := make([]models.PlayerStats, 0, len(playerIDs))
	for _, id := range playerIDs {
		stats, err := s.stats.GetPlayerStats(ctx, id, now)
		if err != nil {
			return nil, err
		}
		roster = append(roster, *stats)
	}

	if seed == 0 {
		s.mu.Lock()
		seed = s.seeds.Int63()
		s.mu.Unlock()
	}
	return CalibrateForecast(roster, rand.New(rand.NewSource(seed)))
}
