package logic

import (
	"context"
	"time"

	"github.com/pokernight/stats-api/internal/models"
)

type milestoneService struct {
	stats StatsService
}

func NewMilestoneService(stats StatsService) MilestoneService {
	return &milestoneService{stats: stats}
}

func (s *milestoneService) GetUpcomingMilestones(ctx context.Context, now time.Time) ([]models.Milestone, error) {
	group, err := s.stats.GetGroupStats(ctx, now)
	if err != nil {
		return nil, err
	}
	return DetectMilestones(group, now), nil
}
