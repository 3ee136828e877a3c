package app

import (
	"context"
	"fmt"

	"github.com/turrs/bank-skd/internal/domain/dashboard"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

type statsService struct {
	statsRepo dashboard.StatsRepository
	logger    logger.Logger
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(statsRepo dashboard.StatsRepository, logger logger.Logger) (dashboard.StatsService, error) {
	return &statsService{statsRepo: statsRepo, logger: logger}, nil
}

// Stats returns the admin overview with every role present in the breakdown
func (s *statsService) Stats(ctx context.Context) (*dashboard.Stats, error) {
	stats, err := s.statsRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	if stats.UsersByRole == nil {
		stats.UsersByRole = make(map[string]int64, len(users.Roles))
	}
	for _, role := range users.Roles {
		if _, ok := stats.UsersByRole[role]; !ok {
			stats.UsersByRole[role] = 0
		}
	}
	return stats, nil
}
