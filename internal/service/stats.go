package service

import (
	"context"

	"github.com/aidar/hackathon-teams/internal/domain"
	"github.com/aidar/hackathon-teams/internal/repository"
)

// StatsService handles statistics queries
type StatsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// GetStats returns team and participant counters
func (s *StatsService) GetStats(ctx context.Context) (*domain.TeamStats, error) {
	return s.statsRepo.GetStats(ctx)
}
