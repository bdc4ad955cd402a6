package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/hackathon-teams/internal/domain"
)

// StatsRepository реализует repository.StatsRepository для PostgreSQL
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository создает новый экземпляр StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetStats возвращает количество команд и участников
func (r *StatsRepository) GetStats(ctx context.Context) (*domain.TeamStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM teams),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE team_id IS NULL)
	`

	var stats domain.TeamStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.Teams,
		&stats.Participants,
		&stats.ParticipantsWithoutTeam,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}

	return &stats, nil
}
