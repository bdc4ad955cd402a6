package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/aidar/hackathon-teams/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository создает новый экземпляр TeamRepository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// CreateWithOwner создает команду и привязывает к ней владельца.
// Заполняет CreatedAt из базы. Если владелец уже в команде, возвращает domain.ErrAlreadyInTeam.
func (r *TeamRepository) CreateWithOwner(ctx context.Context, team *domain.Team) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		insert := `
			INSERT INTO teams (team_id, team_name, owner_id)
			VALUES ($1, $2, $3)
			RETURNING created_at
		`

		err := tx.QueryRow(ctx, insert, team.ID, team.TeamName, team.OwnerID).Scan(&team.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domain.ErrTeamExists
			}
			return fmt.Errorf("insert team: %w", err)
		}

		// Участник может состоять только в одной команде
		join := `
			UPDATE users
			SET team_id = $1, updated_at = NOW()
			WHERE user_id = $2 AND team_id IS NULL
		`

		result, err := tx.Exec(ctx, join, team.ID, team.OwnerID)
		if err != nil {
			return fmt.Errorf("attach owner: %w", err)
		}
		if result.RowsAffected() == 0 {
			return domain.ErrAlreadyInTeam
		}

		return nil
	})
}

// GetByID получает команду со всеми участниками
func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	query := `SELECT team_id::text, team_name, owner_id, created_at FROM teams WHERE team_id = $1`

	var team domain.Team
	err := r.db.QueryRow(ctx, query, teamID).Scan(&team.ID, &team.TeamName, &team.OwnerID, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}

	members := `
		SELECT user_id, username
		FROM users
		WHERE team_id = $1
		ORDER BY user_id
	`

	rows, err := r.db.Query(ctx, members, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var member domain.TeamMember
		if err := rows.Scan(&member.UserID, &member.Username); err != nil {
			return nil, err
		}
		member.IsOwner = member.UserID == team.OwnerID
		team.Members = append(team.Members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &team, nil
}

// ExistsByName проверяет, занято ли название команды
func (r *TeamRepository) ExistsByName(ctx context.Context, teamName string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE lower(team_name) = lower($1))`

	var exists bool
	err := r.db.QueryRow(ctx, query, teamName).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return exists, nil
}
