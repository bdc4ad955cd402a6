package repository

import (
	"context"

	"github.com/aidar/hackathon-teams/internal/domain"
)

// UserRepository определяет методы для работы с данными участников
type UserRepository interface {
	// CreateOrUpdate создает нового участника или обновляет имя существующего
	CreateOrUpdate(ctx context.Context, user *domain.User) error

	// GetByID получает участника по ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}

// TeamRepository определяет методы для работы с данными команд
type TeamRepository interface {
	// CreateWithOwner создает команду и записывает в нее владельца в одной транзакции
	CreateWithOwner(ctx context.Context, team *domain.Team) error

	// GetByID получает команду со всеми участниками
	GetByID(ctx context.Context, teamID string) (*domain.Team, error)

	// ExistsByName проверяет, занято ли название (без учета регистра)
	ExistsByName(ctx context.Context, teamName string) (bool, error)
}

// StatsRepository определяет методы для сводной статистики
type StatsRepository interface {
	// GetStats возвращает количество команд и участников
	GetStats(ctx context.Context) (*domain.TeamStats, error)
}
