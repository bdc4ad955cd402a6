package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aidar/hackathon-teams/internal/domain"
	"github.com/aidar/hackathon-teams/internal/repository"
)

// CreateTeamInput is the payload accepted by CreateTeam
type CreateTeamInput struct {
	TeamName string `json:"team_name" validate:"required,min=2,max=64"`
}

// TeamService handles business logic for teams
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	validate *validator.Validate
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateTeam creates a new team owned by the caller and makes the caller its first member
func (s *TeamService) CreateTeam(ctx context.Context, ownerID string, input CreateTeamInput) (*domain.Team, error) {
	input.TeamName = strings.TrimSpace(input.TeamName)
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.ErrInvalidTeamName
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.HasTeam() {
		return nil, domain.ErrAlreadyInTeam
	}

	// Check if the name is already taken
	exists, err := s.teamRepo.ExistsByName(ctx, input.TeamName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrTeamExists
	}

	team := &domain.Team{
		ID:       uuid.NewString(),
		TeamName: input.TeamName,
		OwnerID:  owner.UserID,
	}
	// Unique index still guards concurrent creates with the same name
	if err := s.teamRepo.CreateWithOwner(ctx, team); err != nil {
		return nil, err
	}

	// Return the created team
	return s.teamRepo.GetByID(ctx, team.ID)
}

// GetTeam retrieves a team with all members
func (s *TeamService) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	if _, err := uuid.Parse(teamID); err != nil {
		return nil, domain.ErrTeamNotFound
	}
	return s.teamRepo.GetByID(ctx, teamID)
}
