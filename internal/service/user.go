package service

import (
	"context"
	"strings"

	"github.com/aidar/hackathon-teams/internal/domain"
	"github.com/aidar/hackathon-teams/internal/repository"
)

// UserService handles business logic for participants
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// SignIn registers the participant on first visit and refreshes the username afterwards
func (s *UserService) SignIn(ctx context.Context, userID, username string) (*domain.User, error) {
	userID = strings.TrimSpace(userID)
	username = strings.TrimSpace(username)
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if username == "" {
		username = userID
	}

	if err := s.userRepo.CreateOrUpdate(ctx, &domain.User{UserID: userID, Username: username}); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

// GetByID retrieves a participant by ID
func (s *UserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
