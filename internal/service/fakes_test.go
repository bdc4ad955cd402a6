package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/aidar/hackathon-teams/internal/domain"
)

type userRepoFake struct {
	mu   sync.Mutex
	byID map[string]domain.User
	err  error
}

func newUserRepoFake(users ...domain.User) *userRepoFake {
	r := &userRepoFake{byID: map[string]domain.User{}}
	for _, u := range users {
		r.byID[u.UserID] = u
	}
	return r
}

func (r *userRepoFake) CreateOrUpdate(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byID[user.UserID]
	existing.UserID = user.UserID
	existing.Username = user.Username
	r.byID[user.UserID] = existing
	return nil
}

func (r *userRepoFake) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

type teamRepoFake struct {
	users *userRepoFake
	teams map[string]domain.Team
}

func newTeamRepoFake(users *userRepoFake) *teamRepoFake {
	return &teamRepoFake{users: users, teams: map[string]domain.Team{}}
}

func (r *teamRepoFake) CreateWithOwner(ctx context.Context, team *domain.Team) error {
	for _, t := range r.teams {
		if strings.EqualFold(t.TeamName, team.TeamName) {
			return domain.ErrTeamExists
		}
	}
	now := time.Now()
	team.CreatedAt = &now
	r.teams[team.ID] = *team

	r.users.mu.Lock()
	owner := r.users.byID[team.OwnerID]
	owner.TeamID = team.ID
	r.users.byID[team.OwnerID] = owner
	r.users.mu.Unlock()
	return nil
}

func (r *teamRepoFake) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	t, ok := r.teams[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	r.users.mu.Lock()
	for _, u := range r.users.byID {
		if u.TeamID == teamID {
			t.Members = append(t.Members, domain.TeamMember{UserID: u.UserID, Username: u.Username, IsOwner: u.UserID == t.OwnerID})
		}
	}
	r.users.mu.Unlock()
	return &t, nil
}

func (r *teamRepoFake) ExistsByName(ctx context.Context, teamName string) (bool, error) {
	for _, t := range r.teams {
		if strings.EqualFold(t.TeamName, teamName) {
			return true, nil
		}
	}
	return false, nil
}
