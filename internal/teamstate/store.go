// Package teamstate holds the "current team" of every signed-in participant.
package teamstate

import (
	"context"
	"sync"

	"github.com/aidar/hackathon-teams/internal/domain"
)

// Listener is notified after a participant's current team changes.
type Listener func(ctx context.Context, userID string, team domain.Team)

// Store keeps one current team per participant. Each update overwrites the
// previous value.
type Store struct {
	mu        sync.RWMutex
	teams     map[string]domain.Team
	listeners []Listener
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{teams: make(map[string]domain.Team)}
}

// OnUpdate registers a listener. Listeners must be registered before the
// store is shared between goroutines.
func (s *Store) OnUpdate(l Listener) {
	s.listeners = append(s.listeners, l)
}

// SetTeam replaces the participant's current team and returns a channel that
// is closed once every listener has seen the update.
func (s *Store) SetTeam(ctx context.Context, userID string, team *domain.Team) <-chan struct{} {
	done := make(chan struct{})
	if team == nil {
		close(done)
		return done
	}

	snapshot := *team
	s.mu.Lock()
	s.teams[userID] = snapshot
	s.mu.Unlock()

	go func() {
		defer close(done)
		for _, l := range s.listeners {
			l(context.WithoutCancel(ctx), userID, snapshot)
		}
	}()

	return done
}

// Current returns the participant's current team.
func (s *Store) Current(userID string) (domain.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[userID]
	return team, ok
}
