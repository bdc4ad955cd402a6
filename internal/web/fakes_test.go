package web

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aidar/hackathon-teams/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type tokenCall struct {
	userID string
	force  bool
}

type tokenSourceFake struct {
	mu    sync.Mutex
	calls []tokenCall
	err   error
}

func (f *tokenSourceFake) IDToken(ctx context.Context, userID string, forceRefresh bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, tokenCall{userID: userID, force: forceRefresh})
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

func (f *tokenSourceFake) Calls() []tokenCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tokenCall(nil), f.calls...)
}

type sinkFake struct {
	mu     sync.Mutex
	userID string
	team   *domain.Team
	delay  time.Duration
	calls  int
}

func (f *sinkFake) SetTeam(ctx context.Context, userID string, team *domain.Team) <-chan struct{} {
	f.mu.Lock()
	f.userID = userID
	f.team = team
	f.calls++
	delay := f.delay
	f.mu.Unlock()

	done := make(chan struct{})
	go func() {
		time.Sleep(delay)
		close(done)
	}()
	return done
}

func (f *sinkFake) Current(userID string) (domain.Team, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.team == nil || f.userID != userID {
		return domain.Team{}, false
	}
	return *f.team, true
}

type sessionsFake struct {
	users map[string]*domain.User // session token -> user
	delay time.Duration
}

func (f *sessionsFake) IssueSession(ctx context.Context, userID string) (string, time.Time, error) {
	token := "session-" + userID
	if f.users == nil {
		f.users = map[string]*domain.User{}
	}
	f.users[token] = &domain.User{UserID: userID, Username: userID}
	return token, time.Now().Add(time.Hour), nil
}

func (f *sessionsFake) ResolveSession(ctx context.Context, sessionToken string) (*domain.User, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	user, ok := f.users[sessionToken]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

type signInFake struct{}

func (signInFake) SignIn(ctx context.Context, userID, username string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return &domain.User{UserID: userID, Username: username}, nil
}

type teamReaderFake struct {
	teams map[string]*domain.Team
	calls int
}

func (f *teamReaderFake) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	f.calls++
	team, ok := f.teams[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	return team, nil
}
