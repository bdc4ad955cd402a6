package teamstate

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/hackathon-teams/internal/domain"
)

func TestStore_SetTeamOverwrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	<-s.SetTeam(ctx, "u1", &domain.Team{ID: "t1", TeamName: "Foo"})
	<-s.SetTeam(ctx, "u1", &domain.Team{ID: "t2", TeamName: "Bar"})

	team, ok := s.Current("u1")
	require.True(t, ok)
	assert.Equal(t, "t2", team.ID)

	_, ok = s.Current("u2")
	assert.False(t, ok)
}

func TestStore_DoneClosesAfterListeners(t *testing.T) {
	s := NewStore()
	var applied atomic.Int32
	s.OnUpdate(func(ctx context.Context, userID string, team domain.Team) {
		time.Sleep(20 * time.Millisecond)
		applied.Add(1)
	})
	s.OnUpdate(func(ctx context.Context, userID string, team domain.Team) {
		applied.Add(1)
	})

	done := s.SetTeam(context.Background(), "u1", &domain.Team{ID: "t1"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("update was not confirmed")
	}
	assert.Equal(t, int32(2), applied.Load())
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := NewStore()
	team := &domain.Team{ID: "t1", TeamName: "Foo"}

	<-s.SetTeam(context.Background(), "u1", team)
	team.TeamName = "changed"

	current, _ := s.Current("u1")
	assert.Equal(t, "Foo", current.TeamName)
}

func TestStore_NilTeam(t *testing.T) {
	s := NewStore()

	<-s.SetTeam(context.Background(), "u1", nil)

	_, ok := s.Current("u1")
	assert.False(t, ok)
}
