package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/hackathon-teams/internal/domain"
)

func TestTeamService_CreateTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("creates team with owner as first member", func(t *testing.T) {
		users := newUserRepoFake(domain.User{UserID: "u1", Username: "Alice"})
		svc := NewTeamService(newTeamRepoFake(users), users)

		team, err := svc.CreateTeam(ctx, "u1", CreateTeamInput{TeamName: "  Foo  "})
		require.NoError(t, err)

		assert.NotEmpty(t, team.ID)
		assert.Equal(t, "Foo", team.TeamName)
		assert.Equal(t, "u1", team.OwnerID)
		assert.True(t, team.HasMember("u1"))
		require.NotNil(t, team.CreatedAt)
	})

	t.Run("rejects taken name regardless of case", func(t *testing.T) {
		users := newUserRepoFake(
			domain.User{UserID: "u1", Username: "Alice"},
			domain.User{UserID: "u2", Username: "Bob"},
		)
		svc := NewTeamService(newTeamRepoFake(users), users)

		_, err := svc.CreateTeam(ctx, "u1", CreateTeamInput{TeamName: "Foo"})
		require.NoError(t, err)

		_, err = svc.CreateTeam(ctx, "u2", CreateTeamInput{TeamName: "FOO"})
		assert.ErrorIs(t, err, domain.ErrTeamExists)
	})

	t.Run("rejects second team for same owner", func(t *testing.T) {
		users := newUserRepoFake(domain.User{UserID: "u1", Username: "Alice"})
		svc := NewTeamService(newTeamRepoFake(users), users)

		_, err := svc.CreateTeam(ctx, "u1", CreateTeamInput{TeamName: "Foo"})
		require.NoError(t, err)

		_, err = svc.CreateTeam(ctx, "u1", CreateTeamInput{TeamName: "Bar"})
		assert.ErrorIs(t, err, domain.ErrAlreadyInTeam)
	})

	t.Run("validates name length", func(t *testing.T) {
		users := newUserRepoFake(domain.User{UserID: "u1"})
		svc := NewTeamService(newTeamRepoFake(users), users)

		for _, name := range []string{"", " ", "a", string(make([]byte, 65))} {
			_, err := svc.CreateTeam(ctx, "u1", CreateTeamInput{TeamName: name})
			assert.ErrorIs(t, err, domain.ErrInvalidTeamName, "name %q", name)
		}
	})

	t.Run("unknown owner", func(t *testing.T) {
		users := newUserRepoFake()
		svc := NewTeamService(newTeamRepoFake(users), users)

		_, err := svc.CreateTeam(ctx, "ghost", CreateTeamInput{TeamName: "Foo"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestTeamService_GetTeam_InvalidID(t *testing.T) {
	users := newUserRepoFake()
	svc := NewTeamService(newTeamRepoFake(users), users)

	_, err := svc.GetTeam(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}
