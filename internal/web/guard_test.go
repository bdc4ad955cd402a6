package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aidar/hackathon-teams/internal/domain"
)

func TestEvaluateGuard(t *testing.T) {
	user := &domain.User{UserID: "u1"}

	tests := []struct {
		name  string
		state AuthState
		want  GuardDecision
	}{
		{"loading without user", AuthState{Loading: true}, GuardSuspend},
		{"loading with user", AuthState{User: user, Loading: true}, GuardSuspend},
		{"signed out", AuthState{}, GuardRedirect},
		{"signed in", AuthState{User: user}, GuardRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateGuard(tt.state))
		})
	}
}

func TestRequireUser(t *testing.T) {
	sessions := &sessionsFake{users: map[string]*domain.User{"good": {UserID: "u1", Username: "Alice"}}}
	h := NewHandler(sessions, signInFake{}, nil, &sinkFake{}, nil, CookieConfig{Name: "sid"}, 20*time.Millisecond, discardLogger())

	var seen *domain.User
	guarded := h.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("no cookie redirects to sign-in", func(t *testing.T) {
		seen = nil
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hackathon/create", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/signin?next=%2Fhackathon%2Fcreate", rec.Header().Get("Location"))
		assert.Nil(t, seen)
	})

	t.Run("invalid session redirects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/hackathon/create", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "bad"})
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("valid session renders", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/hackathon/create", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "good"})
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		if assert.NotNil(t, seen) {
			assert.Equal(t, "u1", seen.UserID)
		}
	})

	t.Run("slow lookup renders nothing", func(t *testing.T) {
		seen = nil
		sessions.delay = time.Second
		defer func() { sessions.delay = 0 }()

		req := httptest.NewRequest(http.MethodGet, "/hackathon/create", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "good"})
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
		assert.Empty(t, rec.Body.String())
		assert.Nil(t, seen)
	})
}
