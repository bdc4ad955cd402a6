package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/aidar/hackathon-teams/internal/domain"
)

// AuthState is what the identity provider knows about the current visitor.
type AuthState struct {
	User    *domain.User
	Loading bool
}

// GuardDecision tells a guarded route what to do with the request.
type GuardDecision int

const (
	// GuardRender lets the page render for the signed-in user.
	GuardRender GuardDecision = iota
	// GuardSuspend renders nothing while authentication is still resolving.
	GuardSuspend
	// GuardRedirect sends the visitor to the sign-in page.
	GuardRedirect
)

// EvaluateGuard decides how a guarded page reacts to the auth state.
// A missing user is not an error, only a redirect trigger.
func EvaluateGuard(state AuthState) GuardDecision {
	switch {
	case state.Loading:
		return GuardSuspend
	case state.User == nil:
		return GuardRedirect
	default:
		return GuardRender
	}
}

type userContextKey struct{}

// UserFromContext returns the user put in the context by RequireUser.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey{}).(*domain.User)
	return user
}

// authState resolves the session cookie. A lookup that runs past its
// deadline leaves the state loading instead of signed out.
func (h *Handler) authState(r *http.Request) AuthState {
	cookie, err := r.Cookie(h.cookie.Name)
	if err != nil || cookie.Value == "" {
		return AuthState{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.lookupTimeout)
	defer cancel()

	user, err := h.sessions.ResolveSession(ctx, cookie.Value)
	switch {
	case err == nil:
		return AuthState{User: user}
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("session lookup timed out", "path", r.URL.Path)
		return AuthState{Loading: true}
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrUserNotFound):
		return AuthState{}
	default:
		h.logger.Error("failed to resolve session", "error", err)
		return AuthState{}
	}
}

// RequireUser guards a route: it is evaluated on every request, so a session
// that expires between requests redirects on the next one.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := h.authState(r)

		switch EvaluateGuard(state) {
		case GuardSuspend:
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		case GuardRedirect:
			target := SignInPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey{}, state.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
