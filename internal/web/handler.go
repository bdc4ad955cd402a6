package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/aidar/hackathon-teams/internal/domain"
)

// Page routes.
const (
	SignInPath     = "/signin"
	SignOutPath    = "/signout"
	HackathonPath  = "/hackathon"
	CreateTeamPage = "/hackathon/create"
	DashboardPath  = "/hackathon/dashboard"
)

const defaultLookupTimeout = 2 * time.Second

// Sessions issues and resolves session cookies.
type Sessions interface {
	IssueSession(ctx context.Context, userID string) (string, time.Time, error)
	ResolveSession(ctx context.Context, sessionToken string) (*domain.User, error)
}

// SignInService registers participants on sign-in.
type SignInService interface {
	SignIn(ctx context.Context, userID, username string) (*domain.User, error)
}

// CurrentTeams holds the participant's current team.
type CurrentTeams interface {
	Current(userID string) (domain.Team, bool)
	SetTeam(ctx context.Context, userID string, team *domain.Team) <-chan struct{}
}

// TeamReader loads a persisted team.
type TeamReader interface {
	GetTeam(ctx context.Context, teamID string) (*domain.Team, error)
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler serves the hackathon pages.
type Handler struct {
	sessions      Sessions
	users         SignInService
	workflow      *Workflow
	teams         CurrentTeams
	teamReader    TeamReader
	cookie        CookieConfig
	lookupTimeout time.Duration
	pages         *pages
	logger        *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(sessions Sessions, users SignInService, workflow *Workflow, teams CurrentTeams, teamReader TeamReader, cookie CookieConfig, lookupTimeout time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	return &Handler{
		sessions:      sessions,
		users:         users,
		workflow:      workflow,
		teams:         teams,
		teamReader:    teamReader,
		cookie:        cookie,
		lookupTimeout: lookupTimeout,
		pages:         mustParsePages(),
		logger:        logger,
	}
}

// Routes mounts the pages on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get(SignInPath, h.SignInPage)
	r.Post(SignInPath, h.SignIn)
	r.Post(SignOutPath, h.SignOut)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireUser)

		r.Get(HackathonPath, h.Landing)
		r.Get(CreateTeamPage, h.CreateTeamForm)
		r.Post(CreateTeamPage, h.CreateTeam)
		r.Get(DashboardPath, h.Dashboard)
	})
}

type signInInput struct {
	UserID   string `json:"user_id" form:"user_id"`
	Username string `json:"username" form:"username"`
	Next     string `json:"next" form:"next"`
}

type signInData struct {
	Next     string
	UserID   string
	Username string
	Error    string
}

// SignInPage handles GET /signin
func (h *Handler) SignInPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "signin", signInData{Next: safeNext(r.URL.Query().Get("next"))})
}

// SignIn handles POST /signin
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input signInInput
	if err := render.Decode(r, &input); err != nil {
		h.render(w, http.StatusBadRequest, "signin", signInData{Error: "Invalid sign-in request"})
		return
	}

	data := signInData{Next: safeNext(input.Next), UserID: input.UserID, Username: input.Username}

	user, err := h.users.SignIn(r.Context(), input.UserID, input.Username)
	if err != nil {
		data.Error = "Enter a user ID to sign in"
		status := http.StatusBadRequest
		if !errors.Is(err, domain.ErrUnauthorized) {
			h.logger.Error("sign-in failed", "error", err)
			data.Error = "Sign-in is unavailable, try again"
			status = http.StatusInternalServerError
		}
		h.render(w, status, "signin", data)
		return
	}

	token, expiresAt, err := h.sessions.IssueSession(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("failed to issue session", "user_id", user.UserID, "error", err)
		data.Error = "Sign-in is unavailable, try again"
		h.render(w, http.StatusInternalServerError, "signin", data)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	target := data.Next
	if target == "" {
		target = HackathonPath
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// SignOut handles POST /signout
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, SignInPath, http.StatusSeeOther)
}

type landingData struct {
	User *domain.User
}

// Landing handles GET /hackathon
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "landing", landingData{User: UserFromContext(r.Context())})
}

type createData struct {
	User     *domain.User
	Form     *Form
	BackPath string
}

// CreateTeamForm handles GET /hackathon/create
func (h *Handler) CreateTeamForm(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	form := NewForm(TeamFormInput{})
	form.Submitting = h.workflow.Pending(user.UserID)

	h.render(w, http.StatusOK, "create", createData{User: user, Form: form, BackPath: HackathonPath})
}

// CreateTeam handles POST /hackathon/create
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var input TeamFormInput
	if err := render.Decode(r, &input); err != nil {
		form := NewForm(TeamFormInput{})
		form.SetRootError("Invalid form submission")
		h.render(w, http.StatusBadRequest, "create", createData{User: user, Form: form, BackPath: HackathonPath})
		return
	}

	form := NewForm(input)
	result := h.workflow.Submit(r.Context(), user, form)

	switch result.Outcome {
	case OutcomeCreated:
		http.Redirect(w, r, result.Redirect, http.StatusSeeOther)
		return
	case OutcomeNone:
		http.Redirect(w, r, SignInPath, http.StatusSeeOther)
		return
	}

	h.render(w, statusFor(result.Outcome), "create", createData{User: user, Form: form, BackPath: HackathonPath})
}

func statusFor(o Outcome) int {
	switch o {
	case OutcomeBusy:
		return http.StatusConflict
	case OutcomeFailed:
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

type dashboardData struct {
	User    *domain.User
	Team    *domain.Team
	Created bool
}

// Dashboard handles GET /hackathon/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	data := dashboardData{User: user, Created: r.URL.Query().Get("created") == "true"}

	data.Team = h.currentTeam(r.Context(), user)

	h.render(w, http.StatusOK, "dashboard", data)
}

// currentTeam falls back to the participant's persisted team and seeds the
// store with it.
func (h *Handler) currentTeam(ctx context.Context, user *domain.User) *domain.Team {
	if team, ok := h.teams.Current(user.UserID); ok {
		return &team
	}
	if !user.HasTeam() || h.teamReader == nil {
		return nil
	}

	team, err := h.teamReader.GetTeam(ctx, user.TeamID)
	if err != nil {
		if !errors.Is(err, domain.ErrTeamNotFound) {
			h.logger.Error("failed to load team", "user_id", user.UserID, "team_id", user.TeamID, "error", err)
		}
		return nil
	}

	select {
	case <-h.teams.SetTeam(ctx, user.UserID, team):
	case <-ctx.Done():
	}
	return team
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}
