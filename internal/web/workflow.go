package web

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aidar/hackathon-teams/internal/domain"
)

// Messages shown by the submission workflow.
const (
	fallbackBackendMessage = "Failed to create team"
	genericFailureMessage  = "An error occurred while creating the team"
	busyMessage            = "Team creation is already in progress"
	errorModalTitle        = "Team Creation Error"
)

// DashboardCreatedPath is where a successful submission navigates to.
const DashboardCreatedPath = DashboardPath + "?created=true"

// TokenSource returns ID tokens for the team API.
type TokenSource interface {
	IDToken(ctx context.Context, userID string, forceRefresh bool) (string, error)
}

// TeamCreator posts a team creation request to the team API.
type TeamCreator interface {
	CreateTeam(ctx context.Context, token string, input TeamFormInput) (*domain.Team, error)
}

// TeamSink receives the created team. The returned channel closes once the
// update has been applied.
type TeamSink interface {
	SetTeam(ctx context.Context, userID string, team *domain.Team) <-chan struct{}
}

// ErrorPresenter shows an error dialog.
type ErrorPresenter interface {
	ShowError(message, title string)
}

// Outcome is how a submission ended.
type Outcome int

const (
	// OutcomeNone means nothing happened because there was no user.
	OutcomeNone Outcome = iota
	OutcomeInvalid
	OutcomeBusy
	OutcomeCreated
	OutcomeRejected
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeBusy:
		return "busy"
	case OutcomeCreated:
		return "created"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}

// Result is returned by Submit. Redirect is set only for OutcomeCreated.
type Result struct {
	Outcome  Outcome
	Team     *domain.Team
	Redirect string
}

// Workflow runs team creation submissions: token refresh, one API call,
// then either hand-off to the sink and navigation or an error on the form.
type Workflow struct {
	tokens          TokenSource
	client          TeamCreator
	sink            TeamSink
	validator       *FormValidator
	navigationDelay time.Duration
	logger          *slog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewWorkflow creates a Workflow. navigationDelay is the minimum time between
// receiving the team and navigating away.
func NewWorkflow(tokens TokenSource, client TeamCreator, sink TeamSink, navigationDelay time.Duration, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		tokens:          tokens,
		client:          client,
		sink:            sink,
		validator:       NewFormValidator(),
		navigationDelay: navigationDelay,
		logger:          logger,
		pending:         make(map[string]struct{}),
	}
}

// Pending reports whether the user has a submission in flight.
func (w *Workflow) Pending(userID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.pending[userID]
	return ok
}

func (w *Workflow) acquire(userID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.pending[userID]; ok {
		return false
	}
	w.pending[userID] = struct{}{}
	return true
}

func (w *Workflow) release(userID string) {
	w.mu.Lock()
	delete(w.pending, userID)
	w.mu.Unlock()
}

// Submit validates the form and, when valid, creates the team on behalf of user.
// Errors end up on the form; nothing is retried.
func (w *Workflow) Submit(ctx context.Context, user *domain.User, form *Form) Result {
	form.ClearErrors()
	if !w.validator.Validate(form) {
		return Result{Outcome: OutcomeInvalid}
	}

	// The route guard redirects before we get here.
	if user == nil {
		return Result{Outcome: OutcomeNone}
	}

	if !w.acquire(user.UserID) {
		form.Submitting = true
		form.SetRootError(busyMessage)
		return Result{Outcome: OutcomeBusy}
	}
	defer w.release(user.UserID)

	form.Submitting = true
	defer func() { form.Submitting = false }()

	token, err := w.tokens.IDToken(ctx, user.UserID, true)
	if err != nil {
		return w.fail(form, user, err)
	}

	team, err := w.client.CreateTeam(ctx, token, form.Input)
	if err != nil {
		var backendErr *BackendError
		if errors.As(err, &backendErr) {
			message := backendErr.Message
			if message == "" {
				message = fallbackBackendMessage
			}
			w.logger.Info("team creation rejected",
				"user_id", user.UserID, "status", backendErr.Status, "message", message)
			form.SetRootError(message)
			return Result{Outcome: OutcomeRejected}
		}
		return w.fail(form, user, err)
	}

	w.logger.Info("team created", "user_id", user.UserID, "team_id", team.ID, "team_name", team.TeamName)

	minDelay := time.NewTimer(w.navigationDelay)
	defer minDelay.Stop()

	// Navigate only after the sink confirms the update, and never sooner than the delay.
	select {
	case <-w.sink.SetTeam(ctx, user.UserID, team):
	case <-ctx.Done():
		w.logger.Warn("request ended before current team update was confirmed", "user_id", user.UserID)
	}
	select {
	case <-minDelay.C:
	case <-ctx.Done():
	}

	return Result{Outcome: OutcomeCreated, Team: team, Redirect: DashboardCreatedPath}
}

// fail reports a transport failure with the generic message only.
func (w *Workflow) fail(form *Form, user *domain.User, err error) Result {
	w.logger.Error("team creation failed", "user_id", user.UserID, "error", err)

	form.ShowError(genericFailureMessage, errorModalTitle)
	form.SetRootError(genericFailureMessage)
	return Result{Outcome: OutcomeFailed}
}
