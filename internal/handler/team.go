package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/hackathon-teams/internal/domain"
	"github.com/aidar/hackathon-teams/internal/middleware"
	"github.com/aidar/hackathon-teams/internal/service"
)

// TeamCreator описывает операции с командами, нужные обработчику
type TeamCreator interface {
	CreateTeam(ctx context.Context, ownerID string, input service.CreateTeamInput) (*domain.Team, error)
	GetTeam(ctx context.Context, teamID string) (*domain.Team, error)
}

// TeamHandler обрабатывает эндпоинты команд
type TeamHandler struct {
	teamService TeamCreator
}

// NewTeamHandler создает новый TeamHandler
func NewTeamHandler(teamService TeamCreator) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam обрабатывает POST /api/v1/team/create.
// Владельцем становится пользователь из ID токена; в ответе сама команда без обертки.
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTeamInput
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	ownerID := middleware.GetUserIDFromContext(r.Context())
	if ownerID == "" {
		HandleError(w, r, domain.ErrUnauthorized)
		return
	}

	// Создаем команду
	team, err := h.teamService.CreateTeam(r.Context(), ownerID, input)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, team)
}

// GetTeam обрабатывает GET /api/v1/team/get?team_id=...
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "team_id query parameter is required")
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, team)
}
