package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/hackathon-teams/internal/domain"
)

// TokenIssuer выдает ID токены существующим участникам
type TokenIssuer interface {
	Login(ctx context.Context, userID string) (string, error)
}

// AuthHandler обрабатывает эндпоинты аутентификации API
type AuthHandler struct {
	authService TokenIssuer
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService TokenIssuer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	UserID string `json:"user_id"`
}

// LoginResponse представляет тело ответа на логин
type LoginResponse struct {
	Token string `json:"token"`
}

// Login обрабатывает POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if req.UserID == "" {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "user_id is required")
		return
	}

	token, err := h.authService.Login(r.Context(), req.UserID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, LoginResponse{Token: token})
}
