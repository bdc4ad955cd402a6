package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/hackathon-teams/internal/domain"
)

// ErrorResponse представляет ответ с ошибкой: текст для пользователя и машинный код
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code domain.ErrorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.MapErrorToCode(err)

	switch {
	case errors.Is(err, domain.ErrTeamExists):
		RespondWithError(w, r, http.StatusConflict, code, domain.ErrTeamExists.Error())
	case errors.Is(err, domain.ErrAlreadyInTeam):
		RespondWithError(w, r, http.StatusConflict, code, domain.ErrAlreadyInTeam.Error())
	case errors.Is(err, domain.ErrInvalidTeamName):
		RespondWithError(w, r, http.StatusBadRequest, code, "team_name must be between 2 and 64 characters")
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrTeamNotFound), errors.Is(err, domain.ErrNotFound):
		RespondWithError(w, r, http.StatusNotFound, code, "resource not found")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		RespondWithError(w, r, http.StatusUnauthorized, code, "unauthorized")
	default:
		RespondWithError(w, r, http.StatusInternalServerError, code, "internal server error")
	}
}
