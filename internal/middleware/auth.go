package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/aidar/hackathon-teams/internal/service"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

const (
	// UserIDKey ключ контекста для ID пользователя
	UserIDKey ContextKey = "user_id"
)

// TokenValidator проверяет ID токены
type TokenValidator interface {
	ValidateToken(tokenString, use string) (*service.Claims, error)
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// AuthMiddleware создает middleware для валидации ID токенов в заголовке Authorization
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, r, "missing authorization header")
				return
			}

			// Проверяем формат Bearer
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, r, "invalid authorization header format")
				return
			}

			// Валидируем токен
			claims, err := validator.ValidateToken(parts[1], service.TokenUseID)
			if err != nil {
				unauthorized(w, r, "invalid or expired token")
				return
			}

			// Добавляем ID пользователя в контекст
			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, errorBody{Error: message, Code: "UNAUTHORIZED"})
}

// GetUserIDFromContext извлекает ID пользователя из контекста
func GetUserIDFromContext(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
