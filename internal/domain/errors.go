package domain

import "errors"

// Доменные ошибки сервиса команд
var (
	// ErrTeamExists возвращается при попытке создать команду с занятым названием
	ErrTeamExists = errors.New("team name already taken")

	// ErrAlreadyInTeam возвращается когда участник уже состоит в команде
	ErrAlreadyInTeam = errors.New("user already belongs to a team")

	// ErrInvalidTeamName возвращается когда название команды не проходит проверку
	ErrInvalidTeamName = errors.New("invalid team name")

	// ErrNotFound возвращается когда ресурс не найден
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrTeamNotFound возвращается когда команда не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeTeamExists    ErrorCode = "TEAM_EXISTS"     // Название команды занято
	CodeAlreadyInTeam ErrorCode = "ALREADY_IN_TEAM" // Участник уже в команде
	CodeBadRequest    ErrorCode = "BAD_REQUEST"     // Некорректный запрос
	CodeNotFound      ErrorCode = "NOT_FOUND"       // Ресурс не найден
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"    // Нет или невалиден токен
	CodeInternal      ErrorCode = "INTERNAL_ERROR"  // Внутренняя ошибка
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrTeamExists):
		return CodeTeamExists
	case errors.Is(err, ErrAlreadyInTeam):
		return CodeAlreadyInTeam
	case errors.Is(err, ErrInvalidTeamName):
		return CodeBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound), errors.Is(err, ErrTeamNotFound):
		return CodeNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}
