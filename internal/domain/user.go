package domain

// User представляет участника хакатона
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	TeamID   string `json:"team_id,omitempty"` // Пустая строка, если участник еще без команды
}

// HasTeam возвращает true если участник уже состоит в команде
func (u *User) HasTeam() bool {
	return u.TeamID != ""
}

// TeamMember представляет участника в составе команды (используется в Team.Members)
type TeamMember struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsOwner  bool   `json:"is_owner"`
}
