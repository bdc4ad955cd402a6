package domain

import (
	"encoding/json"
	"time"
)

// Team представляет команду хакатона
type Team struct {
	ID        string       `json:"id"`
	TeamName  string       `json:"team_name"`
	OwnerID   string       `json:"owner_id,omitempty"`
	Members   []TeamMember `json:"members,omitempty"`
	CreatedAt *time.Time   `json:"created_at,omitempty"`

	// Raw хранит запись команды в том виде, в каком её вернул API, включая неизвестные поля
	Raw json.RawMessage `json:"-"`
}

// HasMember проверяет, состоит ли пользователь в команде
func (t *Team) HasMember(userID string) bool {
	for _, member := range t.Members {
		if member.UserID == userID {
			return true
		}
	}
	return false
}

// TeamStats представляет сводную статистику хакатона
type TeamStats struct {
	Teams                   int `json:"teams"`
	Participants            int `json:"participants"`
	ParticipantsWithoutTeam int `json:"participants_without_team"`
}
