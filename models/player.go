package models

type Player struct {
	ID           int  `json:"id" db:"id"`
	UserID       int  `json:"user_id" db:"user_id"`
	TeamID       int  `json:"team_id" db:"team_id"`
	JerseyNumber *int `json:"jersey_number,omitempty" db:"jersey_number"`

	User *User `json:"user,omitempty" db:"-"`
	Team *Team `json:"team,omitempty" db:"-"`

	// Агрегаты по событиям, заполняются сервисом при поиске
	GoalCount      int `json:"goals" db:"-"`
	GreenCardCount int `json:"green_cards" db:"-"`
}
