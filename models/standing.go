package models

import "time"

// Standing — строка общей таблицы турнира: по одной на пару (турнир, команда).
// Значения целиком перезаписываются при каждом пересчёте, никогда не
// корректируются на месте. Инварианты: GamesPlayed = Wins+Draws+Losses,
// GoalDifference = GoalsFor-GoalsAgainst, Points = Wins*3+Draws,
// Position уникальна в пределах турнира.
type Standing struct {
	ID             int       `json:"id" db:"id"`
	TournamentID   int       `json:"tournament_id" db:"tournament_id"`
	TeamID         int       `json:"team_id" db:"team_id"`
	GamesPlayed    int       `json:"games_played" db:"games_played"`
	Wins           int       `json:"wins" db:"wins"`
	Draws          int       `json:"draws" db:"draws"`
	Losses         int       `json:"losses" db:"losses"`
	GoalsFor       int       `json:"goals_for" db:"goals_for"`
	GoalsAgainst   int       `json:"goals_against" db:"goals_against"`
	GoalDifference int       `json:"goal_difference" db:"goal_difference"`
	Points         int       `json:"points" db:"points"`
	Position       int       `json:"position" db:"position"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	// Заполняется сервисом для ответов API
	Team *Team `json:"team,omitempty" db:"-"`
}
