package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusCanceled   MatchStatus = "canceled"
)

// Match — матч между двумя командами одного турнира.
// HomeGoals/AwayGoals заполняются только для завершённых матчей.
type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	PhaseID      int         `json:"phase_id" db:"phase_id"`
	HomeTeamID   int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int         `json:"away_team_id" db:"away_team_id"`
	MatchTime    time.Time   `json:"match_time" db:"match_time"`
	Status       MatchStatus `json:"status" db:"status"`
	HomeGoals    *int        `json:"home_goals,omitempty" db:"home_goals"`
	AwayGoals    *int        `json:"away_goals,omitempty" db:"away_goals"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	HomeTeam *Team `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team `json:"away_team,omitempty" db:"-"`
}

// Goal — событие гола, привязанное к игроку и матчу.
type Goal struct {
	ID       int  `json:"id" db:"id"`
	MatchID  int  `json:"match_id" db:"match_id"`
	PlayerID int  `json:"player_id" db:"player_id"`
	Minute   *int `json:"minute,omitempty" db:"minute"`
}

// GreenCard — дисциплинарная отметка за честную игру.
type GreenCard struct {
	ID       int     `json:"id" db:"id"`
	MatchID  int     `json:"match_id" db:"match_id"`
	PlayerID int     `json:"player_id" db:"player_id"`
	Reason   *string `json:"reason,omitempty" db:"reason"`
}
