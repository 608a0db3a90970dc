package models

import "time"

// Team связывает школу с турниром: пара (tournament_id, school_id) уникальна.
type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	SchoolID     int       `json:"school_id" db:"school_id"`
	Sponsor      *string   `json:"sponsor,omitempty" db:"sponsor"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	School     *School     `json:"school,omitempty" db:"-"`
	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
	Players    []Player    `json:"players,omitempty" db:"-"`
}
