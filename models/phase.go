package models

import "time"

// Названия фаз, создаваемых для каждого турнира при его регистрации.
const (
	PhaseInitial       = "FASE_INICIAL"
	PhaseQuarterFinals = "CUARTOS_DE_FINAL"
	PhaseSemiFinals    = "SEMIFINAL"
	PhaseFinal         = "FINAL"
)

// DefaultPhaseNames перечисляет фазы в порядке их проведения.
var DefaultPhaseNames = []string{PhaseInitial, PhaseQuarterFinals, PhaseSemiFinals, PhaseFinal}

type Phase struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
}
