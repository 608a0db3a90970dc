package standings

import (
	"sort"

	"github.com/schoolcup/tournament-backend/models"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// Rank derives points and goal difference from the aggregated totals and
// produces the general table in final order: points, then goal difference,
// then goals for, all descending. When everything is equal the lower team ID
// ranks first, so two teams never share a position. Positions are assigned
// 1..N with no gaps.
func Rank(tournamentID int, totals map[int]Totals) []models.Standing {
	rows := make([]models.Standing, 0, len(totals))
	for teamID, t := range totals {
		rows = append(rows, models.Standing{
			TournamentID:   tournamentID,
			TeamID:         teamID,
			GamesPlayed:    t.GamesPlayed,
			Wins:           t.Wins,
			Draws:          t.Draws,
			Losses:         t.Losses,
			GoalsFor:       t.GoalsFor,
			GoalsAgainst:   t.GoalsAgainst,
			GoalDifference: t.GoalsFor - t.GoalsAgainst,
			Points:         t.Wins*pointsPerWin + t.Draws*pointsPerDraw,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		if rows[i].GoalsFor != rows[j].GoalsFor {
			return rows[i].GoalsFor > rows[j].GoalsFor
		}
		return rows[i].TeamID < rows[j].TeamID
	})

	for i := range rows {
		rows[i].Position = i + 1
	}

	return rows
}
