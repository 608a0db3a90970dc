package standings

import (
	"testing"

	"github.com/schoolcup/tournament-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrdersByPoints(t *testing.T) {
	totals := map[int]Totals{
		1: {GamesPlayed: 2, Wins: 0, Draws: 1, Losses: 1, GoalsFor: 1, GoalsAgainst: 3},
		2: {GamesPlayed: 2, Wins: 2, Draws: 0, Losses: 0, GoalsFor: 4, GoalsAgainst: 1},
		3: {GamesPlayed: 2, Wins: 1, Draws: 1, Losses: 0, GoalsFor: 3, GoalsAgainst: 2},
	}

	rows := Rank(10, totals)
	require.Len(t, rows, 3)

	assert.Equal(t, []int{2, 3, 1}, teamOrder(rows))
	assert.Equal(t, 6, rows[0].Points)
	assert.Equal(t, 4, rows[1].Points)
	assert.Equal(t, 1, rows[2].Points)
}

func TestRankTieBrokenByGoalDifference(t *testing.T) {
	totals := map[int]Totals{
		1: {GamesPlayed: 2, Wins: 1, Draws: 0, Losses: 1, GoalsFor: 5, GoalsAgainst: 1},
		2: {GamesPlayed: 2, Wins: 1, Draws: 0, Losses: 1, GoalsFor: 2, GoalsAgainst: 2},
	}

	rows := Rank(10, totals)
	assert.Equal(t, []int{1, 2}, teamOrder(rows))
}

func TestRankTieBrokenByGoalsFor(t *testing.T) {
	// Обе команды: 3 очка, разница 0, но вторая забила больше.
	totals := map[int]Totals{
		1: {GamesPlayed: 2, Wins: 1, Draws: 0, Losses: 1, GoalsFor: 1, GoalsAgainst: 1},
		2: {GamesPlayed: 2, Wins: 1, Draws: 0, Losses: 1, GoalsFor: 4, GoalsAgainst: 4},
	}

	rows := Rank(10, totals)
	assert.Equal(t, []int{2, 1}, teamOrder(rows))
}

func TestRankFullTieFallsBackToTeamID(t *testing.T) {
	totals := map[int]Totals{
		9: {Wins: 1, GoalsFor: 2, GoalsAgainst: 1},
		4: {Wins: 1, GoalsFor: 2, GoalsAgainst: 1},
		7: {Wins: 1, GoalsFor: 2, GoalsAgainst: 1},
	}

	rows := Rank(10, totals)
	assert.Equal(t, []int{4, 7, 9}, teamOrder(rows))
}

func TestRankPositionsAreContiguous(t *testing.T) {
	totals := map[int]Totals{
		1: {Wins: 3}, 2: {Wins: 2}, 3: {Wins: 1}, 4: {}, 5: {Draws: 1},
	}

	rows := Rank(10, totals)
	require.Len(t, rows, 5)
	for i, row := range rows {
		assert.Equal(t, i+1, row.Position)
		assert.Equal(t, 10, row.TournamentID)
	}
}

func TestRankDerivedFieldsHoldInvariants(t *testing.T) {
	totals := map[int]Totals{
		1: {GamesPlayed: 4, Wins: 2, Draws: 1, Losses: 1, GoalsFor: 7, GoalsAgainst: 5},
	}

	rows := Rank(10, totals)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, row.Wins+row.Draws+row.Losses, row.GamesPlayed)
	assert.Equal(t, row.GoalsFor-row.GoalsAgainst, row.GoalDifference)
	assert.Equal(t, row.Wins*3+row.Draws, row.Points)
}

func TestRankEmptyTotals(t *testing.T) {
	rows := Rank(10, map[int]Totals{})
	assert.Empty(t, rows)
}

func teamOrder(rows []models.Standing) []int {
	ids := make([]int, len(rows))
	for i, row := range rows {
		ids[i] = row.TeamID
	}
	return ids
}
