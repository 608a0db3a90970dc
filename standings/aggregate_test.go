package standings

import (
	"testing"

	"github.com/schoolcup/tournament-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func completedMatch(id, home, away, hg, ag int) models.Match {
	return models.Match{
		ID:         id,
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     models.MatchStatusCompleted,
		HomeGoals:  intPtr(hg),
		AwayGoals:  intPtr(ag),
	}
}

func TestAggregateRoundRobin(t *testing.T) {
	// A 2:1 B, B 0:0 C, C 3:0 A
	matches := []models.Match{
		completedMatch(1, 1, 2, 2, 1),
		completedMatch(2, 2, 3, 0, 0),
		completedMatch(3, 3, 1, 3, 0),
	}

	totals, err := Aggregate([]int{1, 2, 3}, matches)
	require.NoError(t, err)

	assert.Equal(t, Totals{GamesPlayed: 2, Wins: 1, Draws: 0, Losses: 1, GoalsFor: 2, GoalsAgainst: 4}, totals[1])
	assert.Equal(t, Totals{GamesPlayed: 2, Wins: 0, Draws: 1, Losses: 1, GoalsFor: 1, GoalsAgainst: 2}, totals[2])
	assert.Equal(t, Totals{GamesPlayed: 2, Wins: 1, Draws: 1, Losses: 0, GoalsFor: 3, GoalsAgainst: 0}, totals[3])
}

func TestAggregateSkipsUnfinishedMatches(t *testing.T) {
	matches := []models.Match{
		{ID: 1, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusScheduled},
		{ID: 2, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusInProgress},
		{ID: 3, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusCanceled},
		completedMatch(4, 1, 2, 1, 0),
	}

	totals, err := Aggregate([]int{1, 2}, matches)
	require.NoError(t, err)

	assert.Equal(t, 1, totals[1].GamesPlayed)
	assert.Equal(t, 1, totals[2].GamesPlayed)
	assert.Equal(t, 1, totals[1].Wins)
	assert.Equal(t, 1, totals[2].Losses)
}

func TestAggregateZeroTotalsForIdleTeams(t *testing.T) {
	totals, err := Aggregate([]int{7, 8, 9}, nil)
	require.NoError(t, err)

	require.Len(t, totals, 3)
	for _, id := range []int{7, 8, 9} {
		assert.Equal(t, Totals{}, totals[id])
	}
}

func TestAggregateEmptyTournament(t *testing.T) {
	totals, err := Aggregate(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestAggregateRejectsMissingResult(t *testing.T) {
	matches := []models.Match{
		{ID: 5, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusCompleted, HomeGoals: intPtr(1)},
	}

	_, err := Aggregate([]int{1, 2}, matches)
	require.ErrorIs(t, err, ErrMissingResult)
}

func TestAggregateRejectsUnknownTeam(t *testing.T) {
	matches := []models.Match{
		completedMatch(6, 1, 99, 0, 2),
	}

	_, err := Aggregate([]int{1, 2}, matches)
	require.ErrorIs(t, err, ErrUnknownTeam)
}

func TestAggregateIsIdempotent(t *testing.T) {
	matches := []models.Match{
		completedMatch(1, 1, 2, 4, 4),
		completedMatch(2, 2, 1, 0, 1),
	}

	first, err := Aggregate([]int{1, 2}, matches)
	require.NoError(t, err)
	second, err := Aggregate([]int{1, 2}, matches)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
