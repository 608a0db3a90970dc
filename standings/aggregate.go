package standings

import (
	"errors"
	"fmt"

	"github.com/schoolcup/tournament-backend/models"
)

var (
	ErrUnknownTeam   = errors.New("match references a team not registered in the tournament")
	ErrMissingResult = errors.New("completed match is missing a goal count")
)

// Totals holds one team's accumulated figures before points and positions
// are derived.
type Totals struct {
	GamesPlayed  int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
}

// Aggregate folds a tournament's matches into per-team totals.
// Every registered team appears in the result, with zero totals when it has
// no completed matches. Matches that are not completed are skipped entirely.
// A completed match without both goal counts, or one referencing a team
// outside teamIDs, is rejected rather than counted as 0-0.
func Aggregate(teamIDs []int, matches []models.Match) (map[int]Totals, error) {
	totals := make(map[int]Totals, len(teamIDs))
	for _, id := range teamIDs {
		totals[id] = Totals{}
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted {
			continue
		}
		if m.HomeGoals == nil || m.AwayGoals == nil {
			return nil, fmt.Errorf("%w: match %d", ErrMissingResult, m.ID)
		}
		home, ok := totals[m.HomeTeamID]
		if !ok {
			return nil, fmt.Errorf("%w: match %d, team %d", ErrUnknownTeam, m.ID, m.HomeTeamID)
		}
		away, ok := totals[m.AwayTeamID]
		if !ok {
			return nil, fmt.Errorf("%w: match %d, team %d", ErrUnknownTeam, m.ID, m.AwayTeamID)
		}

		hg, ag := *m.HomeGoals, *m.AwayGoals
		home.GamesPlayed++
		away.GamesPlayed++
		home.GoalsFor += hg
		home.GoalsAgainst += ag
		away.GoalsFor += ag
		away.GoalsAgainst += hg

		switch {
		case hg > ag:
			home.Wins++
			away.Losses++
		case hg < ag:
			away.Wins++
			home.Losses++
		default:
			home.Draws++
			away.Draws++
		}

		totals[m.HomeTeamID] = home
		totals[m.AwayTeamID] = away
	}

	return totals, nil
}
