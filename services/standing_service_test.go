package services

import (
	"context"
	"log/slog"
	"sort"
	"testing"

	"github.com/schoolcup/tournament-backend/models"
	"github.com/schoolcup/tournament-backend/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory фейки репозиториев ---

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
}

func (f *fakeTournamentRepo) Create(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	f.tournaments[t.ID] = t
	return nil
}

func (f *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t, nil
}

func (f *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return nil, nil
}

func (f *fakeTournamentRepo) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	return nil
}

func (f *fakeTournamentRepo) Delete(ctx context.Context, id int) error { return nil }

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error { return nil }

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (f *fakeTeamRepo) GetByTournamentAndSchool(ctx context.Context, tournamentID, schoolID int) (*models.Team, error) {
	for _, team := range f.teams {
		if team.TournamentID == tournamentID && team.SchoolID == schoolID {
			return team, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (f *fakeTeamRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	var teams []*models.Team
	for _, team := range f.teams {
		if team.TournamentID == tournamentID {
			teams = append(teams, team)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id int) error { return nil }

type fakeMatchRepo struct {
	matches []models.Match
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error { return nil }

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	for i := range f.matches {
		if f.matches[i].ID == id {
			return &f.matches[i], nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) ListByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]models.Match, error) {
	var out []models.Match
	for _, m := range f.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMatchRepo) UpdateResult(ctx context.Context, id int, homeGoals, awayGoals int, status models.MatchStatus) error {
	return nil
}

func (f *fakeMatchRepo) Delete(ctx context.Context, id int) error             { return nil }
func (f *fakeMatchRepo) AddGoal(ctx context.Context, goal *models.Goal) error { return nil }

func (f *fakeMatchRepo) AddGreenCard(ctx context.Context, c *models.GreenCard) error { return nil }

type fakeStandingRepo struct {
	rows         map[int][]*models.Standing // по турнирам
	replaceCalls int
}

func (f *fakeStandingRepo) ReplaceAll(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, standings []*models.Standing) error {
	f.replaceCalls++
	f.rows[tournamentID] = standings
	return nil
}

func (f *fakeStandingRepo) GetByTeam(ctx context.Context, exec repositories.SQLExecutor, teamID int) (*models.Standing, error) {
	for _, rows := range f.rows {
		for _, row := range rows {
			if row.TeamID == teamID {
				return row, nil
			}
		}
	}
	return nil, repositories.ErrStandingNotFound
}

func (f *fakeStandingRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, byPosition bool) ([]*models.Standing, error) {
	rows := append([]*models.Standing(nil), f.rows[tournamentID]...)
	if byPosition {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	} else {
		sort.Slice(rows, func(i, j int) bool { return rows[i].TeamID < rows[j].TeamID })
	}
	return rows, nil
}

// --- фикстура ---

const testTournamentID = 1

func newStandingServiceFixture() (StandingService, *fakeMatchRepo, *fakeStandingRepo) {
	tournamentRepo := &fakeTournamentRepo{tournaments: map[int]*models.Tournament{
		testTournamentID: {ID: testTournamentID, Name: "Copa Escolar", Status: models.StatusActive},
	}}
	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, TournamentID: testTournamentID, SchoolID: 101, School: &models.School{ID: 101, Name: "Colegio Norte"}},
		2: {ID: 2, TournamentID: testTournamentID, SchoolID: 102, School: &models.School{ID: 102, Name: "Colegio Sur"}},
		3: {ID: 3, TournamentID: testTournamentID, SchoolID: 103, School: &models.School{ID: 103, Name: "Colegio Este"}},
	}}
	matchRepo := &fakeMatchRepo{}
	standingRepo := &fakeStandingRepo{rows: make(map[int][]*models.Standing)}

	svc := NewStandingService(tournamentRepo, teamRepo, matchRepo, standingRepo, nil, slog.Default())
	return svc, matchRepo, standingRepo
}

func intPtr(v int) *int { return &v }

func TestGetGeneralTableRecomputesFromMatches(t *testing.T) {
	svc, matchRepo, standingRepo := newStandingServiceFixture()
	// A 2:1 B, B 0:0 C, C 3:0 A
	matchRepo.matches = []models.Match{
		{ID: 1, TournamentID: testTournamentID, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusCompleted, HomeGoals: intPtr(2), AwayGoals: intPtr(1)},
		{ID: 2, TournamentID: testTournamentID, HomeTeamID: 2, AwayTeamID: 3, Status: models.MatchStatusCompleted, HomeGoals: intPtr(0), AwayGoals: intPtr(0)},
		{ID: 3, TournamentID: testTournamentID, HomeTeamID: 3, AwayTeamID: 1, Status: models.MatchStatusCompleted, HomeGoals: intPtr(3), AwayGoals: intPtr(0)},
	}

	table, err := svc.GetGeneralTable(context.Background(), testTournamentID)
	require.NoError(t, err)
	require.Len(t, table, 3)

	// C: 4 очка, A: 3, B: 1
	assert.Equal(t, 3, table[0].TeamID)
	assert.Equal(t, 4, table[0].Points)
	assert.Equal(t, 1, table[0].Position)
	assert.Equal(t, 1, table[1].TeamID)
	assert.Equal(t, 3, table[1].Points)
	assert.Equal(t, 2, table[2].TeamID)
	assert.Equal(t, 1, table[2].Points)

	assert.Equal(t, 1, standingRepo.replaceCalls)
	require.NotNil(t, table[0].Team)
	assert.Equal(t, "Colegio Este", table[0].Team.School.Name)
}

func TestGetGeneralTableSeedsZeroRows(t *testing.T) {
	svc, _, _ := newStandingServiceFixture()

	table, err := svc.GetGeneralTable(context.Background(), testTournamentID)
	require.NoError(t, err)
	require.Len(t, table, 3)

	for i, row := range table {
		assert.Equal(t, i+1, row.Position)
		assert.Zero(t, row.GamesPlayed)
		assert.Zero(t, row.Points)
	}
}

func TestGetGeneralTableTournamentNotFound(t *testing.T) {
	svc, _, _ := newStandingServiceFixture()

	_, err := svc.GetGeneralTable(context.Background(), 999)
	require.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestGetGeneralTableRecomputesOnEveryRead(t *testing.T) {
	svc, matchRepo, standingRepo := newStandingServiceFixture()

	_, err := svc.GetGeneralTable(context.Background(), testTournamentID)
	require.NoError(t, err)

	// Результат появился между чтениями; таблица должна его подхватить.
	matchRepo.matches = append(matchRepo.matches, models.Match{
		ID: 1, TournamentID: testTournamentID, HomeTeamID: 2, AwayTeamID: 1,
		Status: models.MatchStatusCompleted, HomeGoals: intPtr(1), AwayGoals: intPtr(0),
	})

	table, err := svc.GetGeneralTable(context.Background(), testTournamentID)
	require.NoError(t, err)

	assert.Equal(t, 2, standingRepo.replaceCalls)
	assert.Equal(t, 2, table[0].TeamID)
	assert.Equal(t, 3, table[0].Points)
}

func TestGetGeneralTableRejectsInconsistentMatch(t *testing.T) {
	svc, matchRepo, _ := newStandingServiceFixture()
	matchRepo.matches = []models.Match{
		{ID: 1, TournamentID: testTournamentID, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusCompleted, HomeGoals: intPtr(2)},
	}

	_, err := svc.GetGeneralTable(context.Background(), testTournamentID)
	require.ErrorIs(t, err, ErrInconsistentMatchData)
}

func TestGetTeamStatistics(t *testing.T) {
	svc, matchRepo, _ := newStandingServiceFixture()
	matchRepo.matches = []models.Match{
		{ID: 1, TournamentID: testTournamentID, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusCompleted, HomeGoals: intPtr(2), AwayGoals: intPtr(1)},
	}

	stats, err := svc.GetTeamStatistics(context.Background(), testTournamentID, 101)
	require.NoError(t, err)

	assert.Equal(t, "Colegio Norte", stats.SchoolName)
	assert.Equal(t, 1, stats.GamesPlayed)
	assert.Equal(t, 1, stats.Victories)
	assert.Equal(t, 0, stats.Draws)
	assert.Equal(t, 0, stats.Defeats)
	assert.Equal(t, 2, stats.GoalsFor)
	assert.Equal(t, 1, stats.GoalsAgainst)
	assert.Equal(t, 1, stats.GoalDifference)
	assert.Equal(t, 3, stats.Points)
	assert.Equal(t, 1, stats.Position)
}

func TestGetTeamStatisticsSchoolNotRegistered(t *testing.T) {
	svc, _, _ := newStandingServiceFixture()

	_, err := svc.GetTeamStatistics(context.Background(), testTournamentID, 555)
	require.ErrorIs(t, err, ErrTeamNotInTournament)
}
