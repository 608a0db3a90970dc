package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/schoolcup/tournament-backend/models"
	"github.com/schoolcup/tournament-backend/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePhaseRepo struct {
	phases map[int]*models.Phase
}

func (f *fakePhaseRepo) Create(ctx context.Context, exec repositories.SQLExecutor, phase *models.Phase) error {
	f.phases[phase.ID] = phase
	return nil
}

func (f *fakePhaseRepo) GetByID(ctx context.Context, id int) (*models.Phase, error) {
	phase, ok := f.phases[id]
	if !ok {
		return nil, repositories.ErrPhaseNotFound
	}
	return phase, nil
}

func (f *fakePhaseRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Phase, error) {
	return nil, nil
}

type fakePlayerRepo struct {
	players map[int]*models.Player
}

func (f *fakePlayerRepo) Create(ctx context.Context, player *models.Player) error { return nil }

func (f *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return player, nil
}

func (f *fakePlayerRepo) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	return nil, nil
}

func (f *fakePlayerRepo) SearchByTournament(ctx context.Context, tournamentID int, term string) ([]*models.Player, error) {
	return nil, nil
}

// Перехватывает вызовы пересчёта таблицы после записи результата.
type recordingStandingService struct {
	refreshed []int
}

func (s *recordingStandingService) GetGeneralTable(ctx context.Context, tournamentID int) ([]*models.Standing, error) {
	s.refreshed = append(s.refreshed, tournamentID)
	return nil, nil
}

func (s *recordingStandingService) GetTeamStatistics(ctx context.Context, tournamentID, schoolID int) (*TeamStatistics, error) {
	return nil, nil
}

type recordedResult struct {
	homeGoals, awayGoals int
	status               models.MatchStatus
}

type fakeMatchRepoWithUpdate struct {
	fakeMatchRepo
	updated map[int]recordedResult
}

func (f *fakeMatchRepoWithUpdate) UpdateResult(ctx context.Context, id int, homeGoals, awayGoals int, status models.MatchStatus) error {
	f.updated[id] = recordedResult{homeGoals: homeGoals, awayGoals: awayGoals, status: status}
	return nil
}

func newMatchServiceFixture() (MatchService, *fakeMatchRepoWithUpdate, *recordingStandingService) {
	matchRepo := &fakeMatchRepoWithUpdate{updated: make(map[int]recordedResult)}
	phaseRepo := &fakePhaseRepo{phases: map[int]*models.Phase{
		10: {ID: 10, TournamentID: 1, Name: models.PhaseInitial},
		20: {ID: 20, TournamentID: 2, Name: models.PhaseInitial},
	}}
	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, TournamentID: 1, SchoolID: 101},
		2: {ID: 2, TournamentID: 1, SchoolID: 102},
		3: {ID: 3, TournamentID: 2, SchoolID: 103},
	}}
	playerRepo := &fakePlayerRepo{players: map[int]*models.Player{
		50: {ID: 50, TeamID: 1},
		60: {ID: 60, TeamID: 3},
	}}
	standingService := &recordingStandingService{}

	svc := NewMatchService(matchRepo, phaseRepo, teamRepo, playerRepo, standingService, nil, slog.Default())
	return svc, matchRepo, standingService
}

func TestCreateMatchRejectsIdenticalTeams(t *testing.T) {
	svc, _, _ := newMatchServiceFixture()

	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		TournamentID: 1, PhaseID: 10, HomeTeamID: 1, AwayTeamID: 1, MatchTime: time.Now(),
	})
	require.ErrorIs(t, err, ErrMatchTeamsIdentical)
}

func TestCreateMatchRejectsForeignPhase(t *testing.T) {
	svc, _, _ := newMatchServiceFixture()

	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		TournamentID: 1, PhaseID: 20, HomeTeamID: 1, AwayTeamID: 2, MatchTime: time.Now(),
	})
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestCreateMatchRejectsForeignTeam(t *testing.T) {
	svc, _, _ := newMatchServiceFixture()

	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		TournamentID: 1, PhaseID: 10, HomeTeamID: 1, AwayTeamID: 3, MatchTime: time.Now(),
	})
	require.ErrorIs(t, err, ErrTeamNotInTournament)
}

func TestRecordResultCompletesMatchAndRefreshesTable(t *testing.T) {
	svc, matchRepo, standingService := newMatchServiceFixture()
	matchRepo.matches = []models.Match{
		{ID: 1, TournamentID: 1, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusInProgress},
	}

	match, err := svc.RecordResult(context.Background(), 1, RecordResultInput{HomeGoals: 2, AwayGoals: 2})
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusCompleted, match.Status)
	require.NotNil(t, match.HomeGoals)
	assert.Equal(t, 2, *match.HomeGoals)
	assert.Equal(t, recordedResult{homeGoals: 2, awayGoals: 2, status: models.MatchStatusCompleted}, matchRepo.updated[1])
	assert.Equal(t, []int{1}, standingService.refreshed)
}

func TestRecordResultRejectsNegativeGoals(t *testing.T) {
	svc, _, _ := newMatchServiceFixture()

	_, err := svc.RecordResult(context.Background(), 1, RecordResultInput{HomeGoals: -1, AwayGoals: 0})
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestRecordResultRejectsCanceledMatch(t *testing.T) {
	svc, matchRepo, _ := newMatchServiceFixture()
	matchRepo.matches = []models.Match{
		{ID: 1, TournamentID: 1, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusCanceled},
	}

	_, err := svc.RecordResult(context.Background(), 1, RecordResultInput{HomeGoals: 1, AwayGoals: 0})
	require.ErrorIs(t, err, ErrMatchAlreadySettled)
}

func TestAddGoalValidatesPlayerSide(t *testing.T) {
	svc, matchRepo, _ := newMatchServiceFixture()
	matchRepo.matches = []models.Match{
		{ID: 1, TournamentID: 1, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusInProgress},
	}

	_, err := svc.AddGoal(context.Background(), 1, AddGoalInput{PlayerID: 50})
	require.NoError(t, err)

	// Игрок команды другого турнира не участвует в матче.
	_, err = svc.AddGoal(context.Background(), 1, AddGoalInput{PlayerID: 60})
	require.ErrorIs(t, err, ErrValidationFailed)
}
