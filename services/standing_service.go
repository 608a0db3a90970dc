package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/schoolcup/tournament-backend/models"
	"github.com/schoolcup/tournament-backend/repositories"
	"github.com/schoolcup/tournament-backend/standings"
	"github.com/schoolcup/tournament-backend/storage"
	"golang.org/x/sync/errgroup"
)

// TeamStatistics — публичное представление строки общей таблицы для одной
// школы: статистика плюс данные школы и ссылка на щит.
type TeamStatistics struct {
	TournamentID   int     `json:"tournament_id"`
	SchoolID       int     `json:"school_id"`
	SchoolName     string  `json:"school_name"`
	ShieldURL      *string `json:"shield_url,omitempty"`
	GamesPlayed    int     `json:"games_played"`
	Victories      int     `json:"victories"`
	Draws          int     `json:"draws"`
	Defeats        int     `json:"defeats"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
	GoalDifference int     `json:"goal_difference"`
	Points         int     `json:"points"`
	Position       int     `json:"position"`
}

// StandingService — фасад подсистемы общей таблицы. Каждый запрос статистики
// сначала полностью пересчитывает таблицу турнира из текущих матчей
// (никакого инкрементального состояния), затем читает только что записанные
// строки. Пересчёт идемпотентен, повтор безопасен.
type StandingService interface {
	GetGeneralTable(ctx context.Context, tournamentID int) ([]*models.Standing, error)
	GetTeamStatistics(ctx context.Context, tournamentID, schoolID int) (*TeamStatistics, error)
}

type standingService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	standingRepo   repositories.StandingRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewStandingService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) StandingService {
	return &standingService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		standingRepo:   standingRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *standingService) GetGeneralTable(ctx context.Context, tournamentID int) ([]*models.Standing, error) {
	teamsByID, err := s.refresh(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	rows, err := s.standingRepo.ListByTournament(ctx, nil, tournamentID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to read general table for tournament %d: %w", tournamentID, err)
	}

	for _, row := range rows {
		if team, ok := teamsByID[row.TeamID]; ok {
			s.populateShieldURL(team)
			row.Team = team
		}
	}
	return rows, nil
}

func (s *standingService) GetTeamStatistics(ctx context.Context, tournamentID, schoolID int) (*TeamStatistics, error) {
	team, err := s.teamRepo.GetByTournamentAndSchool(ctx, tournamentID, schoolID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotInTournament
		}
		return nil, fmt.Errorf("failed to resolve team for school %d in tournament %d: %w", schoolID, tournamentID, err)
	}

	if _, err := s.refresh(ctx, tournamentID); err != nil {
		return nil, err
	}

	row, err := s.standingRepo.GetByTeam(ctx, nil, team.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrStandingNotFound) {
			return nil, ErrStandingNotFound
		}
		return nil, fmt.Errorf("failed to read standing for team %d: %w", team.ID, err)
	}

	s.populateShieldURL(team)

	stats := &TeamStatistics{
		TournamentID:   tournamentID,
		SchoolID:       schoolID,
		SchoolName:     team.School.Name,
		ShieldURL:      team.School.ShieldURL,
		GamesPlayed:    row.GamesPlayed,
		Victories:      row.Wins,
		Draws:          row.Draws,
		Defeats:        row.Losses,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		Position:       row.Position,
	}
	return stats, nil
}

// refresh пересчитывает таблицу турнира с нуля и атомарно заменяет её в
// хранилище. Возвращает команды турнира для обогащения ответа. При любой
// ошибке прежнее состояние таблицы остаётся нетронутым.
func (s *standingService) refresh(ctx context.Context, tournamentID int) (map[int]*models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to validate tournament %d: %w", tournamentID, err)
	}

	var (
		teams   []*models.Team
		matches []models.Match
	)
	completed := models.MatchStatusCompleted

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list teams of tournament %d: %w", tournamentID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gCtx, tournamentID, &completed)
		if err != nil {
			return fmt.Errorf("failed to list completed matches of tournament %d: %w", tournamentID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	teamsByID := make(map[int]*models.Team, len(teams))
	teamIDs := make([]int, 0, len(teams))
	for _, team := range teams {
		teamsByID[team.ID] = team
		teamIDs = append(teamIDs, team.ID)
	}

	totals, err := standings.Aggregate(teamIDs, matches)
	if err != nil {
		return nil, fmt.Errorf("%w: tournament %d: %w", ErrInconsistentMatchData, tournamentID, err)
	}

	ranked := standings.Rank(tournamentID, totals)
	rows := make([]*models.Standing, len(ranked))
	for i := range ranked {
		rows[i] = &ranked[i]
	}

	if err := s.standingRepo.ReplaceAll(ctx, nil, tournamentID, rows); err != nil {
		return nil, fmt.Errorf("failed to replace standings of tournament %d: %w", tournamentID, err)
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "general table recomputed",
			slog.Int("tournament_id", tournamentID),
			slog.Int("teams", len(rows)),
			slog.Int("completed_matches", len(matches)),
		)
	}
	return teamsByID, nil
}

func (s *standingService) populateShieldURL(team *models.Team) {
	if team == nil || team.School == nil || s.uploader == nil {
		return
	}
	if team.School.ShieldKey != nil && *team.School.ShieldKey != "" {
		url := s.uploader.GetPublicURL(*team.School.ShieldKey)
		if url != "" {
			team.School.ShieldURL = &url
		}
	}
}
