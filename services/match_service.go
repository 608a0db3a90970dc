package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/schoolcup/tournament-backend/live"
	"github.com/schoolcup/tournament-backend/models"
	"github.com/schoolcup/tournament-backend/repositories"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatchesByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]models.Match, error)
	// RecordResult фиксирует финальный счёт, помечает матч завершённым,
	// пересчитывает общую таблицу и рассылает её подписчикам турнира.
	RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*models.Match, error)
	AddGoal(ctx context.Context, matchID int, input AddGoalInput) (*models.Goal, error)
	AddGreenCard(ctx context.Context, matchID int, input AddGreenCardInput) (*models.GreenCard, error)
}

type CreateMatchInput struct {
	TournamentID int       `json:"tournament_id"`
	PhaseID      int       `json:"phase_id"`
	HomeTeamID   int       `json:"home_team_id"`
	AwayTeamID   int       `json:"away_team_id"`
	MatchTime    time.Time `json:"match_time"`
}

type RecordResultInput struct {
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
}

type AddGoalInput struct {
	PlayerID int  `json:"player_id"`
	Minute   *int `json:"minute,omitempty"`
}

type AddGreenCardInput struct {
	PlayerID int     `json:"player_id"`
	Reason   *string `json:"reason,omitempty"`
}

type matchService struct {
	matchRepo       repositories.MatchRepository
	phaseRepo       repositories.PhaseRepository
	teamRepo        repositories.TeamRepository
	playerRepo      repositories.PlayerRepository
	standingService StandingService
	hub             *live.Hub
	logger          *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	phaseRepo repositories.PhaseRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	standingService StandingService,
	hub *live.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo:       matchRepo,
		phaseRepo:       phaseRepo,
		teamRepo:        teamRepo,
		playerRepo:      playerRepo,
		standingService: standingService,
		hub:             hub,
		logger:          logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrMatchTeamsIdentical
	}

	phase, err := s.phaseRepo.GetByID(ctx, input.PhaseID)
	if err != nil {
		if errors.Is(err, repositories.ErrPhaseNotFound) {
			return nil, ErrPhaseNotFound
		}
		return nil, fmt.Errorf("failed to get phase %d: %w", input.PhaseID, err)
	}
	if phase.TournamentID != input.TournamentID {
		return nil, fmt.Errorf("%w: phase %d belongs to another tournament", ErrValidationFailed, input.PhaseID)
	}

	for _, teamID := range []int{input.HomeTeamID, input.AwayTeamID} {
		team, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
		}
		if team.TournamentID != input.TournamentID {
			return nil, ErrTeamNotInTournament
		}
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		PhaseID:      input.PhaseID,
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		MatchTime:    input.MatchTime,
		Status:       models.MatchStatusScheduled,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) ListMatchesByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of tournament %d: %w", tournamentID, err)
	}
	return matches, nil
}

func (s *matchService) RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*models.Match, error) {
	if input.HomeGoals < 0 || input.AwayGoals < 0 {
		return nil, fmt.Errorf("%w: goal counts must be non-negative", ErrValidationFailed)
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	if match.Status == models.MatchStatusCanceled {
		return nil, ErrMatchAlreadySettled
	}

	if err := s.matchRepo.UpdateResult(ctx, matchID, input.HomeGoals, input.AwayGoals, models.MatchStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to record result of match %d: %w", matchID, err)
	}
	match.HomeGoals = &input.HomeGoals
	match.AwayGoals = &input.AwayGoals
	match.Status = models.MatchStatusCompleted

	s.broadcastGeneralTable(ctx, match.TournamentID)
	return match, nil
}

func (s *matchService) AddGoal(ctx context.Context, matchID int, input AddGoalInput) (*models.Goal, error) {
	if err := s.validateMatchEvent(ctx, matchID, input.PlayerID); err != nil {
		return nil, err
	}
	goal := &models.Goal{
		MatchID:  matchID,
		PlayerID: input.PlayerID,
		Minute:   input.Minute,
	}
	if err := s.matchRepo.AddGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to add goal to match %d: %w", matchID, err)
	}
	return goal, nil
}

func (s *matchService) AddGreenCard(ctx context.Context, matchID int, input AddGreenCardInput) (*models.GreenCard, error) {
	if err := s.validateMatchEvent(ctx, matchID, input.PlayerID); err != nil {
		return nil, err
	}
	card := &models.GreenCard{
		MatchID:  matchID,
		PlayerID: input.PlayerID,
		Reason:   input.Reason,
	}
	if err := s.matchRepo.AddGreenCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to add green card to match %d: %w", matchID, err)
	}
	return card, nil
}

func (s *matchService) validateMatchEvent(ctx context.Context, matchID, playerID int) error {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to get match %d: %w", matchID, err)
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to get player %d: %w", playerID, err)
	}
	if player.TeamID != match.HomeTeamID && player.TeamID != match.AwayTeamID {
		return fmt.Errorf("%w: player %d is not on either side of match %d", ErrValidationFailed, playerID, matchID)
	}
	return nil
}

// broadcastGeneralTable пересчитывает таблицу и рассылает её в комнату
// турнира. Ошибка пересчёта здесь не роняет запись результата: сам результат
// уже зафиксирован, а следующий запрос статистики пересчитает таблицу заново.
func (s *matchService) broadcastGeneralTable(ctx context.Context, tournamentID int) {
	table, err := s.standingService.GetGeneralTable(ctx, tournamentID)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to refresh general table after match result",
				slog.Int("tournament_id", tournamentID),
				slog.Any("error", err),
			)
		}
		return
	}
	if s.hub != nil {
		s.hub.BroadcastToRoom(live.TournamentRoom(strconv.Itoa(tournamentID)), live.Message{
			Type:    live.MessageTypeGeneralTable,
			Payload: table,
		})
	}
}
