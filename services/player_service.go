package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/schoolcup/tournament-backend/models"
	"github.com/schoolcup/tournament-backend/repositories"
)

type PlayerService interface {
	AddPlayerToTeam(ctx context.Context, input AddPlayerInput) (*models.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	// ListPlayersByTournament возвращает всех игроков команд турнира вместе
	// со счётчиками голов и зелёных карточек.
	ListPlayersByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error)
}

type AddPlayerInput struct {
	UserID       int  `json:"user_id"`
	TeamID       int  `json:"team_id"`
	JerseyNumber *int `json:"jersey_number,omitempty"`
}

type playerService struct {
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	userRepo       repositories.UserRepository
	tournamentRepo repositories.TournamentRepository
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	tournamentRepo repositories.TournamentRepository,
) PlayerService {
	return &playerService{
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		userRepo:       userRepo,
		tournamentRepo: tournamentRepo,
	}
}

func (s *playerService) AddPlayerToTeam(ctx context.Context, input AddPlayerInput) (*models.Player, error) {
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to validate user %d: %w", input.UserID, err)
	}
	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to validate team %d: %w", input.TeamID, err)
	}

	player := &models.Player{
		UserID:       input.UserID,
		TeamID:       input.TeamID,
		JerseyNumber: input.JerseyNumber,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerAlreadyInTeam) {
			return nil, ErrPlayerAlreadyInTeam
		}
		return nil, fmt.Errorf("failed to add player to team %d: %w", input.TeamID, err)
	}
	return player, nil
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to validate team %d: %w", teamID, err)
	}
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %d: %w", teamID, err)
	}
	for _, player := range players {
		if player.User != nil {
			player.User.PasswordHash = ""
		}
	}
	return players, nil
}

func (s *playerService) ListPlayersByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to validate tournament %d: %w", tournamentID, err)
	}
	players, err := s.playerRepo.SearchByTournament(ctx, tournamentID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list players of tournament %d: %w", tournamentID, err)
	}
	for _, player := range players {
		if player.User != nil {
			player.User.PasswordHash = ""
		}
	}
	return players, nil
}
