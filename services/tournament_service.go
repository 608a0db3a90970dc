package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/schoolcup/tournament-backend/models"
	"github.com/schoolcup/tournament-backend/repositories"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error
	ListPhases(ctx context.Context, tournamentID int) ([]models.Phase, error)
	// Search ищет школы и игроков внутри турнира; перед выборкой общая
	// таблица пересчитывается, чтобы позиции и очки были актуальны.
	Search(ctx context.Context, tournamentID int, term string) (*TournamentSearchResult, error)
}

type CreateTournamentInput struct {
	Name      string  `json:"name"`
	Season    *string `json:"season,omitempty"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

type TournamentSearchResult struct {
	Schools []SchoolSearchEntry `json:"schools"`
	Players []PlayerSearchEntry `json:"players"`
}

type SchoolSearchEntry struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Position  int     `json:"position"`
	Points    int     `json:"points"`
	ShieldURL *string `json:"shield_url,omitempty"`
}

type PlayerSearchEntry struct {
	ID         int     `json:"id"`
	TeamID     int     `json:"team_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Goals      int     `json:"goals"`
	GreenCards int     `json:"green_cards"`
	ShieldURL  *string `json:"shield_url,omitempty"`
}

type tournamentService struct {
	db              *sql.DB
	tournamentRepo  repositories.TournamentRepository
	phaseRepo       repositories.PhaseRepository
	playerRepo      repositories.PlayerRepository
	standingService StandingService
	logger          *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	phaseRepo repositories.PhaseRepository,
	playerRepo repositories.PlayerRepository,
	standingService StandingService,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:              db,
		tournamentRepo:  tournamentRepo,
		phaseRepo:       phaseRepo,
		playerRepo:      playerRepo,
		standingService: standingService,
		logger:          logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	start, end, err := parseTournamentDates(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	if err := validateTournamentDates(start, end); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:      name,
		Season:    input.Season,
		StartDate: start,
		EndDate:   end,
		Status:    models.StatusSoon,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := s.tournamentRepo.Create(ctx, tx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	// Для каждого турнира сразу создаются его четыре фазы.
	for _, phaseName := range models.DefaultPhaseNames {
		phase := &models.Phase{
			TournamentID: tournament.ID,
			Name:         phaseName,
			StartDate:    start,
			EndDate:      end,
		}
		if err := s.phaseRepo.Create(ctx, tx, phase); err != nil {
			return nil, fmt.Errorf("failed to create phase %s: %w", phaseName, err)
		}
		tournament.Phases = append(tournament.Phases, *phase)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit tournament creation: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "tournament created",
			slog.Int("tournament_id", tournament.ID),
			slog.String("name", tournament.Name),
		)
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	phases, err := s.phaseRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases of tournament %d: %w", id, err)
	}
	tournament.Phases = phases
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) (*models.Tournament, error) {
	switch status {
	case models.StatusSoon, models.StatusRegistration, models.StatusActive, models.StatusCompleted, models.StatusCanceled:
	default:
		return nil, ErrTournamentInvalidStatus
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	if !isValidStatusTransition(tournament.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, tournament.Status, status)
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update status of tournament %d: %w", id, err)
	}
	tournament.Status = status
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return nil
}

func (s *tournamentService) ListPhases(ctx context.Context, tournamentID int) ([]models.Phase, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to validate tournament %d: %w", tournamentID, err)
	}
	phases, err := s.phaseRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases of tournament %d: %w", tournamentID, err)
	}
	return phases, nil
}

func (s *tournamentService) Search(ctx context.Context, tournamentID int, term string) (*TournamentSearchResult, error) {
	term = strings.TrimSpace(term)

	// GetGeneralTable валидирует турнир и пересчитывает таблицу.
	table, err := s.standingService.GetGeneralTable(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	result := &TournamentSearchResult{
		Schools: make([]SchoolSearchEntry, 0),
		Players: make([]PlayerSearchEntry, 0),
	}

	shieldByTeam := make(map[int]*string)
	for _, row := range table {
		if row.Team == nil || row.Team.School == nil {
			continue
		}
		school := row.Team.School
		shieldByTeam[row.TeamID] = school.ShieldURL
		if term != "" && !strings.Contains(strings.ToLower(school.Name), strings.ToLower(term)) {
			continue
		}
		result.Schools = append(result.Schools, SchoolSearchEntry{
			ID:        school.ID,
			Name:      school.Name,
			Position:  row.Position,
			Points:    row.Points,
			ShieldURL: school.ShieldURL,
		})
	}

	players, err := s.playerRepo.SearchByTournament(ctx, tournamentID, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search players of tournament %d: %w", tournamentID, err)
	}
	for _, player := range players {
		entry := PlayerSearchEntry{
			ID:         player.ID,
			TeamID:     player.TeamID,
			Goals:      player.GoalCount,
			GreenCards: player.GreenCardCount,
			ShieldURL:  shieldByTeam[player.TeamID],
		}
		if player.User != nil {
			entry.FirstName = player.User.FirstName
			entry.LastName = player.User.LastName
		}
		result.Players = append(result.Players, entry)
	}

	return result, nil
}
