package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/schoolcup/tournament-backend/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchPhaseInvalid      = errors.New("match phase conflict or invalid")
	ErrMatchTeamInvalid       = errors.New("match team conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]models.Match, error)
	UpdateResult(ctx context.Context, id int, homeGoals, awayGoals int, status models.MatchStatus) error
	Delete(ctx context.Context, id int) error
	AddGoal(ctx context.Context, goal *models.Goal) error
	AddGreenCard(ctx context.Context, card *models.GreenCard) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches
			(tournament_id, phase_id, home_team_id, away_team_id, match_time, status, home_goals, away_goals)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.TournamentID,
		match.PhaseID,
		match.HomeTeamID,
		match.AwayTeamID,
		match.MatchTime,
		match.Status,
		match.HomeGoals,
		match.AwayGoals,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, phase_id, home_team_id, away_team_id, match_time, status, home_goals, away_goals, created_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.TournamentID,
		&match.PhaseID,
		&match.HomeTeamID,
		&match.AwayTeamID,
		&match.MatchTime,
		&match.Status,
		&match.HomeGoals,
		&match.AwayGoals,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, statusFilter *models.MatchStatus) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, tournament_id, phase_id, home_team_id, away_team_id, match_time, status, home_goals, away_goals, created_at
		FROM matches
		WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	placeholderIndex := 2

	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *statusFilter)
		placeholderIndex++
	}

	queryBuilder.WriteString(" ORDER BY match_time ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(
			&match.ID,
			&match.TournamentID,
			&match.PhaseID,
			&match.HomeTeamID,
			&match.AwayTeamID,
			&match.MatchTime,
			&match.Status,
			&match.HomeGoals,
			&match.AwayGoals,
			&match.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id int, homeGoals, awayGoals int, status models.MatchStatus) error {
	query := `
		UPDATE matches
		SET home_goals = $1, away_goals = $2, status = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, homeGoals, awayGoals, status, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM matches WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) AddGoal(ctx context.Context, goal *models.Goal) error {
	query := `
		INSERT INTO goals (match_id, player_id, minute)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, goal.MatchID, goal.PlayerID, goal.Minute).Scan(&goal.ID)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) AddGreenCard(ctx context.Context, card *models.GreenCard) error {
	query := `
		INSERT INTO green_cards (match_id, player_id, reason)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, card.MatchID, card.PlayerID, card.Reason).Scan(&card.ID)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" { // foreign_key_violation
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			case "matches_phase_id_fkey":
				return ErrMatchPhaseInvalid
			case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
				return ErrMatchTeamInvalid
			case "goals_match_id_fkey", "green_cards_match_id_fkey":
				return ErrMatchNotFound
			}
		}
	}
	return err
}
