package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/schoolcup/tournament-backend/models"
)

var (
	ErrTeamNotFound           = errors.New("team not found")
	ErrTeamAlreadyRegistered  = errors.New("school is already registered in this tournament")
	ErrTeamTournamentInvalid  = errors.New("team tournament conflict or invalid")
	ErrTeamSchoolInvalid      = errors.New("team school conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByTournamentAndSchool(ctx context.Context, tournamentID, schoolID int) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (tournament_id, school_id, sponsor)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.TournamentID, team.SchoolID, team.Sponsor,
	).Scan(&team.ID, &team.CreatedAt)

	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT t.id, t.tournament_id, t.school_id, t.sponsor, t.created_at,
		       s.id, s.name, s.city, s.shield_key, s.created_at
		FROM teams t
		JOIN schools s ON t.school_id = s.id
		WHERE t.id = $1`
	return r.scanTeamWithSchool(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByTournamentAndSchool(ctx context.Context, tournamentID, schoolID int) (*models.Team, error) {
	query := `
		SELECT t.id, t.tournament_id, t.school_id, t.sponsor, t.created_at,
		       s.id, s.name, s.city, s.shield_key, s.created_at
		FROM teams t
		JOIN schools s ON t.school_id = s.id
		WHERE t.tournament_id = $1 AND t.school_id = $2`
	return r.scanTeamWithSchool(r.db.QueryRowContext(ctx, query, tournamentID, schoolID))
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.tournament_id, t.school_id, t.sponsor, t.created_at,
		       s.id, s.name, s.city, s.shield_key, s.created_at
		FROM teams t
		JOIN schools s ON t.school_id = s.id
		WHERE t.tournament_id = $1
		ORDER BY s.name ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, scanErr := r.scanTeamWithSchool(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) scanTeamWithSchool(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	team := &models.Team{School: &models.School{}}
	err := rowScanner.Scan(
		&team.ID, &team.TournamentID, &team.SchoolID, &team.Sponsor, &team.CreatedAt,
		&team.School.ID, &team.School.Name, &team.School.City, &team.School.ShieldKey, &team.School.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "teams_tournament_id_school_id_key" {
				return ErrTeamAlreadyRegistered
			}
		case "23503":
			switch pqErr.Constraint {
			case "teams_tournament_id_fkey":
				return ErrTeamTournamentInvalid
			case "teams_school_id_fkey":
				return ErrTeamSchoolInvalid
			}
		}
	}
	return err
}
