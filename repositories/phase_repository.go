package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/schoolcup/tournament-backend/models"
)

var ErrPhaseNotFound = errors.New("phase not found")

type PhaseRepository interface {
	Create(ctx context.Context, exec SQLExecutor, phase *models.Phase) error
	GetByID(ctx context.Context, id int) (*models.Phase, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Phase, error)
}

type postgresPhaseRepository struct {
	db *sql.DB
}

func NewPostgresPhaseRepository(db *sql.DB) PhaseRepository {
	return &postgresPhaseRepository{db: db}
}

func (r *postgresPhaseRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPhaseRepository) Create(ctx context.Context, exec SQLExecutor, phase *models.Phase) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO phases (tournament_id, name, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return executor.QueryRowContext(ctx, query,
		phase.TournamentID, phase.Name, phase.StartDate, phase.EndDate,
	).Scan(&phase.ID)
}

func (r *postgresPhaseRepository) GetByID(ctx context.Context, id int) (*models.Phase, error) {
	query := `
		SELECT id, tournament_id, name, start_date, end_date
		FROM phases
		WHERE id = $1`

	phase := &models.Phase{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&phase.ID, &phase.TournamentID, &phase.Name, &phase.StartDate, &phase.EndDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPhaseNotFound
		}
		return nil, err
	}
	return phase, nil
}

func (r *postgresPhaseRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Phase, error) {
	query := `
		SELECT id, tournament_id, name, start_date, end_date
		FROM phases
		WHERE tournament_id = $1
		ORDER BY start_date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phases := make([]models.Phase, 0)
	for rows.Next() {
		var phase models.Phase
		if scanErr := rows.Scan(
			&phase.ID, &phase.TournamentID, &phase.Name, &phase.StartDate, &phase.EndDate,
		); scanErr != nil {
			return nil, scanErr
		}
		phases = append(phases, phase)
	}
	return phases, rows.Err()
}
