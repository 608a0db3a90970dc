package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/schoolcup/tournament-backend/models"
)

var ErrStandingNotFound = errors.New("standing not found")

// StandingRepository хранит общую таблицу турнира. Единственный разрешённый
// способ записи — ReplaceAll: набор строк турнира заменяется целиком и
// атомарно, построчных обновлений снаружи нет.
type StandingRepository interface {
	ReplaceAll(ctx context.Context, exec SQLExecutor, tournamentID int, standings []*models.Standing) error
	GetByTeam(ctx context.Context, exec SQLExecutor, teamID int) (*models.Standing, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, byPosition bool) ([]*models.Standing, error)
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) ReplaceAll(ctx context.Context, exec SQLExecutor, tournamentID int, standings []*models.Standing) error {
	tx, external := exec.(*sql.Tx)
	if !external {
		var err error
		tx, err = r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("ReplaceAll failed to begin transaction: %w", err)
		}
		// Коммит только если весь блок прошёл без ошибок, иначе состояние
		// таблицы остаётся прежним.
		defer func() {
			_ = tx.Rollback()
		}()
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM standings WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("ReplaceAll failed to clear tournament %d: %w", tournamentID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO standings
			(tournament_id, team_id, games_played, wins, draws, losses, goals_for, goals_against, goal_difference, points, position, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`)
	if err != nil {
		return fmt.Errorf("ReplaceAll failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, s := range standings {
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
		err = stmt.QueryRowContext(ctx,
			s.TournamentID, s.TeamID, s.GamesPlayed, s.Wins, s.Draws, s.Losses,
			s.GoalsFor, s.GoalsAgainst, s.GoalDifference, s.Points, s.Position, s.UpdatedAt,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("ReplaceAll failed for team %d: %w", s.TeamID, err)
		}
	}

	if !external {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("ReplaceAll failed to commit: %w", err)
		}
	}
	return nil
}

func (r *postgresStandingRepository) scanStanding(rowScanner interface{ Scan(...interface{}) error }) (*models.Standing, error) {
	var s models.Standing
	err := rowScanner.Scan(
		&s.ID, &s.TournamentID, &s.TeamID, &s.GamesPlayed,
		&s.Wins, &s.Draws, &s.Losses, &s.GoalsFor, &s.GoalsAgainst,
		&s.GoalDifference, &s.Points, &s.Position, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresStandingRepository) GetByTeam(ctx context.Context, exec SQLExecutor, teamID int) (*models.Standing, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, team_id, games_played, wins, draws, losses,
		       goals_for, goals_against, goal_difference, points, position, updated_at
		FROM standings
		WHERE team_id = $1`
	row := executor.QueryRowContext(ctx, query, teamID)
	return r.scanStanding(row)
}

func (r *postgresStandingRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, byPosition bool) ([]*models.Standing, error) {
	executor := r.getExecutor(exec)
	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
		SELECT id, tournament_id, team_id, games_played, wins, draws, losses,
		       goals_for, goals_against, goal_difference, points, position, updated_at
		FROM standings
		WHERE tournament_id = $1`)

	if byPosition {
		queryBuilder.WriteString(" ORDER BY position ASC")
	} else {
		queryBuilder.WriteString(" ORDER BY team_id ASC")
	}

	rows, err := executor.QueryContext(ctx, queryBuilder.String(), tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.Standing, 0)
	for rows.Next() {
		s, errScan := r.scanStanding(rows)
		if errScan != nil {
			return nil, errScan
		}
		standings = append(standings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}
