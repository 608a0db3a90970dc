package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/schoolcup/tournament-backend/models"
)

var (
	ErrSchoolNotFound     = errors.New("school not found")
	ErrSchoolNameConflict = errors.New("school name already exists")
)

type SchoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id int) (*models.School, error)
	List(ctx context.Context, nameFilter *string) ([]models.School, error)
	UpdateShieldKey(ctx context.Context, schoolID int, shieldKey *string) error
}

type postgresSchoolRepository struct {
	db *sql.DB
}

func NewPostgresSchoolRepository(db *sql.DB) SchoolRepository {
	return &postgresSchoolRepository{db: db}
}

func (r *postgresSchoolRepository) Create(ctx context.Context, school *models.School) error {
	query := `
		INSERT INTO schools (name, city, shield_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		school.Name, school.City, school.ShieldKey,
	).Scan(&school.ID, &school.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" && pqErr.Constraint == "schools_name_key" {
			return ErrSchoolNameConflict
		}
	}
	return err
}

func (r *postgresSchoolRepository) GetByID(ctx context.Context, id int) (*models.School, error) {
	query := `
		SELECT id, name, city, shield_key, created_at
		FROM schools
		WHERE id = $1`

	school := &models.School{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&school.ID, &school.Name, &school.City, &school.ShieldKey, &school.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSchoolNotFound
		}
		return nil, err
	}
	return school, nil
}

func (r *postgresSchoolRepository) List(ctx context.Context, nameFilter *string) ([]models.School, error) {
	query := `
		SELECT id, name, city, shield_key, created_at
		FROM schools`
	args := []interface{}{}

	if nameFilter != nil && *nameFilter != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, *nameFilter)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schools := make([]models.School, 0)
	for rows.Next() {
		var school models.School
		if scanErr := rows.Scan(
			&school.ID, &school.Name, &school.City, &school.ShieldKey, &school.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		schools = append(schools, school)
	}
	return schools, rows.Err()
}

func (r *postgresSchoolRepository) UpdateShieldKey(ctx context.Context, schoolID int, shieldKey *string) error {
	query := `UPDATE schools SET shield_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, shieldKey, schoolID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSchoolNotFound)
}
