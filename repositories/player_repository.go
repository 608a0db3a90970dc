package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/schoolcup/tournament-backend/models"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerAlreadyInTeam = errors.New("user is already registered as a player of this team")
	ErrPlayerUserInvalid   = errors.New("player user conflict or invalid")
	ErrPlayerTeamInvalid   = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	// SearchByTournament ищет игроков турнира по имени/фамилии вместе со
	// счётчиками голов и зелёных карточек. Пустой term возвращает всех.
	SearchByTournament(ctx context.Context, tournamentID int, term string) ([]*models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (user_id, team_id, jersey_number)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		player.UserID, player.TeamID, player.JerseyNumber,
	).Scan(&player.ID)

	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrPlayerAlreadyInTeam
		case "23503":
			switch pqErr.Constraint {
			case "players_user_id_fkey":
				return ErrPlayerUserInvalid
			case "players_team_id_fkey":
				return ErrPlayerTeamInvalid
			}
		}
	}
	return err
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT p.id, p.user_id, p.team_id, p.jersey_number,
		       u.id, u.first_name, u.last_name, u.email, u.role, u.created_at
		FROM players p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = $1`

	player := &models.Player{User: &models.User{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID, &player.UserID, &player.TeamID, &player.JerseyNumber,
		&player.User.ID, &player.User.FirstName, &player.User.LastName,
		&player.User.Email, &player.User.Role, &player.User.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	query := `
		SELECT p.id, p.user_id, p.team_id, p.jersey_number,
		       u.id, u.first_name, u.last_name, u.email, u.role, u.created_at
		FROM players p
		JOIN users u ON p.user_id = u.id
		WHERE p.team_id = $1
		ORDER BY p.jersey_number ASC NULLS LAST, u.last_name ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectPlayers(rows, false)
}

func (r *postgresPlayerRepository) SearchByTournament(ctx context.Context, tournamentID int, term string) ([]*models.Player, error) {
	query := `
		SELECT p.id, p.user_id, p.team_id, p.jersey_number,
		       u.id, u.first_name, u.last_name, u.email, u.role, u.created_at,
		       COUNT(DISTINCT g.id) AS goal_count,
		       COUNT(DISTINCT gc.id) AS green_card_count
		FROM players p
		JOIN users u ON p.user_id = u.id
		JOIN teams t ON p.team_id = t.id
		LEFT JOIN goals g ON g.player_id = p.id
		LEFT JOIN green_cards gc ON gc.player_id = p.id
		WHERE t.tournament_id = $1
		  AND ($2 = '' OR u.first_name ILIKE '%' || $2 || '%' OR u.last_name ILIKE '%' || $2 || '%')
		GROUP BY p.id, p.user_id, p.team_id, p.jersey_number,
		         u.id, u.first_name, u.last_name, u.email, u.role, u.created_at
		ORDER BY u.last_name ASC, u.first_name ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectPlayers(rows, true)
}

func (r *postgresPlayerRepository) collectPlayers(rows *sql.Rows, withCounts bool) ([]*models.Player, error) {
	players := make([]*models.Player, 0)
	for rows.Next() {
		player := &models.Player{User: &models.User{}}
		dest := []interface{}{
			&player.ID, &player.UserID, &player.TeamID, &player.JerseyNumber,
			&player.User.ID, &player.User.FirstName, &player.User.LastName,
			&player.User.Email, &player.User.Role, &player.User.CreatedAt,
		}
		if withCounts {
			dest = append(dest, &player.GoalCount, &player.GreenCardCount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}
