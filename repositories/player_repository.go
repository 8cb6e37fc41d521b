package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sump-exe/Sports-Game-Management/models"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrJerseyConflict    = errors.New("jersey number already taken within the team")
	ErrPlayerTeamInvalid = errors.New("player team reference invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
	AddCareerPoints(ctx context.Context, id int, delta int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, jersey, team_id)
		VALUES ($1, $2, $3)
		RETURNING id, career_points`

	err := r.db.QueryRowContext(ctx, query, player.Name, player.Jersey, player.TeamID).
		Scan(&player.ID, &player.CareerPoints)
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, name, jersey, team_id, career_points
		FROM players
		WHERE id = $1`

	player := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID,
		&player.Name,
		&player.Jersey,
		&player.TeamID,
		&player.CareerPoints,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

// ListByTeam returns the roster ordered by jersey number.
func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	query := `
		SELECT id, name, jersey, team_id, career_points
		FROM players
		WHERE team_id = $1
		ORDER BY jersey ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var player models.Player
		if scanErr := rows.Scan(
			&player.ID,
			&player.Name,
			&player.Jersey,
			&player.TeamID,
			&player.CareerPoints,
		); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, &player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET name = $1, jersey = $2, career_points = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, player.Name, player.Jersey, player.CareerPoints, player.ID)
	if err != nil {
		return r.handlePlayerError(err)
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM players WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresPlayerRepository) AddCareerPoints(ctx context.Context, id int, delta int) error {
	query := `UPDATE players SET career_points = career_points + $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return err
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "players_team_jersey_key" {
				return ErrJerseyConflict
			}
		case "23503": // foreign_key_violation
			if pqErr.Constraint == "players_team_id_fkey" {
				return ErrPlayerTeamInvalid
			}
		}
	}
	return err
}
