package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sump-exe/Sports-Game-Management/models"
)

var (
	ErrMVPNotFound         = errors.New("mvp record not found")
	ErrMVPReferenceInvalid = errors.New("mvp player or team reference invalid")
)

type MVPRepository interface {
	// ReplaceForYear clears any MVP for the record's year and inserts the
	// new one, keeping the at-most-one-per-year invariant.
	ReplaceForYear(ctx context.Context, mvp *models.MVP) error
	GetByYear(ctx context.Context, year int) (*models.MVP, error)
	ClearYear(ctx context.Context, year int) error
	List(ctx context.Context) ([]*models.MVP, error)
}

type postgresMVPRepository struct {
	db *sql.DB
}

func NewPostgresMVPRepository(db *sql.DB) MVPRepository {
	return &postgresMVPRepository{db: db}
}

func (r *postgresMVPRepository) ReplaceForYear(ctx context.Context, mvp *models.MVP) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM mvps WHERE year = $1`, mvp.Year); err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO mvps (player_id, team_id, year) VALUES ($1, $2, $3) RETURNING id`,
		mvp.PlayerID, mvp.TeamID, mvp.Year,
	).Scan(&mvp.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrMVPReferenceInvalid
		}
		return err
	}

	return tx.Commit()
}

func (r *postgresMVPRepository) GetByYear(ctx context.Context, year int) (*models.MVP, error) {
	query := `
		SELECT m.id, m.player_id, m.team_id, m.year, p.name, p.jersey, t.name
		FROM mvps m
		JOIN players p ON m.player_id = p.id
		JOIN teams t ON m.team_id = t.id
		WHERE m.year = $1`

	mvp := &models.MVP{}
	err := r.db.QueryRowContext(ctx, query, year).Scan(
		&mvp.ID,
		&mvp.PlayerID,
		&mvp.TeamID,
		&mvp.Year,
		&mvp.PlayerName,
		&mvp.Jersey,
		&mvp.TeamName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMVPNotFound
		}
		return nil, err
	}
	return mvp, nil
}

func (r *postgresMVPRepository) ClearYear(ctx context.Context, year int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM mvps WHERE year = $1`, year)
	if err != nil {
		return err
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrMVPNotFound
	}
	return nil
}

func (r *postgresMVPRepository) List(ctx context.Context) ([]*models.MVP, error) {
	query := `
		SELECT m.id, m.player_id, m.team_id, m.year, p.name, p.jersey, t.name
		FROM mvps m
		JOIN players p ON m.player_id = p.id
		JOIN teams t ON m.team_id = t.id
		ORDER BY m.year DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mvps := make([]*models.MVP, 0)
	for rows.Next() {
		var mvp models.MVP
		if scanErr := rows.Scan(
			&mvp.ID,
			&mvp.PlayerID,
			&mvp.TeamID,
			&mvp.Year,
			&mvp.PlayerName,
			&mvp.Jersey,
			&mvp.TeamName,
		); scanErr != nil {
			return nil, scanErr
		}
		mvps = append(mvps, &mvp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return mvps, nil
}
