package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sump-exe/Sports-Game-Management/models"
)

var (
	ErrVenueNotFound     = errors.New("venue not found")
	ErrVenueNameConflict = errors.New("venue name already in use")
)

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	GetByName(ctx context.Context, name string) (*models.Venue, error)
	List(ctx context.Context) ([]*models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `
		INSERT INTO venues (name, address, capacity, available)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, venue.Name, venue.Address, venue.Capacity, venue.Available).
		Scan(&venue.ID)
	return r.handleVenueError(err)
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `
		SELECT id, name, address, capacity, available, logo_key
		FROM venues
		WHERE id = $1`

	return r.scanVenue(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresVenueRepository) GetByName(ctx context.Context, name string) (*models.Venue, error) {
	query := `
		SELECT id, name, address, capacity, available, logo_key
		FROM venues
		WHERE name = $1`

	return r.scanVenue(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresVenueRepository) scanVenue(row *sql.Row) (*models.Venue, error) {
	venue := &models.Venue{}
	err := row.Scan(&venue.ID, &venue.Name, &venue.Address, &venue.Capacity, &venue.Available, &venue.LogoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

func (r *postgresVenueRepository) List(ctx context.Context) ([]*models.Venue, error) {
	query := `
		SELECT id, name, address, capacity, available, logo_key
		FROM venues
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*models.Venue, 0)
	for rows.Next() {
		var venue models.Venue
		if scanErr := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Address,
			&venue.Capacity,
			&venue.Available,
			&venue.LogoKey,
		); scanErr != nil {
			return nil, scanErr
		}
		venues = append(venues, &venue)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *postgresVenueRepository) Update(ctx context.Context, venue *models.Venue) error {
	query := `
		UPDATE venues
		SET name = $1, address = $2, capacity = $3, available = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, venue.Name, venue.Address, venue.Capacity, venue.Available, venue.ID)
	if err != nil {
		return r.handleVenueError(err)
	}
	return r.requireRow(result)
}

func (r *postgresVenueRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE venues SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return r.requireRow(result)
}

func (r *postgresVenueRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM venues WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return r.requireRow(result)
}

func (r *postgresVenueRepository) requireRow(result sql.Result) error {
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrVenueNotFound
	}
	return nil
}

func (r *postgresVenueRepository) handleVenueError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == "venues_name_key" {
			return ErrVenueNameConflict
		}
	}
	return err
}
