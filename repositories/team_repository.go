package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sump-exe/Sports-Game-Management/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already in use")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByName(ctx context.Context, name string) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	UpdateName(ctx context.Context, id int, name string) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
	CountPlayers(ctx context.Context, teamID int) (int, error)
	RecalcCareerPoints(ctx context.Context, teamID int) (int, error)
	AddWin(ctx context.Context, teamID int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name)
		VALUES ($1)
		RETURNING id, career_points, wins`

	err := r.db.QueryRowContext(ctx, query, team.Name).
		Scan(&team.ID, &team.CareerPoints, &team.Wins)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, career_points, wins, logo_key
		FROM teams
		WHERE id = $1`

	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	query := `
		SELECT id, name, career_points, wins, logo_key
		FROM teams
		WHERE name = $1`

	return r.scanTeam(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresTeamRepository) scanTeam(row *sql.Row) (*models.Team, error) {
	team := &models.Team{}
	err := row.Scan(&team.ID, &team.Name, &team.CareerPoints, &team.Wins, &team.LogoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.name, t.career_points, t.wins, t.logo_key,
		       COUNT(p.id) AS player_count
		FROM teams t
		LEFT JOIN players p ON p.team_id = t.id
		GROUP BY t.id
		ORDER BY t.name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var team models.Team
		if scanErr := rows.Scan(
			&team.ID,
			&team.Name,
			&team.CareerPoints,
			&team.Wins,
			&team.LogoKey,
			&team.PlayerCount,
		); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, &team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) UpdateName(ctx context.Context, id int, name string) error {
	query := `UPDATE teams SET name = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		return r.handleTeamError(err)
	}
	return r.requireRow(result)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return r.requireRow(result)
}

// Delete removes a team; players and games referencing it go with it via
// ON DELETE CASCADE.
func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return r.requireRow(result)
}

func (r *postgresTeamRepository) CountPlayers(ctx context.Context, teamID int) (int, error) {
	query := `SELECT COUNT(*) FROM players WHERE team_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, teamID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// RecalcCareerPoints rewrites the team's aggregate from the players table
// rather than trusting an incrementally maintained total.
func (r *postgresTeamRepository) RecalcCareerPoints(ctx context.Context, teamID int) (int, error) {
	query := `
		UPDATE teams
		SET career_points = COALESCE((SELECT SUM(career_points) FROM players WHERE team_id = $1), 0)
		WHERE id = $1
		RETURNING career_points`

	var total int
	err := r.db.QueryRowContext(ctx, query, teamID).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrTeamNotFound
		}
		return 0, err
	}
	return total, nil
}

func (r *postgresTeamRepository) AddWin(ctx context.Context, teamID int) error {
	query := `UPDATE teams SET wins = wins + 1 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, teamID)
	if err != nil {
		return err
	}
	return r.requireRow(result)
}

func (r *postgresTeamRepository) requireRow(result sql.Result) error {
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == "teams_name_key" {
			return ErrTeamNameConflict
		}
	}
	return err
}
