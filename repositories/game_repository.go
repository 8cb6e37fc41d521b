package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/sump-exe/Sports-Game-Management/models"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameTeamInvalid   = errors.New("game team reference invalid")
	ErrGameVenueInvalid  = errors.New("game venue reference invalid")
	ErrGameWinnerInvalid = errors.New("game winner reference invalid")
)

const gameJoinColumns = `
	g.id, g.team1_id, g.team2_id, g.venue_id, g.game_date,
	g.start_time, g.end_time, g.team1_score, g.team2_score,
	g.is_final, g.winner_id,
	t1.name, t2.name, v.name`

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	List(ctx context.Context) ([]*models.Game, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Game, error)
	ListByTeamOnDate(ctx context.Context, teamID int, date time.Time) ([]*models.Game, error)
	ListByVenueOnDate(ctx context.Context, venueID int, date time.Time) ([]*models.Game, error)
	FindFinalizedBetween(ctx context.Context, teamAID, teamBID int, from, to time.Time) (*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	SetScore(ctx context.Context, id int, team1Score, team2Score int) error
	Finalize(ctx context.Context, id int, winnerID *int) error
	Delete(ctx context.Context, id int) error
	DateBounds(ctx context.Context) (min, max time.Time, ok bool, err error)
	ExistsInRange(ctx context.Context, from, to time.Time) (bool, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games
			(team1_id, team2_id, venue_id, game_date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		game.Team1ID,
		game.Team2ID,
		game.VenueID,
		game.Date,
		game.StartTime,
		game.EndTime,
	).Scan(&game.ID)
	return r.handleGameError(err)
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `
		SELECT ` + gameJoinColumns + `
		FROM games g
		JOIN teams t1 ON g.team1_id = t1.id
		JOIN teams t2 ON g.team2_id = t2.id
		JOIN venues v ON g.venue_id = v.id
		WHERE g.id = $1`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games, err := scanGames(rows)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, ErrGameNotFound
	}
	return games[0], nil
}

func (r *postgresGameRepository) List(ctx context.Context) ([]*models.Game, error) {
	return r.queryGames(ctx, ``, `ORDER BY g.game_date ASC, g.start_time ASC`)
}

func (r *postgresGameRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Game, error) {
	return r.queryGames(ctx,
		`WHERE g.game_date BETWEEN $1 AND $2`,
		`ORDER BY g.game_date ASC, g.start_time ASC`,
		from, to)
}

func (r *postgresGameRepository) ListByTeamOnDate(ctx context.Context, teamID int, date time.Time) ([]*models.Game, error) {
	return r.queryGames(ctx,
		`WHERE (g.team1_id = $1 OR g.team2_id = $1) AND g.game_date = $2`,
		`ORDER BY g.start_time ASC`,
		teamID, date)
}

func (r *postgresGameRepository) ListByVenueOnDate(ctx context.Context, venueID int, date time.Time) ([]*models.Game, error) {
	return r.queryGames(ctx,
		`WHERE g.venue_id = $1 AND g.game_date = $2`,
		`ORDER BY g.start_time ASC`,
		venueID, date)
}

// FindFinalizedBetween looks up a finalized game between the two teams, in
// either home/away orientation, inside [from, to]. Returns ErrGameNotFound
// when the pairing has not been played.
func (r *postgresGameRepository) FindFinalizedBetween(ctx context.Context, teamAID, teamBID int, from, to time.Time) (*models.Game, error) {
	games, err := r.queryGames(ctx,
		`WHERE g.is_final = TRUE
		   AND ((g.team1_id = $1 AND g.team2_id = $2) OR (g.team1_id = $2 AND g.team2_id = $1))
		   AND g.game_date BETWEEN $3 AND $4`,
		`ORDER BY g.game_date DESC LIMIT 1`,
		teamAID, teamBID, from, to)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, ErrGameNotFound
	}
	return games[0], nil
}

func (r *postgresGameRepository) queryGames(ctx context.Context, where, order string, args ...interface{}) ([]*models.Game, error) {
	query := `
		SELECT ` + gameJoinColumns + `
		FROM games g
		JOIN teams t1 ON g.team1_id = t1.id
		JOIN teams t2 ON g.team2_id = t2.id
		JOIN venues v ON g.venue_id = v.id
		` + where + `
		` + order

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGames(rows)
}

func scanGames(rows *sql.Rows) ([]*models.Game, error) {
	games := make([]*models.Game, 0)
	for rows.Next() {
		var game models.Game
		if scanErr := rows.Scan(
			&game.ID,
			&game.Team1ID,
			&game.Team2ID,
			&game.VenueID,
			&game.Date,
			&game.StartTime,
			&game.EndTime,
			&game.Team1Score,
			&game.Team2Score,
			&game.IsFinal,
			&game.WinnerID,
			&game.Team1Name,
			&game.Team2Name,
			&game.VenueName,
		); scanErr != nil {
			return nil, scanErr
		}
		games = append(games, &game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresGameRepository) Update(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games
		SET team1_id = $1, team2_id = $2, venue_id = $3,
		    game_date = $4, start_time = $5, end_time = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		game.Team1ID,
		game.Team2ID,
		game.VenueID,
		game.Date,
		game.StartTime,
		game.EndTime,
		game.ID,
	)
	if err != nil {
		return r.handleGameError(err)
	}
	return r.requireRow(result)
}

func (r *postgresGameRepository) SetScore(ctx context.Context, id int, team1Score, team2Score int) error {
	query := `UPDATE games SET team1_score = $1, team2_score = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, team1Score, team2Score, id)
	if err != nil {
		return err
	}
	return r.requireRow(result)
}

func (r *postgresGameRepository) Finalize(ctx context.Context, id int, winnerID *int) error {
	query := `UPDATE games SET is_final = TRUE, winner_id = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, winnerID, id)
	if err != nil {
		return r.handleGameError(err)
	}
	return r.requireRow(result)
}

func (r *postgresGameRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM games WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return r.requireRow(result)
}

func (r *postgresGameRepository) DateBounds(ctx context.Context) (time.Time, time.Time, bool, error) {
	query := `SELECT MIN(game_date), MAX(game_date) FROM games`
	var min, max sql.NullTime
	if err := r.db.QueryRowContext(ctx, query).Scan(&min, &max); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if !min.Valid || !max.Valid {
		return time.Time{}, time.Time{}, false, nil
	}
	return min.Time, max.Time, true, nil
}

func (r *postgresGameRepository) ExistsInRange(ctx context.Context, from, to time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM games WHERE game_date BETWEEN $1 AND $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, from, to).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresGameRepository) requireRow(result sql.Result) error {
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrGameNotFound
	}
	return nil
}

func (r *postgresGameRepository) handleGameError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" { // foreign_key_violation
			switch pqErr.Constraint {
			case "games_team1_id_fkey", "games_team2_id_fkey":
				return ErrGameTeamInvalid
			case "games_venue_id_fkey":
				return ErrGameVenueInvalid
			case "games_winner_id_fkey":
				return ErrGameWinnerInvalid
			}
		}
	}
	return err
}
