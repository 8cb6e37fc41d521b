package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sump-exe/Sports-Game-Management/models"
)

var ErrStatReferenceInvalid = errors.New("stat game or player reference invalid")

type StatRepository interface {
	// ApplyDelta upserts the (game, player) row, adding delta to its
	// points, and returns the new per-game total.
	ApplyDelta(ctx context.Context, gameID, playerID, delta int) (int, error)
	GetPoints(ctx context.Context, gameID, playerID int) (int, error)
	SumForTeam(ctx context.Context, gameID, teamID int) (int, error)
	ListForGame(ctx context.Context, gameID int) ([]*models.PlayerGameStat, error)
}

type postgresStatRepository struct {
	db *sql.DB
}

func NewPostgresStatRepository(db *sql.DB) StatRepository {
	return &postgresStatRepository{db: db}
}

func (r *postgresStatRepository) ApplyDelta(ctx context.Context, gameID, playerID, delta int) (int, error) {
	query := `
		INSERT INTO player_game_stats (game_id, player_id, points)
		VALUES ($1, $2, $3)
		ON CONFLICT (game_id, player_id)
		DO UPDATE SET points = player_game_stats.points + EXCLUDED.points
		RETURNING points`

	var points int
	err := r.db.QueryRowContext(ctx, query, gameID, playerID, delta).Scan(&points)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, ErrStatReferenceInvalid
		}
		return 0, err
	}
	return points, nil
}

// GetPoints returns 0 when no row exists yet.
func (r *postgresStatRepository) GetPoints(ctx context.Context, gameID, playerID int) (int, error) {
	query := `SELECT points FROM player_game_stats WHERE game_id = $1 AND player_id = $2`
	var points int
	err := r.db.QueryRowContext(ctx, query, gameID, playerID).Scan(&points)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return points, nil
}

func (r *postgresStatRepository) SumForTeam(ctx context.Context, gameID, teamID int) (int, error) {
	query := `
		SELECT COALESCE(SUM(s.points), 0)
		FROM player_game_stats s
		JOIN players p ON s.player_id = p.id
		WHERE s.game_id = $1 AND p.team_id = $2`

	var total int
	if err := r.db.QueryRowContext(ctx, query, gameID, teamID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *postgresStatRepository) ListForGame(ctx context.Context, gameID int) ([]*models.PlayerGameStat, error) {
	query := `
		SELECT game_id, player_id, points
		FROM player_game_stats
		WHERE game_id = $1
		ORDER BY player_id ASC`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]*models.PlayerGameStat, 0)
	for rows.Next() {
		var stat models.PlayerGameStat
		if scanErr := rows.Scan(&stat.GameID, &stat.PlayerID, &stat.Points); scanErr != nil {
			return nil, scanErr
		}
		stats = append(stats, &stat)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
