package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sump-exe/Sports-Game-Management/models"
	"github.com/sump-exe/Sports-Game-Management/repositories"
)

// ScoreUpdate is pushed to the game room after every accepted stat change.
type ScoreUpdate struct {
	GameID       int  `json:"game_id"`
	PlayerID     int  `json:"player_id"`
	PlayerPoints int  `json:"player_points"`
	Team1Score   int  `json:"team1_score"`
	Team2Score   int  `json:"team2_score"`
	Subtracted   bool `json:"subtracted"`
}

// GameResult is the state of a game after it has been ended.
type GameResult struct {
	GameID       int    `json:"game_id"`
	Team1Score   int    `json:"team1_score"`
	Team2Score   int    `json:"team2_score"`
	WinnerID     *int   `json:"winner_id"`
	WinnerName   string `json:"winner_name,omitempty"`
	AlreadyEnded bool   `json:"already_ended"`
}

// ScoringService maintains the per-player stat ledger and keeps team
// scores derived from it. Team scores are always recomputed from the
// ledger, never incremented in place.
type ScoringService interface {
	AddPoints(ctx context.Context, gameID, playerID, points int, subtract bool) (*ScoreUpdate, error)
	EndGame(ctx context.Context, gameID int) (*GameResult, error)
}

type scoringService struct {
	gameRepo   repositories.GameRepository
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	statRepo   repositories.StatRepository
	notifier   Notifier
	logger     *slog.Logger
}

func NewScoringService(
	gameRepo repositories.GameRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	statRepo repositories.StatRepository,
	notifier Notifier,
	logger *slog.Logger,
) ScoringService {
	return &scoringService{
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		statRepo:   statRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *scoringService) AddPoints(ctx context.Context, gameID, playerID, points int, subtract bool) (*ScoreUpdate, error) {
	if points <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNonPositivePoints, points)
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if game.IsFinal {
		return nil, ErrGameAlreadyFinal
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if !game.HasTeam(player.TeamID) {
		return nil, fmt.Errorf("%w: player %s is not on either team", ErrPlayerNotOnGame, player.Name)
	}

	delta := points
	if subtract {
		current, err := s.statRepo.GetPoints(ctx, gameID, playerID)
		if err != nil {
			return nil, err
		}
		if current-points < 0 {
			return nil, fmt.Errorf("%w: %s has %d points in this game", ErrNegativeStat, player.Name, current)
		}
		delta = -points
	}

	playerPoints, err := s.statRepo.ApplyDelta(ctx, gameID, playerID, delta)
	if err != nil {
		return nil, err
	}
	if err := s.playerRepo.AddCareerPoints(ctx, playerID, delta); err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.RecalcCareerPoints(ctx, player.TeamID); err != nil {
		return nil, err
	}

	team1Score, team2Score, err := s.recomputeScores(ctx, game)
	if err != nil {
		return nil, err
	}

	update := &ScoreUpdate{
		GameID:       gameID,
		PlayerID:     playerID,
		PlayerPoints: playerPoints,
		Team1Score:   team1Score,
		Team2Score:   team2Score,
		Subtracted:   subtract,
	}
	if s.notifier != nil {
		s.notifier.BroadcastToRoom(gameRoom(gameID), map[string]interface{}{
			"type":    "score_update",
			"payload": update,
		})
	}
	return update, nil
}

func (s *scoringService) EndGame(ctx context.Context, gameID int) (*GameResult, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if game.IsFinal {
		return &GameResult{
			GameID:       gameID,
			Team1Score:   game.Team1Score,
			Team2Score:   game.Team2Score,
			WinnerID:     game.WinnerID,
			AlreadyEnded: true,
		}, nil
	}

	team1Score, team2Score, err := s.recomputeScores(ctx, game)
	if err != nil {
		return nil, err
	}

	// A tie finalizes with no winner and counts as neither a win nor a loss.
	var winnerID *int
	switch {
	case team1Score > team2Score:
		winnerID = &game.Team1ID
	case team2Score > team1Score:
		winnerID = &game.Team2ID
	}

	if err := s.gameRepo.Finalize(ctx, gameID, winnerID); err != nil {
		return nil, err
	}

	result := &GameResult{
		GameID:     gameID,
		Team1Score: team1Score,
		Team2Score: team2Score,
		WinnerID:   winnerID,
	}
	if winnerID != nil {
		if err := s.teamRepo.AddWin(ctx, *winnerID); err != nil {
			return nil, err
		}
		if *winnerID == game.Team1ID {
			result.WinnerName = game.Team1Name
		} else {
			result.WinnerName = game.Team2Name
		}
	}

	s.logger.Info("game ended",
		slog.Int("game_id", gameID),
		slog.Int("team1_score", team1Score),
		slog.Int("team2_score", team2Score),
		slog.String("winner", result.WinnerName))

	if s.notifier != nil {
		s.notifier.BroadcastToRoom(gameRoom(gameID), map[string]interface{}{
			"type":    "game_ended",
			"payload": result,
		})
	}
	return result, nil
}

// recomputeScores sums the stat ledger for each side and writes the
// totals back onto the game row.
func (s *scoringService) recomputeScores(ctx context.Context, game *models.Game) (int, int, error) {
	team1Score, err := s.statRepo.SumForTeam(ctx, game.ID, game.Team1ID)
	if err != nil {
		return 0, 0, err
	}
	team2Score, err := s.statRepo.SumForTeam(ctx, game.ID, game.Team2ID)
	if err != nil {
		return 0, 0, err
	}
	if err := s.gameRepo.SetScore(ctx, game.ID, team1Score, team2Score); err != nil {
		return 0, 0, err
	}
	game.Team1Score = team1Score
	game.Team2Score = team2Score
	return team1Score, team2Score, nil
}
