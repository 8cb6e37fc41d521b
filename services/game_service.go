package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sump-exe/Sports-Game-Management/models"
	"github.com/sump-exe/Sports-Game-Management/repositories"
	"github.com/sump-exe/Sports-Game-Management/season"
)

// RescheduleInput carries the fields a booked game may change before it
// starts. Empty fields keep their current value.
type RescheduleInput struct {
	VenueName string `json:"venue_name,omitempty"`
	Date      string `json:"date,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
}

// GameService reads and adjusts booked games. Creation goes through the
// booking validator, scoring through the scoring ledger.
type GameService interface {
	GetGame(ctx context.Context, id int) (*models.Game, error)
	ListGames(ctx context.Context) ([]models.Game, error)
	ListGamesByPhase(ctx context.Context, phase season.Phase, anchorYear int) ([]models.Game, error)
	Reschedule(ctx context.Context, id int, input RescheduleInput) (*models.Game, error)
	DeleteGame(ctx context.Context, id int) error
	GameStats(ctx context.Context, id int) ([]models.PlayerGameStat, error)
}

type gameService struct {
	gameRepo  repositories.GameRepository
	venueRepo repositories.VenueRepository
	statRepo  repositories.StatRepository
	logger    *slog.Logger
}

func NewGameService(
	gameRepo repositories.GameRepository,
	venueRepo repositories.VenueRepository,
	statRepo repositories.StatRepository,
	logger *slog.Logger,
) GameService {
	return &gameService{
		gameRepo:  gameRepo,
		venueRepo: venueRepo,
		statRepo:  statRepo,
		logger:    logger,
	}
}

func (s *gameService) GetGame(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	annotatePhase(game)
	return game, nil
}

func (s *gameService) ListGames(ctx context.Context) ([]models.Game, error) {
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := dereferenceGames(games)
	for i := range result {
		annotatePhase(&result[i])
	}
	return result, nil
}

func (s *gameService) ListGamesByPhase(ctx context.Context, phase season.Phase, anchorYear int) ([]models.Game, error) {
	from, to, ok := season.PhaseRange(phase, anchorYear)
	if !ok {
		return nil, fmt.Errorf("%w: unknown phase %q", ErrValidationFailed, phase)
	}
	games, err := s.gameRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	result := dereferenceGames(games)
	for i := range result {
		annotatePhase(&result[i])
	}
	return result, nil
}

func (s *gameService) Reschedule(ctx context.Context, id int, input RescheduleInput) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if game.IsFinal {
		return nil, ErrGameAlreadyFinal
	}

	if input.VenueName != "" {
		venue, err := s.venueRepo.GetByName(ctx, input.VenueName)
		if err != nil {
			if errors.Is(err, repositories.ErrVenueNotFound) {
				return nil, ErrVenueNotFound
			}
			return nil, err
		}
		if !venue.Available {
			return nil, fmt.Errorf("%w: %s", ErrVenueUnavailable, venue.Name)
		}
		game.VenueID = venue.ID
		game.VenueName = venue.Name
	}
	if input.Date != "" {
		date, err := parseDate(input.Date)
		if err != nil {
			return nil, err
		}
		game.Date = date
	}
	if input.Start != "" {
		game.StartTime = input.Start
	}
	if input.End != "" {
		game.EndTime = input.End
	}

	start, err := parseClock(game.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(game.EndTime)
	if err != nil {
		return nil, err
	}
	if end <= start {
		return nil, ErrEndNotAfterStart
	}

	// The moved slot must still be free at the venue and for both teams.
	venueGames, err := s.gameRepo.ListByVenueOnDate(ctx, game.VenueID, game.Date)
	if err != nil {
		return nil, err
	}
	if err := findOverlap(excludeGame(venueGames, id), start, end, "venue"); err != nil {
		return nil, err
	}
	for _, teamID := range []int{game.Team1ID, game.Team2ID} {
		teamGames, err := s.gameRepo.ListByTeamOnDate(ctx, teamID, game.Date)
		if err != nil {
			return nil, err
		}
		if err := findOverlap(excludeGame(teamGames, id), start, end, "team"); err != nil {
			return nil, err
		}
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("game rescheduled",
		slog.Int("game_id", id),
		slog.String("date", game.Date.Format(dateLayout)),
		slog.String("start", game.StartTime),
		slog.String("end", game.EndTime))

	annotatePhase(game)
	return game, nil
}

func (s *gameService) DeleteGame(ctx context.Context, id int) error {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	if game.IsFinal {
		return ErrGameAlreadyFinal
	}
	return s.gameRepo.Delete(ctx, id)
}

func (s *gameService) GameStats(ctx context.Context, id int) ([]models.PlayerGameStat, error) {
	if _, err := s.GetGame(ctx, id); err != nil {
		return nil, err
	}
	stats, err := s.statRepo.ListForGame(ctx, id)
	if err != nil {
		return nil, err
	}
	result := make([]models.PlayerGameStat, 0, len(stats))
	for _, stat := range stats {
		result = append(result, *stat)
	}
	return result, nil
}

func annotatePhase(game *models.Game) {
	game.Phase = string(season.ResolvePhase(game.Date))
}

func excludeGame(games []*models.Game, id int) []*models.Game {
	filtered := games[:0:0]
	for _, g := range games {
		if g.ID != id {
			filtered = append(filtered, g)
		}
	}
	return filtered
}
