package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sump-exe/Sports-Game-Management/models"
	"github.com/sump-exe/Sports-Game-Management/repositories"
)

// MVPService maintains the one-MVP-per-season award. Assigning a new MVP
// for a year replaces any existing holder.
type MVPService interface {
	AssignMVP(ctx context.Context, year, playerID, teamID int) (*models.MVP, error)
	GetMVP(ctx context.Context, year int) (*models.MVP, error)
	ClearMVP(ctx context.Context, year int) error
	ListMVPs(ctx context.Context) ([]models.MVP, error)
}

type mvpService struct {
	mvpRepo    repositories.MVPRepository
	playerRepo repositories.PlayerRepository
	logger     *slog.Logger
}

func NewMVPService(mvpRepo repositories.MVPRepository, playerRepo repositories.PlayerRepository, logger *slog.Logger) MVPService {
	return &mvpService{
		mvpRepo:    mvpRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

func (s *mvpService) AssignMVP(ctx context.Context, year, playerID, teamID int) (*models.MVP, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: year is required", ErrValidationFailed)
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if player.TeamID != teamID {
		return nil, fmt.Errorf("%w: %s plays for team %d", ErrMVPPlayerTeamMismatch, player.Name, player.TeamID)
	}

	mvp := &models.MVP{PlayerID: playerID, TeamID: teamID, Year: year}
	if err := s.mvpRepo.ReplaceForYear(ctx, mvp); err != nil {
		if errors.Is(err, repositories.ErrMVPReferenceInvalid) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	s.logger.Info("mvp assigned",
		slog.Int("year", year),
		slog.Int("player_id", playerID),
		slog.String("player", player.Name))

	return s.GetMVP(ctx, year)
}

func (s *mvpService) GetMVP(ctx context.Context, year int) (*models.MVP, error) {
	mvp, err := s.mvpRepo.GetByYear(ctx, year)
	if err != nil {
		if errors.Is(err, repositories.ErrMVPNotFound) {
			return nil, ErrMVPNotFound
		}
		return nil, err
	}
	return mvp, nil
}

func (s *mvpService) ClearMVP(ctx context.Context, year int) error {
	if err := s.mvpRepo.ClearYear(ctx, year); err != nil {
		if errors.Is(err, repositories.ErrMVPNotFound) {
			return ErrMVPNotFound
		}
		return err
	}
	return nil
}

func (s *mvpService) ListMVPs(ctx context.Context) ([]models.MVP, error) {
	mvps, err := s.mvpRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.MVP, 0, len(mvps))
	for _, mvp := range mvps {
		result = append(result, *mvp)
	}
	return result, nil
}
