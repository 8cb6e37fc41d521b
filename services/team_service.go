package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sump-exe/Sports-Game-Management/models"
	"github.com/sump-exe/Sports-Game-Management/repositories"
	"github.com/sump-exe/Sports-Game-Management/storage"
)

const (
	jerseyMin = 1
	jerseyMax = 99
)

// TeamService manages teams and their rosters.
type TeamService interface {
	CreateTeam(ctx context.Context, name string) (*models.Team, error)
	GetTeam(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	RenameTeam(ctx context.Context, id int, name string) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error

	AddPlayer(ctx context.Context, teamID int, name string, jersey int) (*models.Player, error)
	UpdatePlayer(ctx context.Context, playerID int, name string, jersey int) (*models.Player, error)
	RemovePlayer(ctx context.Context, playerID int) error
	Roster(ctx context.Context, teamID int) ([]models.Player, error)

	UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, fmt.Errorf("%w: %s", ErrTeamNameConflict, name)
		}
		return nil, err
	}
	team.Roster = []models.Player{}
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	team.Roster = dereferencePlayers(players)
	team.PlayerCount = len(team.Roster)
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Team, 0, len(teams))
	for _, team := range teams {
		populateTeamLogoURL(team, s.uploader)
		result = append(result, *team)
	}
	return result, nil
}

func (s *teamService) RenameTeam(ctx context.Context, id int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if err := s.teamRepo.UpdateName(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, fmt.Errorf("%w: %s", ErrTeamNameConflict, name)
		}
		return nil, err
	}
	return s.GetTeam(ctx, id)
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	// Players cascade in the database; the logo has to go separately.
	if team.LogoKey != nil && *team.LogoKey != "" && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			s.logger.Warn("failed to delete team logo from storage",
				slog.Int("team_id", id), slog.String("key", *team.LogoKey), slog.Any("error", err))
		}
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	return nil
}

func (s *teamService) AddPlayer(ctx context.Context, teamID int, name string, jersey int) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if jersey < jerseyMin || jersey > jerseyMax {
		return nil, fmt.Errorf("%w: %d is not between %d and %d", ErrJerseyOutOfRange, jersey, jerseyMin, jerseyMax)
	}

	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	player := &models.Player{TeamID: teamID, Name: name, Jersey: jersey}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrJerseyConflict) {
			return nil, fmt.Errorf("%w: number %d", ErrJerseyTaken, jersey)
		}
		return nil, err
	}
	return player, nil
}

func (s *teamService) UpdatePlayer(ctx context.Context, playerID int, name string, jersey int) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if jersey < jerseyMin || jersey > jerseyMax {
		return nil, fmt.Errorf("%w: %d is not between %d and %d", ErrJerseyOutOfRange, jersey, jerseyMin, jerseyMax)
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	player.Name = name
	player.Jersey = jersey
	if err := s.playerRepo.Update(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrJerseyConflict):
			return nil, fmt.Errorf("%w: number %d", ErrJerseyTaken, jersey)
		}
		return nil, err
	}
	return player, nil
}

func (s *teamService) RemovePlayer(ctx context.Context, playerID int) error {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return err
	}
	// Team career totals are derived from the roster, so removing a
	// player changes them.
	if _, err := s.teamRepo.RecalcCareerPoints(ctx, player.TeamID); err != nil {
		return err
	}
	return nil
}

func (s *teamService) Roster(ctx context.Context, teamID int) ([]models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return dereferencePlayers(players), nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, errors.New("file storage is not configured")
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("logos/teams/%d/logo%s", teamID, ext)
	if team.LogoKey != nil && *team.LogoKey != "" && *team.LogoKey != key {
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			s.logger.Warn("failed to delete previous team logo",
				slog.Int("team_id", teamID), slog.String("key", *team.LogoKey), slog.Any("error", err))
		}
	}

	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("uploading team logo: %w", err)
	}
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &key); err != nil {
		return nil, err
	}

	team.LogoKey = &key
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}
