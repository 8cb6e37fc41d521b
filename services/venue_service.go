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

// VenueInput carries the mutable venue fields.
type VenueInput struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Capacity  int    `json:"capacity"`
	Available *bool  `json:"available,omitempty"`
}

// VenueDay is a venue's schedule for one calendar day.
type VenueDay struct {
	VenueID int           `json:"venue_id"`
	Date    string        `json:"date"`
	Games   []models.Game `json:"games"`
}

type VenueService interface {
	CreateVenue(ctx context.Context, input VenueInput) (*models.Venue, error)
	GetVenue(ctx context.Context, id int) (*models.Venue, error)
	ListVenues(ctx context.Context) ([]models.Venue, error)
	UpdateVenue(ctx context.Context, id int, input VenueInput) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id int) error

	// DaySchedule lists the games booked at a venue on a given date.
	DaySchedule(ctx context.Context, id int, date string) (*VenueDay, error)

	UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Venue, error)
}

type venueService struct {
	venueRepo repositories.VenueRepository
	gameRepo  repositories.GameRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

func NewVenueService(
	venueRepo repositories.VenueRepository,
	gameRepo repositories.GameRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) VenueService {
	return &venueService{
		venueRepo: venueRepo,
		gameRepo:  gameRepo,
		uploader:  uploader,
		logger:    logger,
	}
}

func (s *venueService) CreateVenue(ctx context.Context, input VenueInput) (*models.Venue, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrVenueNameRequired
	}

	venue := &models.Venue{
		Name:      name,
		Address:   strings.TrimSpace(input.Address),
		Capacity:  input.Capacity,
		Available: true,
	}
	if input.Available != nil {
		venue.Available = *input.Available
	}
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		if errors.Is(err, repositories.ErrVenueNameConflict) {
			return nil, fmt.Errorf("%w: %s", ErrVenueNameConflict, name)
		}
		return nil, err
	}
	return venue, nil
}

func (s *venueService) GetVenue(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	populateVenueLogoURL(venue, s.uploader)
	return venue, nil
}

func (s *venueService) ListVenues(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Venue, 0, len(venues))
	for _, venue := range venues {
		populateVenueLogoURL(venue, s.uploader)
		result = append(result, *venue)
	}
	return result, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, id int, input VenueInput) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		venue.Name = name
	}
	if addr := strings.TrimSpace(input.Address); addr != "" {
		venue.Address = addr
	}
	if input.Capacity > 0 {
		venue.Capacity = input.Capacity
	}
	if input.Available != nil {
		venue.Available = *input.Available
	}

	if err := s.venueRepo.Update(ctx, venue); err != nil {
		switch {
		case errors.Is(err, repositories.ErrVenueNotFound):
			return nil, ErrVenueNotFound
		case errors.Is(err, repositories.ErrVenueNameConflict):
			return nil, fmt.Errorf("%w: %s", ErrVenueNameConflict, venue.Name)
		}
		return nil, err
	}
	populateVenueLogoURL(venue, s.uploader)
	return venue, nil
}

func (s *venueService) DeleteVenue(ctx context.Context, id int) error {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return ErrVenueNotFound
		}
		return err
	}

	if venue.LogoKey != nil && *venue.LogoKey != "" && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *venue.LogoKey); err != nil {
			s.logger.Warn("failed to delete venue logo from storage",
				slog.Int("venue_id", id), slog.String("key", *venue.LogoKey), slog.Any("error", err))
		}
	}

	if err := s.venueRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return ErrVenueNotFound
		}
		return err
	}
	return nil
}

func (s *venueService) DaySchedule(ctx context.Context, id int, date string) (*VenueDay, error) {
	if _, err := s.GetVenue(ctx, id); err != nil {
		return nil, err
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	games, err := s.gameRepo.ListByVenueOnDate(ctx, id, day)
	if err != nil {
		return nil, err
	}
	return &VenueDay{VenueID: id, Date: date, Games: dereferenceGames(games)}, nil
}

func (s *venueService) UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Venue, error) {
	if s.uploader == nil {
		return nil, errors.New("file storage is not configured")
	}

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("logos/venues/%d/logo%s", id, ext)
	if venue.LogoKey != nil && *venue.LogoKey != "" && *venue.LogoKey != key {
		if err := s.uploader.Delete(ctx, *venue.LogoKey); err != nil {
			s.logger.Warn("failed to delete previous venue logo",
				slog.Int("venue_id", id), slog.String("key", *venue.LogoKey), slog.Any("error", err))
		}
	}

	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("uploading venue logo: %w", err)
	}
	if err := s.venueRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		return nil, err
	}

	venue.LogoKey = &key
	populateVenueLogoURL(venue, s.uploader)
	return venue, nil
}
