package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sump-exe/Sports-Game-Management/models"
	"github.com/sump-exe/Sports-Game-Management/repositories"
	"github.com/sump-exe/Sports-Game-Management/season"
)

// BookingInput carries a scheduling request as the client sends it,
// names instead of ids so rejections can quote them back.
type BookingInput struct {
	Team1Name string       `json:"team1_name"`
	Team2Name string       `json:"team2_name"`
	VenueName string       `json:"venue_name"`
	Date      string       `json:"date"`  // "2006-01-02"
	Start     string       `json:"start"` // "15:04"
	End       string       `json:"end"`
	Phase     season.Phase `json:"phase"`
	Year      int          `json:"year"` // season start year the phase is declared for
}

// BookingPolicy holds the toggleable validation rules.
type BookingPolicy struct {
	RequiredRosterSize int
	RejectPastDates    bool
	VenueConsistency   bool
}

type BookingService interface {
	// Schedule validates the request against every booking rule and
	// persists the game when all of them pass.
	Schedule(ctx context.Context, input BookingInput) (*models.Game, error)
}

type bookingService struct {
	teamRepo  repositories.TeamRepository
	venueRepo repositories.VenueRepository
	gameRepo  repositories.GameRepository
	policy    BookingPolicy
	logger    *slog.Logger
	now       func() time.Time
}

func NewBookingService(
	teamRepo repositories.TeamRepository,
	venueRepo repositories.VenueRepository,
	gameRepo repositories.GameRepository,
	policy BookingPolicy,
	logger *slog.Logger,
) BookingService {
	return &bookingService{
		teamRepo:  teamRepo,
		venueRepo: venueRepo,
		gameRepo:  gameRepo,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *bookingService) Schedule(ctx context.Context, input BookingInput) (*models.Game, error) {
	if missing := missingFields(input); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrBookingFieldsMissing, strings.Join(missing, ", "))
	}

	if strings.EqualFold(input.Team1Name, input.Team2Name) {
		return nil, ErrTeamsIdentical
	}

	team1, err := s.teamRepo.GetByName(ctx, input.Team1Name)
	if err != nil {
		return nil, mapTeamError(err)
	}
	team2, err := s.teamRepo.GetByName(ctx, input.Team2Name)
	if err != nil {
		return nil, mapTeamError(err)
	}
	venue, err := s.venueRepo.GetByName(ctx, input.VenueName)
	if err != nil {
		return nil, mapVenueError(err)
	}
	if !venue.Available {
		return nil, fmt.Errorf("%w: %s", ErrVenueUnavailable, venue.Name)
	}

	for _, team := range []*models.Team{team1, team2} {
		count, err := s.teamRepo.CountPlayers(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		if count < s.policy.RequiredRosterSize {
			return nil, fmt.Errorf("%w: %s has %d of %d players",
				ErrRosterIncomplete, team.Name, count, s.policy.RequiredRosterSize)
		}
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrValidationFailed, input.Date)
	}

	ok, reason := season.IsDateWithinPhase(date, input.Phase, input.Year)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDateOutsidePhase, reason)
	}

	start, err := parseClock(input.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrValidationFailed, input.Start)
	}
	end, err := parseClock(input.End)
	if err != nil {
		return nil, fmt.Errorf("%w: end %q", ErrValidationFailed, input.End)
	}
	if end <= start {
		return nil, ErrEndNotAfterStart
	}

	if s.policy.RejectPastDates {
		if date.Add(start).Before(s.now()) {
			return nil, fmt.Errorf("%w: %s %s", ErrBookingInPast, input.Date, input.Start)
		}
	}

	if err := s.checkVenueConsistency(ctx, team1, venue.ID, date); err != nil {
		return nil, err
	}
	if err := s.checkVenueConsistency(ctx, team2, venue.ID, date); err != nil {
		return nil, err
	}

	venueGames, err := s.gameRepo.ListByVenueOnDate(ctx, venue.ID, date)
	if err != nil {
		return nil, err
	}
	if err := findOverlap(venueGames, start, end, "venue "+venue.Name); err != nil {
		return nil, err
	}

	for _, team := range []*models.Team{team1, team2} {
		teamGames, err := s.gameRepo.ListByTeamOnDate(ctx, team.ID, date)
		if err != nil {
			return nil, err
		}
		if err := findOverlap(teamGames, start, end, "team "+team.Name); err != nil {
			return nil, err
		}
	}

	game := &models.Game{
		Team1ID:   team1.ID,
		Team2ID:   team2.ID,
		VenueID:   venue.ID,
		Date:      date,
		StartTime: input.Start,
		EndTime:   input.End,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("game scheduled",
		slog.Int("game_id", game.ID),
		slog.String("team1", team1.Name),
		slog.String("team2", team2.Name),
		slog.String("venue", venue.Name),
		slog.String("date", input.Date))

	game.Team1Name = team1.Name
	game.Team2Name = team2.Name
	game.VenueName = venue.Name
	return game, nil
}

// checkVenueConsistency rejects a booking that would put a team in two
// venues on the same day.
func (s *bookingService) checkVenueConsistency(ctx context.Context, team *models.Team, venueID int, date time.Time) error {
	if !s.policy.VenueConsistency {
		return nil
	}
	games, err := s.gameRepo.ListByTeamOnDate(ctx, team.ID, date)
	if err != nil {
		return err
	}
	for _, g := range games {
		if g.VenueID != venueID {
			return fmt.Errorf("%w: %s already plays at another venue on %s",
				ErrVenueMismatchSameDay, team.Name, date.Format(dateLayout))
		}
	}
	return nil
}

func findOverlap(games []*models.Game, start, end time.Duration, scope string) error {
	for _, g := range games {
		exStart, err := parseClock(g.StartTime)
		if err != nil {
			continue
		}
		exEnd, err := parseClock(g.EndTime)
		if err != nil {
			continue
		}
		if clockOverlap(start, end, exStart, exEnd) {
			return fmt.Errorf("%w: %s is booked %s-%s", ErrTimeOverlap, scope, g.StartTime, g.EndTime)
		}
	}
	return nil
}

func missingFields(input BookingInput) []string {
	var missing []string
	if input.Team1Name == "" {
		missing = append(missing, "team1_name")
	}
	if input.Team2Name == "" {
		missing = append(missing, "team2_name")
	}
	if input.VenueName == "" {
		missing = append(missing, "venue_name")
	}
	if input.Date == "" {
		missing = append(missing, "date")
	}
	if input.Start == "" {
		missing = append(missing, "start")
	}
	if input.End == "" {
		missing = append(missing, "end")
	}
	if input.Phase == "" {
		missing = append(missing, "phase")
	}
	if input.Year == 0 {
		missing = append(missing, "year")
	}
	return missing
}

func mapTeamError(err error) error {
	if errors.Is(err, repositories.ErrTeamNotFound) {
		return ErrTeamNotFound
	}
	return err
}

func mapVenueError(err error) error {
	if errors.Is(err, repositories.ErrVenueNotFound) {
		return ErrVenueNotFound
	}
	return err
}
