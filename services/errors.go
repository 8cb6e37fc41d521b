package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrVenueNotFound  = errors.New("venue not found")
	ErrGameNotFound   = errors.New("game not found")
	ErrMVPNotFound    = errors.New("no mvp recorded for that year")

	// Ошибки валидации и бизнес-правил (user-correctable)
	ErrValidationFailed      = errors.New("validation failed")
	ErrTeamNameRequired      = errors.New("team name is required")
	ErrVenueNameRequired     = errors.New("venue name is required")
	ErrPlayerNameRequired    = errors.New("player name is required")
	ErrJerseyOutOfRange      = errors.New("jersey number must be between 1 and 99")
	ErrPlayerNotOnGame       = errors.New("player is not on either team of this game")
	ErrMVPPlayerTeamMismatch = errors.New("player does not belong to the selected team")

	// Booking rejections
	ErrBookingFieldsMissing = errors.New("team1, team2, venue, date, start and end are all required")
	ErrTeamsIdentical       = errors.New("a team cannot be scheduled against itself")
	ErrRosterIncomplete     = errors.New("team roster is incomplete")
	ErrDateOutsidePhase     = errors.New("date is outside the declared season phase")
	ErrEndNotAfterStart     = errors.New("end time must be after start time")
	ErrBookingInPast        = errors.New("game start is in the past")
	ErrVenueMismatchSameDay = errors.New("team already plays at a different venue that day")
	ErrTimeOverlap          = errors.New("time window overlaps an existing game")
	ErrVenueUnavailable     = errors.New("venue is marked unavailable")

	// Scoring state errors
	ErrGameAlreadyFinal  = errors.New("game has already ended")
	ErrNonPositivePoints = errors.New("points must be a positive number")
	ErrNegativeStat      = errors.New("subtraction would drop the player's game points below zero")

	// Конфликты
	ErrTeamNameConflict  = errors.New("team name is already in use")
	ErrVenueNameConflict = errors.New("venue name is already in use")
	ErrJerseyTaken       = errors.New("jersey number is already taken within the team")

	// Аутентификация
	ErrInvalidCredentials = errors.New("invalid username or password")
)
