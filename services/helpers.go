package services

import (
	"fmt"
	"time"

	"github.com/sump-exe/Sports-Game-Management/models"
	"github.com/sump-exe/Sports-Game-Management/storage"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Notifier pushes live updates to connected clients. Satisfied by the
// websocket hub; services stay unaware of the transport.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidationFailed)
	}
	return d, nil
}

func parseClock(raw string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, raw)
	if err != nil {
		return 0, fmt.Errorf("%w: times must be in HH:MM (24-hour) format", ErrValidationFailed)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// clockOverlap tests two same-day [start, end) windows given as offsets
// from midnight. Back-to-back games that share only an endpoint do not
// conflict.
func clockOverlap(aStart, aEnd, bStart, bEnd time.Duration) bool {
	return aStart < bEnd && bStart < aEnd
}

func gameRoom(gameID int) string {
	return fmt.Sprintf("game_%d", gameID)
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

func populateVenueLogoURL(venue *models.Venue, uploader storage.FileUploader) {
	if venue != nil && venue.LogoKey != nil && *venue.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*venue.LogoKey)
		if url != "" {
			venue.LogoURL = &url
		}
	}
}

// GetExtensionFromContentType maps an image MIME type to a file
// extension for object-store keys.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		return "", fmt.Errorf("could not determine file extension from content type: %q", contentType)
	}
}

func dereferenceGames(slice []*models.Game) []models.Game {
	if slice == nil {
		return []models.Game{}
	}
	result := make([]models.Game, len(slice))
	for i, ptr := range slice {
		if ptr != nil {
			result[i] = *ptr
		}
	}
	return result
}

func dereferencePlayers(slice []*models.Player) []models.Player {
	if slice == nil {
		return []models.Player{}
	}
	result := make([]models.Player, len(slice))
	for i, ptr := range slice {
		if ptr != nil {
			result[i] = *ptr
		}
	}
	return result
}
