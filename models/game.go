package models

import "time"

type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinal      GameStatus = "final"
)

type Game struct {
	ID         int       `json:"id" db:"id"`
	Team1ID    int       `json:"team1_id" db:"team1_id"`
	Team2ID    int       `json:"team2_id" db:"team2_id"`
	VenueID    int       `json:"venue_id" db:"venue_id"`
	Date       time.Time `json:"date" db:"game_date"`
	StartTime  string    `json:"start_time" db:"start_time"` // "15:04"
	EndTime    string    `json:"end_time" db:"end_time"`
	Team1Score int       `json:"team1_score" db:"team1_score"`
	Team2Score int       `json:"team2_score" db:"team2_score"`
	IsFinal    bool      `json:"is_final" db:"is_final"`
	WinnerID   *int      `json:"winner_id,omitempty" db:"winner_id"` // nil: tie or not yet final

	// Joined names, populated by list queries.
	Team1Name string `json:"team1_name,omitempty" db:"-"`
	Team2Name string `json:"team2_name,omitempty" db:"-"`
	VenueName string `json:"venue_name,omitempty" db:"-"`

	// Derived from Date against the season calendar, never stored.
	Phase string `json:"phase,omitempty" db:"-"`
}

// Status derives the scoring state machine position. A game is in progress
// as soon as any point has been recorded against it.
func (g *Game) Status() GameStatus {
	switch {
	case g.IsFinal:
		return GameStatusFinal
	case g.Team1Score > 0 || g.Team2Score > 0:
		return GameStatusInProgress
	default:
		return GameStatusScheduled
	}
}

// ScoreFor returns the stored score field belonging to teamID.
func (g *Game) ScoreFor(teamID int) int {
	if teamID == g.Team2ID {
		return g.Team2Score
	}
	return g.Team1Score
}

func (g *Game) HasTeam(teamID int) bool {
	return g.Team1ID == teamID || g.Team2ID == teamID
}
