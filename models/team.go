package models

type Team struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	CareerPoints int    `json:"career_points" db:"career_points"`
	Wins         int    `json:"wins" db:"wins"`

	// Roster and PlayerCount are populated by services/list queries, not stored.
	Roster      []Player `json:"roster,omitempty" db:"-"`
	PlayerCount int      `json:"player_count" db:"-"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
