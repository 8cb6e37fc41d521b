package models

type MVP struct {
	ID       int `json:"id" db:"id"`
	PlayerID int `json:"player_id" db:"player_id"`
	TeamID   int `json:"team_id" db:"team_id"`
	Year     int `json:"year" db:"year"` // season-start year, at most one MVP per year

	PlayerName string `json:"player_name,omitempty" db:"-"`
	Jersey     int    `json:"jersey,omitempty" db:"-"`
	TeamName   string `json:"team_name,omitempty" db:"-"`
}
