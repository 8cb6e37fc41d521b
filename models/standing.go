package models

// TeamStanding is one row of a ranked season table.
type TeamStanding struct {
	TeamID       int    `json:"team_id"`
	TeamName     string `json:"team_name"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	PointsScored int    `json:"points_scored"`
	Rank         int    `json:"rank"` // 1-indexed seed within the ranking
}
