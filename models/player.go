package models

type Player struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Jersey       int    `json:"jersey" db:"jersey"`
	TeamID       int    `json:"team_id" db:"team_id"`
	CareerPoints int    `json:"career_points" db:"career_points"`
}
