package models

// PlayerGameStat is the authoritative per-player, per-game point ledger.
// Game score fields are always recomputed as sums over these rows.
type PlayerGameStat struct {
	GameID   int `json:"game_id" db:"game_id"`
	PlayerID int `json:"player_id" db:"player_id"`
	Points   int `json:"points" db:"points"`
}
