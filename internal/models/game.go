package models

import "time"

// GameResult is one player's outcome for a single finalized poker night.
// Rows are append-only: written once when the night is finalized, never
// mutated afterwards.
type GameResult struct {
	GameID    string    `json:"game_id"`
	PlayerID  string    `json:"player_id"`
	Profit    int       `json:"profit"` // signed, in house currency units
	Rebuys    int       `json:"rebuys"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}
