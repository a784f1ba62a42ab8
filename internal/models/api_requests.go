package models

import "time"

// SeatResult is one player's line in a finalized game submission.
type SeatResult struct {
	PlayerID string `json:"player_id" validate:"required"`
	Profit   int    `json:"profit"`
	Rebuys   int    `json:"rebuys" validate:"gte=0"`
}

// FinalizedGame is the ingest payload for one completed poker night.
// GameID is optional; the server mints one when it is absent.
type FinalizedGame struct {
	GameID  string       `json:"game_id"`
	Date    time.Time    `json:"date" validate:"required"`
	Results []SeatResult `json:"results" validate:"required,min=2,dive"`
}

// ForecastRequest selects the roster for tonight. Seed, when non-zero,
// makes the calibration reproducible.
type ForecastRequest struct {
	Players []string `json:"players" validate:"required,min=2"`
	Seed    int64    `json:"seed"`
}
