package models

// ForecastEntry is one player's calibrated expectation for tonight's game.
// Across a roster the expected profits always sum to exactly zero.
type ForecastEntry struct {
	PlayerID       string `json:"player_id"`
	ExpectedProfit int    `json:"expected_profit"`
	IsSurprise     bool   `json:"is_surprise"`
}

type ForecastResponse struct {
	Forecast []ForecastEntry `json:"forecast"`
}
