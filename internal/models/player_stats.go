package models

// PlayerStats is the full derived view of one player's history. It is
// recomputed on demand from game results and cached, never stored as the
// source of truth.
type PlayerStats struct {
	PlayerID      string  `json:"player_id"`
	GamesPlayed   int     `json:"games_played"`
	TotalProfit   int     `json:"total_profit"`
	AvgProfit     float64 `json:"avg_profit"`
	WinCount      int     `json:"win_count"`
	LossCount     int     `json:"loss_count"`
	WinPercentage float64 `json:"win_percentage"`
	BiggestWin    int     `json:"biggest_win"`
	BiggestLoss   int     `json:"biggest_loss"`

	// CurrentStreak is signed: positive means consecutive wins ending at the
	// most recent game, negative consecutive losses. A tie ends any streak.
	CurrentStreak int `json:"current_streak"`

	// GameHistory is ordered most-recent-first.
	GameHistory []GameResult `json:"game_history"`

	// Calendar buckets relative to the evaluation time. The windows are
	// disjoint but drawn from the same history: a game in the current month
	// also counts in the half and year buckets.
	YearProfit  int `json:"year_profit"`
	YearGames   int `json:"year_games"`
	HalfProfit  int `json:"half_profit"`
	HalfGames   int `json:"half_games"`
	MonthProfit int `json:"month_profit"`
	MonthGames  int `json:"month_games"`
}

type PlayerStatsResponse struct {
	Player PlayerStats `json:"player"`
}

// LeaderboardEntry is one ranked row of the all-time standings.
type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	PlayerID      string  `json:"player_id"`
	GamesPlayed   int     `json:"games_played"`
	TotalProfit   int     `json:"total_profit"`
	AvgProfit     float64 `json:"avg_profit"`
	WinPercentage float64 `json:"win_percentage"`
	CurrentStreak int     `json:"current_streak"`
}
