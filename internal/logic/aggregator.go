package logic

import (
	"sort"
	"time"

	"github.com/pokernight/stats-api/internal/models"
)

// AggregatePlayerStats folds a player's game results into a single derived
// stats record. Only games marked completed count. The evaluation time is
// always passed explicitly so the computation stays pure and testable.
//
// A player with zero completed games yields fully zeroed stats with streak 0;
// that is a supported case, not an error.
func AggregatePlayerStats(playerID string, results []models.GameResult, now time.Time) models.PlayerStats {
	stats := models.PlayerStats{PlayerID: playerID}

	history := make([]models.GameResult, 0, len(results))
	for _, r := range results {
		if r.Completed {
			history = append(history, r)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})

	stats.GameHistory = history
	stats.GamesPlayed = len(history)
	if stats.GamesPlayed == 0 {
		return stats
	}

	for _, g := range history {
		stats.TotalProfit += g.Profit
		switch {
		case g.Profit > 0:
			stats.WinCount++
			if g.Profit > stats.BiggestWin {
				stats.BiggestWin = g.Profit
			}
		case g.Profit < 0:
			stats.LossCount++
			if g.Profit < stats.BiggestLoss {
				stats.BiggestLoss = g.Profit
			}
		}
		// profit == 0 is a tie and counts toward neither side
	}

	stats.AvgProfit = float64(stats.TotalProfit) / float64(stats.GamesPlayed)
	stats.WinPercentage = (float64(stats.WinCount) / float64(stats.GamesPlayed)) * 100
	stats.CurrentStreak = currentStreak(history)
	fillPeriodBuckets(&stats, now)

	return stats
}

// currentStreak walks the history most-recent-first. A tie at the head means
// no streak; further back, the first tie or the first game whose sign
// contradicts the streak in progress terminates the walk.
func currentStreak(history []models.GameResult) int {
	streak := 0
	for _, g := range history {
		switch {
		case g.Profit > 0:
			if streak < 0 {
				return streak
			}
			streak++
		case g.Profit < 0:
			if streak > 0 {
				return streak
			}
			streak--
		default:
			return streak
		}
	}
	return streak
}

// fillPeriodBuckets sums the calendar windows relative to now. The windows
// overlap by construction: a game in the current month also lands in the
// half and year buckets.
func fillPeriodBuckets(stats *models.PlayerStats, now time.Time) {
	year := now.Year()
	secondHalf := now.Month() >= time.July

	for _, g := range stats.GameHistory {
		if g.Date.Year() != year {
			continue
		}
		stats.YearProfit += g.Profit
		stats.YearGames++

		m := g.Date.Month()
		if (secondHalf && m >= time.July) || (!secondHalf && m <= time.June) {
			stats.HalfProfit += g.Profit
			stats.HalfGames++
		}
		if m == now.Month() {
			stats.MonthProfit += g.Profit
			stats.MonthGames++
		}
	}
}
