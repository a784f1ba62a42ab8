package logic

import (
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/pokernight/stats-api/internal/models"
)

// ErrRosterTooSmall is returned when a forecast is requested for fewer than
// two players. Poker profit is a redistribution, so a one-player forecast
// has no meaning.
var ErrRosterTooSmall = errors.New("forecast requires a roster of at least two players")

const (
	recentWindow     = 5
	minRecentGames   = 3
	recentWeight     = 0.7
	historicalWeight = 0.3

	surpriseMinGames  = 5
	surpriseShare     = 0.35
	surpriseSignBand  = 5.0
	jitterFlat        = 10.0
	jitterScaleSpread = 0.30 // multiplier drawn from [0.85, 1.15)
	balanceFloor      = 25.0
)

// CalibrateForecast produces a zero-sum expected-profit distribution for the
// exact roster selected for tonight. All randomness flows through rng, so a
// seeded source makes the calibration fully reproducible.
func CalibrateForecast(players []models.PlayerStats, rng *rand.Rand) ([]models.ForecastEntry, error) {
	if len(players) < 2 {
		return nil, ErrRosterTooSmall
	}

	values := make([]float64, len(players))
	for i, p := range players {
		values[i] = weightedBaseline(p) * streakMultiplier(p.CurrentStreak)
	}

	surprise := pickSurprises(players, rng)
	for i := range players {
		if surprise[i] {
			// Contrarian call: flip the sign and keep 50-80% of the magnitude.
			values[i] = -values[i] * (0.5 + 0.3*rng.Float64())
		} else {
			scale := 1 - jitterScaleSpread/2 + jitterScaleSpread*rng.Float64()
			flat := jitterFlat * (2*rng.Float64() - 1)
			values[i] = values[i]*scale + flat
		}
	}

	balanceToZero(values)

	entries := make([]models.ForecastEntry, len(players))
	for i, p := range players {
		entries[i] = models.ForecastEntry{
			PlayerID:       p.PlayerID,
			ExpectedProfit: int(math.Round(values[i])),
			IsSurprise:     surprise[i],
		}
	}
	settleRounding(entries)
	return entries, nil
}

// weightedBaseline blends recent form with the full history. Players with a
// thin recent sample fall back to their historical average; new entrants
// start from zero.
func weightedBaseline(p models.PlayerStats) float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	recent := recentAverage(p)
	if len(p.GameHistory) >= minRecentGames {
		return recentWeight*recent + historicalWeight*p.AvgProfit
	}
	return p.AvgProfit
}

// recentAverage is the mean profit of the last few games. GameHistory is
// most-recent-first, so the window is a prefix.
func recentAverage(p models.PlayerStats) float64 {
	n := len(p.GameHistory)
	if n == 0 {
		return 0
	}
	if n > recentWindow {
		n = recentWindow
	}
	profits := make([]float64, n)
	for i := 0; i < n; i++ {
		profits[i] = float64(p.GameHistory[i].Profit)
	}
	return stat.Mean(profits, nil)
}

// streakMultiplier maps the active streak onto a monotonic ladder that is
// symmetric around 1: hot streaks amplify the baseline, cold streaks dampen
// it, and streaks of a single game move nothing.
func streakMultiplier(streak int) float64 {
	switch {
	case streak >= 4:
		return 1.5
	case streak == 3:
		return 1.3
	case streak == 2:
		return 1.15
	case streak >= -1:
		return 1.0
	case streak == -2:
		return 0.85
	case streak == -3:
		return 0.7
	default:
		return 0.5
	}
}

// pickSurprises marks a bounded random subset of eligible players for a
// contrarian prediction. Eligible means enough games and a real disagreement
// between recent and long-run form.
func pickSurprises(players []models.PlayerStats, rng *rand.Rand) []bool {
	surprise := make([]bool, len(players))

	var eligible []int
	for i, p := range players {
		if surpriseEligible(p) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return surprise
	}

	quota := int(float64(len(players)) * surpriseShare)
	if quota < 1 {
		quota = 1
	}
	if quota > len(eligible) {
		quota = len(eligible)
	}
	for _, k := range rng.Perm(len(eligible))[:quota] {
		surprise[eligible[k]] = true
	}
	return surprise
}

func surpriseEligible(p models.PlayerStats) bool {
	if p.GamesPlayed < surpriseMinGames {
		return false
	}
	recent := recentAverage(p)
	longRun := p.AvgProfit
	return (recent > surpriseSignBand && longRun < -surpriseSignBand) ||
		(recent < -surpriseSignBand && longRun > surpriseSignBand)
}

// balanceToZero redistributes the signed residual across all players,
// weighted by magnitude plus a floor so low-magnitude players absorb a
// proportionally smaller share and nobody dominates the correction.
func balanceToZero(values []float64) {
	var sum, weightSum float64
	for _, v := range values {
		sum += v
		weightSum += math.Abs(v) + balanceFloor
	}
	residual := -sum
	for i, v := range values {
		values[i] = v + residual*(math.Abs(v)+balanceFloor)/weightSum
	}
}

// settleRounding closes any residual left by integer rounding. The
// correction lands on the largest-magnitude entry, where a single unit
// matters least.
func settleRounding(entries []models.ForecastEntry) {
	sum := 0
	largest := 0
	for i, e := range entries {
		sum += e.ExpectedProfit
		if abs(e.ExpectedProfit) > abs(entries[largest].ExpectedProfit) {
			largest = i
		}
	}
	entries[largest].ExpectedProfit -= sum
}
