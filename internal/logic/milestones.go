package logic

import (
	"fmt"
	"sort"
	"time"

	"github.com/pokernight/stats-api/internal/models"
)

// Milestone rule types. Singular types describe one group record and are
// deduplicated to a single strongest candidate per invocation; the others
// may emit once per qualifying player or pair.
const (
	MilestoneStreak       = "streak"
	MilestonePassing      = "leaderboard_passing"
	MilestoneCloseBattle  = "close_battle"
	MilestoneExactTie     = "exact_tie"
	MilestoneRecordChase  = "record_chase"
	MilestoneRoundNumber  = "round_number"
	MilestoneNegativeMark = "negative_round_number"
	MilestoneGamesPlayed  = "games_played"
	MilestoneRecovery     = "recovery"
	MilestoneWinRate      = "win_rate"
)

const maxMilestones = 10

// Rule category priorities. Only the relative order is contractual:
// streak > passing ~ battle ~ tie > record chase > round number >
// negative round number > games played > recovery > win rate.
const (
	priorityStreakWin    = 95
	priorityStreakLoss   = 90
	priorityPassing      = 80
	priorityCloseBattle  = 78
	priorityExactTie     = 76
	priorityRecordChase  = 70
	priorityRoundNumber  = 65
	priorityNegativeMark = 55
	priorityGamesPlayed  = 50
	priorityRecovery     = 45
	priorityWinRate      = 40
)

const (
	streakThreshold    = 3
	passingMaxGap      = 250
	closeBattleMaxGap  = 30
	recordChaseBand    = 100
	roundNumberStep    = 500
	roundNumberBand    = 150
	recoveryBand       = 150
	recoveryMinGames   = 5
	winRateMinGames    = 10
)

// milestoneRule scans the player set and emits zero or more candidates.
// Rules are independent so each is testable on its own.
type milestoneRule func(players []models.PlayerStats, now time.Time) []models.Milestone

var milestoneRules = []milestoneRule{
	streakRecordRule,
	leaderboardPassingRule,
	closeBattleRule,
	exactTieRule,
	recordChaseRule,
	roundNumberRule,
	negativeMarkRule,
	gamesPlayedRule,
	recoveryRule,
	winRateRule,
}

// DetectMilestones runs every rule over the aggregated player set and
// returns at most ten storylines, sorted by descending priority. Ties in
// priority preserve rule emission order.
func DetectMilestones(players []models.PlayerStats, now time.Time) []models.Milestone {
	if len(players) == 0 {
		return []models.Milestone{}
	}

	var candidates []models.Milestone
	for _, rule := range milestoneRules {
		candidates = append(candidates, rule(players, now)...)
	}

	candidates = dedupeSingular(candidates)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})
	if len(candidates) > maxMilestones {
		candidates = candidates[:maxMilestones]
	}
	if candidates == nil {
		candidates = []models.Milestone{}
	}
	return candidates
}

// dedupeSingular keeps only the strongest candidate for types that describe
// one group-wide record.
func dedupeSingular(in []models.Milestone) []models.Milestone {
	singular := map[string]bool{MilestoneRecordChase: true}
	best := map[string]int{}
	out := in[:0]
	for _, m := range in {
		if !singular[m.Type] {
			out = append(out, m)
			continue
		}
		if idx, ok := best[m.Type]; ok {
			if m.Priority > out[idx].Priority {
				out[idx] = m
			}
			continue
		}
		best[m.Type] = len(out)
		out = append(out, m)
	}
	return out
}

// streakRecordRule emits for every player holding the group's longest active
// streak, provided it is at least three games. Shorter runs are too common
// to be a story even when they lead the group.
func streakRecordRule(players []models.PlayerStats, _ time.Time) []models.Milestone {
	maxMag := 0
	for _, p := range players {
		if mag := abs(p.CurrentStreak); mag > maxMag {
			maxMag = mag
		}
	}
	if maxMag < streakThreshold {
		return nil
	}

	var out []models.Milestone
	for _, p := range players {
		if abs(p.CurrentStreak) != maxMag {
			continue
		}
		if p.CurrentStreak > 0 {
			out = append(out, models.Milestone{
				Type:        MilestoneStreak,
				Emoji:       "🔥",
				Title:       "Hot streak on the line",
				Description: fmt.Sprintf("%s has won %d nights in a row", p.PlayerID, p.CurrentStreak),
				Priority:    priorityStreakWin,
				Players:     []string{p.PlayerID},
			})
		} else {
			out = append(out, models.Milestone{
				Type:        MilestoneStreak,
				Emoji:       "🧊",
				Title:       "Cold streak on the line",
				Description: fmt.Sprintf("%s has lost %d nights in a row", p.PlayerID, -p.CurrentStreak),
				Priority:    priorityStreakLoss,
				Players:     []string{p.PlayerID},
			})
		}
	}
	return out
}

// leaderboardPassingRule looks at adjacent pairs of the standings. A gap of
// exactly zero is a tie, not a passing opportunity. All pairs share one
// priority so passing never sinks into a lower tier on a large roster; the
// stable sort keeps top-of-table pairs ahead among themselves.
func leaderboardPassingRule(players []models.PlayerStats, _ time.Time) []models.Milestone {
	ranked := sortByTotalDesc(players)

	var out []models.Milestone
	for i := 0; i+1 < len(ranked); i++ {
		leader, chaser := ranked[i], ranked[i+1]
		gap := leader.TotalProfit - chaser.TotalProfit
		if gap <= 0 || gap > passingMaxGap {
			continue
		}
		out = append(out, models.Milestone{
			Type:        MilestonePassing,
			Emoji:       "🎯",
			Title:       "Overtake in reach",
			Description: fmt.Sprintf("%s trails %s by just %d and can pass them tonight", chaser.PlayerID, leader.PlayerID, gap),
			Priority:    priorityPassing,
			Players:     []string{chaser.PlayerID, leader.PlayerID},
		})
	}
	return out
}

// closeBattleRule covers every pair, not just adjacent ranks.
func closeBattleRule(players []models.PlayerStats, _ time.Time) []models.Milestone {
	var out []models.Milestone
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			diff := abs(players[i].TotalProfit - players[j].TotalProfit)
			if diff == 0 || diff > closeBattleMaxGap {
				continue
			}
			out = append(out, models.Milestone{
				Type:        MilestoneCloseBattle,
				Emoji:       "⚔️",
				Title:       "Neck and neck",
				Description: fmt.Sprintf("%s and %s are separated by only %d", players[i].PlayerID, players[j].PlayerID, diff),
				Priority:    priorityCloseBattle,
				Players:     []string{players[i].PlayerID, players[j].PlayerID},
			})
		}
	}
	return out
}

// exactTieRule groups players sharing the same nonzero total so a three-way
// tie emits once, naming everyone involved.
func exactTieRule(players []models.PlayerStats, _ time.Time) []models.Milestone {
	byTotal := map[int][]string{}
	order := []int{}
	for _, p := range players {
		if p.TotalProfit == 0 {
			continue
		}
		if _, seen := byTotal[p.TotalProfit]; !seen {
			order = append(order, p.TotalProfit)
		}
		byTotal[p.TotalProfit] = append(byTotal[p.TotalProfit], p.PlayerID)
	}

	var out []models.Milestone
	for _, total := range order {
		ids := byTotal[total]
		if len(ids) < 2 {
			continue
		}
		out = append(out, models.Milestone{
			Type:        MilestoneExactTie,
			Emoji:       "🤝",
			Title:       "Dead heat",
			Description: fmt.Sprintf("%s are tied at exactly %d, and tonight breaks it", joinNames(ids), total),
			Priority:    priorityExactTie,
			Players:     ids,
		})
	}
	return out
}

// recordChaseRule is singular: the group's biggest single-night win is one
// record, so only the closest chaser may be emitted.
func recordChaseRule(players []models.PlayerStats, _ time.Time) []models.Milestone {
	record := 0
	holder := ""
	for _, p := range players {
		if p.BiggestWin > record {
			record = p.BiggestWin
			holder = p.PlayerID
		}
	}
	if record == 0 {
		return nil
	}

	var best *models.PlayerStats
	for i := range players {
		p := &players[i]
		if p.PlayerID == holder || p.BiggestWin == 0 {
			continue
		}
		if record-p.BiggestWin > recordChaseBand {
			continue
		}
		if best == nil || p.BiggestWin > best.BiggestWin {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	return []models.Milestone{{
		Type:        MilestoneRecordChase,
		Emoji:       "🏆",
		Title:       "Single-night record in danger",
		Description: fmt.Sprintf("%s's best night (%d) is within %d of %s's record of %d", best.PlayerID, best.BiggestWin, record-best.BiggestWin, holder, record),
		Priority:    priorityRecordChase,
		Players:     []string{best.PlayerID, holder},
	}}
}

// roundNumberRule only considers the nearest unreached threshold per player.
// A total sitting exactly on a threshold has already arrived and emits
// nothing.
func roundNumberRule(players []models.PlayerStats, _ time.Time) []models.Milestone {
	var out []models.Milestone
	for _, p := range players {
		if p.TotalProfit <= 0 {
			continue
		}
		next := ((p.TotalProfit / roundNumberStep) + 1) * roundNumberStep
		remaining := next - p.TotalProfit
		if remaining > roundNumberBand {
			continue
		}
		out = append(out, models.Milestone{
			Type:        MilestoneRoundNumber,
			Emoji:       "💰",
			Title:       fmt.Sprintf("Closing in on %d", next),
			Description: fmt.Sprintf("%s needs only %d more to crack %d all time", p.PlayerID, remaining, next),
			Priority:    priorityRoundNumber,
			Players:     []string{p.PlayerID},
		})
	}
	return out
}

// negativeMarkRule is the mirror image of roundNumberRule for players
// sliding toward a negative round number. Deliberately lower priority.
func negativeMarkRule(players []models.PlayerStats, _ time.Time) []models.Milestone {
	var out []models.Milestone
	for _, p := range players {
		if p.TotalProfit >= 0 {
			continue
		}
		mark := -(((-p.TotalProfit / roundNumberStep) + 1) * roundNumberStep)
		distance := p.TotalProfit - mark
		if distance > roundNumberBand {
			continue
		}
		out = append(out, models.Milestone{
			Type:        MilestoneNegativeMark,
			Emoji:       "📉",
			Title:       fmt.Sprintf("Sliding toward %d", mark),
			Description: fmt.Sprintf("%s is %d away from falling below %d all time", p.PlayerID, distance, mark),
			Priority:    priorityNegativeMark,
			Players:     []string{p.PlayerID},
		})
	}
	return out
}

var gamesPlayedMarks = []int{10, 25, 50, 75, 100, 150, 200, 250, 300, 400, 500}

func gamesPlayedRule(players []models.PlayerStats, _ time.Time) []models.Milestone {
	var out []models.Milestone
	for _, p := range players {
		for _, mark := range gamesPlayedMarks {
			if p.GamesPlayed+1 != mark {
				continue
			}
			out = append(out, models.Milestone{
				Type:        MilestoneGamesPlayed,
				Emoji:       "🎂",
				Title:       fmt.Sprintf("Game number %d", mark),
				Description: fmt.Sprintf("Tonight is %s's %dth game with the group", p.PlayerID, mark),
				Priority:    priorityGamesPlayed,
				Players:     []string{p.PlayerID},
			})
			break
		}
	}
	return out
}

// recoveryRule needs a meaningful sample for the current year before a
// comeback story is worth telling.
func recoveryRule(players []models.PlayerStats, _ time.Time) []models.Milestone {
	var out []models.Milestone
	for _, p := range players {
		if p.YearGames < recoveryMinGames {
			continue
		}
		if p.YearProfit >= 0 || p.YearProfit <= -recoveryBand {
			continue
		}
		out = append(out, models.Milestone{
			Type:        MilestoneRecovery,
			Emoji:       "🩹",
			Title:       "Back to even",
			Description: fmt.Sprintf("%s needs %d tonight to get back to positive for the year", p.PlayerID, -p.YearProfit),
			Priority:    priorityRecovery,
			Players:     []string{p.PlayerID},
		})
	}
	return out
}

var winRateMarks = []float64{70, 60, 50}

// winRateRule fires when a single win would push a player across a round
// percentage they are currently below.
func winRateRule(players []models.PlayerStats, _ time.Time) []models.Milestone {
	var out []models.Milestone
	for _, p := range players {
		if p.GamesPlayed < winRateMinGames {
			continue
		}
		after := (float64(p.WinCount+1) / float64(p.GamesPlayed+1)) * 100
		for _, mark := range winRateMarks {
			if p.WinPercentage >= mark || after < mark {
				continue
			}
			out = append(out, models.Milestone{
				Type:        MilestoneWinRate,
				Emoji:       "📈",
				Title:       fmt.Sprintf("A win away from %.0f%%", mark),
				Description: fmt.Sprintf("One more win puts %s over a %.0f%% win rate", p.PlayerID, mark),
				Priority:    priorityWinRate,
				Players:     []string{p.PlayerID},
			})
			break
		}
	}
	return out
}

func sortByTotalDesc(players []models.PlayerStats) []models.PlayerStats {
	ranked := make([]models.PlayerStats, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalProfit > ranked[j].TotalProfit
	})
	return ranked
}

func joinNames(ids []string) string {
	switch len(ids) {
	case 0:
		return ""
	case 1:
		return ids[0]
	}
	out := ids[0]
	for _, id := range ids[1 : len(ids)-1] {
		out += ", " + id
	}
	return out + " and " + ids[len(ids)-1]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
