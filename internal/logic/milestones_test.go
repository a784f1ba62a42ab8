package logic

import (
	"testing"
	"time"

	"github.com/pokernight/stats-api/internal/models"
)

func milestoneNow() time.Time {
	return time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
}

func countType(ms []models.Milestone, typ string) int {
	n := 0
	for _, m := range ms {
		if m.Type == typ {
			n++
		}
	}
	return n
}

func findType(ms []models.Milestone, typ string) *models.Milestone {
	for i := range ms {
		if ms[i].Type == typ {
			return &ms[i]
		}
	}
	return nil
}

func TestDetectMilestonesEmptyInput(t *testing.T) {
	got := DetectMilestones(nil, milestoneNow())
	if len(got) != 0 {
		t.Errorf("expected empty result for empty player list, got %d entries", len(got))
	}
}

func TestStreakRuleThreshold(t *testing.T) {
	// The group's largest streak is 2: too short and common to be a story.
	players := []models.PlayerStats{
		{PlayerID: "a", CurrentStreak: 2},
		{PlayerID: "b", CurrentStreak: -1},
	}
	got := DetectMilestones(players, milestoneNow())
	if countType(got, MilestoneStreak) != 0 {
		t.Errorf("streak milestone emitted for |streak| < 3")
	}
}

func TestStreakRuleTiedMagnitudes(t *testing.T) {
	// +4 and -4 tie for the group record; the streak rule is per-player, so
	// both emit, with the winning streak ranked higher.
	players := []models.PlayerStats{
		{PlayerID: "a", GamesPlayed: 10, TotalProfit: 500, CurrentStreak: 4},
		{PlayerID: "b", GamesPlayed: 10, TotalProfit: -500, CurrentStreak: -4},
	}
	got := DetectMilestones(players, milestoneNow())

	if countType(got, MilestoneStreak) != 2 {
		t.Fatalf("expected 2 streak milestones, got %d", countType(got, MilestoneStreak))
	}
	if got[0].Players[0] != "a" || got[1].Players[0] != "b" {
		t.Errorf("winning streak should outrank losing streak at the same magnitude: %v", got)
	}
	if got[0].Priority <= got[1].Priority {
		t.Errorf("win streak priority %d should exceed loss streak priority %d", got[0].Priority, got[1].Priority)
	}
}

func TestLeaderboardPassingGap(t *testing.T) {
	players := []models.PlayerStats{
		{PlayerID: "leader", TotalProfit: 1000},
		{PlayerID: "chaser", TotalProfit: 920},
		{PlayerID: "third", TotalProfit: 500},
	}
	got := DetectMilestones(players, milestoneNow())

	if countType(got, MilestonePassing) != 1 {
		t.Fatalf("expected exactly 1 passing milestone, got %d", countType(got, MilestonePassing))
	}
	m := findType(got, MilestonePassing)
	if m.Players[0] != "chaser" || m.Players[1] != "leader" {
		t.Errorf("passing milestone should name chaser then leader, got %v", m.Players)
	}
	if want := "chaser trails leader by just 80 and can pass them tonight"; m.Description != want {
		t.Errorf("Description = %q, want %q", m.Description, want)
	}
}

func TestPassingStaysAboveBattleTier(t *testing.T) {
	// A deep ladder of catchable gaps plus one exact tie. Every passing
	// pair, however far down the standings, must still outrank the tie.
	players := []models.PlayerStats{
		{PlayerID: "p1", TotalProfit: 940},
		{PlayerID: "p2", TotalProfit: 840},
		{PlayerID: "p3", TotalProfit: 740},
		{PlayerID: "p4", TotalProfit: 640},
		{PlayerID: "p5", TotalProfit: 540},
		{PlayerID: "t1", TotalProfit: 240},
		{PlayerID: "t2", TotalProfit: 240},
	}
	got := DetectMilestones(players, milestoneNow())

	if countType(got, MilestonePassing) != 5 {
		t.Fatalf("expected 5 passing milestones, got %d", countType(got, MilestonePassing))
	}
	tie := findType(got, MilestoneExactTie)
	if tie == nil {
		t.Fatal("expected an exact-tie milestone")
	}
	for _, m := range got {
		if m.Type == MilestonePassing && m.Priority <= tie.Priority {
			t.Errorf("passing milestone %v at priority %d fell into the tie tier (%d)",
				m.Players, m.Priority, tie.Priority)
		}
	}

	// Top-of-table pairs keep their place among equal priorities.
	first := findType(got, MilestonePassing)
	if first.Players[0] != "p2" {
		t.Errorf("highest passing milestone should cover the top pair, got %v", first.Players)
	}
}

func TestExactTieExcludesCloseBattle(t *testing.T) {
	players := []models.PlayerStats{
		{PlayerID: "a", TotalProfit: 500},
		{PlayerID: "b", TotalProfit: 500},
	}
	got := DetectMilestones(players, milestoneNow())

	if countType(got, MilestoneExactTie) != 1 {
		t.Errorf("expected exactly 1 exact-tie milestone, got %d", countType(got, MilestoneExactTie))
	}
	if countType(got, MilestoneCloseBattle) != 0 {
		t.Errorf("a gap of 0 is a tie, never a close battle")
	}
	if countType(got, MilestonePassing) != 0 {
		t.Errorf("a gap of 0 is a tie, never a passing opportunity")
	}
	m := findType(got, MilestoneExactTie)
	if len(m.Players) != 2 {
		t.Errorf("tie milestone should name both players, got %v", m.Players)
	}
}

func TestCloseBattleAllPairs(t *testing.T) {
	// b and c are adjacent; a and c are not, but close battles cover all
	// pairs regardless of rank.
	players := []models.PlayerStats{
		{PlayerID: "a", TotalProfit: 300},
		{PlayerID: "b", TotalProfit: 290},
		{PlayerID: "c", TotalProfit: 280},
	}
	got := DetectMilestones(players, milestoneNow())
	if countType(got, MilestoneCloseBattle) != 3 {
		t.Errorf("expected 3 close battles (all pairs within 30), got %d", countType(got, MilestoneCloseBattle))
	}
}

func TestRecordChaseIsSingular(t *testing.T) {
	// Two chasers sit within the band of the record; only the strongest one
	// may be emitted for the singular record.
	players := []models.PlayerStats{
		{PlayerID: "holder", BiggestWin: 400},
		{PlayerID: "close", BiggestWin: 370},
		{PlayerID: "closer", BiggestWin: 390},
	}
	got := DetectMilestones(players, milestoneNow())

	if countType(got, MilestoneRecordChase) != 1 {
		t.Fatalf("expected exactly 1 record-chase milestone, got %d", countType(got, MilestoneRecordChase))
	}
	m := findType(got, MilestoneRecordChase)
	if m.Players[0] != "closer" {
		t.Errorf("record chase should name the strongest candidate, got %v", m.Players)
	}
}

func TestRoundNumberProximity(t *testing.T) {
	players := []models.PlayerStats{
		{PlayerID: "near", TotalProfit: 470},    // 30 short of 500
		{PlayerID: "exact", TotalProfit: 500},   // already arrived
		{PlayerID: "far", TotalProfit: 200},     // 300 short, outside the band
		{PlayerID: "second", TotalProfit: 1890}, // 110 short of 2000
	}
	got := DetectMilestones(players, milestoneNow())

	if countType(got, MilestoneRoundNumber) != 2 {
		t.Fatalf("expected 2 round-number milestones, got %d", countType(got, MilestoneRoundNumber))
	}
	for _, m := range got {
		if m.Type == MilestoneRoundNumber && m.Players[0] == "exact" {
			t.Errorf("a total sitting exactly on a threshold must not emit")
		}
	}
}

func TestNegativeRoundNumberLowerPriority(t *testing.T) {
	players := []models.PlayerStats{
		{PlayerID: "up", TotalProfit: 470},
		{PlayerID: "down", TotalProfit: -420}, // 80 above -500
	}
	got := DetectMilestones(players, milestoneNow())

	pos := findType(got, MilestoneRoundNumber)
	neg := findType(got, MilestoneNegativeMark)
	if pos == nil || neg == nil {
		t.Fatalf("expected both positive and negative round-number milestones, got %v", got)
	}
	if neg.Priority >= pos.Priority {
		t.Errorf("negative mark priority %d should be below positive %d", neg.Priority, pos.Priority)
	}
}

func TestGamesPlayedMilestone(t *testing.T) {
	players := []models.PlayerStats{
		{PlayerID: "a", GamesPlayed: 9},  // next game is number 10
		{PlayerID: "b", GamesPlayed: 24}, // next game is number 25
		{PlayerID: "c", GamesPlayed: 11}, // nothing round ahead
	}
	got := DetectMilestones(players, milestoneNow())
	if countType(got, MilestoneGamesPlayed) != 2 {
		t.Errorf("expected 2 games-played milestones, got %d", countType(got, MilestoneGamesPlayed))
	}
}

func TestRecoveryRule(t *testing.T) {
	players := []models.PlayerStats{
		{PlayerID: "almost", YearProfit: -100, YearGames: 6},
		{PlayerID: "deep", YearProfit: -600, YearGames: 8},
		{PlayerID: "thin", YearProfit: -50, YearGames: 2},
	}
	got := DetectMilestones(players, milestoneNow())

	if countType(got, MilestoneRecovery) != 1 {
		t.Fatalf("expected 1 recovery milestone, got %d", countType(got, MilestoneRecovery))
	}
	m := findType(got, MilestoneRecovery)
	if m.Players[0] != "almost" {
		t.Errorf("recovery should fire for the near-zero player only, got %v", m.Players)
	}
}

func TestWinRateRule(t *testing.T) {
	players := []models.PlayerStats{
		{PlayerID: "edge", GamesPlayed: 19, WinCount: 9, WinPercentage: 47.4}, // one win crosses 50%
		{PlayerID: "thin", GamesPlayed: 5, WinCount: 2, WinPercentage: 40},    // not enough games
	}
	got := DetectMilestones(players, milestoneNow())

	if countType(got, MilestoneWinRate) != 1 {
		t.Fatalf("expected 1 win-rate milestone, got %d", countType(got, MilestoneWinRate))
	}
	m := findType(got, MilestoneWinRate)
	if m.Players[0] != "edge" {
		t.Errorf("win-rate milestone should name the eligible player, got %v", m.Players)
	}
}

func TestDetectMilestonesTopTenSorted(t *testing.T) {
	// Twelve qualifying candidates, so the output must cap at ten.
	var players []models.PlayerStats
	for i := 0; i < 12; i++ {
		players = append(players, models.PlayerStats{
			PlayerID:    string(rune('a' + i)),
			GamesPlayed: 9,
		})
	}
	// One streak holder so priorities are not all equal.
	players[0].CurrentStreak = 5

	got := DetectMilestones(players, milestoneNow())

	if len(got) != maxMilestones {
		t.Fatalf("expected %d milestones, got %d", maxMilestones, len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Priority > got[i-1].Priority {
			t.Errorf("milestones not sorted by descending priority at %d: %d > %d", i, got[i].Priority, got[i-1].Priority)
		}
	}
	if got[0].Type != MilestoneStreak {
		t.Errorf("streak should rank first, got %s", got[0].Type)
	}
}
