package services

import (
	"context"
	"testing"

	"github.com/bombers-fc/club-manager/models"
)

// seedSeason builds a small history through the real match flow so points,
// payments, and the leaderboard all derive from the same transitions.
func seedSeason(t *testing.T, env *testEnv) {
	t.Helper()
	env.addPlayer(1, "Alice", models.PositionDefense, 0)
	env.addPlayer(2, "Bob", models.PositionMidfield, 0)
	env.addPlayer(3, "Carol", models.PositionAttack, 0)
	env.addPlayer(4, "Dave", models.PositionMidfield, 0)
	ctx := context.Background()

	fixtures := []struct {
		id     int
		date   string
		teamA  []int
		teamB  []int
		winner models.Winner
	}{
		{1, "2026-08-07", []int{1, 2}, []int{3, 4}, models.WinnerTeamA},
		{2, "2026-08-14", []int{1, 3}, []int{2, 4}, models.WinnerDraw},
		{3, "2026-08-21", []int{1, 4}, []int{2, 3}, models.WinnerTeamB},
		{4, "2026-08-28", []int{1, 2}, []int{3, 4}, models.WinnerNotPlayed},
	}
	for _, f := range fixtures {
		env.addMatch(f.id, f.date, 20, f.teamA, f.teamB, models.WinnerNotPlayed)
		if f.winner == models.WinnerNotPlayed {
			continue
		}
		if _, err := env.matches.SetWinner(ctx, f.id, f.winner); err != nil {
			t.Fatalf("SetWinner(%d) error = %v", f.id, err)
		}
	}
}

// Alice: W D L  -> 3+2+1 = 6 points over 3 matches.
// Bob:   W D W  -> 3+2+3 = 8.
// Carol: L D W  -> 1+2+3 = 6.
// Dave:  L D L  -> 1+2+1 = 4.

func TestLeaderboardOrderingAndRecords(t *testing.T) {
	env := newTestEnv()
	seedSeason(t, env)

	entries, err := env.leaderboard.GetLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}

	want := []struct {
		name   string
		points int
		wins   int
		draws  int
		losses int
	}{
		{"Bob", 8, 2, 1, 0},
		{"Alice", 6, 1, 1, 1},
		{"Carol", 6, 1, 1, 1},
		{"Dave", 4, 0, 1, 2},
	}
	for i, w := range want {
		entry := entries[i]
		if entry.Rank != i+1 {
			t.Errorf("entry %d rank = %d, want %d", i, entry.Rank, i+1)
		}
		if entry.Name != w.name || entry.Points != w.points {
			t.Errorf("entry %d = (%q, %d pts), want (%q, %d pts)", i, entry.Name, entry.Points, w.name, w.points)
		}
		if entry.Wins != w.wins || entry.Draws != w.draws || entry.Losses != w.losses {
			t.Errorf("%s record = %d-%d-%d, want %d-%d-%d", entry.Name, entry.Wins, entry.Draws, entry.Losses, w.wins, w.draws, w.losses)
		}
		if entry.MatchesPlayed != 3 {
			t.Errorf("%s matchesPlayed = %d, want 3", entry.Name, entry.MatchesPlayed)
		}
	}
}

func TestLeaderboardDerivedRates(t *testing.T) {
	env := newTestEnv()
	seedSeason(t, env)

	entries, err := env.leaderboard.GetLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}

	byName := make(map[string]models.LeaderboardEntry, len(entries))
	for _, entry := range entries {
		byName[entry.Name] = entry
	}

	// 8/3 rounds to 2.7, 6/3 to 2.0, 4/3 to 1.3.
	for name, wantAvg := range map[string]float64{"Bob": 2.7, "Alice": 2.0, "Carol": 2.0, "Dave": 1.3} {
		if got := byName[name].AvgPointsPerMatch; got != wantAvg {
			t.Errorf("%s avgPointsPerMatch = %v, want %v", name, got, wantAvg)
		}
	}
	// 2/3 rounds to 67 percent, 1/3 to 33, 0/3 to 0.
	for name, wantRate := range map[string]int{"Bob": 67, "Alice": 33, "Carol": 33, "Dave": 0} {
		if got := byName[name].WinRate; got != wantRate {
			t.Errorf("%s winRate = %d, want %d", name, got, wantRate)
		}
	}

	alice := byName["Alice"]
	if alice.LastPlayedDate == nil || *alice.LastPlayedDate != "2026-08-21" {
		t.Errorf("Alice lastPlayedDate = %v, want 2026-08-21", alice.LastPlayedDate)
	}
}

func TestLeaderboardFormIsOldestToNewest(t *testing.T) {
	env := newTestEnv()
	seedSeason(t, env)

	entries, err := env.leaderboard.GetLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}

	byName := make(map[string]models.LeaderboardEntry, len(entries))
	for _, entry := range entries {
		byName[entry.Name] = entry
	}

	wantForm := map[string][]models.FormResult{
		"Alice": {models.FormWin, models.FormDraw, models.FormLoss},
		"Bob":   {models.FormWin, models.FormDraw, models.FormWin},
		"Carol": {models.FormLoss, models.FormDraw, models.FormWin},
		"Dave":  {models.FormLoss, models.FormDraw, models.FormLoss},
	}
	for name, want := range wantForm {
		got := byName[name].Form
		if len(got) != len(want) {
			t.Errorf("%s form length = %d, want %d", name, len(got), len(want))
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s form = %v, want %v", name, got, want)
				break
			}
		}
	}
}

func TestLeaderboardFormCapsAtFive(t *testing.T) {
	env := newTestEnv()
	env.addPlayer(1, "Alice", models.PositionDefense, 0)
	env.addPlayer(2, "Bob", models.PositionMidfield, 0)
	ctx := context.Background()

	dates := []string{"2026-06-05", "2026-06-12", "2026-06-19", "2026-06-26", "2026-07-03", "2026-07-10", "2026-07-17"}
	for i, date := range dates {
		env.addMatch(i+1, date, 10, []int{1}, []int{2}, models.WinnerNotPlayed)
		winner := models.WinnerTeamA
		if i == len(dates)-1 {
			winner = models.WinnerTeamB
		}
		if _, err := env.matches.SetWinner(ctx, i+1, winner); err != nil {
			t.Fatalf("SetWinner(%d) error = %v", i+1, err)
		}
	}

	entries, err := env.leaderboard.GetLeaderboard(ctx)
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}

	var alice models.LeaderboardEntry
	for _, entry := range entries {
		if entry.Name == "Alice" {
			alice = entry
		}
	}
	if alice.MatchesPlayed != 7 {
		t.Fatalf("matchesPlayed = %d, want 7", alice.MatchesPlayed)
	}
	if len(alice.Form) != 5 {
		t.Fatalf("form length = %d, want 5", len(alice.Form))
	}
	// Five most recent, oldest first: W W W W L.
	want := []models.FormResult{models.FormWin, models.FormWin, models.FormWin, models.FormWin, models.FormLoss}
	for i := range want {
		if alice.Form[i] != want[i] {
			t.Fatalf("form = %v, want %v", alice.Form, want)
		}
	}
}

func TestLeaderboardIgnoresUndecidedMatchesAndIsIdempotent(t *testing.T) {
	env := newTestEnv()
	env.addPlayer(1, "Alice", models.PositionDefense, 0)
	env.addPlayer(2, "Bob", models.PositionMidfield, 0)
	env.addMatch(1, "2026-08-28", 20, []int{1}, []int{2}, models.WinnerNotPlayed)
	ctx := context.Background()

	first, err := env.leaderboard.GetLeaderboard(ctx)
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}
	for _, entry := range first {
		if entry.MatchesPlayed != 0 || entry.LastPlayedDate != nil {
			t.Errorf("%s counted an undecided match: played=%d", entry.Name, entry.MatchesPlayed)
		}
		if entry.AvgPointsPerMatch != 0 || entry.WinRate != 0 {
			t.Errorf("%s has nonzero rates with no matches", entry.Name)
		}
		if len(entry.Form) != 0 {
			t.Errorf("%s form = %v, want empty", entry.Name, entry.Form)
		}
	}

	second, err := env.leaderboard.GetLeaderboard(ctx)
	if err != nil {
		t.Fatalf("GetLeaderboard() second call error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("entry count changed between reads: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].PlayerID != second[i].PlayerID || first[i].Points != second[i].Points {
			t.Errorf("entry %d changed between reads", i)
		}
	}
}
