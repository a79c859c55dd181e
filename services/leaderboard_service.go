package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/bombers-fc/club-manager/models"
	"github.com/bombers-fc/club-manager/repositories"
	"golang.org/x/sync/errgroup"
)

// Form covers at most the five most recent decided matches.
const formLength = 5

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
}

func NewLeaderboardService(playerRepo repositories.PlayerRepository, matchRepo repositories.MatchRepository) LeaderboardService {
	return &leaderboardService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

// GetLeaderboard derives the standings table: players by points (ties broken
// by name), with per-player record, averages, and recent form. Pure read,
// idempotent.
func (s *leaderboardService) GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var (
		players []models.Player
		matches []models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.List(gCtx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gCtx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load leaderboard data: %w", err)
	}

	// Only decided matches count; the repository returns them most recent
	// first, which the form calculation relies on.
	decided := matches[:0]
	for _, match := range matches {
		if match.Winner != models.WinnerNotPlayed {
			decided = append(decided, match)
		}
	}

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Points != players[j].Points {
			return players[i].Points > players[j].Points
		}
		return players[i].Name < players[j].Name
	})

	entries := make([]models.LeaderboardEntry, 0, len(players))
	for rank, player := range players {
		entry := models.LeaderboardEntry{
			Rank:     rank + 1,
			PlayerID: player.ID,
			Name:     player.Name,
			Points:   player.Points,
			Form:     []models.FormResult{},
		}

		for _, match := range decided {
			onTeamA := containsID(match.TeamA, player.ID)
			onTeamB := containsID(match.TeamB, player.ID)
			if !onTeamA && !onTeamB {
				continue
			}

			entry.MatchesPlayed++
			if entry.LastPlayedDate == nil {
				date := match.Date
				entry.LastPlayedDate = &date
			}

			result := resultForPlayer(match.Winner, onTeamA)
			switch result {
			case models.FormWin:
				entry.Wins++
			case models.FormDraw:
				entry.Draws++
			case models.FormLoss:
				entry.Losses++
			}
			if len(entry.Form) < formLength {
				entry.Form = append(entry.Form, result)
			}
		}

		// Collected newest-first; the UI shows oldest to newest.
		reverseForm(entry.Form)

		if entry.MatchesPlayed > 0 {
			entry.AvgPointsPerMatch = math.Round(float64(entry.Points)/float64(entry.MatchesPlayed)*10) / 10
			entry.WinRate = int(math.Round(float64(entry.Wins) / float64(entry.MatchesPlayed) * 100))
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func resultForPlayer(winner models.Winner, onTeamA bool) models.FormResult {
	if winner == models.WinnerDraw {
		return models.FormDraw
	}
	if (winner == models.WinnerTeamA && onTeamA) || (winner == models.WinnerTeamB && !onTeamA) {
		return models.FormWin
	}
	return models.FormLoss
}

func reverseForm(form []models.FormResult) {
	for i, j := 0, len(form)-1; i < j; i, j = i+1, j-1 {
		form[i], form[j] = form[j], form[i]
	}
}

func containsID(ids []int, target int) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
