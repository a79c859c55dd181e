package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bombers-fc/club-manager/models"
	"github.com/bombers-fc/club-manager/repositories"
	"github.com/bombers-fc/club-manager/storage"
)

// Points awarded per match under the club's scoring rule: showing up for a
// loss is still worth something.
const (
	pointsWin  = 3
	pointsLoss = 1
	pointsDraw = 2
)

// outcomePointDeltas returns the per-player points each side earns under the
// given outcome.
func outcomePointDeltas(winner models.Winner) (teamA, teamB int) {
	switch winner {
	case models.WinnerTeamA:
		return pointsWin, pointsLoss
	case models.WinnerTeamB:
		return pointsLoss, pointsWin
	case models.WinnerDraw:
		return pointsDraw, pointsDraw
	default:
		return 0, 0
	}
}

// applyOutcomePoints credits both rosters for the given outcome.
func applyOutcomePoints(ctx context.Context, exec repositories.SQLExecutor, playerRepo repositories.PlayerRepository, teamA, teamB []int, winner models.Winner) error {
	deltaA, deltaB := outcomePointDeltas(winner)
	if err := playerRepo.AdjustPoints(ctx, exec, teamA, deltaA); err != nil {
		return err
	}
	return playerRepo.AdjustPoints(ctx, exec, teamB, deltaB)
}

// reverseOutcomePoints undoes a previously applied outcome. Points clamp at
// zero in the repository, so reversing more than a player ever earned cannot
// drive them negative.
func reverseOutcomePoints(ctx context.Context, exec repositories.SQLExecutor, playerRepo repositories.PlayerRepository, teamA, teamB []int, winner models.Winner) error {
	deltaA, deltaB := outcomePointDeltas(winner)
	if err := playerRepo.AdjustPoints(ctx, exec, teamA, -deltaA); err != nil {
		return err
	}
	return playerRepo.AdjustPoints(ctx, exec, teamB, -deltaB)
}

// recalculateMatchPayments rebuilds the payment rows of a decided match:
// every existing row is dropped and one fresh unpaid row per attendee is
// inserted with an equal share of the price. Callers must have already
// persisted the match state being billed.
func recalculateMatchPayments(ctx context.Context, exec repositories.SQLExecutor, paymentRepo repositories.PaymentRepository, match *models.Match) error {
	if match.Winner == models.WinnerNotPlayed {
		return paymentRepo.DeleteByMatch(ctx, exec, match.ID)
	}

	attendees := match.Attendees()
	if hasDuplicates(attendees) {
		return ErrTeamOverlap
	}

	if err := paymentRepo.DeleteByMatch(ctx, exec, match.ID); err != nil {
		return err
	}
	if len(attendees) == 0 {
		return nil
	}

	share := match.Price / float64(len(attendees))
	for _, playerID := range attendees {
		payment := &models.Payment{
			PlayerID:   playerID,
			MatchID:    match.ID,
			AmountOwed: share,
			Paid:       false,
		}
		if err := paymentRepo.Create(ctx, exec, payment); err != nil {
			return fmt.Errorf("failed to create payment for player %d: %w", playerID, err)
		}
	}
	return nil
}

// recalculatePlayerTotals recomputes total_owed and the derived paid flag of
// each listed player from their full unpaid-payment set. Missing players are
// skipped.
func recalculatePlayerTotals(ctx context.Context, exec repositories.SQLExecutor, playerRepo repositories.PlayerRepository, paymentRepo repositories.PaymentRepository, playerIDs []int) error {
	for _, playerID := range playerIDs {
		payments, err := paymentRepo.ListByPlayer(ctx, exec, playerID)
		if err != nil {
			return err
		}
		totalOwed := 0.0
		for _, payment := range payments {
			if !payment.Paid {
				totalOwed += payment.AmountOwed
			}
		}
		err = playerRepo.UpdateDerivedTotals(ctx, exec, playerID, totalOwed, totalOwed == 0)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}

// recalculateAllPlayerTotals runs the full idempotent recompute over every
// player. Cheap at club scale and safer than incremental patching.
func recalculateAllPlayerTotals(ctx context.Context, exec repositories.SQLExecutor, playerRepo repositories.PlayerRepository, paymentRepo repositories.PaymentRepository) error {
	players, err := playerRepo.List(ctx, exec)
	if err != nil {
		return err
	}
	ids := make([]int, len(players))
	for i, player := range players {
		ids[i] = player.ID
	}
	return recalculatePlayerTotals(ctx, exec, playerRepo, paymentRepo, ids)
}

func hasDuplicates(ids []int) bool {
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}

func overlap(a, b []int) bool {
	inA := make(map[int]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	for _, id := range b {
		if inA[id] {
			return true
		}
	}
	return false
}

func populatePlayerPhotoURL(player *models.Player, uploader storage.FileUploader) {
	if player == nil || uploader == nil || player.PhotoKey == nil || *player.PhotoKey == "" {
		return
	}
	if url := uploader.GetPublicURL(*player.PhotoKey); url != "" {
		player.PhotoURL = &url
	}
}

// extensionFromContentType maps an image content type to a file extension for
// storage keys.
func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPhoto, contentType)
	}
}
