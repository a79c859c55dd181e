package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bombers-fc/club-manager/live"
	"github.com/bombers-fc/club-manager/models"
	"github.com/bombers-fc/club-manager/repositories"
	"github.com/bombers-fc/club-manager/storage"
)

type CreatePlayerInput struct {
	Name     string          `json:"name"`
	Position models.Position `json:"position"`
}

type UpdatePlayerInput struct {
	Name     *string          `json:"name"`
	Position *models.Position `json:"position"`
}

type PlayerService interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
	UploadPlayerPhoto(ctx context.Context, id int, file io.Reader, contentType string) (*models.Player, error)
}

type playerService struct {
	playerRepo  repositories.PlayerRepository
	matchRepo   repositories.MatchRepository
	paymentRepo repositories.PaymentRepository
	txManager   repositories.TxManager
	uploader    storage.FileUploader
	hub         *live.Hub
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	paymentRepo repositories.PaymentRepository,
	txManager repositories.TxManager,
	uploader storage.FileUploader,
	hub *live.Hub,
) PlayerService {
	return &playerService{
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		uploader:    uploader,
		hub:         hub,
	}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for i := range players {
		populatePlayerPhotoURL(&players[i], s.uploader)
	}
	return players, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if !input.Position.Valid() {
		return nil, ErrInvalidPosition
	}

	player := &models.Player{
		Name:     name,
		Position: input.Position,
		Points:   0,
		// A player with nothing outstanding counts as paid up.
		TotalOwed: 0,
		Paid:      true,
	}
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerNameConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.notifyPlayersUpdated()
	return player, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player %d: %w", id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrPlayerNameRequired
		}
		player.Name = name
	}
	if input.Position != nil {
		if !input.Position.Valid() {
			return nil, ErrInvalidPosition
		}
		player.Position = *input.Position
	}

	if err := s.playerRepo.Update(ctx, nil, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerNameConflict
		}
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player %d: %w", id, err)
	}

	populatePlayerPhotoURL(player, s.uploader)
	s.notifyPlayersUpdated()
	return player, nil
}

// DeletePlayer removes a player and repairs everything that referenced them:
// the player is dropped from every roster, the payments of affected decided
// matches are rebuilt against the shrunken roster, the player's own payment
// rows go away, and all derived totals are recomputed. One transaction.
func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.playerRepo.GetByID(ctx, exec, id); err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return err
		}

		matches, err := s.matchRepo.List(ctx, exec)
		if err != nil {
			return err
		}
		for i := range matches {
			match := &matches[i]
			newTeamA, removedA := removeID(match.TeamA, id)
			newTeamB, removedB := removeID(match.TeamB, id)
			if !removedA && !removedB {
				continue
			}

			if err := s.matchRepo.UpdateTeams(ctx, exec, match.ID, newTeamA, newTeamB); err != nil {
				return err
			}
			match.TeamA = newTeamA
			match.TeamB = newTeamB

			if match.Winner != models.WinnerNotPlayed {
				if err := recalculateMatchPayments(ctx, exec, s.paymentRepo, match); err != nil {
					return err
				}
			}
		}

		if err := s.paymentRepo.DeleteByPlayer(ctx, exec, id); err != nil {
			return err
		}
		if err := s.playerRepo.Delete(ctx, exec, id); err != nil {
			return err
		}

		return recalculateAllPlayerTotals(ctx, exec, s.playerRepo, s.paymentRepo)
	})
	if err != nil {
		return err
	}

	s.notifyPlayersUpdated()
	if s.hub != nil {
		s.hub.Notify(live.EventPaymentsUpdated, nil)
	}
	return nil
}

func (s *playerService) UploadPlayerPhoto(ctx context.Context, id int, file io.Reader, contentType string) (*models.Player, error) {
	if s.uploader == nil {
		return nil, errors.New("photo storage is not configured")
	}

	player, err := s.playerRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player %d: %w", id, err)
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("players/%d/photo%s", player.ID, ext)

	if player.PhotoKey != nil && *player.PhotoKey != "" && *player.PhotoKey != key {
		// Old photo with a different extension; best effort cleanup.
		_ = s.uploader.Delete(ctx, *player.PhotoKey)
	}

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo for player %d: %w", id, err)
	}

	player.PhotoKey = &result.Key
	if err := s.playerRepo.Update(ctx, nil, player); err != nil {
		return nil, fmt.Errorf("failed to save photo key for player %d: %w", id, err)
	}

	populatePlayerPhotoURL(player, s.uploader)
	s.notifyPlayersUpdated()
	return player, nil
}

func (s *playerService) notifyPlayersUpdated() {
	if s.hub != nil {
		s.hub.Notify(live.EventPlayersUpdated, nil)
	}
}

func removeID(ids []int, target int) ([]int, bool) {
	out := make([]int, 0, len(ids))
	removed := false
	for _, id := range ids {
		if id == target {
			removed = true
			continue
		}
		out = append(out, id)
	}
	return out, removed
}
