package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bombers-fc/club-manager/live"
	"github.com/bombers-fc/club-manager/models"
	"github.com/bombers-fc/club-manager/repositories"
)

type PaymentService interface {
	ListPayments(ctx context.Context) ([]models.Payment, error)
	SetPaymentPaid(ctx context.Context, playerID, matchID int, paid bool) (*models.Payment, error)
	MarkAllPaidForPlayer(ctx context.Context, playerID int) error
	GetPaymentMatrix(ctx context.Context) (*models.PaymentMatrix, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	playerRepo  repositories.PlayerRepository
	matchRepo   repositories.MatchRepository
	txManager   repositories.TxManager
	hub         *live.Hub
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	txManager repositories.TxManager,
	hub *live.Hub,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

func (s *paymentService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.paymentRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *paymentService) SetPaymentPaid(ctx context.Context, playerID, matchID int, paid bool) (*models.Payment, error) {
	var payment *models.Payment
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.paymentRepo.SetPaid(ctx, exec, playerID, matchID, paid); err != nil {
			if errors.Is(err, repositories.ErrPaymentNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if err := recalculatePlayerTotals(ctx, exec, s.playerRepo, s.paymentRepo, []int{playerID}); err != nil {
			return err
		}

		updated, err := s.paymentRepo.GetByPlayerAndMatch(ctx, exec, playerID, matchID)
		if err != nil {
			return err
		}
		payment = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyPaymentsUpdated()
	return payment, nil
}

func (s *paymentService) MarkAllPaidForPlayer(ctx context.Context, playerID int) error {
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.playerRepo.GetByID(ctx, exec, playerID); err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return err
		}
		if err := s.paymentRepo.MarkAllPaidForPlayer(ctx, exec, playerID); err != nil {
			return err
		}
		return recalculatePlayerTotals(ctx, exec, s.playerRepo, s.paymentRepo, []int{playerID})
	})
	if err != nil {
		return err
	}

	s.notifyPaymentsUpdated()
	return nil
}

// GetPaymentMatrix assembles the payments page: every player against every
// decided match, with per-player outstanding totals.
func (s *paymentService) GetPaymentMatrix(ctx context.Context) (*models.PaymentMatrix, error) {
	players, err := s.playerRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	matches, err := s.matchRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	payments, err := s.paymentRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	matrix := &models.PaymentMatrix{
		Players:  make([]models.PaymentMatrixPlayer, 0, len(players)),
		Matches:  make([]models.PaymentMatrixMatch, 0, len(matches)),
		Payments: make([]models.PaymentCell, 0, len(payments)),
		Totals:   make([]models.PlayerTotal, 0, len(players)),
	}

	for _, player := range players {
		matrix.Players = append(matrix.Players, models.PaymentMatrixPlayer{ID: player.ID, Name: player.Name})
	}
	for _, match := range matches {
		if match.Winner == models.WinnerNotPlayed {
			continue
		}
		matrix.Matches = append(matrix.Matches, models.PaymentMatrixMatch{
			ID:    match.ID,
			Date:  match.Date,
			Time:  match.Time,
			Price: match.Price,
		})
	}

	unpaidByPlayer := make(map[int]float64, len(players))
	for _, payment := range payments {
		matrix.Payments = append(matrix.Payments, models.PaymentCell{
			PlayerID:   payment.PlayerID,
			MatchID:    payment.MatchID,
			AmountOwed: payment.AmountOwed,
			Paid:       payment.Paid,
		})
		if !payment.Paid {
			unpaidByPlayer[payment.PlayerID] += payment.AmountOwed
		}
	}
	for _, player := range players {
		matrix.Totals = append(matrix.Totals, models.PlayerTotal{
			PlayerID:  player.ID,
			TotalOwed: unpaidByPlayer[player.ID],
		})
	}

	return matrix, nil
}

func (s *paymentService) notifyPaymentsUpdated() {
	if s.hub != nil {
		s.hub.Notify(live.EventPaymentsUpdated, nil)
	}
}
