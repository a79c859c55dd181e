package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bombers-fc/club-manager/models"
	"github.com/lib/pq"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPaymentConflict = errors.New("payment already exists for this player and match")
)

type PaymentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, payment *models.Payment) error
	GetByPlayerAndMatch(ctx context.Context, exec SQLExecutor, playerID, matchID int) (*models.Payment, error)
	List(ctx context.Context, exec SQLExecutor) ([]models.Payment, error)
	ListByPlayer(ctx context.Context, exec SQLExecutor, playerID int) ([]models.Payment, error)
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]models.Payment, error)
	SetPaid(ctx context.Context, exec SQLExecutor, playerID, matchID int, paid bool) error
	MarkAllPaidForPlayer(ctx context.Context, exec SQLExecutor, playerID int) error
	DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error
	DeleteByPlayer(ctx context.Context, exec SQLExecutor, playerID int) error
}

type postgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

func (r *postgresPaymentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPaymentRepository) Create(ctx context.Context, exec SQLExecutor, payment *models.Payment) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO payments (player_id, match_id, amount_owed, paid)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		payment.PlayerID,
		payment.MatchID,
		payment.AmountOwed,
		payment.Paid,
	).Scan(&payment.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrPaymentConflict
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (r *postgresPaymentRepository) GetByPlayerAndMatch(ctx context.Context, exec SQLExecutor, playerID, matchID int) (*models.Payment, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, player_id, match_id, amount_owed, paid
		FROM payments
		WHERE player_id = $1 AND match_id = $2`

	payment := &models.Payment{}
	err := executor.QueryRowContext(ctx, query, playerID, matchID).Scan(
		&payment.ID,
		&payment.PlayerID,
		&payment.MatchID,
		&payment.AmountOwed,
		&payment.Paid,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return payment, nil
}

func (r *postgresPaymentRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Payment, error) {
	query := `
		SELECT id, player_id, match_id, amount_owed, paid
		FROM payments
		ORDER BY match_id ASC, player_id ASC`
	return r.queryPayments(ctx, r.getExecutor(exec), query)
}

func (r *postgresPaymentRepository) ListByPlayer(ctx context.Context, exec SQLExecutor, playerID int) ([]models.Payment, error) {
	query := `
		SELECT id, player_id, match_id, amount_owed, paid
		FROM payments
		WHERE player_id = $1
		ORDER BY match_id ASC`
	return r.queryPayments(ctx, r.getExecutor(exec), query, playerID)
}

func (r *postgresPaymentRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]models.Payment, error) {
	query := `
		SELECT id, player_id, match_id, amount_owed, paid
		FROM payments
		WHERE match_id = $1
		ORDER BY player_id ASC`
	return r.queryPayments(ctx, r.getExecutor(exec), query, matchID)
}

func (r *postgresPaymentRepository) SetPaid(ctx context.Context, exec SQLExecutor, playerID, matchID int, paid bool) error {
	executor := r.getExecutor(exec)
	query := `UPDATE payments SET paid = $1 WHERE player_id = $2 AND match_id = $3`

	result, err := executor.ExecContext(ctx, query, paid, playerID, matchID)
	if err != nil {
		return fmt.Errorf("failed to set paid flag for player %d match %d: %w", playerID, matchID, err)
	}
	return checkAffectedRows(result, ErrPaymentNotFound)
}

func (r *postgresPaymentRepository) MarkAllPaidForPlayer(ctx context.Context, exec SQLExecutor, playerID int) error {
	executor := r.getExecutor(exec)
	// No affected-rows check: a player with no payments is a valid no-op.
	_, err := executor.ExecContext(ctx, `UPDATE payments SET paid = TRUE WHERE player_id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("failed to mark payments paid for player %d: %w", playerID, err)
	}
	return nil
}

func (r *postgresPaymentRepository) DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM payments WHERE match_id = $1`, matchID); err != nil {
		return fmt.Errorf("failed to delete payments for match %d: %w", matchID, err)
	}
	return nil
}

func (r *postgresPaymentRepository) DeleteByPlayer(ctx context.Context, exec SQLExecutor, playerID int) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM payments WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("failed to delete payments for player %d: %w", playerID, err)
	}
	return nil
}

func (r *postgresPaymentRepository) queryPayments(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]models.Payment, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.PlayerID,
			&payment.MatchID,
			&payment.AmountOwed,
			&payment.Paid,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
