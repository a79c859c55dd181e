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
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	List(ctx context.Context, exec SQLExecutor) ([]models.Player, error)
	ListByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]models.Player, error)
	Update(ctx context.Context, exec SQLExecutor, player *models.Player) error
	AdjustPoints(ctx context.Context, exec SQLExecutor, playerIDs []int, delta int) error
	UpdateDerivedTotals(ctx context.Context, exec SQLExecutor, id int, totalOwed float64, paid bool) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO players (name, position, points, total_owed, paid, photo_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		player.Name,
		player.Position,
		player.Points,
		player.TotalOwed,
		player.Paid,
		player.PhotoKey,
	).Scan(&player.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "players_name_key" {
				return ErrPlayerNameConflict
			}
		}
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, position, points, total_owed, paid, photo_key
		FROM players
		WHERE id = $1`

	player := &models.Player{}
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&player.ID,
		&player.Name,
		&player.Position,
		&player.Points,
		&player.TotalOwed,
		&player.Paid,
		&player.PhotoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Player, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, position, points, total_owed, paid, photo_key
		FROM players
		ORDER BY name ASC`

	return r.queryPlayers(ctx, executor, query)
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]models.Player, error) {
	if len(ids) == 0 {
		return []models.Player{}, nil
	}
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, position, points, total_owed, paid, photo_key
		FROM players
		WHERE id = ANY($1)
		ORDER BY name ASC`

	return r.queryPlayers(ctx, executor, query, pq.Array(ids))
}

func (r *postgresPlayerRepository) Update(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players SET
			name = $1,
			position = $2,
			photo_key = $3
		WHERE id = $4`

	result, err := executor.ExecContext(ctx, query,
		player.Name,
		player.Position,
		player.PhotoKey,
		player.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "players_name_key" {
				return ErrPlayerNameConflict
			}
		}
		return fmt.Errorf("failed to update player %d: %w", player.ID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// AdjustPoints shifts the points of every listed player by delta, never going
// below zero. Missing ids are silently skipped, matching roster edits that
// reference already-deleted players.
func (r *postgresPlayerRepository) AdjustPoints(ctx context.Context, exec SQLExecutor, playerIDs []int, delta int) error {
	if len(playerIDs) == 0 || delta == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	query := `
		UPDATE players
		SET points = GREATEST(0, points + $1)
		WHERE id = ANY($2)`

	if _, err := executor.ExecContext(ctx, query, delta, pq.Array(playerIDs)); err != nil {
		return fmt.Errorf("failed to adjust points by %d: %w", delta, err)
	}
	return nil
}

func (r *postgresPlayerRepository) UpdateDerivedTotals(ctx context.Context, exec SQLExecutor, id int, totalOwed float64, paid bool) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players SET
			total_owed = $1,
			paid = $2
		WHERE id = $3`

	result, err := executor.ExecContext(ctx, query, totalOwed, paid, id)
	if err != nil {
		return fmt.Errorf("failed to update derived totals for player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) queryPlayers(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if err := rows.Scan(
			&player.ID,
			&player.Name,
			&player.Position,
			&player.Points,
			&player.TotalOwed,
			&player.Paid,
			&player.PhotoKey,
		); err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}
