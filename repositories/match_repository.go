package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bombers-fc/club-manager/models"
	"github.com/lib/pq"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	List(ctx context.Context, exec SQLExecutor) ([]models.Match, error)
	Update(ctx context.Context, exec SQLExecutor, match *models.Match) error
	UpdateTeams(ctx context.Context, exec SQLExecutor, id int, teamA, teamB []int) error
	UpdateWinner(ctx context.Context, exec SQLExecutor, id int, winner models.Winner) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (date, time, price, location, pitch, team_a, team_b, winner)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		match.Date,
		match.Time,
		match.Price,
		match.Location,
		match.Pitch,
		pq.Array(match.TeamA),
		pq.Array(match.TeamB),
		match.Winner,
	).Scan(&match.ID)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, date, time, price, location, pitch, team_a, team_b, winner
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	var teamA, teamB pq.Int64Array
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.Date,
		&match.Time,
		&match.Price,
		&match.Location,
		&match.Pitch,
		&teamA,
		&teamB,
		&match.Winner,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	match.TeamA = toIntSlice(teamA)
	match.TeamB = toIntSlice(teamB)
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, date, time, price, location, pitch, team_a, team_b, winner
		FROM matches
		ORDER BY date DESC, id DESC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var match models.Match
		var teamA, teamB pq.Int64Array
		if err := rows.Scan(
			&match.ID,
			&match.Date,
			&match.Time,
			&match.Price,
			&match.Location,
			&match.Pitch,
			&teamA,
			&teamB,
			&match.Winner,
		); err != nil {
			return nil, err
		}
		match.TeamA = toIntSlice(teamA)
		match.TeamB = toIntSlice(teamB)
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches SET
			date = $1,
			time = $2,
			price = $3,
			location = $4,
			pitch = $5
		WHERE id = $6`

	result, err := executor.ExecContext(ctx, query,
		match.Date,
		match.Time,
		match.Price,
		match.Location,
		match.Pitch,
		match.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match %d: %w", match.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateTeams(ctx context.Context, exec SQLExecutor, id int, teamA, teamB []int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE matches SET team_a = $1, team_b = $2 WHERE id = $3`

	result, err := executor.ExecContext(ctx, query, pq.Array(teamA), pq.Array(teamB), id)
	if err != nil {
		return fmt.Errorf("failed to update teams for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateWinner(ctx context.Context, exec SQLExecutor, id int, winner models.Winner) error {
	executor := r.getExecutor(exec)
	query := `UPDATE matches SET winner = $1 WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, winner, id)
	if err != nil {
		return fmt.Errorf("failed to update winner for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func toIntSlice(arr pq.Int64Array) []int {
	out := make([]int, len(arr))
	for i, v := range arr {
		out[i] = int(v)
	}
	return out
}
