package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Postgres driver
)

func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database within %v: %w (close error: %v)", timeout, err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, nil
}

// EnsureSchema creates the three core tables when they do not exist yet. The
// data volume of a single club never justified a migration tool.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS players (
			id         SERIAL PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			position   TEXT NOT NULL CHECK (position IN ('Attack', 'Midfield', 'Defense')),
			points     INTEGER NOT NULL DEFAULT 0,
			total_owed DOUBLE PRECISION NOT NULL DEFAULT 0,
			paid       BOOLEAN NOT NULL DEFAULT TRUE,
			photo_key  TEXT
		);

		CREATE TABLE IF NOT EXISTS matches (
			id       SERIAL PRIMARY KEY,
			date     TEXT NOT NULL,
			time     TEXT NOT NULL DEFAULT '19:00',
			price    DOUBLE PRECISION NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			pitch    TEXT NOT NULL DEFAULT '',
			team_a   INTEGER[] NOT NULL DEFAULT '{}',
			team_b   INTEGER[] NOT NULL DEFAULT '{}',
			winner   TEXT NOT NULL DEFAULT 'Not Played'
				CHECK (winner IN ('Team A', 'Team B', 'Draw', 'Not Played'))
		);

		CREATE TABLE IF NOT EXISTS payments (
			id          SERIAL PRIMARY KEY,
			player_id   INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			match_id    INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			amount_owed DOUBLE PRECISION NOT NULL,
			paid        BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE (player_id, match_id)
		);

		CREATE INDEX IF NOT EXISTS idx_payments_player ON payments(player_id);
		CREATE INDEX IF NOT EXISTS idx_payments_match ON payments(match_id);
		CREATE INDEX IF NOT EXISTS idx_players_points ON players(points DESC);`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}
	return nil
}
