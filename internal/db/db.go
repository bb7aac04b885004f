package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"meetroom/internal/config"
)

// Open connects to Postgres with the configured pool limits and verifies the
// connection with a ping.
func Open(cfg *config.DatabaseConfig) (*sql.DB, error) {
	d, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.MaxConns > 0 {
		d.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		d.SetMaxIdleConns(cfg.MaxIdle)
	}
	if err := d.Ping(); err != nil {
		d.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return d, nil
}

// EnsureSchema creates the rooms and bookings tables if they are absent.
// bookings.room_id cascades on room deletion; user_id is the opaque
// identity-provider subject and carries no foreign key.
func EnsureSchema(ctx context.Context, d *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
			id          UUID PRIMARY KEY,
			slug        TEXT NOT NULL UNIQUE,
			name        TEXT NOT NULL UNIQUE,
			description TEXT,
			color       TEXT NOT NULL DEFAULT 'blue',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id          UUID PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT,
			color       TEXT,
			location    TEXT,
			start_time  TIMESTAMPTZ NOT NULL,
			end_time    TIMESTAMPTZ NOT NULL,
			room_id     UUID NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			user_id     TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_room_time
			ON bookings (room_id, start_time, end_time)`,
	}
	for _, s := range stmts {
		if _, err := d.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
