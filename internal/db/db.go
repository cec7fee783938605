// Package db provides PostgreSQL storage for topic claims, recommendation
// history and student profiles.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Schema creates every table the navigator uses. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS topic_claims (
	topic_id     TEXT PRIMARY KEY,
	topic_title  TEXT NOT NULL DEFAULT '',
	student_id   TEXT NOT NULL,
	student_name TEXT NOT NULL DEFAULT '',
	score        DOUBLE PRECISION NOT NULL DEFAULT 0,
	claimed_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_topic_claims_student ON topic_claims (student_id);

CREATE TABLE IF NOT EXISTS recommendation_history (
	id              UUID PRIMARY KEY,
	student_id      TEXT NOT NULL,
	student_name    TEXT NOT NULL DEFAULT '',
	fallback_used   BOOLEAN NOT NULL DEFAULT FALSE,
	recommendations JSONB NOT NULL DEFAULT '[]',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_recommendation_history_student ON recommendation_history (student_id, created_at);

CREATE TABLE IF NOT EXISTS student_profiles (
	id         TEXT PRIMARY KEY,
	profile    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema applies Schema.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
