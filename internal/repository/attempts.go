// Package repository provides persistence implementations for the attempt log.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/flaggate/internal/models"
)

// PostgresAttemptRepository stores attempts in a PostgreSQL database.
type PostgresAttemptRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAttemptRepository creates a repository over db, which must be
// connected to a database initialised by db.InitPostgres.
func NewPostgresAttemptRepository(db *sql.DB) *PostgresAttemptRepository {
	return &PostgresAttemptRepository{DB: db}
}

// RecordAttempt inserts a finished attempt. Re-recording the same ID is a no-op.
func (r *PostgresAttemptRepository) RecordAttempt(ctx context.Context, a models.Attempt) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO attempts (id, challenge, accepted, remote, created_at)
		 VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
		a.ID, a.Challenge, a.Accepted, a.Remote, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("RecordAttempt: %w", err)
	}
	return nil
}

// Stats counts all and accepted attempts for a challenge.
func (r *PostgresAttemptRepository) Stats(ctx context.Context, challenge string) (models.Stats, error) {
	var st models.Stats
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE accepted) FROM attempts WHERE challenge = $1`,
		challenge,
	).Scan(&st.Attempts, &st.Solves)
	if err != nil {
		return models.Stats{}, fmt.Errorf("Stats: %w", err)
	}
	return st, nil
}
