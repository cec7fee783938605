package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/availability"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// studentClaimIndex enforces one claim per student when the policy is on.
const (
	studentClaimIndex  = "topic_claims_one_per_student"
	createStudentIndex = `CREATE UNIQUE INDEX IF NOT EXISTS ` + studentClaimIndex + ` ON topic_claims (student_id)`
	dropStudentIndex   = `DROP INDEX IF EXISTS ` + studentClaimIndex
)

// -----------------------------------------------------------------------------
// Claim ledger (availability.Store)
// -----------------------------------------------------------------------------

// LoadClaims returns every claim ordered by claim time.
func (db *DB) LoadClaims(ctx context.Context) ([]types.Claim, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT topic_id, topic_title, student_id, student_name, score, claimed_at
		 FROM topic_claims
		 ORDER BY claimed_at, topic_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load claims: %w", err)
	}
	defer rows.Close()

	var claims []types.Claim
	for rows.Next() {
		var c types.Claim
		if err := rows.Scan(&c.TopicID, &c.TopicTitle, &c.StudentID, &c.StudentName, &c.Score, &c.ClaimedAt); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load claims: %w", err)
	}
	return claims, nil
}

// EnsureClaimPolicy adds or drops the unique student index that enforces one
// claim per student across every process sharing the database.
func (db *DB) EnsureClaimPolicy(ctx context.Context, oneClaimPerStudent bool) error {
	stmt := dropStudentIndex
	if oneClaimPerStudent {
		stmt = createStudentIndex
	}
	if _, err := db.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to apply claim policy: %w", err)
	}
	return nil
}

// SaveClaim inserts a claim. The topic_id primary key, and the student index
// when present, reject conflicting claims even when several processes share
// the database; those come back as availability claim errors.
func (db *DB) SaveClaim(ctx context.Context, claim types.Claim) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO topic_claims (topic_id, topic_title, student_id, student_name, score, claimed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		claim.TopicID, claim.TopicTitle, claim.StudentID, claim.StudentName, claim.Score, claim.ClaimedAt,
	)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return fmt.Errorf("failed to save claim: %w", err)
	}
	var other string
	if pgErr.ConstraintName == studentClaimIndex {
		other, _ = db.lookupClaim(ctx, `SELECT topic_id FROM topic_claims WHERE student_id = $1`, claim.StudentID)
	} else {
		other, _ = db.lookupClaim(ctx, `SELECT student_id FROM topic_claims WHERE topic_id = $1`, claim.TopicID)
	}
	return claimConflict(pgErr.ConstraintName, claim, other)
}

// claimConflict maps the violated constraint to the availability error. other
// is the topic the student already holds, or the student holding the topic.
func claimConflict(constraint string, claim types.Claim, other string) error {
	if constraint == studentClaimIndex {
		return &availability.StudentHasClaimError{StudentID: claim.StudentID, TopicID: other}
	}
	return &availability.AlreadyClaimedError{TopicID: claim.TopicID, ClaimedBy: other}
}

// lookupClaim returns one column of the conflicting row, or "" when it is gone.
func (db *DB) lookupClaim(ctx context.Context, query, key string) (string, error) {
	var v string
	if err := db.pool.QueryRow(ctx, query, key).Scan(&v); err != nil {
		return "", err
	}
	return v, nil
}

// ClearClaims deletes every claim.
func (db *DB) ClearClaims(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM topic_claims`); err != nil {
		return fmt.Errorf("failed to clear claims: %w", err)
	}
	return nil
}
