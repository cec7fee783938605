package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Recommendation history
// -----------------------------------------------------------------------------

// AppendHistory stores a recommendation run.
func (db *DB) AppendHistory(ctx context.Context, student *types.StudentProfile, set *types.RecommendationSet) (types.HistoryEntry, error) {
	recs := set.Recommendations
	if recs == nil {
		recs = []types.Recommendation{}
	}
	recsJSON, err := json.Marshal(recs)
	if err != nil {
		return types.HistoryEntry{}, fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	id := uuid.New()
	var createdAt time.Time
	err = db.pool.QueryRow(ctx,
		`INSERT INTO recommendation_history (id, student_id, student_name, fallback_used, recommendations)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		id, student.ID, student.Name, set.FallbackUsed, recsJSON,
	).Scan(&createdAt)
	if err != nil {
		return types.HistoryEntry{}, fmt.Errorf("failed to append history: %w", err)
	}

	return types.HistoryEntry{
		ID:              id.String(),
		Timestamp:       createdAt.UTC(),
		StudentID:       student.ID,
		StudentName:     student.Name,
		FallbackUsed:    set.FallbackUsed,
		Recommendations: recs,
	}, nil
}

// ListHistory returns entries oldest first, filtered to studentID when non-empty.
func (db *DB) ListHistory(ctx context.Context, studentID string) ([]types.HistoryEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, student_id, student_name, fallback_used, recommendations, created_at
		 FROM recommendation_history
		 WHERE $1 = '' OR student_id = $1
		 ORDER BY created_at, id`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	entries := []types.HistoryEntry{}
	for rows.Next() {
		var e types.HistoryEntry
		var id uuid.UUID
		var recsJSON []byte
		if err := rows.Scan(&id, &e.StudentID, &e.StudentName, &e.FallbackUsed, &recsJSON, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		if err := json.Unmarshal(recsJSON, &e.Recommendations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
		}
		e.ID = id.String()
		e.Timestamp = e.Timestamp.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

// ClearHistory deletes every history entry.
func (db *DB) ClearHistory(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM recommendation_history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
