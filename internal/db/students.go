package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// -----------------------------------------------------------------------------
// Student profiles
// -----------------------------------------------------------------------------

// UpsertStudent validates and stores a profile.
func (db *DB) UpsertStudent(ctx context.Context, student *types.StudentProfile) error {
	profileJSON, err := marshalStudent(student)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO student_profiles (id, profile)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET profile = $2, updated_at = NOW()`,
		student.ID, profileJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert student: %w", err)
	}
	return nil
}

// CreateStudent inserts a new profile and fails if the ID exists.
func (db *DB) CreateStudent(ctx context.Context, student *types.StudentProfile) error {
	profileJSON, err := marshalStudent(student)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO student_profiles (id, profile) VALUES ($1, $2)`,
		student.ID, profileJSON,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return &types.StudentExistsError{StudentID: student.ID}
		}
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// UpdateStudent replaces an existing profile.
func (db *DB) UpdateStudent(ctx context.Context, student *types.StudentProfile) error {
	profileJSON, err := marshalStudent(student)
	if err != nil {
		return err
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE student_profiles SET profile = $2, updated_at = NOW() WHERE id = $1`,
		student.ID, profileJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &types.StudentNotFoundError{StudentID: student.ID}
	}
	return nil
}

func marshalStudent(student *types.StudentProfile) ([]byte, error) {
	if err := student.Validate(); err != nil {
		return nil, err
	}
	profileJSON, err := json.Marshal(student)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal student: %w", err)
	}
	return profileJSON, nil
}

// GetStudent returns a profile, or nil, nil when none is stored.
func (db *DB) GetStudent(ctx context.Context, id string) (*types.StudentProfile, error) {
	var profileJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT profile FROM student_profiles WHERE id = $1`, id,
	).Scan(&profileJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	var student types.StudentProfile
	if err := json.Unmarshal(profileJSON, &student); err != nil {
		return nil, fmt.Errorf("failed to unmarshal student: %w", err)
	}
	return &student, nil
}

// DeleteStudent removes a profile.
func (db *DB) DeleteStudent(ctx context.Context, id string) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM student_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &types.StudentNotFoundError{StudentID: id}
	}
	return nil
}

// ListStudents returns every profile ordered by ID.
func (db *DB) ListStudents(ctx context.Context) ([]*types.StudentProfile, error) {
	rows, err := db.pool.Query(ctx, `SELECT profile FROM student_profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students := []*types.StudentProfile{}
	for rows.Next() {
		var profileJSON []byte
		if err := rows.Scan(&profileJSON); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		var s types.StudentProfile
		if err := json.Unmarshal(profileJSON, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal student: %w", err)
		}
		students = append(students, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}
