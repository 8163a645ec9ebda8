package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studyboard/internal/domain"
)

type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, syllabus_id, name, due_date, due_time, submission_link, status, created_at, edited_at
		FROM assignments
		WHERE id = $1
	`, id)

	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &a, nil
}

// UpdateStatus sets the absolute status value, so a retry after a failed
// call is safe.
func (r *AssignmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AssignmentStatus) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE assignments
		SET status = $1, edited_at = $2
		WHERE id = $3
	`, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// FindDueSoon returns unfinished assignments whose due date falls within
// the given window from today.
func (r *AssignmentRepository) FindDueSoon(ctx context.Context, within time.Duration) ([]domain.Assignment, error) {
	deadline := time.Now().Add(within)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, syllabus_id, name, due_date, due_time, submission_link, status, created_at, edited_at
		FROM assignments
		WHERE due_date >= CURRENT_DATE AND due_date <= $1 AND status <> 'DONE'
		ORDER BY due_date
	`, deadline)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return assignments, nil
}
