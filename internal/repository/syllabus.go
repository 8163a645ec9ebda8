package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studyboard/internal/domain"
)

type SyllabusRepository struct {
	db *sql.DB
}

func NewSyllabusRepository(db *sql.DB) *SyllabusRepository {
	return &SyllabusRepository{db: db}
}

// ListAll returns every syllabus with its assignments nested, ordered by
// id so re-fetches are stable.
func (r *SyllabusRepository) ListAll(ctx context.Context) ([]domain.Syllabus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, class_name, course_code, created_at, edited_at
		FROM syllabi
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query syllabi: %w", err)
	}
	defer rows.Close()

	var syllabi []domain.Syllabus
	index := map[int64]int{}
	for rows.Next() {
		var s domain.Syllabus
		if err := rows.Scan(&s.ID, &s.ClassName, &s.CourseCode, &s.CreatedAt, &s.EditedAt); err != nil {
			return nil, fmt.Errorf("failed to scan syllabus: %w", err)
		}
		index[s.ID] = len(syllabi)
		syllabi = append(syllabi, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	arows, err := r.db.QueryContext(ctx, `
		SELECT id, syllabus_id, name, due_date, due_time, submission_link, status, created_at, edited_at
		FROM assignments
		ORDER BY syllabus_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer arows.Close()

	for arows.Next() {
		a, err := scanAssignment(arows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[a.SyllabusID]; ok {
			syllabi[i].Assignments = append(syllabi[i].Assignments, a)
		}
	}
	if err := arows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return syllabi, nil
}

func (r *SyllabusRepository) GetByID(ctx context.Context, id int64) (*domain.Syllabus, error) {
	var s domain.Syllabus
	err := r.db.QueryRowContext(ctx, `
		SELECT id, class_name, course_code, created_at, edited_at
		FROM syllabi
		WHERE id = $1
	`, id).Scan(&s.ID, &s.ClassName, &s.CourseCode, &s.CreatedAt, &s.EditedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get syllabus: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, syllabus_id, name, due_date, due_time, submission_link, status, created_at, edited_at
		FROM assignments
		WHERE syllabus_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		s.Assignments = append(s.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return &s, nil
}

// Create inserts a syllabus and its assignments in one transaction and
// fills in the generated ids.
func (r *SyllabusRepository) Create(ctx context.Context, s *domain.Syllabus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO syllabi (class_name, course_code, created_at, edited_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, s.ClassName, s.CourseCode, now, now).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create syllabus: %w", err)
	}

	if err := insertAssignments(ctx, tx, s, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}
	return nil
}

// Update rewrites the syllabus fields and replaces its full assignment
// set, matching the editing surface which always submits the complete
// list.
func (r *SyllabusRepository) Update(ctx context.Context, s *domain.Syllabus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.ExecContext(ctx, `
		UPDATE syllabi
		SET class_name = $1, course_code = $2, edited_at = $3
		WHERE id = $4
	`, s.ClassName, s.CourseCode, now, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update syllabus: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE syllabus_id = $1`, s.ID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	if err := insertAssignments(ctx, tx, s, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}
	return nil
}

func (r *SyllabusRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM syllabi WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete syllabus: %w", err)
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

func insertAssignments(ctx context.Context, tx *sql.Tx, s *domain.Syllabus, now time.Time) error {
	for i := range s.Assignments {
		a := &s.Assignments[i]
		status := a.Status
		if !status.IsValid() {
			status = domain.AssignmentStatusNotStarted
		}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO assignments (syllabus_id, name, due_date, due_time, submission_link, status, created_at, edited_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, s.ID, a.Name, a.DueDate, a.DueTime, a.SubmissionLink, status, now, now).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
		a.SyllabusID = s.ID
		a.Status = status
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssignment(row rowScanner) (domain.Assignment, error) {
	var a domain.Assignment
	var dueDate time.Time
	var status string
	err := row.Scan(&a.ID, &a.SyllabusID, &a.Name, &dueDate, &a.DueTime, &a.SubmissionLink, &status, &a.CreatedAt, &a.EditedAt)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("failed to scan assignment: %w", err)
	}
	a.DueDate = dueDate.Format("2006-01-02")
	a.Status = domain.ToAssignmentStatus(status)
	return a, nil
}
