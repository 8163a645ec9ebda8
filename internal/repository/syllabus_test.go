package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyboard/internal/domain"
	"studyboard/internal/repository"
)

var syllabusColumns = []string{"id", "class_name", "course_code", "created_at", "edited_at"}
var assignmentColumns = []string{"id", "syllabus_id", "name", "due_date", "due_time", "submission_link", "status", "created_at", "edited_at"}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestSyllabusListAll(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	due := time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)

	t.Run("nests assignments under their syllabus", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSyllabusRepository(db)

		mock.ExpectQuery("FROM syllabi").WillReturnRows(
			sqlmock.NewRows(syllabusColumns).
				AddRow(1, "Computer Architecture", "CS 251", now, now).
				AddRow(2, "Operating Systems", "CS 252", now, now))
		mock.ExpectQuery("FROM assignments").WillReturnRows(
			sqlmock.NewRows(assignmentColumns).
				AddRow(10, 1, "hw1", due, "11:59 PM", "N/A", "NOT_STARTED", now, now).
				AddRow(11, 2, "lab1", due, "5:00 PM", "N/A", "DONE", now, now))

		syllabi, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, syllabi, 2)
		require.Len(t, syllabi[0].Assignments, 1)
		assert.Equal(t, "hw1", syllabi[0].Assignments[0].Name)
		assert.Equal(t, "2025-09-06", syllabi[0].Assignments[0].DueDate)
		assert.Equal(t, domain.AssignmentStatusDone, syllabi[1].Assignments[0].Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown statuses default to not started", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSyllabusRepository(db)

		mock.ExpectQuery("FROM syllabi").WillReturnRows(
			sqlmock.NewRows(syllabusColumns).AddRow(1, "Calculus", "MATH 101", now, now))
		mock.ExpectQuery("FROM assignments").WillReturnRows(
			sqlmock.NewRows(assignmentColumns).
				AddRow(10, 1, "quiz", due, "11:59 PM", "N/A", "garbage", now, now))

		syllabi, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.AssignmentStatusNotStarted, syllabi[0].Assignments[0].Status)
	})

	t.Run("empty store", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSyllabusRepository(db)

		mock.ExpectQuery("FROM syllabi").WillReturnRows(sqlmock.NewRows(syllabusColumns))
		mock.ExpectQuery("FROM assignments").WillReturnRows(sqlmock.NewRows(assignmentColumns))

		syllabi, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, syllabi)
	})
}

func TestSyllabusGetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSyllabusRepository(db)

		mock.ExpectQuery("FROM syllabi").WithArgs(int64(5)).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 5)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("loads assignments", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSyllabusRepository(db)
		due := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery("FROM syllabi").WithArgs(int64(1)).WillReturnRows(
			sqlmock.NewRows(syllabusColumns).AddRow(1, "Computer Architecture", "CS 251", now, now))
		mock.ExpectQuery("FROM assignments").WithArgs(int64(1)).WillReturnRows(
			sqlmock.NewRows(assignmentColumns).
				AddRow(10, 1, "hw3", due, "11:59 PM", "N/A", "IN_PROGRESS", now, now))

		s, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, s.Assignments, 1)
		assert.Equal(t, domain.AssignmentStatusInProgress, s.Assignments[0].Status)
	})
}

func TestSyllabusCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("fills generated ids", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSyllabusRepository(db)

		s := &domain.Syllabus{
			ClassName:  "Computer Architecture",
			CourseCode: "CS 251",
			Assignments: []domain.Assignment{
				{Name: "hw1", DueDate: "2025-09-06", DueTime: "11:59 PM", SubmissionLink: "N/A"},
			},
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO syllabi").
			WithArgs(s.ClassName, s.CourseCode, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery("INSERT INTO assignments").
			WithArgs(int64(7), "hw1", "2025-09-06", "11:59 PM", "N/A", domain.AssignmentStatusNotStarted, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(70)))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(ctx, s))
		assert.Equal(t, int64(7), s.ID)
		assert.Equal(t, int64(70), s.Assignments[0].ID)
		assert.Equal(t, int64(7), s.Assignments[0].SyllabusID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when an assignment insert fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSyllabusRepository(db)

		s := &domain.Syllabus{
			ClassName:   "Calculus",
			CourseCode:  "MATH 101",
			Assignments: []domain.Assignment{{Name: "quiz"}},
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO syllabi").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))
		mock.ExpectQuery("INSERT INTO assignments").WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		require.Error(t, repo.Create(ctx, s))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSyllabusUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the assignment set", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSyllabusRepository(db)

		s := &domain.Syllabus{
			ID:         3,
			ClassName:  "Operating Systems",
			CourseCode: "CS 252",
			Assignments: []domain.Assignment{
				{Name: "lab2", DueDate: "2025-11-01", DueTime: "11:59 PM", SubmissionLink: "N/A", Status: domain.AssignmentStatusDone},
			},
		}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE syllabi").
			WithArgs(s.ClassName, s.CourseCode, sqlmock.AnyArg(), s.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM assignments").
			WithArgs(s.ID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery("INSERT INTO assignments").
			WithArgs(s.ID, "lab2", "2025-11-01", "11:59 PM", "N/A", domain.AssignmentStatusDone, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(31)))
		mock.ExpectCommit()

		require.NoError(t, repo.Update(ctx, s))
		assert.Equal(t, int64(31), s.Assignments[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSyllabusRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE syllabi").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Update(ctx, &domain.Syllabus{ID: 404})
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSyllabusDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSyllabusRepository(db)

		mock.ExpectExec("DELETE FROM syllabi").
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, 2))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSyllabusRepository(db)

		mock.ExpectExec("DELETE FROM syllabi").
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.Delete(ctx, 404), repository.ErrNotFound)
	})
}
