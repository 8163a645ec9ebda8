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

func TestAssignmentGetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewAssignmentRepository(db)
		due := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery("FROM assignments").WithArgs(int64(10)).WillReturnRows(
			sqlmock.NewRows(assignmentColumns).
				AddRow(10, 1, "hw3", due, "11:59 PM", "N/A", "NOT_STARTED", now, now))

		a, err := repo.GetByID(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, "hw3", a.Name)
		assert.Equal(t, "2025-10-19", a.DueDate)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewAssignmentRepository(db)

		mock.ExpectQuery("FROM assignments").WithArgs(int64(404)).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 404)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestAssignmentUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("updates", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewAssignmentRepository(db)

		mock.ExpectExec("UPDATE assignments").
			WithArgs(domain.AssignmentStatusDone, sqlmock.AnyArg(), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus(ctx, 10, domain.AssignmentStatusDone))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewAssignmentRepository(db)

		mock.ExpectExec("UPDATE assignments").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 404, domain.AssignmentStatusDone)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestAssignmentDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewAssignmentRepository(db)

		mock.ExpectExec("DELETE FROM assignments").
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, 10))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewAssignmentRepository(db)

		mock.ExpectExec("DELETE FROM assignments").
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.Delete(ctx, 404), repository.ErrNotFound)
	})
}

func TestAssignmentFindDueSoon(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	db, mock := newMockDB(t)
	repo := repository.NewAssignmentRepository(db)
	due := time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM assignments").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(assignmentColumns).
			AddRow(10, 1, "hw1", due, "11:59 PM", "N/A", "NOT_STARTED", now, now).
			AddRow(11, 1, "hw2", due, "11:59 PM", "N/A", "IN_PROGRESS", now, now))

	assignments, err := repo.FindDueSoon(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, "hw1", assignments[0].Name)
}
