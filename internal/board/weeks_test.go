package board_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyboard/internal/board"
	"studyboard/internal/domain"
)

func item(id int64, name string, dueAt time.Time) board.Item {
	return board.Item{
		Assignment: domain.Assignment{ID: id, Name: name, Status: domain.AssignmentStatusNotStarted},
		DueAt:      dueAt,
	}
}

func TestDeriveBoards(t *testing.T) {
	t.Run("empty input yields zero boards", func(t *testing.T) {
		require.Empty(t, board.DeriveBoards(nil))
		require.Empty(t, board.DeriveBoards([]board.Item{}))
	})

	t.Run("single item yields one board containing it", func(t *testing.T) {
		due := time.Date(2025, 10, 15, 23, 59, 0, 0, time.Local) // a Wednesday
		boards := board.DeriveBoards([]board.Item{item(1, "hw1", due)})
		require.Len(t, boards, 1)
		assert.Equal(t, 1, boards[0].Number)
		// week of Oct 13 (Monday) through Oct 19 (Sunday)
		assert.Equal(t, time.Date(2025, 10, 13, 0, 0, 0, 0, time.Local), boards[0].StartDate)
		assert.Equal(t, time.Date(2025, 10, 19, 0, 0, 0, 0, time.Local), boards[0].EndDate)
		require.Len(t, boards[0].Items, 1)
		assert.Equal(t, int64(1), boards[0].Items[0].Assignment.ID)
	})

	t.Run("sunday late evening stays in its week", func(t *testing.T) {
		due := time.Date(2025, 10, 19, 23, 59, 0, 0, time.Local) // Sunday 11:59 PM
		boards := board.DeriveBoards([]board.Item{item(1, "hw1", due)})
		require.Len(t, boards, 1)
		assert.Equal(t, time.Date(2025, 10, 13, 0, 0, 0, 0, time.Local), boards[0].StartDate)
	})

	t.Run("empty week in between is skipped without a number", func(t *testing.T) {
		// 5 assignments across 3 distinct Mon-Sun windows with the middle
		// window empty: exactly 2 boards, numbered 1 and 2.
		week1 := time.Date(2025, 9, 2, 12, 0, 0, 0, time.Local)  // Tue, week of Sep 1
		week3 := time.Date(2025, 9, 17, 12, 0, 0, 0, time.Local) // Wed, week of Sep 15
		items := []board.Item{
			item(1, "a", week1),
			item(2, "b", week1.Add(time.Hour)),
			item(3, "c", week1.Add(2*time.Hour)),
			item(4, "d", week3),
			item(5, "e", week3.Add(time.Hour)),
		}
		boards := board.DeriveBoards(items)
		require.Len(t, boards, 2)
		assert.Equal(t, 1, boards[0].Number)
		assert.Equal(t, 2, boards[1].Number)
		assert.Len(t, boards[0].Items, 3)
		assert.Len(t, boards[1].Items, 2)
	})

	t.Run("every item appears in exactly one board", func(t *testing.T) {
		base := time.Date(2025, 9, 1, 8, 0, 0, 0, time.Local)
		var items []board.Item
		for i := int64(0); i < 20; i++ {
			items = append(items, item(i, "hw", base.AddDate(0, 0, int(i)*2)))
		}
		boards := board.DeriveBoards(items)

		seen := map[int64]int{}
		total := 0
		for _, b := range boards {
			total += len(b.Items)
			for _, it := range b.Items {
				seen[it.Assignment.ID]++
			}
		}
		assert.Equal(t, len(items), total)
		for id, n := range seen {
			assert.Equalf(t, 1, n, "assignment %d bucketed %d times", id, n)
		}
	})

	t.Run("windows are increasing and non-overlapping", func(t *testing.T) {
		base := time.Date(2025, 9, 1, 8, 0, 0, 0, time.Local)
		var items []board.Item
		for i := int64(0); i < 15; i++ {
			items = append(items, item(i, "hw", base.AddDate(0, 0, int(i)*3)))
		}
		boards := board.DeriveBoards(items)
		require.NotEmpty(t, boards)
		for i := 1; i < len(boards); i++ {
			assert.Equal(t, boards[i-1].Number+1, boards[i].Number)
			assert.True(t, boards[i-1].EndDate.Before(boards[i].StartDate))
		}
	})

	t.Run("items sorted by due instant with stable ties", func(t *testing.T) {
		due := time.Date(2025, 10, 15, 23, 59, 0, 0, time.Local)
		items := []board.Item{
			item(3, "later", due.Add(time.Hour)),
			item(1, "tie-first", due),
			item(2, "tie-second", due),
		}
		boards := board.DeriveBoards(items)
		require.Len(t, boards, 1)
		got := boards[0].Items
		require.Len(t, got, 3)
		assert.Equal(t, int64(1), got[0].Assignment.ID)
		assert.Equal(t, int64(2), got[1].Assignment.ID)
		assert.Equal(t, int64(3), got[2].Assignment.ID)
	})

	t.Run("malformed due time still lands in exactly one board", func(t *testing.T) {
		now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.Local)
		syllabi := []domain.Syllabus{{
			ID:         1,
			CourseCode: "CS 251",
			Assignments: []domain.Assignment{
				{ID: 1, Name: "good", DueDate: "2025-10-19", DueTime: "11:59 PM"},
				{ID: 2, Name: "bad", DueDate: "2025-10-19", DueTime: ""},
			},
		}}
		items := board.Flatten(syllabi, now)
		require.Len(t, items, 2)
		assert.False(t, items[0].DueFallback)
		assert.True(t, items[1].DueFallback)

		boards := board.DeriveBoards(items)
		total := 0
		for _, b := range boards {
			total += len(b.Items)
		}
		assert.Equal(t, 2, total)
	})
}

func TestFlatten(t *testing.T) {
	now := time.Now()
	syllabi := []domain.Syllabus{
		{
			ID:         7,
			ClassName:  "Systems Programming",
			CourseCode: "CS 252",
			Assignments: []domain.Assignment{
				{ID: 1, SyllabusID: 7, Name: "lab1", DueDate: "2025-09-06", DueTime: "11:59 PM"},
			},
		},
		{
			ID:         8,
			ClassName:  "Linear Algebra",
			CourseCode: "MATH 265",
			Assignments: []domain.Assignment{
				{ID: 2, SyllabusID: 8, Name: "pset1", DueDate: "2025-09-08", DueTime: "5:00 PM"},
			},
		},
	}

	items := board.Flatten(syllabi, now)
	require.Len(t, items, 2)
	assert.Equal(t, "CS 252", items[0].CourseCode)
	assert.Equal(t, "Systems Programming", items[0].CourseName)
	assert.Equal(t, int64(7), items[0].SyllabusID)
	assert.Equal(t, "MATH 265", items[1].CourseCode)
}
