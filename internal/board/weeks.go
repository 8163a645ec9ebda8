package board

import (
	"fmt"
	"sort"
	"time"
)

// WeeklyBoard is one Monday-to-Sunday window of assignments. Boards are
// numbered densely: a calendar week with no assignments emits no board
// and consumes no number.
type WeeklyBoard struct {
	Number    int
	StartDate time.Time // Monday 00:00 local
	EndDate   time.Time // Sunday 00:00 local (window is inclusive through end of that day)
	Title     string
	Items     []Item
}

// weekStart returns the Monday 00:00 at or before t.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// DeriveBoards partitions items into contiguous Monday-aligned weeks.
// Items are stable-sorted by due instant first, so ties keep their input
// order and every board's item list comes out pre-sorted. An empty input
// yields no boards.
func DeriveBoards(items []Item) []WeeklyBoard {
	if len(items) == 0 {
		return nil
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueAt.Before(sorted[j].DueAt)
	})

	earliest := sorted[0].DueAt
	latest := sorted[len(sorted)-1].DueAt

	var boards []WeeklyBoard
	number := 0
	for start := weekStart(earliest); !start.After(latest); start = start.AddDate(0, 0, 7) {
		next := start.AddDate(0, 0, 7)

		var selected []Item
		for _, it := range sorted {
			if !it.DueAt.Before(start) && it.DueAt.Before(next) {
				selected = append(selected, it)
			}
		}
		if len(selected) == 0 {
			continue
		}

		number++
		end := start.AddDate(0, 0, 6)
		boards = append(boards, WeeklyBoard{
			Number:    number,
			StartDate: start,
			EndDate:   end,
			Title:     fmt.Sprintf("Week %d: %s - %s", number, start.Format("Jan 2"), end.Format("Jan 2")),
			Items:     selected,
		})
	}

	return boards
}

// Contains reports whether t falls inside the board's week window.
func (b WeeklyBoard) Contains(t time.Time) bool {
	return !t.Before(b.StartDate) && t.Before(b.StartDate.AddDate(0, 0, 7))
}
