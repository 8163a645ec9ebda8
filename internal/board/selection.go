package board

import (
	"time"
)

// AutoSelect picks the board to display when no explicit choice has been
// made: the board whose week contains now, else the earliest board.
// Returns -1 when there are no boards.
func AutoSelect(boards []WeeklyBoard, now time.Time) int {
	if len(boards) == 0 {
		return -1
	}
	for i, b := range boards {
		if b.Contains(now) {
			return i
		}
	}
	return 0
}
