package board

import (
	"time"

	"studyboard/internal/domain"
)

// Item is an assignment annotated with the metadata the board needs:
// the owning course and a single orderable due instant. Items are derived
// on every snapshot change and never mutated in place.
type Item struct {
	Assignment domain.Assignment
	SyllabusID int64
	CourseCode string
	CourseName string
	DueAt      time.Time
	// DueFallback is set when the due date/time could not be parsed and
	// DueAt was substituted with the reference time.
	DueFallback bool
}

// Flatten turns a list of syllabi into one sequence of board items,
// resolving each assignment's due instant. Assignments with malformed
// due fields are kept, stamped with now as a fallback instant.
func Flatten(syllabi []domain.Syllabus, now time.Time) []Item {
	var items []Item
	for _, s := range syllabi {
		for _, a := range s.Assignments {
			dueAt, ok := ParseDueInstant(a.DueDate, a.DueTime, now)
			items = append(items, Item{
				Assignment:  a,
				SyllabusID:  s.ID,
				CourseCode:  s.CourseCode,
				CourseName:  s.ClassName,
				DueAt:       dueAt,
				DueFallback: !ok,
			})
		}
	}
	return items
}
