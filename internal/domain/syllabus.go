package domain

import (
	"time"
)

type Assignment struct {
	ID             int64
	SyllabusID     int64
	Name           string
	DueDate        string // YYYY-MM-DD
	DueTime        string // 12-hour clock, e.g. "11:59 PM"
	SubmissionLink string
	Status         AssignmentStatus
	CreatedAt      time.Time
	EditedAt       time.Time
}

type Syllabus struct {
	ID          int64
	ClassName   string
	CourseCode  string
	Assignments []Assignment
	CreatedAt   time.Time
	EditedAt    time.Time
}
