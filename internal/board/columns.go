package board

import (
	"studyboard/internal/domain"
)

type ColumnID string

const (
	ColumnNotStarted ColumnID = "not-started"
	ColumnInProgress ColumnID = "in-progress"
	ColumnDone       ColumnID = "done"
)

// Columns is the three-way status partition of a board. It is a pure
// projection of each item's status field, recomputed whenever the
// underlying data changes; it is never the source of truth.
type Columns struct {
	NotStarted []Item
	InProgress []Item
	Done       []Item
}

// DeriveColumns partitions items by status, preserving each group's
// relative order from the input sequence.
func DeriveColumns(items []Item) Columns {
	var cols Columns
	for _, it := range items {
		switch it.Assignment.Status {
		case domain.AssignmentStatusInProgress:
			cols.InProgress = append(cols.InProgress, it)
		case domain.AssignmentStatusDone:
			cols.Done = append(cols.Done, it)
		default:
			cols.NotStarted = append(cols.NotStarted, it)
		}
	}
	return cols
}

// StatusForColumn maps a drop-target column id to the status it stores.
func StatusForColumn(id ColumnID) (domain.AssignmentStatus, bool) {
	switch id {
	case ColumnNotStarted:
		return domain.AssignmentStatusNotStarted, true
	case ColumnInProgress:
		return domain.AssignmentStatusInProgress, true
	case ColumnDone:
		return domain.AssignmentStatusDone, true
	default:
		return "", false
	}
}

// ColumnForStatus is the inverse of StatusForColumn. Unknown statuses
// land in not-started, matching the enum default.
func ColumnForStatus(s domain.AssignmentStatus) ColumnID {
	switch s {
	case domain.AssignmentStatusInProgress:
		return ColumnInProgress
	case domain.AssignmentStatusDone:
		return ColumnDone
	default:
		return ColumnNotStarted
	}
}
