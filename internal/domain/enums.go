package domain

type AssignmentStatus string

const (
	AssignmentStatusNotStarted AssignmentStatus = "NOT_STARTED"
	AssignmentStatusInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentStatusDone       AssignmentStatus = "DONE"
)

func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusNotStarted, AssignmentStatusInProgress, AssignmentStatusDone:
		return true
	default:
		return false
	}
}

// ToAssignmentStatus maps a raw string to a status, defaulting to NOT_STARTED.
func ToAssignmentStatus(status string) AssignmentStatus {
	switch status {
	case "IN_PROGRESS":
		return AssignmentStatusInProgress
	case "DONE":
		return AssignmentStatusDone
	default:
		return AssignmentStatusNotStarted
	}
}
