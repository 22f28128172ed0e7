package view

// Task status as the UI renders it vs. as the wire carries it. The only
// divergent variant is in_progress/in-progress; everything else is identical.

const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"

	apiStatusInProgress = "in_progress"
)

// APIToUIStatus translates a wire task status to the UI form.
// Unknown values pass through unchanged.
func APIToUIStatus(s string) string {
	if s == apiStatusInProgress {
		return StatusInProgress
	}
	return s
}

// UIToAPIStatus is the inverse of APIToUIStatus.
func UIToAPIStatus(s string) string {
	if s == StatusInProgress {
		return apiStatusInProgress
	}
	return s
}

// ValidUIStatus reports whether s is one of the three board columns. All six
// directed transitions between them are allowed; there is no enforced linear
// workflow.
func ValidUIStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// Project status values, server-computed.
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectOverdue   = "overdue"
)
