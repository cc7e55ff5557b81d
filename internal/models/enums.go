package models

// Task status and priority are closed string enumerations; values outside
// the sets below are rejected before they reach the store.

const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

var TaskStatuses = []string{StatusTodo, StatusInProgress, StatusDone}

var TaskPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func ValidStatus(s string) bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func ValidPriority(p string) bool {
	for _, v := range TaskPriorities {
		if p == v {
			return true
		}
	}
	return false
}
