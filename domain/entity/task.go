package entity

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
// OVERDUE is derived by the task service; the replica mirrors it as-is.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusOverdue    TaskStatus = "OVERDUE"
)

// Priority represents task priority
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Task is the denormalized task record mirrored from the task service.
// The replica never originates or mutates these; they are replaced wholesale
// on every sync.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	UserID      int64      `json:"userId"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ParseStatus converts a string to a TaskStatus, case-insensitively
func ParseStatus(s string) (TaskStatus, error) {
	switch TaskStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case TaskStatusTodo:
		return TaskStatusTodo, nil
	case TaskStatusInProgress:
		return TaskStatusInProgress, nil
	case TaskStatusDone:
		return TaskStatusDone, nil
	case TaskStatusOverdue:
		return TaskStatusOverdue, nil
	default:
		return "", fmt.Errorf("unknown task status: %q", s)
	}
}

// ParsePriority converts a string to a Priority, case-insensitively
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("unknown priority: %q", s)
	}
}

// Weight returns the ordinal used when sorting by priority
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}
