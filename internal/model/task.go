package model

import (
	"strings"
	"time"

	"github.com/nissyi-gh/taskroom/internal/due"
)

// Priority is the display priority of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the known priorities from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// NormalizePriority maps a raw priority to a known one. Anything unrecognised,
// including the empty string, is medium.
func NormalizePriority(raw string) Priority {
	switch p := Priority(strings.ToLower(strings.TrimSpace(raw))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p
	default:
		return PriorityMedium
	}
}

// Next returns the priority that follows p in a high -> medium -> low cycle.
func (p Priority) Next() Priority {
	switch NormalizePriority(string(p)) {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// Task represents a single task as returned by the backend.
type Task struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"due_date,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// Due returns the parsed due date. ok is false when the task has no due date
// or it cannot be parsed.
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == nil {
		return time.Time{}, false
	}
	return due.Parse(*t.DueDate)
}

// IsOverdue returns true if the task is past its due date and not completed.
func (t Task) IsOverdue(now time.Time) bool {
	d, ok := t.Due()
	if !ok {
		return false
	}
	return due.IsOverdue(t.Completed, d, now)
}

// NewTask is the body of a create request.
type NewTask struct {
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    string  `json:"priority,omitempty" yaml:"priority,omitempty"`
	DueDate     *string `json:"due_date" yaml:"due_date,omitempty"`
}

// TaskPatch is the body of an update request. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// Filter narrows a task listing. Empty fields are not sent.
type Filter struct {
	Status   string // "pending" or "completed"
	Priority string
}

// Stats holds the counters computed by the backend for a room.
type Stats struct {
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	PendingTasks   int     `json:"pending_tasks"`
	OverdueTasks   int     `json:"overdue_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}
