package db

import (
	"database/sql"
	"time"
)

// Status is the stored completion state of a task
type Status int

const (
	StatusOpen Status = 1
	StatusDone Status = 2
)

// String returns the user-facing label for the status
func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// Priority is one of low, medium or high
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the accepted priorities, highest first
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank orders priorities for sorting: high=0, medium=1, low=2.
// Anything unrecognised ranks with medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// TimestampLayout is how created_at and date_completed are stored
const TimestampLayout = "2006-01-02T15:04:05.000000"

// DateLayout is how due dates are stored
const DateLayout = "2006-01-02"

// Task represents a single to-do record
type Task struct {
	ID          int64
	Task        string
	Category    string
	Status      Status
	Priority    Priority
	DueDate     sql.NullString
	CreatedAt   time.Time
	CompletedAt sql.NullTime
}

// IsDone reports whether the task has been completed
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// Due parses the due date. ok is false when there is none or it is malformed.
func (t Task) Due() (time.Time, bool) {
	if !t.DueDate.Valid || t.DueDate.String == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.DueDate.String)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// IsOverdue reports whether an open task's due date falls before today.
// today is compared by calendar date only.
func (t Task) IsOverdue(today time.Time) bool {
	if t.Status != StatusOpen {
		return false
	}
	due, ok := t.Due()
	if !ok {
		return false
	}
	return due.Before(dateOnly(today))
}

// TaskUpdate carries optional new values for UpdateTask.
// A nil field is left untouched. Task must not be blank when set; an
// empty DueDate clears the due date.
type TaskUpdate struct {
	Task     *string
	Category *string
	Priority *Priority
	DueDate  *string
}

// IsEmpty reports whether no field was provided
func (u TaskUpdate) IsEmpty() bool {
	return u.Task == nil && u.Category == nil && u.Priority == nil && u.DueDate == nil
}

// Stats summarises the collection
type Stats struct {
	Total          int
	Done           int
	Pending        int
	Overdue        int
	CompletionRate int
}

// NewNullString creates a sql.NullString from a string
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
