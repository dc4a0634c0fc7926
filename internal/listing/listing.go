// Package listing turns a stored task collection into the view a command
// asked for: filtering, sorting, input normalisation and mapping the
// row numbers shown to the user back to task ids.
package listing

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pdxmph/todos/internal/db"
)

// ErrInvalidArgument marks bad user input: an unknown priority, status or
// sort key, an unparseable date, or a position outside the list
var ErrInvalidArgument = errors.New("invalid argument")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// SortKey names a supported ordering
type SortKey string

const (
	SortByID       SortKey = "id"
	SortByPriority SortKey = "priority"
	SortByDue      SortKey = "due"
	SortByCreated  SortKey = "created"
	SortByStatus   SortKey = "status"
)

// SortKeys lists every accepted sort key in display order
var SortKeys = []SortKey{SortByID, SortByPriority, SortByDue, SortByCreated, SortByStatus}

// Options enumerates the recognised filters and the sort order. Zero
// values mean "don't filter"; an empty Sort means SortByID. DueBefore and
// DueAfter are normalised YYYY-MM-DD dates.
type Options struct {
	Category  string
	Status    *db.Status
	Priority  *db.Priority
	DueBefore string
	DueAfter  string
	Sort      SortKey
}

// Apply filters tasks and sorts the survivors. The input slice is not
// modified.
func Apply(tasks []db.Task, opts Options) []db.Task {
	return Sort(Filter(tasks, opts), opts.Sort)
}

// Filter keeps the tasks matching every filter set in opts. Due-date
// bounds are exclusive and drop tasks with no or unreadable due date.
func Filter(tasks []db.Task, opts Options) []db.Task {
	filtered := make([]db.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t, opts) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func keep(t db.Task, opts Options) bool {
	if opts.Category != "" && t.Category != opts.Category {
		return false
	}
	if opts.Status != nil && t.Status != *opts.Status {
		return false
	}
	if opts.Priority != nil && t.Priority != *opts.Priority {
		return false
	}
	if opts.DueBefore != "" || opts.DueAfter != "" {
		due, ok := t.Due()
		if !ok {
			return false
		}
		// both sides are YYYY-MM-DD so string order is date order
		d := due.Format(db.DateLayout)
		if opts.DueBefore != "" && d >= opts.DueBefore {
			return false
		}
		if opts.DueAfter != "" && d <= opts.DueAfter {
			return false
		}
	}
	return true
}

// Sort returns a stably sorted copy of tasks
func Sort(tasks []db.Task, key SortKey) []db.Task {
	sorted := make([]db.Task, len(tasks))
	copy(sorted, tasks)

	var less func(a, b db.Task) bool
	switch key {
	case SortByPriority:
		less = func(a, b db.Task) bool { return a.Priority.Rank() < b.Priority.Rank() }
	case SortByDue:
		less = func(a, b db.Task) bool {
			if a.DueDate.Valid != b.DueDate.Valid {
				return a.DueDate.Valid
			}
			return a.DueDate.String < b.DueDate.String
		}
	case SortByCreated:
		less = func(a, b db.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByStatus:
		less = func(a, b db.Task) bool { return a.Status < b.Status }
	default:
		less = func(a, b db.Task) bool { return a.ID < b.ID }
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

// ParseSortKey validates a --sort value. Empty means id.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByID, nil
	}
	for _, k := range SortKeys {
		if string(k) == strings.ToLower(s) {
			return k, nil
		}
	}
	return "", invalid("sort must be one of %s", joinKeys())
}

// ParsePriority validates a priority value
func ParsePriority(s string) (db.Priority, error) {
	switch p := db.Priority(s); p {
	case db.PriorityLow, db.PriorityMedium, db.PriorityHigh:
		return p, nil
	}
	return "", invalid("priority must be low, medium, or high")
}

// ParseStatus maps "open" and "done" (any case) to a status
func ParseStatus(s string) (db.Status, error) {
	switch strings.ToLower(s) {
	case "open":
		return db.StatusOpen, nil
	case "done":
		return db.StatusDone, nil
	}
	return 0, invalid("status must be 'open' or 'done'")
}

// ResolvePosition maps a 1-based row number from the default listing to
// the task id at that row. tasks must be the full id-ordered list fetched
// for this invocation.
func ResolvePosition(tasks []db.Task, position int) (int64, error) {
	if position < 1 || position > len(tasks) {
		return 0, invalid("invalid item number %d", position)
	}
	return tasks[position-1].ID, nil
}

func joinKeys() string {
	keys := make([]string, len(SortKeys))
	for i, k := range SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, "|")
}
