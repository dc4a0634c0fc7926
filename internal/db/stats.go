package db

import (
	"fmt"
	"time"
)

// Stats counts tasks by state. A task is overdue when it is open and its
// due date is before today; malformed due dates are never overdue.
func (db *DB) Stats() (Stats, error) {
	tasks, err := db.ListTasks()
	if err != nil {
		return Stats{}, fmt.Errorf("loading tasks for stats: %w", err)
	}
	return Summarize(tasks, db.Today()), nil
}

// Summarize computes Stats over an in-memory task list
func Summarize(tasks []Task, today time.Time) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.IsDone() {
			s.Done++
		}
		if t.IsOverdue(today) {
			s.Overdue++
		}
	}
	s.Pending = s.Total - s.Done
	if s.Total > 0 {
		s.CompletionRate = s.Done * 100 / s.Total
	}
	return s
}
