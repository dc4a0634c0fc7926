package db

import (
	"fmt"
)

// fixture describes a sample task. dueInDays is relative to today; nil
// means no due date.
type fixture struct {
	task      string
	category  string
	priority  Priority
	dueInDays *int
	done      bool
}

func days(n int) *int { return &n }

var fixtures = []fixture{
	// Learning
	{task: "Finish the Go concurrency chapter", category: "Learn", priority: PriorityHigh, dueInDays: days(3)},
	{task: "Read the SQLite query planner docs", category: "Learn", priority: PriorityLow},

	// Code
	{task: "Write code for the CSV exporter", category: "Code", priority: PriorityHigh, dueInDays: days(-2)},
	{task: "Refactor config loading", category: "Code", priority: PriorityMedium, dueInDays: days(7), done: true},
	{task: "Add tests for search", category: "Code", priority: PriorityMedium},

	// YouTube
	{task: "Edit the terminal tools video", category: "YouTube", priority: PriorityMedium, dueInDays: days(1)},
	{task: "Record intro for the next episode", category: "YouTube", priority: PriorityLow, dueInDays: days(14)},

	// Gaming
	{task: "Beat the second boss", category: "Gaming", priority: PriorityLow, done: true},

	// Travel
	{task: "Book train tickets", category: "Travel", priority: PriorityHigh, dueInDays: days(-5)},
	{task: "Renew passport", category: "Travel", priority: PriorityMedium, dueInDays: days(30)},
}

// SeedFixtures adds a realistic sample data set to the database and
// returns how many tasks were created
func SeedFixtures(database *DB) (int, error) {
	today := database.Today()

	for i, f := range fixtures {
		t := Task{
			Task:     f.task,
			Category: f.category,
			Priority: f.priority,
		}
		if f.dueInDays != nil {
			t.DueDate = NewNullString(today.AddDate(0, 0, *f.dueInDays).Format(DateLayout))
		}

		id, err := database.Insert(t)
		if err != nil {
			return i, fmt.Errorf("adding fixture %q: %w", f.task, err)
		}

		if f.done {
			if err := database.CompleteTask(id); err != nil {
				return i, fmt.Errorf("completing fixture %q: %w", f.task, err)
			}
		}
	}

	return len(fixtures), nil
}
