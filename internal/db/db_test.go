package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)

// setupTestDB opens a fresh database file in a temp dir with a fixed clock.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "nested", "todos.db"), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return database
}

func insert(t *testing.T, database *DB, task, category string, p Priority, due string) int64 {
	t.Helper()
	id, err := database.Insert(Task{Task: task, Category: category, Priority: p, DueDate: NewNullString(due)})
	require.NoError(t, err)
	return id
}

func TestOpen_CreatesFileAndIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "todos.db")

	first, err := Open(path)
	require.NoError(t, err)
	_, err = first.Insert(Task{Task: "keep me", Category: "Code"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	tasks, err := second.ListTasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, path, second.Path())
}

func TestInsert_GetTaskRoundTrip(t *testing.T) {
	database := setupTestDB(t)

	id := insert(t, database, "write code", "Code", PriorityHigh, "2024-07-01")

	got, err := database.GetTask(id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "write code", got.Task)
	assert.Equal(t, "Code", got.Category)
	assert.Equal(t, StatusOpen, got.Status)
	assert.Equal(t, PriorityHigh, got.Priority)
	assert.Equal(t, sql.NullString{String: "2024-07-01", Valid: true}, got.DueDate)
	assert.True(t, got.CreatedAt.Equal(fixedNow))
	assert.False(t, got.CompletedAt.Valid)
}

func TestInsert_Defaults(t *testing.T) {
	database := setupTestDB(t)

	id, err := database.Insert(Task{Task: "no priority", Category: "Learn"})
	require.NoError(t, err)

	got, err := database.GetTask(id)
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, got.Priority)
	assert.False(t, got.DueDate.Valid)

	t.Run("empty description rejected", func(t *testing.T) {
		_, err := database.Insert(Task{Task: "  ", Category: "Learn"})
		assert.Error(t, err)
	})
}

func TestGetTask_NotFound(t *testing.T) {
	database := setupTestDB(t)

	_, err := database.GetTask(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIdentifiers_IncreaseAndAreNeverReused(t *testing.T) {
	database := setupTestDB(t)

	a := insert(t, database, "a", "x", PriorityLow, "")
	b := insert(t, database, "b", "x", PriorityLow, "")
	require.Greater(t, b, a)

	require.NoError(t, database.DeleteTask(b))
	c := insert(t, database, "c", "x", PriorityLow, "")
	assert.Greater(t, c, b)

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, a, tasks[0].ID)
	assert.Equal(t, c, tasks[1].ID)
}

func TestDeleteTask_MissingIsNoop(t *testing.T) {
	database := setupTestDB(t)
	insert(t, database, "a", "x", PriorityLow, "")

	assert.NoError(t, database.DeleteTask(999))

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestUpdateTask(t *testing.T) {
	database := setupTestDB(t)
	id := insert(t, database, "original", "Learn", PriorityHigh, "2024-07-01")

	t.Run("category only", func(t *testing.T) {
		category := "Code"
		require.NoError(t, database.UpdateTask(id, TaskUpdate{Category: &category}))

		got, err := database.GetTask(id)
		require.NoError(t, err)
		assert.Equal(t, "Code", got.Category)
		assert.Equal(t, "original", got.Task)
		assert.Equal(t, PriorityHigh, got.Priority)
		assert.Equal(t, "2024-07-01", got.DueDate.String)
		assert.Equal(t, StatusOpen, got.Status)
	})

	t.Run("no fields is a noop", func(t *testing.T) {
		before, err := database.GetTask(id)
		require.NoError(t, err)

		require.NoError(t, database.UpdateTask(id, TaskUpdate{}))

		after, err := database.GetTask(id)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("all fields", func(t *testing.T) {
		task, category, due := "renamed", "Travel", "2024-08-02"
		low := PriorityLow
		require.NoError(t, database.UpdateTask(id, TaskUpdate{Task: &task, Category: &category, Priority: &low, DueDate: &due}))

		got, err := database.GetTask(id)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Task)
		assert.Equal(t, "Travel", got.Category)
		assert.Equal(t, PriorityLow, got.Priority)
		assert.Equal(t, "2024-08-02", got.DueDate.String)
	})

	t.Run("blank description rejected", func(t *testing.T) {
		for _, task := range []string{"", "   "} {
			task := task
			assert.Error(t, database.UpdateTask(id, TaskUpdate{Task: &task}), "%q", task)
		}

		got, err := database.GetTask(id)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Task)
	})

	t.Run("empty due clears the date", func(t *testing.T) {
		due := ""
		require.NoError(t, database.UpdateTask(id, TaskUpdate{DueDate: &due}))

		got, err := database.GetTask(id)
		require.NoError(t, err)
		assert.False(t, got.DueDate.Valid)
	})

	t.Run("missing id is a noop", func(t *testing.T) {
		task := "ghost"
		assert.NoError(t, database.UpdateTask(999, TaskUpdate{Task: &task}))
	})
}

func TestCompleteAndClearCompleted(t *testing.T) {
	database := setupTestDB(t)
	open := insert(t, database, "still open", "x", PriorityLow, "")
	done := insert(t, database, "finish me", "x", PriorityLow, "")

	require.NoError(t, database.CompleteTask(done))

	got, err := database.GetTask(done)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, got.Status)
	require.True(t, got.CompletedAt.Valid)
	assert.True(t, got.CompletedAt.Time.Equal(fixedNow))

	// completing again is allowed and just refreshes the timestamp
	require.NoError(t, database.CompleteTask(done))

	removed, err := database.ClearCompleted()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, open, tasks[0].ID)

	removed, err = database.ClearCompleted()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestReset(t *testing.T) {
	database := setupTestDB(t)
	insert(t, database, "a", "x", PriorityLow, "")
	insert(t, database, "b", "x", PriorityLow, "")

	require.NoError(t, database.Reset())

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	id := insert(t, database, "fresh", "x", PriorityLow, "")
	assert.Equal(t, int64(1), id)
}

func TestSearch(t *testing.T) {
	database := setupTestDB(t)
	byCategory := insert(t, database, "review pull request", "Code", PriorityLow, "")
	byTask := insert(t, database, "write code", "Learn", PriorityLow, "")
	insert(t, database, "book flights", "Travel", PriorityLow, "")

	results, err := database.Search("code")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, byCategory, results[0].ID)
	assert.Equal(t, byTask, results[1].ID)

	t.Run("wildcards match literally", func(t *testing.T) {
		insert(t, database, "reach 100% coverage", "Code", PriorityLow, "")

		results, err := database.Search("0%")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "reach 100% coverage", results[0].Task)

		results, err = database.Search("_")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("folds non-ascii case", func(t *testing.T) {
		insert(t, database, "Éditer la vidéo", "YouTube", PriorityLow, "")

		results, err := database.Search("éditer")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Éditer la vidéo", results[0].Task)

		results, err = database.Search("VIDÉO")
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}

func TestStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		database := setupTestDB(t)

		s, err := database.Stats()
		require.NoError(t, err)
		assert.Equal(t, Stats{}, s)
	})

	t.Run("one done one overdue", func(t *testing.T) {
		database := setupTestDB(t)
		done := insert(t, database, "done", "x", PriorityLow, "")
		insert(t, database, "late", "x", PriorityLow, "2024-06-14")
		require.NoError(t, database.CompleteTask(done))

		s, err := database.Stats()
		require.NoError(t, err)
		assert.Equal(t, Stats{Total: 2, Done: 1, Pending: 1, Overdue: 1, CompletionRate: 50}, s)
	})

	t.Run("due today and done-late are not overdue", func(t *testing.T) {
		database := setupTestDB(t)
		insert(t, database, "today", "x", PriorityLow, "2024-06-15")
		late := insert(t, database, "late but done", "x", PriorityLow, "2024-01-01")
		insert(t, database, "open", "x", PriorityLow, "")
		require.NoError(t, database.CompleteTask(late))

		s, err := database.Stats()
		require.NoError(t, err)
		assert.Equal(t, 0, s.Overdue)
		assert.Equal(t, 33, s.CompletionRate)
	})
}

func TestSummarize_MalformedDueDateNotOverdue(t *testing.T) {
	tasks := []Task{
		{Status: StatusOpen, DueDate: NewNullString("not-a-date")},
		{Status: StatusOpen, DueDate: NewNullString("2000-01-01")},
	}

	s := Summarize(tasks, fixedNow)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, 0, s.CompletionRate)
}

func TestSeedFixtures(t *testing.T) {
	database := setupTestDB(t)

	n, err := SeedFixtures(database)
	require.NoError(t, err)

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	assert.Len(t, tasks, n)

	s, err := database.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Done)
	assert.Equal(t, 2, s.Overdue)
}
