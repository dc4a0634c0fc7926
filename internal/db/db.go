package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no task has the requested id
var ErrNotFound = errors.New("task not found")

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	path string
	now  func() time.Time
	log  logrus.FieldLogger
}

// Option configures a DB at Open time
type Option func(*DB)

// WithClock replaces time.Now for created/completed timestamps and the
// "today" used when counting overdue tasks
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// WithLogger sets the logger used for debug events
func WithLogger(log logrus.FieldLogger) Option {
	return func(db *DB) { db.log = log }
}

// Open opens the task database at dbPath, creating the file and the
// todos table when they don't exist yet
func Open(dbPath string, opts ...Option) (*DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// one process, one command: a single connection also keeps :memory: stable
	conn.SetMaxOpenConns(1)

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	db := &DB{conn: conn, path: dbPath, now: time.Now, log: quiet}
	for _, opt := range opts {
		opt(db)
	}

	if err := db.ensureSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	db.log.WithField("path", dbPath).Debug("database ready")

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the file the database was opened from
func (db *DB) Path() string {
	return db.path
}

const selectColumns = `
	SELECT id, task, category, status, priority, due_date, created_at, date_completed
	FROM todos
`

// Insert stores a new task and returns its assigned id. ID, Status,
// CreatedAt and CompletedAt on t are ignored: new tasks start open and
// are stamped with the current time.
func (db *DB) Insert(t Task) (int64, error) {
	if strings.TrimSpace(t.Task) == "" {
		return 0, fmt.Errorf("inserting task: description cannot be empty")
	}
	priority := t.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	var id int64
	err := db.withTx(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			INSERT INTO todos (task, category, status, priority, due_date, created_at, date_completed)
			VALUES (?, ?, ?, ?, ?, ?, NULL)
		`,
			t.Task,
			t.Category,
			StatusOpen,
			string(priority),
			t.DueDate,
			db.timestamp(),
		)
		if err != nil {
			return fmt.Errorf("inserting task: %w", err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting insert ID: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	db.log.WithField("id", id).Debug("inserted task")
	return id, nil
}

// ListTasks returns all tasks ordered by id
func (db *DB) ListTasks() ([]Task, error) {
	rows, err := db.conn.Query(selectColumns + ` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// GetTask retrieves a single task by id
func (db *DB) GetTask(id int64) (*Task, error) {
	row := db.conn.QueryRow(selectColumns+` WHERE id = ?`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTask removes a task. Deleting a missing id is not an error.
func (db *DB) DeleteTask(id int64) error {
	err := db.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM todos WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting task: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	db.log.WithField("id", id).Debug("deleted task")
	return nil
}

// UpdateTask overwrites the provided fields of a task. Status and
// timestamps are never touched. A missing id or an empty update is a no-op.
func (db *DB) UpdateTask(id int64, u TaskUpdate) error {
	if u.IsEmpty() {
		return nil
	}
	if u.Task != nil && strings.TrimSpace(*u.Task) == "" {
		return fmt.Errorf("updating task: description cannot be empty")
	}

	var sets []string
	var args []interface{}
	if u.Task != nil {
		sets = append(sets, "task = ?")
		args = append(args, *u.Task)
	}
	if u.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *u.Category)
	}
	if u.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*u.Priority))
	}
	if u.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, NewNullString(*u.DueDate))
	}
	args = append(args, id)

	query := `UPDATE todos SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	err := db.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("updating task: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	db.log.WithFields(logrus.Fields{"id": id, "fields": len(sets)}).Debug("updated task")
	return nil
}

// CompleteTask marks a task done and stamps date_completed with the
// current time, even if it was already done
func (db *DB) CompleteTask(id int64) error {
	err := db.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`UPDATE todos SET status = ?, date_completed = ? WHERE id = ?`,
			StatusDone, db.timestamp(), id,
		)
		if err != nil {
			return fmt.Errorf("completing task: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	db.log.WithField("id", id).Debug("completed task")
	return nil
}

// ClearCompleted deletes every done task and returns how many were removed
func (db *DB) ClearCompleted() (int64, error) {
	var removed int64
	err := db.withTx(func(tx *sql.Tx) error {
		result, err := tx.Exec(`DELETE FROM todos WHERE status = ?`, StatusDone)
		if err != nil {
			return fmt.Errorf("clearing completed tasks: %w", err)
		}
		removed, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("counting cleared tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	db.log.WithField("count", removed).Debug("cleared completed tasks")
	return removed, nil
}

// Reset drops the todos table and recreates it empty. Ids start over.
func (db *DB) Reset() error {
	err := db.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DROP TABLE IF EXISTS todos`); err != nil {
			return fmt.Errorf("dropping todos table: %w", err)
		}
		if _, err := tx.Exec(schema); err != nil {
			return fmt.Errorf("recreating todos table: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	db.log.WithField("path", db.path).Debug("database reset")
	return nil
}

// Search returns tasks whose description or category contains query,
// ignoring case, ordered by id. Case folding is done here rather than with
// SQLite's LOWER, which only folds ASCII.
func (db *DB) Search(query string) ([]Task, error) {
	tasks, err := db.ListTasks()
	if err != nil {
		return nil, fmt.Errorf("searching tasks: %w", err)
	}

	needle := strings.ToLower(query)
	results := []Task{}
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Task), needle) ||
			strings.Contains(strings.ToLower(t.Category), needle) {
			results = append(results, t)
		}
	}
	return results, nil
}

// Now returns the current time according to the DB clock
func (db *DB) Now() time.Time {
	return db.now()
}

// Today returns the current calendar date according to the DB clock
func (db *DB) Today() time.Time {
	return dateOnly(db.now())
}

func (db *DB) timestamp() string {
	return db.now().UTC().Format(TimestampLayout)
}

func (db *DB) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(s scanner) (Task, error) {
	var t Task
	var priority, createdAt string
	var completedAt sql.NullString

	err := s.Scan(
		&t.ID, &t.Task, &t.Category, &t.Status, &priority,
		&t.DueDate, &createdAt, &completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scanning task: %w", err)
	}
	t.Priority = Priority(priority)

	t.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return t, fmt.Errorf("parsing created_at of task %d: %w", t.ID, err)
	}
	if completedAt.Valid && completedAt.String != "" {
		done, err := parseTimestamp(completedAt.String)
		if err != nil {
			return t, fmt.Errorf("parsing date_completed of task %d: %w", t.ID, err)
		}
		t.CompletedAt = sql.NullTime{Time: done, Valid: true}
	}

	return t, nil
}

func scanTasks(rows *sql.Rows) ([]Task, error) {
	tasks := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// parseTimestamp accepts the stored layout and, for files written by
// other tools, RFC 3339
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
