package db

import "fmt"

const schema = `
CREATE TABLE IF NOT EXISTS todos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    task TEXT NOT NULL,
    category TEXT NOT NULL,
    status INTEGER NOT NULL CHECK (status IN (1, 2)),
    priority TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high')),
    due_date TEXT,
    created_at TEXT NOT NULL,
    date_completed TEXT
);`

// ensureSchema creates the todos table if it is missing. Safe to run on
// every open.
func (db *DB) ensureSchema() error {
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
