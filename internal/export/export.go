// Package export writes task lists to files. CSV is the interchange
// format; JSON and PDF are also available.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdxmph/todos/internal/db"
)

// DefaultFormat is used when neither a format name nor a known file
// extension is given
const DefaultFormat = "csv"

// Resolve picks the format for path: an explicit name wins, then the file
// extension, then DefaultFormat
func Resolve(path, name string) (Format, error) {
	if name != "" {
		return Lookup(strings.ToLower(name))
	}
	if f, ok := defaultRegistry.ByExtension(strings.ToLower(filepath.Ext(path))); ok {
		return f, nil
	}
	return Lookup(DefaultFormat)
}

// Write renders tasks to w in the named format
func Write(w io.Writer, name string, tasks []db.Task) error {
	f, err := Lookup(name)
	if err != nil {
		return err
	}
	return f.Write(w, tasks)
}

// ToFile writes tasks to path, replacing any existing file
func ToFile(path string, f Format, tasks []db.Task) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	if err := f.Write(out, tasks); err != nil {
		out.Close()
		return fmt.Errorf("writing %s export: %w", f.Name(), err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	return nil
}

func timestamp(t db.Task) string {
	return t.CreatedAt.UTC().Format(db.TimestampLayout)
}

func completed(t db.Task) string {
	if !t.CompletedAt.Valid {
		return ""
	}
	return t.CompletedAt.Time.UTC().Format(db.TimestampLayout)
}
