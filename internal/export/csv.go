package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pdxmph/todos/internal/db"
)

// Header is the fixed first row of every CSV export
var Header = []string{"id", "task", "category", "status", "priority", "due_date", "created_at", "date_completed"}

// CSV writes one row per task. status is the stored integer code (1 open,
// 2 done), not its label.
type CSV struct{}

func (CSV) Name() string      { return "csv" }
func (CSV) Extension() string { return ".csv" }

func (CSV) Write(w io.Writer, tasks []db.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, t := range tasks {
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.Task,
			t.Category,
			strconv.Itoa(int(t.Status)),
			string(t.Priority),
			t.DueDate.String,
			timestamp(t),
			completed(t),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func init() {
	mustRegister(CSV{})
}
