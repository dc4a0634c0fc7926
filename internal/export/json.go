package export

import (
	"encoding/json"
	"io"

	"github.com/pdxmph/todos/internal/db"
)

type jsonTask struct {
	ID            int64   `json:"id"`
	Task          string  `json:"task"`
	Category      string  `json:"category"`
	Status        string  `json:"status"`
	StatusCode    int     `json:"status_code"`
	Priority      string  `json:"priority"`
	DueDate       *string `json:"due_date"`
	CreatedAt     string  `json:"created_at"`
	DateCompleted *string `json:"date_completed"`
}

// JSON writes an indented array of task objects
type JSON struct{}

func (JSON) Name() string      { return "json" }
func (JSON) Extension() string { return ".json" }

func (JSON) Write(w io.Writer, tasks []db.Task) error {
	out := make([]jsonTask, 0, len(tasks))
	for _, t := range tasks {
		jt := jsonTask{
			ID:         t.ID,
			Task:       t.Task,
			Category:   t.Category,
			Status:     t.Status.String(),
			StatusCode: int(t.Status),
			Priority:   string(t.Priority),
			CreatedAt:  timestamp(t),
		}
		if t.DueDate.Valid {
			due := t.DueDate.String
			jt.DueDate = &due
		}
		if t.CompletedAt.Valid {
			done := completed(t)
			jt.DateCompleted = &done
		}
		out = append(out, jt)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	mustRegister(JSON{})
}
