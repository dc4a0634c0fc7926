package export

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdxmph/todos/internal/db"
)

var created = time.Date(2024, 5, 1, 9, 15, 30, 123456000, time.UTC)

func sampleTasks() []db.Task {
	return []db.Task{
		{
			ID:        1,
			Task:      "write code, carefully",
			Category:  "Code",
			Status:    db.StatusOpen,
			Priority:  db.PriorityHigh,
			DueDate:   db.NewNullString("2024-05-10"),
			CreatedAt: created,
		},
		{
			ID:          3,
			Task:        `say "hi"`,
			Category:    "Learn",
			Status:      db.StatusDone,
			Priority:    db.PriorityLow,
			CreatedAt:   created,
			CompletedAt: sql.NullTime{Time: created.Add(time.Hour), Valid: true},
		},
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV{}.Write(&buf, sampleTasks()))

	assert.True(t, strings.HasPrefix(buf.String(), "id,task,category,status,priority,due_date,created_at,date_completed\n"))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"1", "write code, carefully", "Code", "1", "high", "2024-05-10", "2024-05-01T09:15:30.123456", ""}, records[1])
	assert.Equal(t, []string{"3", `say "hi"`, "Learn", "2", "low", "", "2024-05-01T09:15:30.123456", "2024-05-01T10:15:30.123456"}, records[2])
}

func TestCSV_EmptyListWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV{}.Write(&buf, nil))
	assert.Equal(t, strings.Join(Header, ",")+"\n", buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", sampleTasks()))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "open", got[0]["status"])
	assert.Equal(t, float64(1), got[0]["status_code"])
	assert.Equal(t, "2024-05-10", got[0]["due_date"])
	assert.Nil(t, got[0]["date_completed"])
	assert.Equal(t, "done", got[1]["status"])
	assert.Nil(t, got[1]["due_date"])
}

func TestPDF(t *testing.T) {
	tasks := sampleTasks()
	tasks[0].Task = strings.Repeat("a very long task description ", 10)

	var buf bytes.Buffer
	require.NoError(t, PDF{}.Write(&buf, tasks))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		path, name, want string
	}{
		{"out.csv", "", "csv"},
		{"out.JSON", "", "json"},
		{"report.pdf", "", "pdf"},
		{"out.txt", "", "csv"},
		{"out", "", "csv"},
		{"out.csv", "json", "json"},
		{"out.csv", "PDF", "pdf"},
	}
	for _, tt := range tests {
		f, err := Resolve(tt.path, tt.name)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, f.Name(), tt.path)
	}

	_, err := Resolve("out.csv", "xml")
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "pdf"}, Formats())

	r := NewRegistry()
	require.NoError(t, r.Register(CSV{}))
	assert.Error(t, r.Register(CSV{}))
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale contents that are longer than nothing"), 0644))

	require.NoError(t, ToFile(path, CSV{}, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(Header, ",")+"\n", string(data))

	err = ToFile(filepath.Join(t.TempDir(), "missing", "x.csv"), CSV{}, nil)
	assert.Error(t, err)
}
