// Package render draws task listings and summaries for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pdxmph/todos/internal/db"
)

// PriorityColors maps priorities to ANSI colours
var PriorityColors = map[db.Priority]string{
	db.PriorityHigh:   "1",
	db.PriorityMedium: "3",
	db.PriorityLow:    "2",
}

// Renderer styles output for one writer. Colours are dropped
// automatically when the writer is not a terminal.
type Renderer struct {
	lg             *lipgloss.Renderer
	categoryColors map[string]string

	title   lipgloss.Style
	header  lipgloss.Style
	dim     lipgloss.Style
	border  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
	info    lipgloss.Style
}

// New creates a renderer for w. categoryColors maps category names to
// lipgloss colours; unknown categories are left unstyled.
func New(w io.Writer, categoryColors map[string]string) *Renderer {
	lg := lipgloss.NewRenderer(w)
	return &Renderer{
		lg:             lg,
		categoryColors: categoryColors,
		title:          lg.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		header:         lg.NewStyle().Bold(true).Foreground(lipgloss.Color("4")).Padding(0, 1),
		dim:            lg.NewStyle().Faint(true),
		border:         lg.NewStyle().Foreground(lipgloss.Color("240")),
		success:        lg.NewStyle().Foreground(lipgloss.Color("2")),
		warning:        lg.NewStyle().Foreground(lipgloss.Color("3")),
		danger:         lg.NewStyle().Foreground(lipgloss.Color("1")),
		info:           lg.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Title renders a section heading
func (r *Renderer) Title(s string) string { return r.title.Render(s) }

// Success renders a confirmation message
func (r *Renderer) Success(s string) string { return r.success.Render(s) }

// Warning renders a notice
func (r *Renderer) Warning(s string) string { return r.warning.Render(s) }

// Danger renders a destructive-action message
func (r *Renderer) Danger(s string) string { return r.danger.Render(s) }

// Info renders a neutral status message
func (r *Renderer) Info(s string) string { return r.info.Render(s) }

// Dim renders a hint
func (r *Renderer) Dim(s string) string { return r.dim.Render(s) }

// Category colours a category name
func (r *Renderer) Category(name string) string {
	color, ok := r.categoryColors[name]
	if !ok {
		return name
	}
	return r.lg.NewStyle().Foreground(lipgloss.Color(color)).Render(name)
}

// Priority colours a priority
func (r *Renderer) Priority(p db.Priority) string {
	color, ok := PriorityColors[p]
	if !ok {
		return string(p)
	}
	return r.lg.NewStyle().Foreground(lipgloss.Color(color)).Render(string(p))
}

// Done renders the completion mark
func (r *Renderer) Done(t db.Task) string {
	if t.IsDone() {
		return r.success.Render("✓")
	}
	return r.danger.Render("✗")
}

// Tasks renders tasks as a table. The # column is the 1-based row number
// in the order given.
func (r *Renderer) Tasks(tasks []db.Task) string {
	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		due := "-"
		if t.DueDate.Valid {
			due = t.DueDate.String
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.Task,
			r.Category(t.Category),
			r.Priority(t.Priority),
			due,
			r.Done(t),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.border).
		Headers("#", "Task", "Category", "Priority", "Due", "Done").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			// row 0 is the header
			if row == 0 {
				return r.header
			}
			style := r.lg.NewStyle().Padding(0, 1)
			switch col {
			case 0:
				return style.Faint(true)
			case 3, 4, 5:
				return style.Align(lipgloss.Center)
			}
			return style
		})

	return tbl.String()
}

// Stats renders the summary block
func (r *Renderer) Stats(s db.Stats) string {
	var b strings.Builder
	b.WriteString(r.Title("Stats"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total: %d\n", s.Total)
	fmt.Fprintf(&b, "Completed: %d\n", s.Done)
	fmt.Fprintf(&b, "Pending: %d\n", s.Pending)
	fmt.Fprintf(&b, "Overdue: %d\n", s.Overdue)
	fmt.Fprintf(&b, "Completion rate: %d%%\n", s.CompletionRate)
	return b.String()
}
