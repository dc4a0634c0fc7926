package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/todos/internal/db"
	"github.com/pdxmph/todos/internal/listing"
	"github.com/pdxmph/todos/internal/render"
)

// Model represents the browser state
type Model struct {
	db         *db.DB
	tasks      []db.Task
	render     *render.Renderer
	selected   int
	width      int
	height     int
	sort       int // index into listing.SortKeys
	filterMode bool
	filter     textinput.Model
	status     string
	err        error

	// Delete confirmation mode
	deleteConfirmMode bool
	deleteTaskID      int64
}

// Styles
var (
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// New creates a new browser model
func New(database *db.DB, r *render.Renderer) (*Model, error) {
	// Load initial tasks
	tasks, err := database.ListTasks()
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	// Setup filter input
	ti := textinput.New()
	ti.Placeholder = "Filter tasks..."
	ti.Width = 30
	ti.CharLimit = 50
	ti.Prompt = "> "
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	return &Model{
		db:     database,
		tasks:  tasks,
		render: r,
		filter: ti,
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.width > 0 {
			m.filter.Width = m.width/2 - 4
		}
		return m, nil

	case tea.KeyMsg:
		if m.deleteConfirmMode {
			if msg.String() == "y" || msg.String() == "Y" {
				if err := m.db.DeleteTask(m.deleteTaskID); err != nil {
					m.err = err
				} else {
					m.status = fmt.Sprintf("Deleted task (id=%d)", m.deleteTaskID)
					m.reload()
				}
			}
			// Any other key cancels
			m.deleteConfirmMode = false
			m.deleteTaskID = 0
			return m, nil
		}

		if m.filterMode {
			switch msg.String() {
			case "esc":
				m.filterMode = false
				m.filter.Blur()
				m.filter.SetValue("")
				m.selected = m.ensureValidSelection()
				return m, nil
			case "enter":
				m.filterMode = false
				m.filter.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.selected = m.ensureValidSelection()
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "j", "down":
			if m.selected < len(m.visibleTasks())-1 {
				m.selected++
			}

		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}

		case "g", "home":
			m.selected = 0

		case "G", "end":
			if n := len(m.visibleTasks()); n > 0 {
				m.selected = n - 1
			}

		case "/":
			m.filterMode = true
			cmd := m.filter.Focus()
			return m, cmd

		case "s":
			m.sort = (m.sort + 1) % len(listing.SortKeys)
			m.selected = 0
			m.status = "Sorted by " + string(listing.SortKeys[m.sort])

		case "r":
			m.reload()
			m.status = "Reloaded"

		case "x":
			if t, ok := m.current(); ok {
				if err := m.db.CompleteTask(t.ID); err != nil {
					m.err = err
				} else {
					m.status = fmt.Sprintf("Completed task (id=%d)", t.ID)
					m.reload()
				}
			}

		case "d":
			if t, ok := m.current(); ok {
				m.deleteConfirmMode = true
				m.deleteTaskID = t.ID
			}
		}
	}

	return m, nil
}

// reload re-reads the task list from the database
func (m *Model) reload() {
	tasks, err := m.db.ListTasks()
	if err != nil {
		m.err = err
		return
	}
	m.tasks = tasks
	m.selected = m.ensureValidSelection()
}

// visibleTasks returns tasks in the current sort order matching the text filter
func (m Model) visibleTasks() []db.Task {
	tasks := listing.Apply(m.tasks, listing.Options{Sort: listing.SortKeys[m.sort]})

	if m.filter.Value() == "" {
		return tasks
	}

	filter := strings.ToLower(m.filter.Value())
	var filtered []db.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Task), filter) ||
			strings.Contains(strings.ToLower(t.Category), filter) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func (m Model) current() (db.Task, bool) {
	tasks := m.visibleTasks()
	if len(tasks) == 0 || m.selected >= len(tasks) {
		return db.Task{}, false
	}
	return tasks[m.selected], true
}

// ensureValidSelection ensures the current selection is within bounds
func (m Model) ensureValidSelection() int {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return 0
	}
	if m.selected >= len(tasks) {
		return len(tasks) - 1
	}
	if m.selected < 0 {
		return 0
	}
	return m.selected
}

// View renders the UI
func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.deleteConfirmMode {
		return m.renderDeleteConfirmation()
	}

	listWidth := m.width / 2
	detailWidth := m.width - listWidth - 4 // account for borders

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(listWidth).Height(m.height-3).Render(m.renderList(listWidth, m.height-3)),
		borderStyle.Width(detailWidth).Height(m.height-3).Render(m.renderDetail(detailWidth)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderHelp())
}

// renderList renders the task list
func (m Model) renderList(width, height int) string {
	var lines []string

	if m.filterMode || m.filter.Value() != "" {
		lines = append(lines, m.filter.View(), "")
		height -= 2
	}

	tasks := m.visibleTasks()
	today := m.db.Today()

	header := fmt.Sprintf("Todos (%d) [sort:%s]", len(tasks), listing.SortKeys[m.sort])
	lines = append(lines, header)
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))

	visibleHeight := height - 2
	startIdx := 0
	if m.selected >= visibleHeight {
		startIdx = m.selected - visibleHeight + 1
	}

	for i := startIdx; i < len(tasks) && i < startIdx+visibleHeight; i++ {
		t := tasks[i]

		mark := "  "
		if t.IsOverdue(today) {
			mark = "* "
		} else if t.IsDone() {
			mark = "✓ "
		}
		line := fmt.Sprintf("%s%2d %s", mark, i+1, t.Task)
		line += " " + labelStyle.Render("["+t.Category+"]")

		switch {
		case i == m.selected:
			line = selectedStyle.Render(line)
		case t.IsDone():
			line = doneStyle.Render(line)
		case t.IsOverdue(today):
			line = overdueStyle.Render("*") + line[1:]
		}

		lines = append(lines, line)
	}

	if len(tasks) == 0 {
		lines = append(lines, "No tasks match your filters.")
	}

	return strings.Join(lines, "\n")
}

// renderDetail renders the selected task
func (m Model) renderDetail(width int) string {
	t, ok := m.current()
	if !ok {
		return "No task selected"
	}

	r := m.render

	var lines []string
	lines = append(lines, t.Task)
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("ID: %d", t.ID))
	lines = append(lines, fmt.Sprintf("Category: %s", r.Category(t.Category)))
	lines = append(lines, fmt.Sprintf("Priority: %s", r.Priority(t.Priority)))
	lines = append(lines, fmt.Sprintf("Status: %s", t.Status))

	if t.DueDate.Valid {
		due := fmt.Sprintf("Due: %s", t.DueDate.String)
		if t.IsOverdue(m.db.Today()) {
			due += " " + overdueStyle.Render("(overdue)")
		}
		lines = append(lines, due)
	} else {
		lines = append(lines, "Due: -")
	}

	lines = append(lines, fmt.Sprintf("Created: %s", t.CreatedAt.Local().Format("2006-01-02 15:04")))
	if t.CompletedAt.Valid {
		days := int(m.db.Now().Sub(t.CompletedAt.Time).Hours() / 24)
		lines = append(lines, fmt.Sprintf("Completed: %s (%d days ago)",
			t.CompletedAt.Time.Local().Format("2006-01-02 15:04"), days))
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help line
func (m Model) renderHelp() string {
	if m.filterMode {
		return " type to filter • Enter: keep • Esc: clear"
	}
	help := " j/k: navigate • /: filter • s: sort • x: complete • d: delete • r: reload • q: quit"
	if m.status != "" {
		help += "  " + labelStyle.Render(m.status)
	}
	return help
}

// renderDeleteConfirmation renders the delete confirmation prompt
func (m Model) renderDeleteConfirmation() string {
	var name string
	for _, t := range m.tasks {
		if t.ID == m.deleteTaskID {
			name = t.Task
			break
		}
	}

	width := 60
	height := 7

	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-4).
		Align(lipgloss.Center, lipgloss.Center).
		Render(fmt.Sprintf("Delete task '%s'? (y/n)", name))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(width).
		Height(height).
		Render(content)

	// Center on screen
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}
