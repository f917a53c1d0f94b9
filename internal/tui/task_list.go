package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/todo/pkg/models"
)

// TaskList displays the task rows with a selection cursor.
type TaskList struct {
	tasks    []models.Task
	selected int
	width    int
	focused  bool

	// Styles
	titleStyle    lipgloss.Style
	borderStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	normalStyle   lipgloss.Style
	editingStyle  lipgloss.Style
	doneStyle     lipgloss.Style
	hintStyle     lipgloss.Style
	emptyStyle    lipgloss.Style
}

// NewTaskList creates an empty TaskList.
func NewTaskList() *TaskList {
	return &TaskList{
		width: 80,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1),
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		selectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Bold(true),
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		editingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")), // Yellow
		doneStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")), // Green
		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")), // Gray
		emptyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true),
	}
}

// SetTasks replaces the rows, keeping the cursor in range.
func (l *TaskList) SetTasks(tasks []models.Task) {
	l.tasks = tasks
	l.clamp()
}

// Tasks returns the rows currently shown.
func (l *TaskList) Tasks() []models.Task {
	return l.tasks
}

// Len returns the number of rows.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Selected returns the task under the cursor, or false if the list is empty.
func (l *TaskList) Selected() (models.Task, bool) {
	if len(l.tasks) == 0 {
		return models.Task{}, false
	}
	return l.tasks[l.selected], true
}

// MoveUp moves the cursor up one row.
func (l *TaskList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the cursor down one row.
func (l *TaskList) MoveDown() {
	if l.selected < len(l.tasks)-1 {
		l.selected++
	}
}

// SetFocused sets whether the list has keyboard focus.
func (l *TaskList) SetFocused(focused bool) {
	l.focused = focused
}

// SetWidth sets the render width.
func (l *TaskList) SetWidth(width int) {
	l.width = width
}

func (l *TaskList) clamp() {
	if l.selected >= len(l.tasks) {
		l.selected = len(l.tasks) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// View renders the list. editID marks the row being edited, if any.
func (l *TaskList) View(editID *int64) string {
	var b strings.Builder

	b.WriteString(l.titleStyle.Render(fmt.Sprintf("Tasks (%d)", len(l.tasks))))
	b.WriteString("\n")

	if len(l.tasks) == 0 {
		b.WriteString(l.emptyStyle.Render("  No tasks yet."))
	}

	for i, task := range l.tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(l.renderRow(i, task, editID))
	}

	border := l.borderStyle.Width(l.width - 2)
	if l.focused {
		border = border.BorderForeground(lipgloss.Color("39"))
	}
	return border.Render(b.String())
}

func (l *TaskList) renderRow(i int, task models.Task, editID *int64) string {
	icon := "○"
	if task.Completed {
		icon = l.doneStyle.Render("✓")
	}

	name := task.Name
	if name == "" {
		name = "(empty)"
	}

	line := fmt.Sprintf(" %s %s", icon, name)
	if editID != nil && *editID == task.ID {
		line = l.editingStyle.Render(line + "  (editing)")
	}

	if l.focused && i == l.selected {
		return l.selectedStyle.Render(line) + l.hintStyle.Render("  [e] Edit  [d] Delete")
	}
	return l.normalStyle.Render(line)
}
