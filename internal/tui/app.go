package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/todo/internal/store"
	"github.com/ShayCichocki/todo/pkg/models"
)

// DatabaseChangedMsg tells the app the database was written outside of it.
type DatabaseChangedMsg struct{}

// tasksLoadedMsg carries the result of a ListTasks call.
type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

// taskWrittenMsg carries the result of an add, update or delete.
type taskWrittenMsg struct {
	err error
}

// App is the single-screen task list. It owns no data of its own: every
// write is followed by a fresh ListTasks.
type App struct {
	store store.TaskStore

	input *InputField
	list  *TaskList
	width int

	// editID is the task whose name the input will overwrite. nil means
	// the next submit adds a new task.
	editID *int64

	// inputFocused tracks whether the input field has focus (vs the list)
	inputFocused bool

	err      error
	quitting bool
}

// NewApp creates an App backed by s.
func NewApp(s store.TaskStore) *App {
	return &App{
		store:        s,
		input:        NewInputField(),
		list:         NewTaskList(),
		width:        80,
		inputFocused: true,
	}
}

// NewProgram creates the bubbletea program for the app.
func NewProgram(s store.TaskStore) (*tea.Program, *App) {
	app := NewApp(s)
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}

// Tasks returns the rows from the latest successful list.
func (a *App) Tasks() []models.Task {
	return a.list.Tasks()
}

// EditID returns the id being edited and whether edit mode is active.
func (a *App) EditID() (int64, bool) {
	if a.editID == nil {
		return 0, false
	}
	return *a.editID, true
}

// Err returns the last store error shown in the status line.
func (a *App) Err() error {
	return a.err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.input.Focus(), a.loadTasks())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.input.SetWidth(msg.Width)
		a.list.SetWidth(msg.Width)
		return a, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.list.SetTasks(msg.tasks)
		if a.editID != nil && models.FindTask(msg.tasks, *a.editID) < 0 {
			// Deleted elsewhere; the next submit adds instead.
			a.editID = nil
		}
		if a.list.Len() == 0 && !a.inputFocused {
			return a, a.focusInput()
		}
		return a, nil

	case taskWrittenMsg:
		if msg.err != nil {
			a.err = msg.err
		}
		return a, a.loadTasks()

	case DatabaseChangedMsg:
		return a, a.loadTasks()

	case TaskSubmittedMsg:
		a.err = nil
		if a.editID != nil {
			id := *a.editID
			a.editID = nil
			return a, a.updateTask(id, msg.Name)
		}
		return a, a.addTask(msg.Name)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blink and other widget messages.
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit

	case "tab", "shift+tab":
		if a.inputFocused {
			if a.list.Len() == 0 {
				return a, nil
			}
			a.focusList()
			return a, nil
		}
		return a, a.focusInput()

	case "esc":
		if a.editID != nil {
			a.editID = nil
			a.input.Reset()
		}
		if !a.inputFocused {
			return a, a.focusInput()
		}
		return a, nil
	}

	if a.inputFocused {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		a.quitting = true
		return a, tea.Quit

	case "up", "k":
		a.list.MoveUp()

	case "down", "j":
		a.list.MoveDown()

	case "e", "enter":
		task, ok := a.list.Selected()
		if !ok {
			return a, nil
		}
		id := task.ID
		a.editID = &id
		a.input.SetValue(task.Name)
		return a, a.focusInput()

	case "d", "delete", "x":
		task, ok := a.list.Selected()
		if !ok {
			return a, nil
		}
		if a.editID != nil && *a.editID == task.ID {
			a.editID = nil
			a.input.Reset()
		}
		a.err = nil
		return a, a.deleteTask(task.ID)
	}

	return a, nil
}

func (a *App) focusInput() tea.Cmd {
	a.inputFocused = true
	a.list.SetFocused(false)
	return a.input.Focus()
}

func (a *App) focusList() {
	a.inputFocused = false
	a.input.Blur()
	a.list.SetFocused(true)
}

func (a *App) loadTasks() tea.Cmd {
	s := a.store
	return func() tea.Msg {
		tasks, err := s.ListTasks()
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (a *App) addTask(name string) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		_, err := s.AddTask(name)
		return taskWrittenMsg{err: err}
	}
}

func (a *App) updateTask(id int64, name string) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		return taskWrittenMsg{err: s.UpdateTaskName(id, name)}
	}
}

func (a *App) deleteTask(id int64) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		return taskWrittenMsg{err: s.DeleteTask(id)}
	}
}

// ActionLabel names what enter in the input will do.
func (a *App) ActionLabel() string {
	if a.editID != nil {
		return "Update Task"
	}
	return "Add Task"
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Width(a.width).
		Align(lipgloss.Center).
		MarginBottom(1)

	actionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("25")).
		Padding(0, 1)
	if a.editID != nil {
		actionStyle = actionStyle.Background(lipgloss.Color("214")).Foreground(lipgloss.Color("0"))
	}

	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Todo List"))
	b.WriteString("\n")
	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(actionStyle.Render("⏎ " + a.ActionLabel()))
	if a.editID != nil {
		b.WriteString(helpStyle.Render("  esc cancel"))
	}
	b.WriteString("\n\n")
	b.WriteString(a.list.View(a.editID))
	b.WriteString("\n")

	if a.err != nil {
		b.WriteString(errStyle.Render("✗ " + a.err.Error()))
		b.WriteString("\n")
	}

	help := "tab: switch focus • enter: save • ctrl+c: quit"
	if !a.inputFocused {
		help = "↑/↓: move • e: edit • d: delete • tab: input • q: quit"
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}
