package listview

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
)

// Lister loads the tasks of one partition.
type Lister interface {
	List(ctx context.Context, done bool) ([]model.Task, error)
}

// LoadedMsg carries the snapshot requested by a list view's Init. Done and
// Key identify the view instance that asked for it.
type LoadedMsg struct {
	Done  bool
	Key   int
	Tasks []model.Task
	Err   error
}

// Model renders the tasks of one partition. It loads its snapshot exactly
// once, from Init; to see newer data the owner replaces the instance with
// one built for a new key.
type Model struct {
	lister  Lister
	keys    *keys.KeyMap
	done    bool
	key     int
	onPress func(id int64) tea.Cmd

	// tasks is nil until the snapshot arrives.
	tasks   []model.Task
	cursor  int
	focused bool
	width   int
}

// New creates a list view for the partition selected by done. onPress is
// called with a task's id when the user presses enter on its row; the view
// itself never changes any data.
func New(
	l Lister,
	k *keys.KeyMap,
	done bool,
	key int,
	onPress func(id int64) tea.Cmd,
) Model {
	return Model{
		lister:  l,
		keys:    k,
		done:    done,
		key:     key,
		onPress: onPress,
	}
}

// Init returns the command that loads the snapshot.
func (m Model) Init() tea.Cmd {
	l := m.lister
	done := m.done
	k := m.key
	return func() tea.Msg {
		tasks, err := l.List(context.Background(), done)
		return LoadedMsg{Done: done, Key: k, Tasks: tasks, Err: err}
	}
}

// Update handles the snapshot and, while focused, navigation keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Done != m.done || msg.Key != m.key || m.tasks != nil {
			return m, nil
		}
		m.tasks = msg.Tasks
		if m.tasks == nil {
			m.tasks = []model.Task{}
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if !m.focused || len(m.tasks) == 0 {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Press):
			if m.onPress == nil {
				return m, nil
			}
			return m, m.onPress(m.tasks[m.cursor].ID)
		}
	}
	return m, nil
}

// View renders the heading and one row per task. Nothing at all is
// rendered before the snapshot arrives or when it is empty.
func (m Model) View() string {
	if len(m.tasks) == 0 {
		return ""
	}

	rows := make([]string, 0, len(m.tasks)+1)
	rows = append(rows, theme.SectionHeadingStyle.Render(model.Heading(m.done)))
	for i, t := range m.tasks {
		rows = append(rows, m.renderRow(t, m.focused && i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Loaded reports whether the snapshot has arrived.
func (m Model) Loaded() bool {
	return m.tasks != nil
}

// Len returns the number of tasks in the snapshot.
func (m Model) Len() int {
	return len(m.tasks)
}

// Tasks returns the snapshot. The slice must not be modified.
func (m Model) Tasks() []model.Task {
	return m.tasks
}

// Done reports which partition the view shows.
func (m Model) Done() bool {
	return m.done
}

// Key returns the identity key the view was created with.
func (m Model) Key() int {
	return m.key
}

// Cursor returns the index of the row under the cursor.
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the task under the cursor.
func (m Model) Selected() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// Focus gives the view keyboard focus.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
}

// Focused reports whether the view has keyboard focus.
func (m Model) Focused() bool {
	return m.focused
}

// SetWidth sets the width rows are padded to.
func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
