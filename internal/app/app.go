package app

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/events"
	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/tasks"
	"github.com/nhle/todo/internal/theme"
	"github.com/nhle/todo/internal/ui"
	helpview "github.com/nhle/todo/internal/ui/help"
	"github.com/nhle/todo/internal/ui/listview"
)

const (
	appTitle         = "Local Storage - SQLite"
	inputPlaceholder = "What do you need to do?"
	saveLabel        = "Save"
	unsupportedText  = "SQLite is not supported on this platform!"
)

// focusArea identifies the part of the screen receiving keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusSave
	focusPending
	focusCompleted
	focusAreaCount
)

// Model is the root Bubble Tea model: the new-task input, the save button
// and the pending and completed lists.
//
// refresh is the refresh counter. It is also the identity key of the two
// list views: whenever the service reports a change the counter moves to
// the change's revision and both views are replaced by fresh instances,
// which query storage again.
type Model struct {
	svc       *tasks.Service
	sub       *events.Subscription[tasks.Change]
	keys      *keys.KeyMap
	layout    ui.Layout
	input     textinput.Model
	pending   listview.Model
	completed listview.Model
	helpView  helpview.Model
	viewport  viewport.Model
	refresh   int
	focus     focusArea
	showHelp  bool
	ready     bool
	supported bool
	errMsg    string
}

// New creates the root model on top of svc and subscribes to its changes.
func New(svc *tasks.Service) Model {
	k := keys.DefaultKeyMap()

	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.Prompt = "› "
	ti.Width = 74
	ti.Focus()

	m := Model{
		svc:       svc,
		sub:       svc.Subscribe(),
		keys:      k,
		layout:    ui.NewLayout(80, 24),
		input:     ti,
		helpView:  helpview.New(k, 80, 24),
		viewport:  viewport.New(80, 16),
		refresh:   svc.Revision(),
		focus:     focusInput,
		supported: svc.Supported(),
	}
	m.remount()
	return m
}

// Init loads both lists and starts listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.pending.Init(),
		m.completed.Init(),
		events.WaitFor(m.sub),
	)
}

// Update handles messages and keeps the list viewport in sync.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.syncViewport()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		return m, nil

	case tasks.Change:
		// The change is published only after the statement completed,
		// so the new instances read the mutation back.
		m.refresh = msg.Revision
		m.remount()
		return m, tea.Batch(
			m.pending.Init(),
			m.completed.Init(),
			events.WaitFor(m.sub),
		)

	case listview.LoadedMsg:
		if msg.Err != nil {
			log.Printf("loading %s tasks: %v", listName(msg.Done), msg.Err)
			m.errMsg = fmt.Sprintf("loading tasks failed: %v", msg.Err)
		}
		m.pending, _ = m.pending.Update(msg)
		m.completed, _ = m.completed.Update(msg)
		m.fixFocus()
		return m, nil

	case taskMutatedMsg:
		if msg.err != nil {
			log.Printf("%s task %d: %v", msg.kind, msg.id, msg.err)
			m.errMsg = fmt.Sprintf("saving failed: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput && m.supported {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes a key press according to focus.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, m.quit()
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if !m.supported {
		switch {
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextFocus):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.moveFocus(-1)
		return m, nil
	}

	if m.focus == focusInput {
		switch msg.Type {
		case tea.KeyEnter:
			return m, m.submit()
		case tea.KeyEsc:
			return m, m.quit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshLists()
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusSave:
		if key.Matches(msg, m.keys.Press) {
			cmd = m.submit()
		}
	case focusPending:
		m.pending, cmd = m.pending.Update(msg)
	case focusCompleted:
		m.completed, cmd = m.completed.Update(msg)
	}
	return m, cmd
}

// submit adds the input text as a new task and clears the input.
// Empty input does nothing.
func (m *Model) submit() tea.Cmd {
	value := m.input.Value()
	m.input.Reset()
	if value == "" {
		return nil
	}
	return addTask(m.svc, value)
}

// quit stops listening for changes and exits.
func (m *Model) quit() tea.Cmd {
	m.sub.Close()
	return tea.Quit
}

// remount replaces both list views with new instances keyed by the
// current refresh counter. The pending list can only complete tasks and
// the completed list can only delete them.
func (m *Model) remount() {
	m.pending = listview.New(m.svc, m.keys, false, m.refresh, completeTask(m.svc))
	m.completed = listview.New(m.svc, m.keys, true, m.refresh, removeTask(m.svc))
	m.pending.SetWidth(m.layout.ContentWidth() - 2)
	m.completed.SetWidth(m.layout.ContentWidth() - 2)
	m.applyFocus()
}

// available reports whether a focus area can currently take focus.
func (m Model) available(f focusArea) bool {
	switch f {
	case focusInput, focusSave:
		return m.supported
	case focusPending:
		return m.pending.Len() > 0
	case focusCompleted:
		return m.completed.Len() > 0
	}
	return false
}

// moveFocus cycles focus forward (dir=1) or backward (dir=-1), skipping
// lists that are hidden because they are empty.
func (m *Model) moveFocus(dir int) {
	next := m.focus
	for i := 0; i < int(focusAreaCount); i++ {
		next = focusArea((int(next) + dir + int(focusAreaCount)) % int(focusAreaCount))
		if m.available(next) {
			break
		}
	}
	m.focus = next
	m.applyFocus()
}

// fixFocus moves focus back to the input when the focused list became
// empty after a reload.
func (m *Model) fixFocus() {
	if (m.focus == focusPending && m.pending.Loaded() && m.pending.Len() == 0) ||
		(m.focus == focusCompleted && m.completed.Loaded() && m.completed.Len() == 0) {
		m.focus = focusInput
		m.applyFocus()
	}
}

func (m *Model) applyFocus() {
	m.pending.Blur()
	m.completed.Blur()
	m.input.Blur()

	switch m.focus {
	case focusInput:
		m.input.Focus()
	case focusPending:
		m.pending.Focus()
	case focusCompleted:
		m.completed.Focus()
	}
}

func (m *Model) resize() {
	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()

	m.input.Width = max(w-8, 10)
	m.pending.SetWidth(w - 2)
	m.completed.SetWidth(w - 2)
	m.helpView.SetSize(w, h)
	m.viewport.Width = w
	m.viewport.Height = max(h-formHeight, 1)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(appTitle, m.counts())

	var content string
	switch {
	case m.showHelp:
		content = m.helpView.View()
	case !m.supported:
		content = lipgloss.Place(
			m.layout.ContentWidth(), m.layout.ContentHeight(),
			lipgloss.Center, lipgloss.Center,
			theme.NoticeStyle.Render(unsupportedText),
		)
	default:
		content = lipgloss.JoinVertical(lipgloss.Left, m.renderForm(), m.viewport.View())
	}

	var statusBar string
	if m.errMsg != "" {
		statusBar = m.layout.RenderStatusBar(m.errMsg, true)
	} else {
		statusBar = m.layout.RenderStatusBar(m.helpView.ShortView(), false)
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// counts summarises both partitions for the header.
func (m Model) counts() string {
	if !m.supported {
		return "storage unavailable"
	}
	return fmt.Sprintf("%d pending · %d completed", m.pending.Len(), m.completed.Len())
}

func listName(done bool) string {
	if done {
		return "completed"
	}
	return "pending"
}
