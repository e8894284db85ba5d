package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todo/internal/tasks"
)

// taskMutatedMsg is sent after a mutation has run. The refresh itself is
// driven by the tasks.Change the service publishes; this message only
// carries the outcome for error reporting.
type taskMutatedMsg struct {
	kind tasks.Kind
	id   int64
	err  error
}

// addTask persists a new pending task.
func addTask(svc *tasks.Service, value string) tea.Cmd {
	return func() tea.Msg {
		err := svc.Add(context.Background(), value)
		return taskMutatedMsg{kind: tasks.KindAdded, err: err}
	}
}

// completeTask returns the press handler of the pending list.
func completeTask(svc *tasks.Service) func(id int64) tea.Cmd {
	return func(id int64) tea.Cmd {
		return func() tea.Msg {
			err := svc.Complete(context.Background(), id)
			return taskMutatedMsg{kind: tasks.KindCompleted, id: id, err: err}
		}
	}
}

// removeTask returns the press handler of the completed list.
func removeTask(svc *tasks.Service) func(id int64) tea.Cmd {
	return func(id int64) tea.Cmd {
		return func() tea.Msg {
			err := svc.Remove(context.Background(), id)
			return taskMutatedMsg{kind: tasks.KindRemoved, id: id, err: err}
		}
	}
}

// refreshLists asks the service for a change without mutating anything,
// which re-creates both lists.
func (m Model) refreshLists() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		svc.Refresh()
		return nil
	}
}
