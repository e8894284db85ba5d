package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/theme"
)

// formHeight is the number of lines the input box, the save button and
// the spacer below them take.
const formHeight = 5

// renderForm draws the bordered input and the save button.
func (m Model) renderForm() string {
	inputStyle := theme.InputStyle
	if m.focus == focusInput {
		inputStyle = theme.FocusedInputStyle
	}
	box := inputStyle.
		Width(max(m.layout.ContentWidth()-4, 10)).
		Render(m.input.View())

	buttonStyle := theme.ButtonStyle
	if m.focus == focusSave {
		buttonStyle = theme.FocusedButtonStyle
	}
	button := lipgloss.PlaceHorizontal(
		m.layout.ContentWidth(),
		lipgloss.Center,
		buttonStyle.Render(saveLabel),
	)

	return lipgloss.JoinVertical(lipgloss.Left, box, button, "")
}

// renderLists joins the non-empty list sections with a blank line between
// them. Empty lists render nothing, not even their heading.
func (m Model) renderLists() string {
	var sections []string
	for _, v := range []string{m.pending.View(), m.completed.View()} {
		if v != "" {
			sections = append(sections, v)
		}
	}
	if len(sections) == 0 {
		return ""
	}

	out := sections[0]
	for _, s := range sections[1:] {
		out = lipgloss.JoinVertical(lipgloss.Left, out, "", s)
	}
	return out
}

// syncViewport refreshes the scrollable list area and scrolls it so the
// cursor of the focused list stays visible.
func (m *Model) syncViewport() {
	m.viewport.SetContent(m.renderLists())

	line, ok := m.cursorLine()
	if !ok {
		return
	}
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// cursorLine returns the line of the focused row within renderLists.
func (m Model) cursorLine() (int, bool) {
	// Each section starts with its heading and the heading margin.
	const sectionHeader = 2

	switch m.focus {
	case focusPending:
		if m.pending.Len() == 0 {
			return 0, false
		}
		return sectionHeader + m.pending.Cursor(), true
	case focusCompleted:
		if m.completed.Len() == 0 {
			return 0, false
		}
		offset := 0
		if v := m.pending.View(); v != "" {
			offset = lipgloss.Height(v) + 1
		}
		return offset + sectionHeader + m.completed.Cursor(), true
	}
	return 0, false
}
