package listview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
)

// Row glyphs: ○ for pending, ✓ for completed.
const (
	glyphPending   = "○"
	glyphCompleted = "✓"
	markerSelected = "> "
	markerNone     = "  "
)

// renderRow draws one task line.
func (m Model) renderRow(t model.Task, selected bool) string {
	glyph := glyphPending
	if t.Done {
		glyph = glyphCompleted
	}

	style := theme.RowStyle(t.Done)
	if w := m.rowWidth(); w > 0 {
		style = style.Width(w)
	}
	line := style.Render(glyph + " " + t.Value)

	marker := markerNone
	if selected {
		marker = theme.SelectedMarkerStyle.Render(markerSelected)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, marker, line)
}

// rowWidth is the width of a row without the cursor marker, or 0 when no
// width has been set.
func (m Model) rowWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - lipgloss.Width(markerNone)
	if w < 1 {
		return 0
	}
	return w
}
