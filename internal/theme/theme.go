package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#4630EB"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#1C9963", Light: "#1C9963"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the application title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorStatusStyle replaces StatusBarStyle while a storage error is shown.
var ErrorStatusStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(ColorRed).
	Padding(0, 1)

// PanelStyle wraps overlay content such as the help view.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// InputStyle frames the new-task text input.
var InputStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder).
	Padding(0, 1)

// FocusedInputStyle frames the text input while it has focus.
var FocusedInputStyle = InputStyle.
	BorderForeground(ColorBlue)

// ButtonStyle renders the save button.
var ButtonStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(ColorBlue).
	Bold(true).
	Padding(0, 2)

// FocusedButtonStyle renders the save button while it has focus.
var FocusedButtonStyle = ButtonStyle.
	Underline(true).
	Background(ColorGreen)

// SectionHeadingStyle renders the "Pending" and "Completed" headings.
var SectionHeadingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	MarginBottom(1)

// PendingRowStyle renders a task that is not done yet.
var PendingRowStyle = lipgloss.NewStyle().
	PaddingLeft(2).
	Foreground(ColorWhite)

// CompletedRowStyle renders a done task: white text on green.
var CompletedRowStyle = lipgloss.NewStyle().
	PaddingLeft(2).
	PaddingRight(1).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(ColorGreen)

// SelectedMarkerStyle highlights the cursor of a focused list.
var SelectedMarkerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// NoticeStyle renders the storage-unsupported notice.
var NoticeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// RowStyle returns the row style for a task's partition.
func RowStyle(done bool) lipgloss.Style {
	if done {
		return CompletedRowStyle
	}
	return PendingRowStyle
}
