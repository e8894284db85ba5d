package taskform

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/theme"
)

const (
	title       = "New task"
	placeholder = "What do you need to do?"
)

// Options configures the prompt. Zero values use the terminal.
type Options struct {
	Input      io.Reader
	Output     io.Writer
	Width      int
	Accessible bool
}

// formBindings holds the field value on the heap so that huh's Value()
// pointer stays valid while the form runs.
type formBindings struct {
	value string
}

// Prompt asks for the text of a new task. Cancelling the prompt is not an
// error and yields "", as does submitting an empty field.
func Prompt(opts Options) (string, error) {
	fb := &formBindings{}

	form := build(fb, opts.Width).WithAccessible(opts.Accessible)
	if opts.Input != nil {
		form = form.WithInput(opts.Input)
	}
	if opts.Output != nil {
		form = form.WithOutput(opts.Output)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", fmt.Errorf("reading task: %w", err)
	}
	return fb.value, nil
}

func build(fb *formBindings, width int) *huh.Form {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorGreen)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(titleStyle.Render(title)).
				Placeholder(placeholder).
				Value(&fb.value),
		),
	)
	if width > 0 {
		form = form.WithWidth(width)
	}
	return form
}
