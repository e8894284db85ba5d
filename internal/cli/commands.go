package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
)

func (r *RootCommand) addSubcommands() {
	addCmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Add a pending task",
		Long: `Add a pending task. The arguments are joined with spaces.
Without arguments an interactive prompt asks for the text.
Empty text adds nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !r.requireStorage(cmd) {
				return nil
			}

			value := strings.Join(args, " ")
			if len(args) == 0 {
				v, err := r.prompt()
				if err != nil {
					return err
				}
				value = v
			}
			if value == "" {
				return nil
			}

			if err := r.svc.Add(cmd.Context(), value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", value)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List pending tasks, or completed ones with --done.
An empty list prints nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !r.requireStorage(cmd) {
				return nil
			}

			done, _ := cmd.Flags().GetBool("done")
			all, _ := cmd.Flags().GetBool("all")

			if all {
				items, err := r.svc.ListAll(cmd.Context())
				if err != nil {
					return err
				}
				pending, completed := partition(items)
				writeSection(cmd.OutOrStdout(), false, pending)
				writeSection(cmd.OutOrStdout(), true, completed)
				return nil
			}

			items, err := r.svc.List(cmd.Context(), done)
			if err != nil {
				return err
			}
			writeSection(cmd.OutOrStdout(), done, items)
			return nil
		},
	}
	listCmd.Flags().Bool("done", false, "Show completed tasks")
	listCmd.Flags().Bool("all", false, "Show pending and completed tasks")

	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !r.requireStorage(cmd) {
				return nil
			}
			return r.svc.Complete(cmd.Context(), id)
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a completed task",
		Long: `Delete a completed task. Pending tasks must be marked done first;
an id that is pending or does not exist is left alone.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !r.requireStorage(cmd) {
				return nil
			}

			ok, err := r.isCompleted(cmd.Context(), id)
			if err != nil || !ok {
				return err
			}
			return r.svc.Remove(cmd.Context(), id)
		},
	}

	r.cmd.AddCommand(addCmd, listCmd, doneCmd, rmCmd, r.configCommand())
}

// isCompleted reports whether id names a task in the completed partition.
// Only those can be deleted.
func (r *RootCommand) isCompleted(ctx context.Context, id int64) (bool, error) {
	completed, err := r.svc.List(ctx, true)
	if err != nil {
		return false, err
	}
	for _, t := range completed {
		if t.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q: %w", arg, err)
	}
	return id, nil
}

func partition(items []model.Task) (pending, completed []model.Task) {
	for _, t := range items {
		if t.Done {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}

// writeSection prints a heading and one line per task. Empty sections
// print nothing.
func writeSection(w io.Writer, done bool, items []model.Task) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, theme.SectionHeadingStyle.UnsetMarginBottom().Render(model.Heading(done)))
	for _, t := range items {
		fmt.Fprintf(w, "%4d  %s\n", t.ID, t.Value)
	}
}
