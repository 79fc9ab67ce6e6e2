package cli

import (
	"fmt"
	"strings"

	todoapp "todo-cli/internal/app"
	"todo-cli/internal/edit"
	"todo-cli/internal/filter"
	"todo-cli/internal/kv"
	"todo-cli/internal/model"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Task commands",
	}

	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksDoneCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksRmCmd(app))

	return cmd
}

func taskLine(t model.Task) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	return box + " " + t.ID + "  " + t.Text
}

// withWritableApp is withApp for commands that change state. It refuses to run while a
// web server or TUI owns the data dir, since their next save would drop this change.
func withWritableApp(cmd *cobra.Command, a *App, fn func(ctl *todoapp.App) error) error {
	if err := kv.CheckUnlocked(a.config().KV()); err != nil {
		return writeErr(cmd, err)
	}
	return withApp(cmd, a, fn)
}

// withApp opens storage, runs fn and closes storage again.
func withApp(cmd *cobra.Command, a *App, fn func(ctl *todoapp.App) error) error {
	ctl, st, err := openApp(cmd.Context(), a, nil)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer st.Close()
	if err := fn(ctl); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func newTasksListCmd(app *App) *cobra.Command {
	var filterName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := filter.Parse(filterName)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown filter: %q (expected all|active|completed)", filterName))
			}
			return withApp(cmd, app, func(ctl *todoapp.App) error {
				v := ctl.View(f)
				lines := make([]string, 0, len(v.Tasks)+1)
				for _, t := range v.Tasks {
					lines = append(lines, taskLine(t))
				}
				lines = append(lines, fmt.Sprintf("%d of %d shown (%s), %d active", len(v.Tasks), v.Counts.All, f.Label(), v.Counts.Active))
				return writeOut(cmd, app, result(map[string]any{
					"filter": f,
					"tasks":  v.Tasks,
					"counts": v.Counts,
				}, strings.Join(lines, "\n")))
			})
		},
	}

	cmd.Flags().StringVar(&filterName, "filter", "all", "Filter (all|active|completed)")
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Append a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return withWritableApp(cmd, app, func(ctl *todoapp.App) error {
				t, ok := ctl.Tasks.Add(text)
				if !ok {
					return errEmptyText
				}
				if err := saveErr(ctl); err != nil {
					return err
				}
				return writeOut(cmd, app, result(t, taskLine(t)))
			})
		},
	}
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withApp(cmd, app, func(ctl *todoapp.App) error {
				t, ok := ctl.Tasks.Find(id)
				if !ok {
					return errNotFound("task", id)
				}
				return writeOut(cmd, app, result(t, taskLine(t)))
			})
		},
	}
}

func newTasksDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "done <task-id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task's completed flag",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withWritableApp(cmd, app, func(ctl *todoapp.App) error {
				if !ctl.Toggle(id) {
					return errNotFound("task", id)
				}
				if err := saveErr(ctl); err != nil {
					return err
				}
				t, _ := ctl.Tasks.Find(id)
				return writeOut(cmd, app, result(t, taskLine(t)))
			})
		},
	}
}

func newTasksEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <task-id> <text...>",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			text := strings.Join(args[1:], " ")
			return withWritableApp(cmd, app, func(ctl *todoapp.App) error {
				t, ok := ctl.Tasks.Find(id)
				if !ok {
					return errNotFound("task", id)
				}
				ctl.Edit.Begin(t.ID, t.Text)
				ctl.Edit.UpdateDraft(text)
				switch ctl.Edit.Commit(ctl.Tasks) {
				case edit.Committed:
				case edit.Stale:
					return errNotFound("task", id)
				default:
					return errEmptyText
				}
				if err := saveErr(ctl); err != nil {
					return err
				}
				t, _ = ctl.Tasks.Find(id)
				return writeOut(cmd, app, result(t, taskLine(t)))
			})
		},
	}
}

func newTasksRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withWritableApp(cmd, app, func(ctl *todoapp.App) error {
				if !ctl.Delete(id) {
					return errNotFound("task", id)
				}
				if err := saveErr(ctl); err != nil {
					return err
				}
				return writeOut(cmd, app, result(map[string]any{"id": id, "removed": true}, "removed "+id))
			})
		},
	}
}
