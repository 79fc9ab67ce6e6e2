package cli

import (
	"fmt"

	todoapp "todo-cli/internal/app"

	"github.com/spf13/cobra"
)

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the light/dark theme preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, app, func(ctl *todoapp.App) error {
				return writeOut(cmd, app, themeResult(ctl))
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWritableApp(cmd, app, func(ctl *todoapp.App) error {
				ctl.ToggleTheme()
				if err := ctl.Theme.LastSaveErr(); err != nil {
					return fmt.Errorf("save failed: %w", err)
				}
				return writeOut(cmd, app, themeResult(ctl))
			})
		},
	})

	return cmd
}

func themeResult(ctl *todoapp.App) any {
	return result(map[string]any{
		"theme": ctl.Theme.Name(),
		"dark":  ctl.Theme.Dark(),
	}, ctl.Theme.Name())
}
