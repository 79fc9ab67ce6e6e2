package cli

import (
	"fmt"
	"sort"
	"strings"

	"todo-cli/internal/docs"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var render bool
	var style string
	var width int

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				sort.Strings(topics)
				return writeOut(cmd, app, result(map[string]any{"topics": topics}, strings.Join(topics, "\n")))
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `todo docs` to list topics)", topic))
			}

			if render {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), docs.Render(body, width, style != "light"))
				return err
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}

			return writeOut(cmd, app, result(map[string]any{"topic": topic, "markdown": body}, body))
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	cmd.Flags().BoolVar(&render, "render", false, "Render markdown for the terminal")
	cmd.Flags().StringVar(&style, "style", "dark", "Render style (light|dark)")
	cmd.Flags().IntVar(&width, "width", 80, "Render wrap width")
	cmd.MarkFlagsMutuallyExclusive("raw", "render")

	return cmd
}
