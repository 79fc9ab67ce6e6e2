package cli

import (
	"fmt"
	"strings"

	todoapp "todo-cli/internal/app"
	"todo-cli/internal/filter"
	"todo-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var formatName string
	var filterName string
	var out string
	var title string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the task list as Markdown or PDF",
		Long: strings.TrimSpace(`
Export the task list as a Markdown checklist or a PDF.

PDFs use the core PDF fonts, which only cover cp1252 (Western European) text;
other characters print as "?". See: todo docs export
`),
		Example: strings.TrimSpace(`
# Markdown to stdout
todo export

# Active tasks as a PDF file
todo export --format pdf --filter active --out todos.pdf
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := filter.Parse(filterName)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown filter: %q (expected all|active|completed)", filterName))
			}
			pf, err := publish.ParseFormat(formatName)
			if err != nil {
				return writeErr(cmd, err)
			}
			out = strings.TrimSpace(out)
			if pf == publish.FormatPDF && out == "" {
				return writeErr(cmd, fmt.Errorf("export: --out is required for pdf"))
			}

			return withApp(cmd, app, func(ctl *todoapp.App) error {
				v := ctl.View(f)
				b, err := publish.Render(pf, v.Tasks, publish.RenderOptions{
					Title:    title,
					Subtitle: "Showing: " + f.Label(),
				})
				if err != nil {
					return err
				}
				if out == "" {
					_, err := cmd.OutOrStdout().Write(b)
					return err
				}
				if err := publish.WriteFile(out, b, overwrite); err != nil {
					return err
				}
				return writeOut(cmd, app, result(map[string]any{
					"written": out,
					"format":  pf,
					"tasks":   len(v.Tasks),
				}, "wrote "+out))
			})
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "md", "Document format (md|pdf); shadows the global --format")
	cmd.Flags().StringVar(&filterName, "filter", "all", "Filter (all|active|completed)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout; required for pdf)")
	cmd.Flags().StringVar(&title, "title", "", "Document title (default: Todos)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite --out if it exists")
	return cmd
}
