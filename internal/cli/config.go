package cli

import (
	"bytes"
	"errors"
	"sort"
	"strings"

	"todo-cli/internal/config"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: strings.TrimSpace(`
Print the configuration after applying defaults, config.toml, TODO_* environment
variables and flags. --format text prints it as TOML.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded := app.cfg
			if loaded == nil {
				return writeErr(cmd, errors.New("config not loaded"))
			}
			text, err := configTOML(loaded.Config)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, result(map[string]any{
				"path":    loaded.Path,
				"config":  loaded.Config,
				"sources": sortedSources(loaded.Sources),
			}, "# "+loaded.Path+"\n"+text))
		},
	}
}

func configTOML(c config.Config) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type sourceEntry struct {
	Field  string        `json:"field"`
	Source config.Source `json:"source"`
}

func sortedSources(m map[string]config.Source) []sourceEntry {
	out := make([]sourceEntry, 0, len(m))
	for k, v := range m {
		out = append(out, sourceEntry{Field: k, Source: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}
