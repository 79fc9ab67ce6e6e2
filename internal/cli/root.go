package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	todoapp "todo-cli/internal/app"
	"todo-cli/internal/config"
	"todo-cli/internal/format"
	"todo-cli/internal/kv"
	"todo-cli/internal/logging"
	"todo-cli/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Backend    string
	DSN        string
	ConfigPath string
	LogLevel   string
	PrettyJSON bool
	Format     string

	cfg    *config.Loaded
	logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "Todo list: terminal UI, browser UI and scriptable CLI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo tasks add buy milk
  todo tasks list --filter active

  # Direct task lookup (shortcut for: todo tasks show <task-id>)
  todo task-1a2b3c4d5e

  # Serve the browser UI
  todo web --open
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !format.Valid(app.Format) {
			return writeErr(cmd, fmt.Errorf("unknown format: %s (expected json|text)", app.Format))
		}
		if err := app.loadConfig(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Data directory (default: ~/.todo; env TODO_DIR)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|mysql|file|memory; env TODO_BACKEND)")
	cmd.PersistentFlags().StringVar(&app.DSN, "dsn", "", "MySQL DSN for --backend mysql (env TODO_DSN)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default: ~/.todo/config.toml; env TODO_CONFIG_DIR)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error; env TODO_LOG_LEVEL)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TODO_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// loadConfig resolves the effective config. Flags only override when set explicitly.
func (a *App) loadConfig(cmd *cobra.Command) error {
	// Subcommand-local flags (web --addr/--open) are looked up by name; Changed is
	// false for flags the command doesn't define.
	flags := cmd.Flags()
	changed := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetString(name)
		if err != nil {
			return nil
		}
		return &v
	}
	var webOpen *bool
	if flags.Changed("open") {
		if v, err := flags.GetBool("open"); err == nil {
			webOpen = &v
		}
	}
	loaded, err := config.Load(config.LoadOptions{
		Path: a.ConfigPath,
		Overrides: config.Overrides{
			DataDir:  changed("dir"),
			Backend:  changed("backend"),
			DSN:      changed("dsn"),
			LogLevel: changed("log-level"),
			WebAddr:  changed("addr"),
			WebOpen:  webOpen,
		},
	})
	if err != nil {
		return err
	}
	a.cfg = loaded

	logger, err := logging.New(logging.Options{
		Level:  loaded.Config.LogLevel,
		Output: cmd.ErrOrStderr(),
		Prefix: "todo",
	})
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *App) config() config.Config {
	if a.cfg == nil {
		return config.Config{}
	}
	return a.cfg.Config
}

// openApp opens storage and loads state. The caller closes the returned store.
func openApp(ctx context.Context, a *App, logger *log.Logger) (*todoapp.App, kv.Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = a.logger
	}
	st, err := kv.Open(ctx, a.config().KV())
	if err != nil {
		return nil, nil, err
	}
	ctl := todoapp.New(st, logger)
	ctl.Load()
	return ctl, st, nil
}

func runTUI(cmd *cobra.Command, a *App) error {
	cfg := a.config()
	logger, closer, err := logging.OpenFile(cfg.LogPath(), logging.Options{Level: cfg.LogLevel, Prefix: "tui"})
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closer.Close()

	lock, err := kv.AcquireLock(cfg.KV(), "todo (tui)")
	if err != nil {
		return writeErr(cmd, err)
	}
	defer lock.Release()

	ctl, st, err := openApp(cmd.Context(), a, logger)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer st.Close()

	logger.Info("tui started", "backend", cfg.Backend, "dir", cfg.DataDir)
	return tui.Run(ctl, tui.Options{Glyphs: cfg.TUI.Glyphs, Logger: logger})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// envelope is the JSON shape of every command result; text is used for --format text.
type envelope struct {
	Data any `json:"data"`
	text string
}

type textEnvelope struct {
	envelope
}

func (e textEnvelope) Text() string { return e.text }

func result(data any, text string) any {
	if text == "" {
		return envelope{Data: data}
	}
	return textEnvelope{envelope{Data: data, text: text}}
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// saveErr reports a failed best-effort save so scripts notice it.
func saveErr(ctl *todoapp.App) error {
	if err := ctl.Tasks.LastSaveErr(); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	return nil
}

var errEmptyText = errors.New("task text is empty")
