package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"todo-cli/internal/kv"
	"todo-cli/internal/web"

	"github.com/spf13/cobra"
)

func newWebCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the browser UI",
		Long: strings.TrimSpace(`
Serve the todo list as server-rendered HTML from a local HTTP server.

Pages update live over server-sent events, so every open tab shows the same list.
`),
		Example: strings.TrimSpace(`
# Serve on the configured address (default 127.0.0.1:3335)
todo web

# Pick a port and open the browser
todo web --addr :8080 --open
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// --addr/--open are applied by config.Load so `todo config` and this
			// command agree on their sources.
			cfg := app.config()
			listenAddr := cfg.Web.Addr
			openBrowser := cfg.Web.Open

			lock, err := kv.AcquireLock(cfg.KV(), "todo web")
			if err != nil {
				return writeErr(cmd, err)
			}
			defer lock.Release()

			ctl, st, err := openApp(cmd.Context(), app, app.logger.WithPrefix("web"))
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			srv, err := web.NewServer(web.ServerConfig{
				Addr:   listenAddr,
				App:    ctl,
				Logger: app.logger.WithPrefix("web"),
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			opened := false
			openErr := ""
			if openBrowser {
				if err := openPath(url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}

			_ = writeOut(cmd, app, result(map[string]any{
				"addr":      actualAddr,
				"url":       url,
				"backend":   cfg.Backend,
				"opened":    opened,
				"openError": openErr,
				"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
			}, url))

			app.logger.Info("web running", "url", url, "backend", cfg.Backend)
			if openErr != "" {
				app.logger.Warn("failed to open browser", "err", openErr)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			// Request contexts derive from ctx so open event streams end on shutdown.
			hs := &http.Server{
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = hs.Shutdown(shutdownCtx)
			}()
			if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return writeErr(cmd, fmt.Errorf("web: %w", err))
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Bind address (host:port or :port; default from config; env TODO_WEB_ADDR)")
	cmd.Flags().Bool("open", false, "Open the UI in your default browser")
	return cmd
}
