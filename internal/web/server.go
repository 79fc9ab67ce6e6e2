// Package web serves the browser renderer: server-rendered pages that stay
// live through a Datastar SSE stream.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"todo-cli/internal/app"
	"todo-cli/internal/docs"
	"todo-cli/internal/filter"
	"todo-cli/internal/publish"

	"github.com/charmbracelet/log"
	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

const mainSelector = "#todo-main"

type ServerConfig struct {
	Addr   string
	App    *app.App
	Logger *log.Logger
}

type Server struct {
	// mu serializes every controller call and render.
	mu   sync.Mutex
	cfg  ServerConfig
	app  *app.App
	tmpl *template.Template
	hub  *resourceHub
	log  *log.Logger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.App == nil {
		return nil, errors.New("web: app is nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:  cfg,
		app:  cfg.App,
		tmpl: tmpl,
		hub:  newResourceHub(),
		log:  logger,
	}, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /static/app.css", s.handleAppCSS)
	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("GET /docs/{topic}", s.handleDocs)
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST /tasks", s.handleSubmit)
	mux.HandleFunc("POST /tasks/{id}/toggle", s.handleToggle)
	mux.HandleFunc("POST /tasks/{id}/delete", s.handleDelete)
	mux.HandleFunc("POST /tasks/{id}/edit", s.handleEdit)
	mux.HandleFunc("POST /edit/cancel", s.handleCancelEdit)
	mux.HandleFunc("POST /theme/toggle", s.handleThemeToggle)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if r.URL.Path == "/events" {
			return
		}
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start))
	})
}

// filterFromRequest reads `filter` from the form (POST) or query (GET).
// Unknown values mean all.
func filterFromRequest(r *http.Request) filter.Filter {
	raw := r.URL.Query().Get("filter")
	if r.Method == http.MethodPost {
		if v := r.PostFormValue("filter"); v != "" {
			raw = v
		}
	}
	f, ok := filter.Parse(raw)
	if !ok {
		return filter.All
	}
	return f
}

func homeURL(f filter.Filter) string {
	if f == filter.All {
		return "/"
	}
	return "/?filter=" + url.QueryEscape(string(f))
}

// redirectBack returns the browser to the list it came from.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, homeURL(filterFromRequest(r)), http.StatusSeeOther)
}

// mutate runs fn under the lock, notifies live pages and redirects back.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(a *app.App)) {
	s.mu.Lock()
	fn(s.app)
	s.mu.Unlock()
	s.hub.broadcast()
	redirectBack(w, r)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	text := r.PostFormValue("text")
	s.mutate(w, r, func(a *app.App) {
		res := a.Submit(text)
		s.log.Debug("submit", "outcome", res.Outcome, "id", res.Task.ID)
	})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	s.mutate(w, r, func(a *app.App) { a.Toggle(id) })
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	s.mutate(w, r, func(a *app.App) { a.Delete(id) })
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	s.mutate(w, r, func(a *app.App) { a.EditTask(id) })
}

func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(a *app.App) { a.CancelEdit() })
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(a *app.App) { a.ToggleTheme() })
}

type filterLinkVM struct {
	Label  string
	Href   string
	Active bool
}

type rowVM struct {
	ID        string
	Text      string
	Completed bool
	Editing   bool
}

type mainVM struct {
	View        app.View
	FilterParam string
	Filters     []filterLinkVM
	Rows        []rowVM
	ItemsLeft   string
	StreamURL   string
}

func itemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return strconv.Itoa(n) + " items left"
}

func buildMainVM(v app.View) mainVM {
	vm := mainVM{
		View:        v,
		FilterParam: string(v.Filter),
		ItemsLeft:   itemsLeft(v.Counts.Active),
		StreamURL:   "/events?filter=" + url.QueryEscape(string(v.Filter)),
	}
	for _, f := range filter.Values() {
		vm.Filters = append(vm.Filters, filterLinkVM{
			Label:  f.Label(),
			Href:   homeURL(f),
			Active: f == v.Filter,
		})
	}
	for _, t := range v.Tasks {
		vm.Rows = append(vm.Rows, rowVM{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Editing:   t.ID == v.EditingID,
		})
	}
	return vm
}

func (s *Server) snapshot(f filter.Filter) mainVM {
	s.mu.Lock()
	v := s.app.View(f)
	s.mu.Unlock()
	return buildMainVM(v)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.writeHTMLTemplate(w, "page.html", s.snapshot(filterFromRequest(r)))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	f := filterFromRequest(r)
	s.serveDatastarElementsStream(w, r, mainSelector, datastar.ElementPatchModeOuter, func() (string, error) {
		return s.renderTemplate("main", s.snapshot(f))
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := publish.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f := filterFromRequest(r)
	s.mu.Lock()
	v := s.app.View(f)
	s.mu.Unlock()

	b, err := publish.Render(format, v.Tasks, publish.RenderOptions{Subtitle: "Showing: " + f.Label()})
	if err != nil {
		s.log.Error("export failed", "format", format, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="todos%s"`, format.Ext()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

type docsVM struct {
	Topic  string
	Topics []string
	Body   template.HTML
	Dark   bool
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	topic := r.PathValue("topic")
	md, ok := docs.Get(topic)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	dark := s.app.Theme.Dark()
	s.mu.Unlock()
	s.writeHTMLTemplate(w, "docs.html", docsVM{
		Topic:  strings.ToLower(strings.TrimSpace(topic)),
		Topics: docs.Topics(),
		Body:   renderMarkdownHTML(md),
		Dark:   dark,
	})
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		s.log.Error("render template", "name", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}
