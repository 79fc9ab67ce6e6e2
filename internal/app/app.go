// Package app dispatches user gestures to the task store, edit session and theme state.
//
// Renderers (web, tui, cli) only talk to App. App is not safe for concurrent use;
// callers that serve several goroutines must serialize access.
package app

import (
	"io"

	"todo-cli/internal/edit"
	"todo-cli/internal/filter"
	"todo-cli/internal/kv"
	"todo-cli/internal/model"
	"todo-cli/internal/tasks"
	"todo-cli/internal/theme"

	"github.com/charmbracelet/log"
)

type App struct {
	Tasks *tasks.Store
	Edit  *edit.Session
	Theme *theme.State

	// Filter is the current selection for renderers that keep it in process (TUI).
	Filter filter.Filter

	logger *log.Logger
}

func New(st kv.Store, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &App{
		Tasks:  tasks.New(st, logger.WithPrefix("tasks")),
		Edit:   &edit.Session{},
		Theme:  theme.New(st, logger.WithPrefix("theme")),
		Filter: filter.All,
		logger: logger,
	}
}

// Load restores tasks and theme from the kv store.
func (a *App) Load() {
	a.Tasks.Load()
	a.Theme.Load()
	a.logger.Debug("state loaded", "tasks", a.Tasks.Len(), "theme", a.Theme.Name())
}

type SubmitOutcome int

const (
	// Ignored: nothing happened (blank text while not editing).
	Ignored SubmitOutcome = iota
	Added
	Saved
	// Kept: blank text while editing; the edit stays open.
	Kept
	// Dropped: the task being edited vanished; the edit was closed.
	Dropped
)

func (o SubmitOutcome) String() string {
	switch o {
	case Added:
		return "added"
	case Saved:
		return "saved"
	case Kept:
		return "kept"
	case Dropped:
		return "dropped"
	default:
		return "ignored"
	}
}

type SubmitResult struct {
	Outcome SubmitOutcome
	Task    model.Task
}

// ClearsInput reports whether the renderer should empty its input field.
func (r SubmitResult) ClearsInput() bool {
	return r.Outcome == Added || r.Outcome == Saved || r.Outcome == Dropped
}

// Submit handles the main input: it commits the edit in progress, or adds a task.
func (a *App) Submit(text string) SubmitResult {
	if id, ok := a.Edit.Active(); ok {
		a.Edit.UpdateDraft(text)
		switch a.Edit.Commit(a.Tasks) {
		case edit.Committed:
			t, _ := a.Tasks.Find(id)
			a.logger.Debug("task renamed", "id", id)
			return SubmitResult{Outcome: Saved, Task: t}
		case edit.Stale:
			return SubmitResult{Outcome: Dropped}
		default:
			return SubmitResult{Outcome: Kept}
		}
	}

	t, ok := a.Tasks.Add(text)
	if !ok {
		return SubmitResult{Outcome: Ignored}
	}
	a.logger.Debug("task added", "id", t.ID)
	return SubmitResult{Outcome: Added, Task: t}
}

// EditTask starts editing id, or cancels when id is already being edited.
// It reports whether an edit is active afterwards.
func (a *App) EditTask(id string) bool {
	t, ok := a.Tasks.Find(id)
	if !ok {
		_, active := a.Edit.Active()
		return active
	}
	return a.Edit.Toggle(t.ID, t.Text)
}

func (a *App) CancelEdit() { a.Edit.Cancel() }

func (a *App) Toggle(id string) bool { return a.Tasks.Toggle(id) }

// Delete removes id and closes an edit that pointed at it.
func (a *App) Delete(id string) bool {
	ok := a.Tasks.Remove(id)
	a.Edit.Reconcile(a.Tasks)
	return ok
}

func (a *App) SetFilter(f filter.Filter) { a.Filter = f }

func (a *App) ToggleTheme() bool { return a.Theme.Toggle() }

// View is an immutable snapshot of everything a renderer draws.
type View struct {
	Tasks     []model.Task
	Filter    filter.Filter
	Counts    filter.Counts
	EditingID string
	Draft     string
	Dark      bool
}

func (v View) Editing() bool { return v.EditingID != "" }

// SubmitLabel is the caption of the main input's button.
func (v View) SubmitLabel() string {
	if v.Editing() {
		return "Save"
	}
	return "Add"
}

// ThemeLabel names the theme the toggle switches to.
func (v View) ThemeLabel() string {
	if v.Dark {
		return "Light"
	}
	return "Dark"
}

// View derives the visible list for f. It is recomputed on every call.
func (a *App) View(f filter.Filter) View {
	all := a.Tasks.Tasks()
	id, _ := a.Edit.Active()
	return View{
		Tasks:     filter.Visible(all, f),
		Filter:    f,
		Counts:    filter.Count(all),
		EditingID: id,
		Draft:     a.Edit.Draft(),
		Dark:      a.Theme.Dark(),
	}
}

// CurrentView is View for the in-process filter.
func (a *App) CurrentView() View { return a.View(a.Filter) }
