package tui

import (
	"errors"
	"strings"
	"testing"

	"todo-cli/internal/app"
	"todo-cli/internal/filter"
	"todo-cli/internal/kv"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) (appModel, *app.App) {
	t.Helper()
	a := app.New(kv.NewMemory(), nil)
	a.Load()
	m := newAppModel(a, Options{Glyphs: "ascii"})
	m.copy = func(string) error { return nil }
	return m, a
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(appModel)
	}
	return m
}

// typeText enters text into the focused input and submits it.
func typeText(t *testing.T, m appModel, text string) appModel {
	t.Helper()
	return press(t, m, text, "enter")
}

func texts(a *app.App) []string {
	out := []string{}
	for _, task := range a.CurrentView().Tasks {
		out = append(out, task.Text)
	}
	return out
}

func TestTUI_AddFromInput(t *testing.T) {
	m, a := newTestModel(t)
	m = typeText(t, m, "buy milk")
	m = typeText(t, m, "call mom")

	if got := strings.Join(texts(a), ","); got != "buy milk,call mom" {
		t.Fatalf("tasks = %q", got)
	}
	if m.input.Value() != "" {
		t.Fatalf("input should be cleared after add, got %q", m.input.Value())
	}

	// Blank enter adds nothing.
	m = press(t, m, "enter")
	if a.Tasks.Len() != 2 {
		t.Fatalf("blank enter must not add")
	}
}

func TestTUI_ToggleAndFilter(t *testing.T) {
	m, a := newTestModel(t)
	m = typeText(t, m, "a")
	m = typeText(t, m, "b")

	m = press(t, m, "tab", "space")
	if first, _ := a.Tasks.At(0); !first.Completed {
		t.Fatalf("space should toggle the selected task")
	}

	m = press(t, m, "2")
	if a.Filter != filter.Active || strings.Join(texts(a), ",") != "b" {
		t.Fatalf("active filter: %s %v", a.Filter, texts(a))
	}
	m = press(t, m, "f")
	if a.Filter != filter.Completed || strings.Join(texts(a), ",") != "a" {
		t.Fatalf("completed filter: %s %v", a.Filter, texts(a))
	}
	m = press(t, m, "f")
	if a.Filter != filter.All {
		t.Fatalf("f should cycle back to all, got %s", a.Filter)
	}

	// x toggles too.
	m = press(t, m, "x")
	if first, _ := a.Tasks.At(0); first.Completed {
		t.Fatalf("x should toggle back")
	}
	_ = m
}

func TestTUI_EditSaveAndCancel(t *testing.T) {
	m, a := newTestModel(t)
	m = typeText(t, m, "x")

	m = press(t, m, "tab", "e")
	if m.focus != paneInput || m.input.Value() != "x" {
		t.Fatalf("edit should focus input with the draft, focus=%v value=%q", m.focus, m.input.Value())
	}
	if !strings.Contains(m.View(), "Save") {
		t.Fatalf("label should read Save while editing")
	}

	// Clearing the draft and pressing enter keeps the edit open.
	m.input.SetValue("")
	m = press(t, m, "enter")
	if !a.CurrentView().Editing() || !m.statusErr {
		t.Fatalf("empty save should keep editing and report")
	}

	m = press(t, m, "y", "enter")
	if got, _ := a.Tasks.At(0); got.Text != "y" || a.Tasks.Len() != 1 {
		t.Fatalf("save: %#v (len %d)", got, a.Tasks.Len())
	}
	if a.CurrentView().Editing() {
		t.Fatalf("save should end editing")
	}

	// esc cancels an edit without touching the task.
	m = press(t, m, "tab", "e", "z", "esc")
	if a.CurrentView().Editing() || m.input.Value() != "" {
		t.Fatalf("esc should cancel the edit")
	}
	if got, _ := a.Tasks.At(0); got.Text != "y" {
		t.Fatalf("cancel changed text to %q", got.Text)
	}
}

func TestTUI_EditToggleCancels(t *testing.T) {
	m, a := newTestModel(t)
	m = typeText(t, m, "x")

	m = press(t, m, "tab", "e", "tab", "e")
	if a.CurrentView().Editing() {
		t.Fatalf("pressing e on the edited task should cancel")
	}
	if m.input.Value() != "" {
		t.Fatalf("input should be cleared, got %q", m.input.Value())
	}
}

func TestTUI_DeleteClearsEdit(t *testing.T) {
	m, a := newTestModel(t)
	m = typeText(t, m, "a")
	m = typeText(t, m, "b")

	m = press(t, m, "tab", "down", "e", "tab", "d")
	if a.Tasks.Len() != 1 {
		t.Fatalf("delete should remove one task")
	}
	if a.CurrentView().Editing() || m.input.Value() != "" {
		t.Fatalf("deleting the edited task should clear the edit")
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp, got %d", m.cursor)
	}
	m = press(t, m, "delete")
	if a.Tasks.Len() != 0 {
		t.Fatalf("delete key should remove too")
	}
	// Nothing selected: no panic, no change.
	_ = press(t, m, "d", "e", "space", "y")
}

func TestTUI_ThemeCopyHelpQuit(t *testing.T) {
	m, a := newTestModel(t)
	var copied string
	m.copy = func(s string) error { copied = s; return nil }
	m = typeText(t, m, "copy me")

	m = press(t, m, "tab", "t")
	if !a.Theme.Dark() {
		t.Fatalf("t should toggle theme")
	}
	if !strings.Contains(m.View(), "t: Light") {
		t.Fatalf("header should offer Light when dark")
	}
	m = press(t, m, "t")

	m = press(t, m, "y")
	if copied != "copy me" {
		t.Fatalf("copied = %q", copied)
	}
	m.copy = func(string) error { return errors.New("no clipboard") }
	m = press(t, m, "y")
	if !m.statusErr {
		t.Fatalf("copy failure should be reported")
	}

	m = press(t, m, "?")
	if !m.help.ShowAll {
		t.Fatalf("? should toggle full help")
	}

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q should return tea.Quit")
	}
}

func TestTUI_TypingQInInputDoesNotQuit(t *testing.T) {
	m, a := newTestModel(t)
	m = typeText(t, m, "q")
	if strings.Join(texts(a), ",") != "q" {
		t.Fatalf("q in input should be text, got %v", texts(a))
	}
}

func TestTUI_ViewRendersRows(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "first")
	m = typeText(t, m, strings.Repeat("long ", 40))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	m = next.(appModel)
	m = press(t, m, "tab")

	out := m.View()
	for _, want := range []string{"Todos", "[ ]", "first", "All (2)", "Active (2)", "Completed (0)", "2 items left", "..."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}
