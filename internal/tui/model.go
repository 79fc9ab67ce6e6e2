package tui

import (
	"io"
	"strings"

	"todo-cli/internal/app"
	"todo-cli/internal/filter"
	"todo-cli/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	xansi "github.com/charmbracelet/x/ansi"
)

type pane int

const (
	paneInput pane = iota
	paneList
)

type appModel struct {
	app *app.App
	log *log.Logger

	input  textinput.Model
	focus  pane
	cursor int

	keys   keyMap
	help   help.Model
	glyphs glyphSet

	width  int
	height int

	status    string
	statusErr bool

	copy func(string) error
}

func newAppModel(a *app.App, opts Options) appModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	in := textinput.New()
	in.Placeholder = "What needs to be done?"
	in.Prompt = ""
	in.CharLimit = 0
	in.Focus()

	return appModel{
		app:    a,
		log:    logger,
		input:  in,
		focus:  paneInput,
		keys:   defaultKeyMap(),
		help:   help.New(),
		glyphs: parseGlyphs(opts.Glyphs),
		width:  80,
		copy:   copyToClipboard,
	}
}

func (m appModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-12)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == paneInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *appModel) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *appModel) focusInput() tea.Cmd {
	m.focus = paneInput
	return m.input.Focus()
}

func (m *appModel) focusList() {
	m.focus = paneList
	m.input.Blur()
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		res := m.app.Submit(m.input.Value())
		if res.ClearsInput() {
			m.input.SetValue("")
		}
		switch res.Outcome {
		case app.Added:
			m.setStatus("Added")
		case app.Saved:
			m.setStatus("Saved")
		case app.Kept:
			m.setError("Task text can't be empty")
		case app.Dropped:
			m.setError("That task no longer exists")
		}
		m.clampCursor()
		m.warnOnSaveError()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		if m.app.CurrentView().Editing() {
			m.app.CancelEdit()
			m.input.SetValue("")
			m.setStatus("Edit cancelled")
			return m, nil
		}
		m.focusList()
		return m, nil
	case key.Matches(msg, m.keys.FocusList):
		m.focusList()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.app.CurrentView().Tasks
	selected, hasSelected := m.selected(visible)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if hasSelected {
			m.app.Toggle(selected.ID)
			m.clampCursor()
			m.warnOnSaveError()
		}
	case key.Matches(msg, m.keys.Edit):
		if !hasSelected {
			return m, nil
		}
		if m.app.EditTask(selected.ID) {
			m.input.SetValue(m.app.Edit.Draft())
			m.input.CursorEnd()
			m.setStatus("Editing: enter saves, esc cancels")
			return m, m.focusInput()
		}
		m.input.SetValue("")
		m.setStatus("Edit cancelled")
	case key.Matches(msg, m.keys.Delete):
		if !hasSelected {
			return m, nil
		}
		wasEditing := m.app.CurrentView().Editing()
		m.app.Delete(selected.ID)
		if wasEditing && !m.app.CurrentView().Editing() {
			m.input.SetValue("")
		}
		m.setStatus("Deleted")
		m.clampCursor()
		m.warnOnSaveError()
	case key.Matches(msg, m.keys.FocusInput):
		return m, m.focusInput()
	case key.Matches(msg, m.keys.Filter):
		m.setFilter(m.app.Filter.Next())
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(filter.All)
	case key.Matches(msg, m.keys.FilterAct):
		m.setFilter(filter.Active)
	case key.Matches(msg, m.keys.FilterDone):
		m.setFilter(filter.Completed)
	case key.Matches(msg, m.keys.Theme):
		dark := m.app.ToggleTheme()
		applyTheme(dark)
		if err := m.app.Theme.LastSaveErr(); err != nil {
			m.setError("Theme not saved: " + err.Error())
		}
	case key.Matches(msg, m.keys.Copy):
		if !hasSelected {
			return m, nil
		}
		if err := m.copy(selected.Text); err != nil {
			m.log.Warn("copy to clipboard failed", "err", err)
			m.setError("Copy failed: " + err.Error())
			return m, nil
		}
		m.setStatus("Copied")
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *appModel) setFilter(f filter.Filter) {
	m.app.SetFilter(f)
	m.cursor = 0
}

func (m *appModel) clampCursor() {
	n := len(m.app.CurrentView().Tasks)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m appModel) selected(visible []model.Task) (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *appModel) warnOnSaveError() {
	if err := m.app.Tasks.LastSaveErr(); err != nil {
		m.setError("Not saved: " + err.Error())
	}
}

func (m appModel) View() string {
	v := m.app.CurrentView()
	w := max(20, m.width)

	var b strings.Builder

	title := styleTitle().Render("Todos")
	themeHint := styleMuted().Render("t: " + v.ThemeLabel())
	gap := max(1, w-lipgloss.Width(title)-lipgloss.Width(themeHint))
	b.WriteString(title + strings.Repeat(" ", gap) + themeHint + "\n\n")

	b.WriteString(styleLabel().Render(v.SubmitLabel()) + " " + m.input.View())
	if v.Editing() {
		b.WriteString(" " + styleMuted().Render("(esc cancels)"))
	}
	b.WriteString("\n\n")

	tabs := make([]string, 0, 3)
	for _, f := range filter.Values() {
		label := f.Label() + " (" + itoa(v.Counts.For(f)) + ")"
		tabs = append(tabs, styleTab(f == v.Filter).Render(label))
	}
	b.WriteString(strings.Join(tabs, styleMuted().Render(" "+m.glyphs.separator()+" ")) + "\n\n")

	if len(v.Tasks) == 0 {
		b.WriteString(styleMuted().Render("  Nothing here.") + "\n")
	}
	for i, t := range v.Tasks {
		b.WriteString(m.renderRow(t, i == m.cursor && m.focus == paneList, t.ID == v.EditingID, w) + "\n")
	}

	b.WriteString("\n")
	footer := styleMuted().Render(itemsLeft(v.Counts.Active))
	if m.status != "" {
		st := styleMuted()
		if m.statusErr {
			st = styleError()
		}
		footer += "  " + st.Render(m.status)
	}
	b.WriteString(footer + "\n")

	if m.focus == paneInput {
		b.WriteString(m.help.View(inputHelp{k: m.keys}))
	} else {
		b.WriteString(m.help.View(listHelp{k: m.keys}))
	}
	return b.String()
}

func (m appModel) renderRow(t model.Task, selected, editing bool, width int) string {
	cur := " "
	if selected {
		cur = m.glyphs.cursor()
	}
	prefix := cur + " " + m.glyphs.box(t.Completed) + " "
	avail := max(1, width-xansi.StringWidth(prefix))
	text := xansi.Truncate(t.Text, avail, m.glyphs.ellipsis())
	return prefix + styleRow(selected, editing, t.Completed).Render(text)
}

func itemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return itoa(n) + " items left"
}
