package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// input focus
	Submit    key.Binding
	Escape    key.Binding
	FocusList key.Binding

	// list focus
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	FocusInput key.Binding
	Filter     key.Binding
	FilterAll  key.Binding
	FilterAct  key.Binding
	FilterDone key.Binding
	Theme      key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add/save")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel/leave")),
		FocusList: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "list")),

		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space/x", "toggle")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		FocusInput: key.NewBinding(key.WithKeys("a", "i", "tab"), key.WithHelp("a/i", "new task")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		FilterAll:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterAct:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterDone: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// inputHelp and listHelp adapt keyMap to help.KeyMap for the focused pane.
type inputHelp struct{ k keyMap }

func (h inputHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Submit, h.k.Escape, h.k.FocusList}
}

func (h inputHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

type listHelp struct{ k keyMap }

func (h listHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Toggle, h.k.Edit, h.k.Delete, h.k.FocusInput, h.k.Filter, h.k.Help, h.k.Quit}
}

func (h listHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Up, h.k.Down, h.k.Toggle, h.k.Edit, h.k.Delete},
		{h.k.FocusInput, h.k.Filter, h.k.FilterAll, h.k.FilterAct, h.k.FilterDone},
		{h.k.Theme, h.k.Copy, h.k.Help, h.k.Quit},
	}
}
