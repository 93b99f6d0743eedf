package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Open      key.Binding
	Back      key.Binding
	MarkRead  key.Binding
	Bookmark  key.Binding
	AddFilter key.Binding
	Filters   key.Binding
	Delete    key.Binding
	Reload    key.Binding
	Browser   key.Binding
	Copy      key.Binding
	Compact   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdown", "page down")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		MarkRead:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark page read")),
		Bookmark:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark")),
		AddFilter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter post")),
		Filters:   key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "filters")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete filter")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Browser:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Compact:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compact")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MarkRead, k.Bookmark, k.AddFilter, k.Filters, k.Reload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Open, k.Back, k.Browser, k.Copy},
		{k.MarkRead, k.Bookmark, k.Reload, k.Compact},
		{k.AddFilter, k.Filters, k.Delete},
		{k.Help, k.Quit},
	}
}
