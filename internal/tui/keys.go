package tui

import "github.com/charmbracelet/bubbles/key"

// browserKeys binds the ledger browser. Everything else goes to the filter
// input.
type browserKeys struct {
	// run list
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding

	// preview pane
	HalfUp   key.Binding
	HalfDown key.Binding
	FullUp   key.Binding
	FullDown key.Binding

	CopyPath key.Binding
	Quit     key.Binding
}

var keys = browserKeys{
	Prev:     key.NewBinding(key.WithKeys("up", "ctrl+k"), key.WithHelp("up", "previous run")),
	Next:     key.NewBinding(key.WithKeys("down", "ctrl+j"), key.WithHelp("dn", "next run")),
	First:    key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "newest run")),
	Last:     key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "oldest run")),
	HalfUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("C-u", "fields up")),
	HalfDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("C-d", "fields down")),
	FullUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "fields page up")),
	FullDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "fields page down")),
	CopyPath: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy log path")),
	Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}
