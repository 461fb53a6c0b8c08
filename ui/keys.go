package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Search   key.Binding
	Enter    key.Binding
	Back     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Prev     key.Binding
	Next     key.Binding
	Close    key.Binding
	Copy     key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	NextPage: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev page")),
	Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h/←", "prev image")),
	Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l/→", "next image")),
	Close:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp returns short help key bindings (for help.Model)
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Search, k.Enter, k.NextPage, k.Help, k.Quit}
}

// FullHelp returns full help key bindings
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search, k.Enter},
		{k.NextPage, k.PrevPage, k.Refresh},
		{k.Prev, k.Next, k.Back, k.Close, k.Copy},
		{k.Help, k.Quit},
	}
}
