package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Prev     key.Binding
	Next     key.Binding
	Refresh  key.Binding
	Search   key.Binding
	Filter   key.Binding
	Book     key.Binding
	Reviews  key.Binding
	Copy     key.Binding
	Venues   key.Binding
	Catering key.Binding
	Bookings key.Binding
	Login    key.Binding
	Logout   key.Binding
	Home     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
	Tab      key.Binding
	Paste    key.Binding
	Resend   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous page"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next page"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "price filter"),
	),
	Book: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "book"),
	),
	Reviews: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "all reviews"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy reference"),
	),
	Venues: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "event centers"),
	),
	Catering: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "catering"),
	),
	Bookings: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "my bookings"),
	),
	Login: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "log in"),
	),
	Logout: key.NewBinding(
		key.WithKeys("O"),
		key.WithHelp("O", "log out"),
	),
	Home: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "home"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch field"),
	),
	Paste: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "paste code"),
	),
	Resend: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "resend code"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Prev, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Escape, k.Prev, k.Next},
		{k.Refresh, k.Search, k.Filter, k.Book, k.Reviews, k.Copy},
		{k.Home, k.Venues, k.Catering, k.Bookings, k.Login, k.Logout},
		{k.Paste, k.Resend, k.Help, k.Quit},
	}
}
