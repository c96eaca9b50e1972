package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	toggle key.Binding
	reset  key.Binding
	brk    key.Binding
	skip   key.Binding
	music  key.Binding
	next   key.Binding
	prev   key.Binding
	quit   key.Binding
}

var defaultKeymap = keyMap{
	toggle: key.NewBinding(
		key.WithKeys("s", " "),
		key.WithHelp("s", "start/stop"),
	),
	reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	brk: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "5 min break"),
	),
	skip: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "skip"),
	),
	music: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play/pause music"),
	),
	next: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next track"),
	),
	prev: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous track"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.reset, k.brk, k.skip, k.music, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.toggle, k.reset, k.brk, k.skip},
		{k.music, k.prev, k.next, k.quit},
	}
}
