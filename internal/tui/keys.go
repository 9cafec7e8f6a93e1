package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

type keyMap struct {
	Prev       key.Binding
	Next       key.Binding
	Play       key.Binding
	Jump       key.Binding
	FocusNext  key.Binding
	FocusPrev  key.Binding
	ValueNext  key.Binding
	ValuePrev  key.Binding
	Reset      key.Binding
	Open       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Play: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "play/pause"),
		),
		Jump: key.NewBinding(
			key.WithKeys("g", ":"),
			key.WithHelp("g", "go to step"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next filter"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous filter"),
		),
		ValueNext: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next value"),
		),
		ValuePrev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous value"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filters"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "pgup"),
			key.WithHelp("k/pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "pgdown"),
			key.WithHelp("j/pgdn", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Play, k.Jump, k.FocusNext, k.ValueNext, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Play, k.Jump},
		{k.FocusNext, k.FocusPrev, k.ValueNext, k.ValuePrev, k.Reset},
		{k.ScrollUp, k.ScrollDown, k.Open, k.Help, k.Quit},
	}
}

// viewportKeyMap scrolls the step panels without clashing with navigation.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		Up:   key.NewBinding(key.WithKeys("k")),
		Down: key.NewBinding(key.WithKeys("j")),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
		),
	}
}
