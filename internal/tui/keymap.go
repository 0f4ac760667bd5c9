package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Quit       key.Binding
	Pause      key.Binding
	Reset      key.Binding
	NextPeriod key.Binding
	PrevPeriod key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		NextPeriod: key.NewBinding(
			key.WithKeys("+", "]", "right", "l"),
			key.WithHelp("+", "longer"),
		),
		PrevPeriod: key.NewBinding(
			key.WithKeys("-", "[", "left", "h"),
			key.WithHelp("-", "shorter"),
		),
	}
}
