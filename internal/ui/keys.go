package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the task list view
type KeyMap struct {
	Submit   key.Binding
	Clear    key.Binding
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Quit     key.Binding
}

// DefaultKeyMap is the built-in binding set. Printable keys go to the input,
// so navigation sticks to arrows and control chords.
var DefaultKeyMap = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "add task"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Complete: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "complete"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Complete, k.Up, k.Down, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Clear},
		{k.Up, k.Down, k.Complete},
		{k.Quit},
	}
}
