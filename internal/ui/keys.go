package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit     key.Binding
	Help     key.Binding
	Escape   key.Binding
	Settings key.Binding
	Logs     key.Binding

	// Counter actions
	Increment    key.Binding
	Decrement    key.Binding
	Reset        key.Binding
	Delete       key.Binding
	New          key.Binding
	Reload       key.Binding
	CounterTheme key.Binding

	// Settings and logs navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Top    key.Binding
	Bottom key.Binding
	Toggle key.Binding
	Follow key.Binding
	Reread key.Binding

	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to counter"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Settings"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Application log"),
		),

		// Counter actions
		Increment: key.NewBinding(
			key.WithKeys("+", "=", "k", "up"),
			key.WithHelp("+", "Increment"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-", "j", "down"),
			key.WithHelp("-", "Decrement"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reset"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New counter"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reload"),
		),
		CounterTheme: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Counter theme"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("-", "left"),
			key.WithHelp("-/left", "Decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("+", "=", "right"),
			key.WithHelp("+/right", "Increase"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("enter", "Edit/toggle"),
		),
		Follow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),
		Reread: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Re-read log"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Decrement, k.Reset, k.Increment, k.Settings, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Increment, k.Decrement, k.Reset, k.Delete, k.New, k.Reload, k.CounterTheme},
		{k.Settings, k.Logs, k.Escape},
		{k.Up, k.Down, k.Left, k.Right, k.Toggle},
		{k.Follow, k.Reread, k.Top, k.Bottom},
		{k.Help, k.Quit},
	}
}
