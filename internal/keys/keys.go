package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the todo board.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Lists
	NextList key.Binding
	PrevList key.Binding
	Filter   key.Binding

	// Todo actions
	Select    key.Binding
	Add       key.Binding
	Edit      key.Binding
	Toggle    key.Binding
	Important key.Binding
	Delete    key.Binding

	// Search within the visible todos
	Search key.Binding

	// Command palette
	Command key.Binding

	// Refresh from the server
	Refresh key.Binding

	Help key.Binding
	Back key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		NextList: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "next list"),
		),
		PrevList: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("shift+tab", "previous list"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open todo"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a", "add todo"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit todo"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle done"),
		),
		Important: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle important"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete todo"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Toggle, k.Add,
		k.NextList, k.Help, k.Quit,
	}
}

// FullHelp returns all keybindings grouped by category for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextList, k.PrevList, k.Filter},
		{k.Select, k.Add, k.Edit, k.Toggle, k.Important, k.Delete},
		{k.Search, k.Command, k.Refresh, k.Help, k.Back, k.Quit},
	}
}
