package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global bindings
type KeyMap struct {
	Compare   key.Binding
	Crossover key.Binding
	Dues      key.Binding
	NextYear  key.Binding
	PrevYear  key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the global bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Compare:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		Crossover: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "crossover")),
		Dues:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dues")),
		NextYear:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "next year")),
		PrevYear:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "previous year")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Compare, k.Crossover, k.Dues, k.NextYear, k.PrevYear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Compare, k.Crossover, k.Dues},
		{k.NextYear, k.PrevYear},
		{k.Help, k.Back, k.Quit},
	}
}
