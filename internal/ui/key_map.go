package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	add   key.Binding
	focus key.Binding
	blur  key.Binding
	help  key.Binding
	quit  key.Binding
	exit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		add:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add card")),
		focus: key.NewBinding(key.WithKeys("tab", "i"), key.WithHelp("tab", "type")),
		blur:  key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "stop typing")),
		help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		exit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.focus, k.add, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.focus, k.blur, k.add},
		{k.help, k.quit, k.exit},
	}
}
