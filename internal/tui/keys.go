package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Increment key.Binding
	Decrement key.Binding
	SignIn    key.Binding
	Fetch     key.Binding
	Query     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Increment: key.NewBinding(key.WithKeys("+", "k", "up"), key.WithHelp("+/k", "increment")),
		Decrement: key.NewBinding(key.WithKeys("-", "j", "down"), key.WithHelp("-/j", "decrement")),
		SignIn:    key.NewBinding(key.WithKeys("l", "enter"), key.WithHelp("l", "login/logout")),
		Fetch:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "fetch weather")),
		Query:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "change location")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increment, k.Decrement, k.SignIn, k.Fetch, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Increment, k.Decrement},
		{k.SignIn},
		{k.Fetch, k.Query},
		{k.Help, k.Quit},
	}
}
