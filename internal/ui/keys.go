package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Add          key.Binding
	Complete     key.Binding
	Delete       key.Binding
	DueDate      key.Binding
	Priority     key.Binding
	Descriptions key.Binding
	Group        key.Binding
	CopyCode     key.Binding
	CopyInvite   key.Binding
	Refresh      key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		Complete: key.NewBinding(
			key.WithKeys("x", "enter"),
			key.WithHelp("x", "complete"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		DueDate: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "due date"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority"),
		),
		Descriptions: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "descriptions"),
		),
		Group: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "group completed"),
		),
		CopyCode: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy code"),
		),
		CopyInvite: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "copy invite"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
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

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Complete, k.Delete, k.Priority, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Complete, k.Delete},
		{k.Priority, k.DueDate, k.Descriptions, k.Group, k.Refresh},
		{k.CopyCode, k.CopyInvite, k.Help, k.Quit},
	}
}
