package main

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the TUI
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Select      key.Binding
	SelectAll   key.Binding
	Filter      key.Binding
	NextFocus   key.Binding
	Press       key.Binding
	SortName    key.Binding
	SortCPU     key.Binding
	Kill        key.Binding
	KillAll     key.Binding
	KillAllExit key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
}

// keys is the default set of key bindings
var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev button"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next button"),
	),
	Select: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "select"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select all"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	NextFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "focus"),
	),
	Press: key.NewBinding(
		key.WithKeys("enter", " ", "space"),
		key.WithHelp("enter", "press"),
	),
	SortName: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "sort by name"),
	),
	SortCPU: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "sort by cpu"),
	),
	Kill: key.NewBinding(
		key.WithKeys("enter", "d"),
		key.WithHelp("enter/d", "kill selected"),
	),
	KillAll: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "kill all"),
	),
	KillAllExit: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "kill all & exit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "exit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Filter, k.Kill, k.KillAll, k.NextFocus, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.SelectAll},
		{k.SortName, k.SortCPU, k.Filter, k.NextFocus},
		{k.Kill, k.KillAll, k.KillAllExit, k.Quit},
	}
}
