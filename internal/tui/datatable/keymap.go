// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package datatable

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings the table reacts to. Views embed the table
// and add their own bindings on top.
type KeyMap struct {
	CursorUp    key.Binding
	CursorDown  key.Binding
	ColumnLeft  key.Binding
	ColumnRight key.Binding
	ToggleSort  key.Binding
	FirstPage   key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding
	LastPage    key.Binding
	ToggleRow   key.Binding
	TogglePage  key.Binding
	Activate    key.Binding
	CopyID      key.Binding
	Search      key.Binding
}

// DefaultKeyMap returns the standard table bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		CursorUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "row up"),
		),
		CursorDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "row down"),
		),
		ColumnLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "column left"),
		),
		ColumnRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "column right"),
		),
		ToggleSort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort column"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "next page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last page"),
		),
		ToggleRow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select row"),
		),
		TogglePage: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select page"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open row"),
		),
		CopyID: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy id"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
	}
}
