// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open        key.Binding
	Paste       key.Binding
	Style       key.Binding
	Instruction key.Binding
	Convert     key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	ZoomReset   key.Binding
	Save        key.Binding
	Copy        key.Binding
	Preview     key.Binding
	Dismiss     key.Binding
	Clear       key.Binding
	Up          key.Binding
	Down        key.Binding
	Help        key.Binding
	Quit        key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Style, k.Convert, k.Save, k.Copy, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Paste, k.Style, k.Instruction, k.Convert},
		{k.ZoomIn, k.ZoomOut, k.ZoomReset, k.Up, k.Down},
		{k.Save, k.Copy, k.Preview, k.Dismiss, k.Clear, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open image"),
	),
	Paste: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "paste path"),
	),
	Style: key.NewBinding(
		key.WithKeys("s", "tab"),
		key.WithHelp("s/tab", "next style"),
	),
	Instruction: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "edit instructions"),
	),
	Convert: key.NewBinding(
		key.WithKeys("enter", "c"),
		key.WithHelp("enter/c", "convert"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	ZoomReset: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset zoom"),
	),
	Save: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "save svg"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy svg"),
	),
	Preview: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "write preview"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "dismiss error"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "done"),
	),
}
