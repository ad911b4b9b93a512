// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back closes an overlay or returns to the previous phase.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection or submits an input.
	Select key.Binding

	// Confirm runs the current phase's main action (extract, match).
	Confirm key.Binding

	// Edit opens the edit form on a row.
	Edit key.Binding

	// Delete removes a row.
	Delete key.Binding

	// Clear unstages the uploaded file.
	Clear key.Binding

	// Export saves remotely and writes the CSV artifact.
	Export key.Binding

	// NextField moves between form fields.
	NextField key.Binding

	// PhaseUpload, PhaseExtract, PhaseMatch jump directly to a phase.
	PhaseUpload  key.Binding
	PhaseExtract key.Binding
	PhaseMatch   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "confirm"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear"),
		),
		Export: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save & export"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PhaseUpload: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "upload"),
		),
		PhaseExtract: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "extract"),
		),
		PhaseMatch: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "match"),
		),
	}
}
