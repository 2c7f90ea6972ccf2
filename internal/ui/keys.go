package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the console.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Session actions
	OpenPicker key.Binding
	TypePath   key.Binding
	Process    key.Binding
	Reset      key.Binding
	Export     key.Binding
	Copy       key.Binding
	Activity   key.Binding

	// View switching
	NextView    key.Binding
	ViewSummary key.Binding
	ViewFields  key.Binding
	ViewRaw     key.Binding

	// Navigation
	Top    key.Binding
	Bottom key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		OpenPicker: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open file"),
		),
		TypePath: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Type path"),
		),
		Process: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p", "Process"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reset"),
		),
		Export: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Export JSON"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy JSON"),
		),
		Activity: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),

		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ViewSummary: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Summary"),
		),
		ViewFields: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Fields"),
		),
		ViewRaw: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Raw JSON"),
		),

		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Bottom"),
		),
	}
}

// commandBar lists the bindings shown under the header.
func (k keyMap) commandBar() []key.Binding {
	return []key.Binding{
		k.OpenPicker, k.TypePath, k.Process, k.Reset,
		k.NextView, k.Export, k.Copy, k.Help, k.Quit,
	}
}
