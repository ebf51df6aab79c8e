package keyboard

import (
	"github.com/charmbracelet/bubbles/key"
)

// Keys holds the configurable shortcut strings, in bubbletea key notation.
type Keys struct {
	// Palette
	Toggle    string // Open or close the palette, works regardless of focus
	Close     string // Close the palette
	Up        string // Move selection up
	Down      string // Move selection down
	Execute   string // Run the selected item and close
	FocusNext string // Next focusable element inside the palette
	FocusPrev string // Previous focusable element inside the palette

	// Global
	Quit string
}

// Default returns the default keyboard configuration
func Default() *Keys {
	return &Keys{
		Toggle:    "ctrl+k",
		Close:     "esc",
		Up:        "up",
		Down:      "down",
		Execute:   "enter",
		FocusNext: "tab",
		FocusPrev: "shift+tab",
		Quit:      "ctrl+c",
	}
}

// Bindings are Keys compiled to bubbles key bindings.
type Bindings struct {
	Toggle    key.Binding
	Close     key.Binding
	Up        key.Binding
	Down      key.Binding
	Execute   key.Binding
	KeepOpen  key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Quit      key.Binding
}

// Bindings compiles k. Execute held with any modifier becomes KeepOpen.
func (k *Keys) Bindings() Bindings {
	exec := Parse(k.Execute)
	keepOpen := []string{}
	for _, mod := range []string{"alt", "ctrl", "meta"} {
		keepOpen = append(keepOpen, mod+"+"+exec.Key)
	}

	return Bindings{
		Toggle:    key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(k.Toggle, "toggle palette")),
		Close:     key.NewBinding(key.WithKeys(k.Close), key.WithHelp(k.Close, "close")),
		Up:        key.NewBinding(key.WithKeys(k.Up, "ctrl+p"), key.WithHelp("↑", "previous")),
		Down:      key.NewBinding(key.WithKeys(k.Down, "ctrl+n"), key.WithHelp("↓", "next")),
		Execute:   key.NewBinding(key.WithKeys(k.Execute), key.WithHelp(k.Execute, "run")),
		KeepOpen:  key.NewBinding(key.WithKeys(keepOpen...), key.WithHelp(keepOpen[0], "run, keep open")),
		FocusNext: key.NewBinding(key.WithKeys(k.FocusNext), key.WithHelp(k.FocusNext, "next field")),
		FocusPrev: key.NewBinding(key.WithKeys(k.FocusPrev), key.WithHelp(k.FocusPrev, "previous field")),
		Quit:      key.NewBinding(key.WithKeys(k.Quit), key.WithHelp(k.Quit, "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (b Bindings) ShortHelp() []key.Binding {
	return []key.Binding{b.Toggle, b.Up, b.Down, b.Execute, b.Close}
}

// FullHelp implements help.KeyMap.
func (b Bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{b.Toggle, b.Close, b.Quit},
		{b.Up, b.Down, b.Execute, b.KeepOpen},
		{b.FocusNext, b.FocusPrev},
	}
}
