package commands

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Group is the section an item is listed under.
type Group string

const (
	GroupNavigate Group = "Navigate"
	GroupActions  Group = "Actions"
	GroupHelp     Group = "Help"
	GroupCreate   Group = "Create"
)

// Payload kinds used by the @ and # scope prefixes.
const (
	KindCharacter = "character"
	KindChapter   = "chapter"
	KindCreate    = "create"
)

// ExecuteFunc runs an item and returns the Bubble Tea command carrying its
// effect. A nil ExecuteFunc only closes the palette.
type ExecuteFunc func() tea.Cmd

// Item is one entry of the palette catalog. Ranking looks at ID, Title,
// Subtitle, Keywords, Group and the "kind" payload field; everything else
// is carried through untouched.
type Item struct {
	ID       string
	Title    string
	Subtitle string
	Group    Group
	Keywords []string
	Payload  map[string]any
	// When is an expr condition over Env; the item is listed only when it
	// evaluates to true. Empty means always.
	When    string
	Execute ExecuteFunc
}

// Kind returns the payload discriminator, or "".
func (i Item) Kind() string {
	kind, _ := i.Payload["kind"].(string)
	return kind
}

// Run invokes the item's action.
func (i Item) Run() tea.Cmd {
	if i.Execute == nil {
		return nil
	}
	return i.Execute()
}
