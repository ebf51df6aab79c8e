package palette

import "time"

// State is the palette's visibility.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

const (
	// MaxVisibleItems is the maximum number of result rows shown at once.
	// Eight rows fit comfortably on most terminal sizes.
	MaxVisibleItems = 8

	// FocusDelay lets the panel render once before the query field takes
	// focus.
	FocusDelay = 10 * time.Millisecond

	// DefaultPrepareTimeout bounds the on-open preparation.
	DefaultPrepareTimeout = 30 * time.Second
)

// PreparedMsg carries the result of the on-open preparation. Seq is the
// open it was started for; a stale result can arrive after a newer open.
type PreparedMsg struct {
	Seq int
	Err error
}

// FocusInputMsg asks the model to focus the query field for open Seq.
type FocusInputMsg struct {
	Seq int
}

// CompositionMsg reports that an input method started or finished
// composing text. While composing, navigation and Enter belong to the
// input method.
type CompositionMsg struct {
	Active bool
}
