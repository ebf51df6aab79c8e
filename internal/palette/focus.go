package palette

// Focus names a focusable element of the open panel.
type Focus int

const (
	FocusQuery Focus = iota
	FocusResults
	FocusClose
)

func (f Focus) String() string {
	switch f {
	case FocusResults:
		return "results"
	case FocusClose:
		return "close"
	default:
		return "query"
	}
}

// FocusRing cycles focus among the panel's own elements. Moving past the
// last element wraps to the first and the other way round, so focus never
// leaves the panel.
type FocusRing struct {
	elements []Focus
	index    int
}

// NewFocusRing creates a ring over elements, focused on the first.
func NewFocusRing(elements ...Focus) *FocusRing {
	if len(elements) == 0 {
		elements = []Focus{FocusQuery}
	}
	return &FocusRing{elements: elements}
}

// Current returns the focused element.
func (r *FocusRing) Current() Focus {
	return r.elements[r.index]
}

// Next focuses the following element.
func (r *FocusRing) Next() Focus {
	r.index = (r.index + 1) % len(r.elements)
	return r.Current()
}

// Prev focuses the preceding element.
func (r *FocusRing) Prev() Focus {
	r.index = (r.index - 1 + len(r.elements)) % len(r.elements)
	return r.Current()
}

// Reset focuses the first element.
func (r *FocusRing) Reset() {
	r.index = 0
}
