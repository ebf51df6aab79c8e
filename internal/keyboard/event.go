package keyboard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Event is a host-independent key press.
type Event struct {
	Key   string // "k", "enter", "up", "esc", ...
	Alt   bool
	Ctrl  bool
	Meta  bool
	Shift bool
}

// String renders e in bubbletea key notation, e.g. "ctrl+k".
func (e Event) String() string {
	var b strings.Builder
	if e.Alt {
		b.WriteString("alt+")
	}
	if e.Ctrl {
		b.WriteString("ctrl+")
	}
	if e.Meta {
		b.WriteString("meta+")
	}
	if e.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(e.Key)
	return b.String()
}

// Modified reports whether a primary modifier is held.
func (e Event) Modified() bool {
	return e.Alt || e.Ctrl || e.Meta
}

// Parse reads bubbletea key notation. Modifiers come first and are
// separated by "+"; a trailing "+" is the plus key itself.
func Parse(s string) Event {
	var ev Event
	for {
		mod, rest, ok := strings.Cut(s, "+")
		if !ok || rest == "" {
			break
		}
		switch mod {
		case "alt":
			ev.Alt = true
		case "ctrl":
			ev.Ctrl = true
		case "meta", "cmd", "super":
			ev.Meta = true
		case "shift":
			ev.Shift = true
		default:
			ev.Key = s
			return ev
		}
		s = rest
	}
	ev.Key = s
	return ev
}

// FromTea converts a bubbletea key message.
func FromTea(msg tea.KeyMsg) Event {
	return Parse(msg.String())
}
