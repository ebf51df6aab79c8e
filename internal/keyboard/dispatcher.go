package keyboard

import tea "github.com/charmbracelet/bubbletea"

// Handler reacts to a key event. It reports whether it consumed the event.
type Handler func(Event) (bool, tea.Cmd)

// Source delivers key events to subscribers. The returned function removes
// the subscription.
type Source interface {
	Subscribe(h Handler) (unsubscribe func())
}

// Dispatcher is a Source fed from the bubbletea update loop. Handlers are
// offered each event in subscription order until one consumes it.
type Dispatcher struct {
	handlers []subscription
	nextID   int
}

type subscription struct {
	id int
	h  Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Subscribe(h Handler) func() {
	d.nextID++
	id := d.nextID
	d.handlers = append(d.handlers, subscription{id: id, h: h})
	return func() {
		for i, s := range d.handlers {
			if s.id == id {
				d.handlers = append(d.handlers[:i], d.handlers[i+1:]...)
				return
			}
		}
	}
}

// Dispatch offers ev to the handlers.
func (d *Dispatcher) Dispatch(ev Event) (bool, tea.Cmd) {
	for _, s := range d.handlers {
		if handled, cmd := s.h(ev); handled {
			return true, cmd
		}
	}
	return false, nil
}

// DispatchTea is Dispatch for a bubbletea key message.
func (d *Dispatcher) DispatchTea(msg tea.KeyMsg) (bool, tea.Cmd) {
	return d.Dispatch(FromTea(msg))
}
