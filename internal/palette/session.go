// Package palette implements the command palette: a modal query field over
// a ranked list of catalog items.
//
// Session holds the interaction state and exposes every transition as a
// plain method, so it can be driven and tested without a terminal. Model
// renders a Session with bubbletea.
package palette

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/novix/internal/commands"
	"github.com/renato0307/novix/internal/keyboard"
	"github.com/renato0307/novix/internal/logging"
)

// PrepareFunc warms whatever the catalog is built from. It runs each time
// the palette opens and must be safe to run more than once concurrently.
type PrepareFunc func(ctx context.Context) error

// Option configures a Session.
type Option func(*Session)

// WithResolver sets the per-keystroke resolver.
func WithResolver(r commands.Resolver) Option {
	return func(s *Session) { s.resolver = r }
}

// WithPrepare sets the on-open preparation.
func WithPrepare(fn PrepareFunc) Option {
	return func(s *Session) { s.prepare = fn }
}

// WithPrepareTimeout bounds the on-open preparation.
func WithPrepareTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.prepareTimeout = d
		}
	}
}

// WithKeys replaces the default key bindings.
func WithKeys(keys *keyboard.Keys) Option {
	return func(s *Session) {
		if keys != nil {
			s.keys = keys.Bindings()
		}
	}
}

// Session is the palette state machine.
type Session struct {
	state     State
	query     string
	active    int
	composing bool

	catalog   []commands.Item
	ranked    []commands.Item
	synthetic *commands.Item
	errMsg    string

	resolver       commands.Resolver
	prepare        PrepareFunc
	prepareTimeout time.Duration
	keys           keyboard.Bindings
	focus          *FocusRing

	seq        int
	preparing  int
	prepareErr error

	log *logging.Logger
}

// NewSession creates a closed session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		state:          StateClosed,
		ranked:         []commands.Item{},
		prepareTimeout: DefaultPrepareTimeout,
		keys:           keyboard.Default().Bindings(),
		focus:          NewFocusRing(FocusQuery, FocusResults, FocusClose),
		log:            logging.Named("palette"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns whether the palette is open.
func (s *Session) State() State { return s.state }

// IsOpen reports whether the palette is open.
func (s *Session) IsOpen() bool { return s.state == StateOpen }

// Query returns the current query.
func (s *Session) Query() string { return s.query }

// Active returns the index of the highlighted item.
func (s *Session) Active() int { return s.active }

// Composing reports whether an input method is composing text.
func (s *Session) Composing() bool { return s.composing }

// Focus returns the focused panel element.
func (s *Session) Focus() Focus { return s.focus.Current() }

// Seq identifies the current open. It increases on every Open.
func (s *Session) Seq() int { return s.seq }

// Preparing reports whether an on-open preparation is still running.
func (s *Session) Preparing() bool { return s.preparing > 0 }

// PrepareErr returns the error of the last finished preparation.
func (s *Session) PrepareErr() error { return s.prepareErr }

// Keys returns the session's key bindings.
func (s *Session) Keys() keyboard.Bindings { return s.keys }

// Error returns the resolver error for the current query, or "".
func (s *Session) Error() string { return s.errMsg }

// Items returns the visible list: the resolver's synthetic item, if any,
// followed by the ranked catalog.
func (s *Session) Items() []commands.Item {
	if s.synthetic == nil || s.errMsg != "" {
		return s.ranked
	}
	return append([]commands.Item{*s.synthetic}, s.ranked...)
}

// Selected returns the highlighted item.
func (s *Session) Selected() (commands.Item, bool) {
	items := s.Items()
	if s.active < 0 || s.active >= len(items) {
		return commands.Item{}, false
	}
	return items[s.active], true
}

// SetCatalog replaces the catalog and reranks the current query. The
// highlight is kept when it is still in range.
func (s *Session) SetCatalog(items []commands.Item) {
	s.catalog = slices.Clone(items)
	s.recompute()
	s.clamp()
}

// Open shows the palette with an empty query. The returned command runs the
// preparation and schedules focusing the query field; neither blocks the
// palette from becoming interactive.
func (s *Session) Open() tea.Cmd {
	s.seq++
	s.state = StateOpen
	s.query = ""
	s.active = 0
	s.composing = false
	s.focus.Reset()
	s.recompute()

	seq := s.seq
	focus := tea.Tick(FocusDelay, func(time.Time) tea.Msg {
		return FocusInputMsg{Seq: seq}
	})
	return tea.Batch(s.prepareCmd(seq), focus)
}

// Close hides the palette. Query and highlight are discarded on the next
// Open, not here.
func (s *Session) Close() {
	s.state = StateClosed
	s.composing = false
}

// Toggle opens a closed palette and closes an open one.
func (s *Session) Toggle() tea.Cmd {
	if s.IsOpen() {
		s.Close()
		return nil
	}
	return s.Open()
}

// SetQuery replaces the query, reranks and highlights the first item.
func (s *Session) SetQuery(q string) {
	s.query = q
	s.active = 0
	s.recompute()
}

// Move shifts the highlight by delta within the visible list. It does
// nothing while composing.
func (s *Session) Move(delta int) {
	if s.composing {
		return
	}
	s.active += delta
	s.clamp()
}

// Select runs the highlighted item. The palette closes afterwards unless
// keepOpen is set. With nothing to run, or while composing, it does
// nothing.
func (s *Session) Select(keepOpen bool) tea.Cmd {
	if s.composing || !s.IsOpen() {
		return nil
	}
	item, ok := s.Selected()
	if !ok {
		return nil
	}
	s.log.Debug("Palette item selected", "id", item.ID, "group", item.Group, "keep_open", keepOpen)
	cmd := item.Run()
	if !keepOpen {
		s.Close()
	}
	return cmd
}

// StartComposition marks an input method composition as in progress.
func (s *Session) StartComposition() { s.composing = true }

// EndComposition marks the composition as finished.
func (s *Session) EndComposition() { s.composing = false }

// ClickOutside closes an open palette.
func (s *Session) ClickOutside() {
	if s.IsOpen() {
		s.Close()
	}
}

// FocusNext moves focus to the next panel element, wrapping at the end.
func (s *Session) FocusNext() Focus { return s.focus.Next() }

// FocusPrev moves focus to the previous panel element, wrapping at the
// start.
func (s *Session) FocusPrev() Focus { return s.focus.Prev() }

// HandleKey applies a key event. The toggle key is handled in every state;
// everything else only while open. It reports whether the event was
// consumed; unconsumed events belong to the query field.
func (s *Session) HandleKey(ev keyboard.Event) (bool, tea.Cmd) {
	if matches(s.keys.Toggle, ev) {
		return true, s.Toggle()
	}
	if !s.IsOpen() {
		return false, nil
	}

	switch {
	case matches(s.keys.Close, ev):
		s.Close()
		return true, nil
	case matches(s.keys.FocusNext, ev):
		s.FocusNext()
		return true, nil
	case matches(s.keys.FocusPrev, ev):
		s.FocusPrev()
		return true, nil
	}

	if s.composing {
		return false, nil
	}

	switch {
	case matches(s.keys.Up, ev):
		s.Move(-1)
		return true, nil
	case matches(s.keys.Down, ev):
		s.Move(1)
		return true, nil
	case matches(s.keys.KeepOpen, ev):
		return true, s.Select(true)
	case matches(s.keys.Execute, ev):
		if s.Focus() == FocusClose {
			s.Close()
			return true, nil
		}
		return true, s.Select(false)
	}
	return false, nil
}

// HandlePrepared records a finished preparation. Failures are logged and
// kept for display; they never close the palette.
func (s *Session) HandlePrepared(msg PreparedMsg) {
	if s.preparing > 0 {
		s.preparing--
	}
	s.prepareErr = msg.Err
	if msg.Err != nil {
		s.log.Warn("Palette preparation failed", "seq", msg.Seq, "error", msg.Err)
	}
}

// Attach subscribes the session to src. The returned function detaches it.
func (s *Session) Attach(src keyboard.Source) func() {
	return src.Subscribe(s.HandleKey)
}

func (s *Session) prepareCmd(seq int) tea.Cmd {
	if s.prepare == nil {
		return nil
	}
	s.preparing++
	prepare, timeout := s.prepare, s.prepareTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		timing := logging.Start("palette prepare")
		err := prepare(ctx)
		logging.End(timing)
		return PreparedMsg{Seq: seq, Err: err}
	}
}

func (s *Session) recompute() {
	timing := logging.Start("palette rank")
	s.ranked = commands.Rank(s.catalog, s.query)
	logging.EndWithCount(timing, len(s.ranked))

	s.synthetic, s.errMsg = nil, ""
	if s.resolver == nil {
		return
	}
	res := s.resolver.Resolve(s.query)
	switch {
	case res == nil:
	case res.Err != "":
		s.errMsg = res.Err
	case res.Item != nil:
		item := *res.Item
		s.synthetic = &item
	}
}

func (s *Session) clamp() {
	n := len(s.Items())
	if s.active > n-1 {
		s.active = n - 1
	}
	if s.active < 0 {
		s.active = 0
	}
}

func matches(b key.Binding, ev keyboard.Event) bool {
	return b.Enabled() && slices.Contains(b.Keys(), ev.String())
}
