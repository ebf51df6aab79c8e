package keyboard

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Event
	}{
		{"k", Event{Key: "k"}},
		{"ctrl+k", Event{Key: "k", Ctrl: true}},
		{"shift+tab", Event{Key: "tab", Shift: true}},
		{"alt+enter", Event{Key: "enter", Alt: true}},
		{"cmd+k", Event{Key: "k", Meta: true}},
		{"ctrl+shift+up", Event{Key: "up", Ctrl: true, Shift: true}},
		{"+", Event{Key: "+"}},
		{"ctrl++", Event{Key: "+", Ctrl: true}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "ctrl+k", Event{Key: "k", Ctrl: true}.String())
	assert.Equal(t, "alt+ctrl+meta+shift+x", Event{Key: "x", Ctrl: true, Alt: true, Meta: true, Shift: true}.String())
	assert.Equal(t, "ctrl+k", Parse("ctrl+k").String())
}

func TestEvent_Modified(t *testing.T) {
	assert.False(t, Event{Key: "enter"}.Modified())
	assert.False(t, Event{Key: "tab", Shift: true}.Modified())
	assert.True(t, Event{Key: "enter", Alt: true}.Modified())
	assert.True(t, Event{Key: "enter", Meta: true}.Modified())
}

func TestFromTea(t *testing.T) {
	assert.Equal(t, Event{Key: "k", Ctrl: true}, FromTea(tea.KeyMsg{Type: tea.KeyCtrlK}))
	assert.Equal(t, Event{Key: "enter"}, FromTea(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, Event{Key: "enter", Alt: true}, FromTea(tea.KeyMsg{Type: tea.KeyEnter, Alt: true}))
	assert.Equal(t, Event{Key: "tab", Shift: true}, FromTea(tea.KeyMsg{Type: tea.KeyShiftTab}))
	assert.Equal(t, Event{Key: "a"}, FromTea(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}))
}

func TestBindings(t *testing.T) {
	b := Default().Bindings()

	tests := []struct {
		name    string
		event   Event
		binding key.Binding
		want    bool
	}{
		{"toggle", Event{Key: "k", Ctrl: true}, b.Toggle, true},
		{"plain k is not toggle", Event{Key: "k"}, b.Toggle, false},
		{"escape closes", Event{Key: "esc"}, b.Close, true},
		{"arrow up", Event{Key: "up"}, b.Up, true},
		{"ctrl+n is down", Event{Key: "n", Ctrl: true}, b.Down, true},
		{"enter executes", Event{Key: "enter"}, b.Execute, true},
		{"alt+enter keeps open", Event{Key: "enter", Alt: true}, b.KeepOpen, true},
		{"ctrl+enter keeps open", Event{Key: "enter", Ctrl: true}, b.KeepOpen, true},
		{"plain enter does not keep open", Event{Key: "enter"}, b.KeepOpen, false},
		{"tab", Event{Key: "tab"}, b.FocusNext, true},
		{"shift+tab", Event{Key: "tab", Shift: true}, b.FocusPrev, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, key.Matches(tt.event, tt.binding))
		})
	}
}

func TestBindings_CustomToggle(t *testing.T) {
	keys := Default()
	keys.Toggle = "ctrl+p"
	b := keys.Bindings()

	assert.True(t, key.Matches(Event{Key: "p", Ctrl: true}, b.Toggle))
	assert.False(t, key.Matches(Event{Key: "k", Ctrl: true}, b.Toggle))
	assert.Len(t, b.FullHelp(), 3)
	assert.NotEmpty(t, b.ShortHelp())
}

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()
	var seen []string

	unsubscribeFirst := d.Subscribe(func(ev Event) (bool, tea.Cmd) {
		seen = append(seen, "first:"+ev.String())
		return ev.Key == "esc", nil
	})
	d.Subscribe(func(ev Event) (bool, tea.Cmd) {
		seen = append(seen, "second:"+ev.String())
		return true, tea.Quit
	})

	handled, cmd := d.Dispatch(Event{Key: "esc"})
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"first:esc"}, seen)

	seen = nil
	handled, cmd = d.DispatchTea(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, handled)
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"first:ctrl+c", "second:ctrl+c"}, seen)

	unsubscribeFirst()
	seen = nil
	d.Dispatch(Event{Key: "esc"})
	assert.Equal(t, []string{"second:esc"}, seen)
}

func TestDispatcher_Unhandled(t *testing.T) {
	d := NewDispatcher()
	handled, cmd := d.Dispatch(Event{Key: "x"})
	assert.False(t, handled)
	assert.Nil(t, cmd)
}
