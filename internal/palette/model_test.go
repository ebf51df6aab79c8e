package palette

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/novix/internal/commands"
	"github.com/renato0307/novix/internal/keyboard"
	"github.com/renato0307/novix/internal/ui"
)

func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	s := NewSession(opts...)
	s.SetCatalog(testCatalog())
	m := NewModel(s, ui.GetTheme("charm"))
	m.SetSize(80, 24)
	return m
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModel_ClosedRendersNothing(t *testing.T) {
	m := newTestModel(t)
	assert.Empty(t, m.View())
	assert.Nil(t, m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}))
}

func TestModel_OpenTypeAndClose(t *testing.T) {
	m := newTestModel(t)

	handled, cmd := m.HandleKey(keyboard.Parse("ctrl+k"))
	require.True(t, handled)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Go to Characters")

	m.Update(FocusInputMsg{Seq: m.Session().Seq()})
	typeText(m, "refresh")
	assert.Equal(t, "refresh", m.Session().Query())
	view := m.View()
	assert.Contains(t, view, "Refresh Data")
	assert.NotContains(t, view, "Go to Characters")

	handled, _ = m.HandleKey(keyboard.Parse("esc"))
	assert.True(t, handled)
	assert.Empty(t, m.View())

	m.HandleKey(keyboard.Parse("ctrl+k"))
	assert.Equal(t, "", m.input.Value(), "reopening clears the field")
}

func TestModel_TypingFollowsFocus(t *testing.T) {
	m := newTestModel(t)
	m.HandleKey(keyboard.Parse("ctrl+k"))
	m.Update(FocusInputMsg{Seq: m.Session().Seq()})
	typeText(m, "re")
	require.Equal(t, "re", m.Session().Query())

	m.HandleKey(keyboard.Parse("tab"))
	m.HandleKey(keyboard.Parse("tab"))
	require.Equal(t, FocusClose, m.Session().Focus())
	assert.False(t, m.input.Focused())

	typeText(m, "x")
	assert.Equal(t, "re", m.Session().Query())
	assert.Equal(t, "re", m.input.Value())

	m.HandleKey(keyboard.Parse("shift+tab"))
	require.Equal(t, FocusResults, m.Session().Focus())
	typeText(m, "x")
	assert.Equal(t, "re", m.Session().Query())

	_, cmd := m.HandleKey(keyboard.Parse("shift+tab"))
	require.Equal(t, FocusQuery, m.Session().Focus())
	assert.NotNil(t, cmd)
	assert.True(t, m.input.Focused())

	typeText(m, "f")
	assert.Equal(t, "ref", m.Session().Query())
}

func TestModel_DelayedFocusRespectsRing(t *testing.T) {
	m := newTestModel(t)
	m.HandleKey(keyboard.Parse("ctrl+k"))
	m.HandleKey(keyboard.Parse("tab"))

	assert.Nil(t, m.Update(FocusInputMsg{Seq: m.Session().Seq()}))
	assert.False(t, m.input.Focused())
}

func TestModel_StaleFocusIgnored(t *testing.T) {
	m := newTestModel(t)
	m.HandleKey(keyboard.Parse("ctrl+k"))

	assert.Nil(t, m.Update(FocusInputMsg{Seq: m.Session().Seq() + 1}))
	assert.False(t, m.input.Focused())

	m.Update(FocusInputMsg{Seq: m.Session().Seq()})
	assert.True(t, m.input.Focused())
}

func TestModel_ClickOutside(t *testing.T) {
	m := newTestModel(t)
	m.HandleKey(keyboard.Parse("ctrl+k"))

	x, y, w, h := m.Bounds()
	require.Positive(t, w)
	require.Positive(t, h)

	m.Update(tea.MouseMsg{X: x + 1, Y: y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.Session().IsOpen())

	m.Update(tea.MouseMsg{X: x + 1, Y: 0, Action: tea.MouseActionMotion})
	assert.True(t, m.Session().IsOpen(), "only presses count")

	m.Update(tea.MouseMsg{X: x + 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.Session().IsOpen())
}

func TestModel_Composition(t *testing.T) {
	m := newTestModel(t)
	m.HandleKey(keyboard.Parse("ctrl+k"))

	m.Update(CompositionMsg{Active: true})
	assert.True(t, m.Session().Composing())
	handled, _ := m.HandleKey(keyboard.Parse("down"))
	assert.False(t, handled)

	m.Update(CompositionMsg{Active: false})
	assert.False(t, m.Session().Composing())
}

func TestModel_ShowsResolverError(t *testing.T) {
	resolver := commands.ResolverFunc(func(q string) *commands.Resolution {
		if q == "+" {
			return &commands.Resolution{Err: "missing type"}
		}
		return nil
	})
	m := newTestModel(t, WithResolver(resolver))
	m.HandleKey(keyboard.Parse("ctrl+k"))
	m.Update(FocusInputMsg{Seq: m.Session().Seq()})

	typeText(m, "+")
	assert.Contains(t, m.View(), "✗ missing type")
}

func TestModel_PreparedMsg(t *testing.T) {
	m := newTestModel(t, WithPrepare(func(ctx context.Context) error { return nil }))
	m.HandleKey(keyboard.Parse("ctrl+k"))
	assert.Contains(t, m.View(), "Loading")

	m.Update(PreparedMsg{Seq: 1})
	assert.False(t, m.Session().Preparing())
	assert.NotContains(t, m.View(), "Loading")

	m.Update(PreparedMsg{Seq: 1, Err: fmt.Errorf("backend down")})
	assert.Contains(t, m.View(), "backend down")
}

func TestModel_ScrollFollowsHighlight(t *testing.T) {
	var catalog []commands.Item
	for i := range 12 {
		catalog = append(catalog, item(fmt.Sprintf("item-%02d", i), fmt.Sprintf("Item %02d", i), commands.GroupNavigate))
	}
	m := newTestModel(t)
	m.Session().SetCatalog(catalog)
	m.HandleKey(keyboard.Parse("ctrl+k"))

	for range 10 {
		m.HandleKey(keyboard.Parse("down"))
	}
	assert.Equal(t, 10, m.Session().Active())
	view := m.View()
	assert.Contains(t, view, "Item 10")
	assert.NotContains(t, view, "Item 00")

	for range 10 {
		m.HandleKey(keyboard.Parse("up"))
	}
	assert.Contains(t, m.View(), "Item 00")
}

func TestModel_Attach(t *testing.T) {
	d := keyboard.NewDispatcher()
	m := newTestModel(t)
	defer m.Attach(d)()

	handled, _ := d.DispatchTea(tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.True(t, handled)
	assert.True(t, m.Session().IsOpen())
}
