package palette

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/novix/internal/commands"
	"github.com/renato0307/novix/internal/keyboard"
	"github.com/renato0307/novix/internal/types"
	"github.com/renato0307/novix/internal/ui"
)

const (
	// PanelTop is the row the panel is drawn at.
	PanelTop = 2

	maxPanelWidth = 80
	minPanelWidth = 24
)

// Model renders a Session and feeds it from bubbletea messages.
type Model struct {
	session *Session
	input   textinput.Model
	spinner spinner.Model
	theme   *ui.Theme
	width   int
	height  int
	scroll  int // First visible item index
}

// NewModel creates a model over session.
func NewModel(session *Session, theme *ui.Theme) *Model {
	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "Search, or + type Title --option value"

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		session: session,
		input:   input,
		spinner: s,
		width:   80,
		height:  24,
	}
	m.SetTheme(theme)
	return m
}

// Session returns the underlying session.
func (m *Model) Session() *Session {
	return m.session
}

// SetSize records the terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = m.panelWidth() - 8
}

// SetTheme updates the colors.
func (m *Model) SetTheme(theme *ui.Theme) {
	if theme == nil {
		theme = ui.GetTheme("charm")
	}
	m.theme = theme
	m.input.PromptStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	m.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Dimmed)
	m.spinner.Style = lipgloss.NewStyle().Foreground(theme.MessageLoading)
}

// Attach subscribes the model to src so that key events reach the session
// before anything else.
func (m *Model) Attach(src keyboard.Source) func() {
	return src.Subscribe(m.HandleKey)
}

// HandleKey offers ev to the session and keeps the query field in step.
func (m *Model) HandleKey(ev keyboard.Event) (bool, tea.Cmd) {
	wasOpen := m.session.IsOpen()
	focus := m.session.Focus()
	handled, cmd := m.session.HandleKey(ev)
	if !handled {
		return false, nil
	}
	m.sync()
	if !wasOpen && m.session.IsOpen() && m.session.Preparing() {
		cmd = tea.Batch(cmd, m.spinner.Tick)
	}
	// Focus moved inside an open panel. A fresh Open keeps its delayed focus.
	if wasOpen && m.session.IsOpen() && focus != m.session.Focus() && m.session.Focus() == FocusQuery {
		cmd = tea.Batch(cmd, m.input.Focus())
	}
	return true, cmd
}

// Update handles everything except keys already consumed by HandleKey.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FocusInputMsg:
		if msg.Seq == m.session.Seq() && m.session.IsOpen() && m.session.Focus() == FocusQuery {
			return m.input.Focus()
		}
		return nil

	case PreparedMsg:
		m.session.HandlePrepared(msg)
		return nil

	case CompositionMsg:
		if msg.Active {
			m.session.StartComposition()
		} else {
			m.session.EndComposition()
		}
		return nil

	case spinner.TickMsg:
		if !m.session.Preparing() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.MouseMsg:
		if m.session.IsOpen() && msg.Action == tea.MouseActionPress && !m.contains(msg.X, msg.Y) {
			m.session.ClickOutside()
			m.sync()
		}
		return nil

	case tea.KeyMsg:
		if !m.session.IsOpen() || m.session.Focus() != FocusQuery {
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != m.session.Query() {
			m.session.SetQuery(v)
			m.scroll = 0
		}
		return cmd
	}
	return nil
}

// sync copies session state the session owns back into the widgets.
func (m *Model) sync() {
	if m.input.Value() != m.session.Query() {
		m.input.SetValue(m.session.Query())
		m.input.CursorEnd()
		m.scroll = 0
	}
	if !m.session.IsOpen() || m.session.Focus() != FocusQuery {
		m.input.Blur()
	}

	active := m.session.Active()
	if active < m.scroll {
		m.scroll = active
	}
	if active > m.scroll+MaxVisibleItems-1 {
		m.scroll = active - MaxVisibleItems + 1
	}
}

// Bounds returns the panel rectangle in terminal cells.
func (m *Model) Bounds() (x, y, w, h int) {
	view := m.View()
	w = lipgloss.Width(view)
	h = lipgloss.Height(view)
	x = max((m.width-w)/2, 0)
	return x, PanelTop, w, h
}

func (m *Model) contains(px, py int) bool {
	x, y, w, h := m.Bounds()
	return px >= x && px < x+w && py >= y && py < y+h
}

func (m *Model) panelWidth() int {
	return min(max(m.width-4, minPanelWidth), maxPanelWidth)
}

// View renders the panel, or "" when closed.
func (m *Model) View() string {
	if !m.session.IsOpen() {
		return ""
	}
	width := m.panelWidth()
	inner := width - 4

	sections := []string{m.input.View()}

	switch {
	case m.session.Error() != "":
		errStyle := lipgloss.NewStyle().Foreground(m.theme.MessageColor(types.MessageTypeError))
		sections = append(sections, errStyle.Render(ui.Truncate(ui.Glyph(types.MessageTypeError)+" "+m.session.Error(), inner)))
	case m.session.Preparing():
		dim := lipgloss.NewStyle().Foreground(m.theme.Dimmed)
		sections = append(sections, m.spinner.View()+dim.Render(" Loading…"))
	case m.session.PrepareErr() != nil:
		warn := lipgloss.NewStyle().Foreground(m.theme.MessageColor(types.MessageTypeWarning))
		sections = append(sections, warn.Render(ui.Truncate(ui.Glyph(types.MessageTypeWarning)+" "+m.session.PrepareErr().Error(), inner)))
	}

	sections = append(sections, m.viewItems(inner))

	closeStyle := lipgloss.NewStyle().Foreground(m.theme.Dimmed)
	if m.session.Focus() == FocusClose {
		closeStyle = closeStyle.Foreground(m.theme.Primary).Bold(true)
	}
	sections = append(sections, closeStyle.Render("[esc] close"))

	return m.theme.Panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) viewItems(width int) string {
	items := m.session.Items()
	if len(items) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Dimmed).Render("No matching commands")
	}

	end := min(m.scroll+MaxVisibleItems, len(items))
	resultsFocused := m.session.Focus() == FocusResults
	groupStyle := lipgloss.NewStyle().Foreground(m.theme.PaletteGroup)

	rows := make([]string, 0, end-m.scroll)
	for i := m.scroll; i < end; i++ {
		item := items[i]
		group := string(item.Group)
		text := ui.Truncate(itemText(item), max(width-len(group)-4, 8))
		padding := max(width-lipgloss.Width(text)-len(group)-2, 1)
		line := text + strings.Repeat(" ", padding) + groupStyle.Render(group)

		if i == m.session.Active() {
			selected := lipgloss.NewStyle().
				Foreground(m.theme.PaletteSelectedForeground).
				Background(m.theme.Subtle).
				Width(width).
				Bold(resultsFocused)
			rows = append(rows, selected.Render("▶ "+line))
			continue
		}
		normal := lipgloss.NewStyle().
			Foreground(m.theme.PaletteForeground).
			Width(width)
		rows = append(rows, normal.Render("  "+line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func itemText(item commands.Item) string {
	if item.Subtitle == "" {
		return item.Title
	}
	return item.Title + " - " + item.Subtitle
}
