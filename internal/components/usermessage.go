package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/novix/internal/types"
	"github.com/renato0307/novix/internal/ui"
)

// UserMessage is the one-line status area below the body. Every message
// carries an id so a delayed clear only removes the message it was
// scheduled for.
type UserMessage struct {
	id          int
	message     string
	messageType types.MessageType
	width       int
	theme       *ui.Theme
	spinner     spinner.Model
}

// NewUserMessage creates a new user message component
func NewUserMessage(theme *ui.Theme) *UserMessage {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"✽", "✻", "✶", "·", "✢"},
		FPS:    time.Second / 6,
	}
	s.Style = lipgloss.NewStyle()

	return &UserMessage{
		theme:   theme,
		spinner: s,
	}
}

// SetMessage shows msg and returns the command that animates or clears
// it. Loading messages stay until replaced.
func (um *UserMessage) SetMessage(msg string, msgType types.MessageType) tea.Cmd {
	um.id++
	um.message = msg
	um.messageType = msgType

	if msgType == types.MessageTypeLoading {
		um.spinner.Style = lipgloss.NewStyle()
		return um.spinner.Tick
	}
	id := um.id
	return tea.Tick(types.StatusDisplayDuration, func(time.Time) tea.Msg {
		return types.ClearStatusMsg{MessageID: id}
	})
}

// Clear removes the message if it is still the one with id.
func (um *UserMessage) Clear(id int) {
	if id == um.id {
		um.ClearMessage()
	}
}

// Message returns the current text and type.
func (um *UserMessage) Message() (string, types.MessageType) {
	return um.message, um.messageType
}

// SetTheme updates the colors.
func (um *UserMessage) SetTheme(theme *ui.Theme) {
	um.theme = theme
}

// ClearMessage clears the current message
func (um *UserMessage) ClearMessage() {
	um.message = ""
	um.messageType = types.MessageTypeInfo
}

// IsLoadingMessage returns true if the current message is a loading message
func (um *UserMessage) IsLoadingMessage() bool {
	return um.messageType == types.MessageTypeLoading
}

// SetWidth sets the component width
func (um *UserMessage) SetWidth(width int) {
	um.width = width
}

// GetHeight returns the height (always 1 line to reserve space)
func (um *UserMessage) GetHeight() int {
	return 1
}

// Update handles spinner updates for loading messages
func (um *UserMessage) Update(msg tea.Msg) (*UserMessage, tea.Cmd) {
	// Only update spinner when showing loading message
	if um.messageType == types.MessageTypeLoading {
		var cmd tea.Cmd
		um.spinner, cmd = um.spinner.Update(msg)
		return um, cmd
	}
	return um, nil
}

// View renders the user message using the shared ui.RenderMessage function
func (um *UserMessage) View() string {
	if um.message == "" {
		// Render empty line to reserve space
		return lipgloss.NewStyle().Width(um.width).Render("")
	}

	// For loading messages, get the current spinner frame
	var spinnerView string
	if um.messageType == types.MessageTypeLoading {
		spinnerView = um.spinner.View()
	}

	return ui.RenderMessage(um.message, um.messageType, um.theme, spinnerView, um.width)
}
