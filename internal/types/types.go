package types

import (
	"time"
)

// View identifies a panel of the application shell.
type View struct {
	ID    string
	Title string
}

// View ids of the application shell.
const (
	ViewProjects   = "projects"
	ViewCharacters = "characters"
	ViewWorld      = "world"
	ViewStyle      = "style"
	ViewContext    = "context"
	ViewChapter    = "chapter"
	ViewCanon      = "canon"
	ViewTechniques = "techniques"
	ViewSettings   = "settings"
)

// ViewRegistry keeps views in registration order.
type ViewRegistry struct {
	views map[string]View
	order []string
}

func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{
		views: make(map[string]View),
		order: []string{},
	}
}

func (r *ViewRegistry) Register(view View) {
	if _, exists := r.views[view.ID]; !exists {
		r.order = append(r.order, view.ID)
	}
	r.views[view.ID] = view
}

func (r *ViewRegistry) Get(id string) (View, bool) {
	view, ok := r.views[id]
	return view, ok
}

func (r *ViewRegistry) All() []View {
	result := make([]View, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.views[id])
	}
	return result
}

// Messages

// ViewSwitchMsg asks the shell to show another view. Focus optionally names
// the entity the view should select.
type ViewSwitchMsg struct {
	View  string
	Focus string
}

// OpenChapterMsg makes a chapter current and shows the chapter editor.
type OpenChapterMsg struct {
	ChapterID string
}

// SettingChangedMsg reports a settings change that should be persisted.
type SettingChangedMsg struct {
	Key   string
	Value any
}

// RefreshDataMsg asks the shell to drop cached palette data and reload it.
type RefreshDataMsg struct{}

// CreatedMsg is sent after a create command succeeded. Notice carries the
// first non-fatal warning, if any.
type CreatedMsg struct {
	Label  string
	View   string
	Focus  string
	Notice string
}

// RecentUsedMsg is sent when a navigation item runs so the shell can update
// its recent list.
type RecentUsedMsg struct {
	ID       string
	Title    string
	Subtitle string
}

// MessageType defines the type of status message
type MessageType int

const (
	MessageTypeInfo MessageType = iota
	MessageTypeSuccess
	MessageTypeError
	MessageTypeWarning
	MessageTypeLoading // Loading state with spinner
)

type StatusMsg struct {
	Message string
	Type    MessageType
}

type ClearStatusMsg struct {
	MessageID int // Only clear if this matches the current message ID
}

// StatusDisplayDuration is how long a status message stays visible.
const StatusDisplayDuration = 5 * time.Second

// InfoMsg creates an info status message
func InfoMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeInfo}
}

// SuccessMsg creates a success status message
func SuccessMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeSuccess}
}

// ErrorStatusMsg creates an error status message
func ErrorStatusMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeError}
}

// WarningMsg creates a warning status message
func WarningMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeWarning}
}

// LoadingMsg creates a loading status message (with spinner)
func LoadingMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeLoading}
}
