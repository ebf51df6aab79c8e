package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/novix/internal/ui"
)

type Header struct {
	appName     string
	viewTitle   string
	project     string
	chapter     string
	lastRefresh time.Time
	width       int
	theme       *ui.Theme
}

func NewHeader(appName string, theme *ui.Theme) *Header {
	return &Header{
		appName: appName,
		theme:   theme,
	}
}

func (h *Header) SetViewTitle(title string) {
	h.viewTitle = title
}

func (h *Header) SetProject(project string) {
	h.project = project
}

func (h *Header) SetChapter(chapter string) {
	h.chapter = chapter
}

func (h *Header) SetLastRefresh(t time.Time) {
	h.lastRefresh = t
}

func (h *Header) SetWidth(width int) {
	h.width = width
}

func (h *Header) SetTheme(theme *ui.Theme) {
	h.theme = theme
}

func (h *Header) View() string {
	appStyle := h.theme.AppTitle
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.theme.Primary).
		Padding(0, 1)

	timingStyle := lipgloss.NewStyle().
		Foreground(h.theme.Muted).
		Padding(0, 1)

	// "Characters • project: demo • chapter: ch_001"
	leftParts := []string{}
	if h.viewTitle != "" {
		leftParts = append(leftParts, h.viewTitle)
	}
	if h.project != "" {
		leftParts = append(leftParts, fmt.Sprintf("project: %s", h.project))
	}
	if h.chapter != "" {
		leftParts = append(leftParts, fmt.Sprintf("chapter: %s", h.chapter))
	}
	left := appStyle.Render(h.appName)
	if len(leftParts) > 0 {
		left += headerStyle.Render(strings.Join(leftParts, " • "))
	}

	var right string
	if !h.lastRefresh.IsZero() {
		right = timingStyle.Render(fmt.Sprintf("Loaded %s", since(time.Since(h.lastRefresh))))
	}

	spacing := max(h.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	spacer := lipgloss.NewStyle().Width(spacing).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)
}

func since(elapsed time.Duration) string {
	switch {
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	}
}
