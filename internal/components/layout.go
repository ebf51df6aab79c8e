package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Layout struct {
	width   int
	height  int
	compact bool
}

func NewLayout(width, height int) *Layout {
	return &Layout{
		width:  width,
		height: height,
	}
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetCompact drops the gap below the header.
func (l *Layout) SetCompact(compact bool) {
	l.compact = compact
}

// CalculateBodyHeight returns the available height for the body content
func (l *Layout) CalculateBodyHeight() int {
	reserved := ReservedLines
	if l.compact {
		reserved--
	}
	return max(l.height-reserved, MinBodyHeight)
}

// Render builds the full layout. The body is padded or cut to the body
// height so the status line stays on the last row.
func (l *Layout) Render(header, body, message string) string {
	sections := []string{header}
	if !l.compact {
		sections = append(sections, "")
	}

	bodyHeight := l.CalculateBodyHeight()
	lines := strings.Split(body, "\n")
	if len(lines) > bodyHeight {
		lines = lines[:bodyHeight]
	}
	sections = append(sections, lipgloss.NewStyle().Height(bodyHeight).Render(strings.Join(lines, "\n")))
	sections = append(sections, message)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Overlay draws panel over base starting at row top, centered
// horizontally. Rows of base behind the panel are replaced.
func (l *Layout) Overlay(base, panel string, top int) string {
	if panel == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(panel, "\n") {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		baseLines[row] = lipgloss.PlaceHorizontal(l.width, lipgloss.Center, line)
	}
	return strings.Join(baseLines, "\n")
}
