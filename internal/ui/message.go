package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/renato0307/novix/internal/types"
)

const (
	// messageMargin keeps the status line clear of the right edge.
	messageMargin   = 5
	minMessageWidth = 20
	segmentSep      = " · "
	ellipsis        = "…"
)

var messageGlyphs = map[types.MessageType]string{
	types.MessageTypeInfo:    "•",
	types.MessageTypeSuccess: "✓",
	types.MessageTypeError:   "✗",
	types.MessageTypeWarning: "▲",
	types.MessageTypeLoading: "…",
}

// Glyph returns the marker shown in front of a message of the given kind.
func Glyph(kind types.MessageType) string {
	if g, ok := messageGlyphs[kind]; ok {
		return g
	}
	return messageGlyphs[types.MessageTypeInfo]
}

// MessageColor returns the theme color for a message kind.
func (t *Theme) MessageColor(kind types.MessageType) lipgloss.AdaptiveColor {
	switch kind {
	case types.MessageTypeSuccess:
		return t.MessageSuccess
	case types.MessageTypeError:
		return t.MessageError
	case types.MessageTypeWarning:
		return t.MessageWarning
	case types.MessageTypeLoading:
		return t.MessageLoading
	default:
		return t.MessageInfo
	}
}

// RenderMessage renders a status message on a single line. Each line of a
// multi-line text becomes a segment, so a create result keeps its warnings
// in view. A loading message shows spinnerView in place of its glyph.
func RenderMessage(text string, kind types.MessageType, theme *Theme, spinnerView string, width int) string {
	text = oneLine(text)
	if text == "" {
		return ""
	}
	if theme == nil {
		theme = ThemeCharm()
	}

	glyph := Glyph(kind)
	if kind == types.MessageTypeLoading && spinnerView != "" {
		glyph = spinnerView
	}
	prefix := glyph + " "
	room := max(width-lipgloss.Width(prefix)-messageMargin, minMessageWidth)

	style := lipgloss.NewStyle().Foreground(theme.MessageColor(kind))
	if kind == types.MessageTypeError {
		style = style.Bold(true)
	}
	return style.Render(prefix + Truncate(text, room))
}

// Truncate cuts s to at most width terminal cells, ending in an ellipsis
// when anything was cut. Wide characters count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return xansi.Truncate(s, width, ellipsis)
}

func oneLine(text string) string {
	var segments []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			segments = append(segments, line)
		}
	}
	return strings.Join(segments, segmentSep)
}
