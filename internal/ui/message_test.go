package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/renato0307/novix/internal/types"
)

func TestRenderMessage(t *testing.T) {
	theme := ThemeCharm()

	tests := []struct {
		name    string
		text    string
		kind    types.MessageType
		spinner string
		want    string
	}{
		{name: "success", text: "Created character:Alice", kind: types.MessageTypeSuccess, want: "✓ Created character:Alice"},
		{name: "error", text: "Pin failed: boom", kind: types.MessageTypeError, want: "✗ Pin failed: boom"},
		{name: "warning", text: "ignored --lock rhythm", kind: types.MessageTypeWarning, want: "▲ ignored --lock rhythm"},
		{name: "info", text: "Palette data refreshed", kind: types.MessageTypeInfo, want: "• Palette data refreshed"},
		{name: "loading with spinner", text: "Refreshing", kind: types.MessageTypeLoading, spinner: "*", want: "* Refreshing"},
		{name: "loading without spinner", text: "Refreshing", kind: types.MessageTypeLoading, want: "… Refreshing"},
		{name: "unknown kind", text: "hi", kind: types.MessageType(42), want: "• hi"},
		{
			name: "lines become segments",
			text: "Created character:Alice\n  ignored --lock rhythm\n\n",
			kind: types.MessageTypeSuccess,
			want: "✓ Created character:Alice · ignored --lock rhythm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderMessage(tt.text, tt.kind, theme, tt.spinner, 80)
			assert.Contains(t, out, tt.want)
			assert.Equal(t, 1, lipgloss.Height(out))
		})
	}
}

func TestRenderMessage_Empty(t *testing.T) {
	assert.Empty(t, RenderMessage("", types.MessageTypeInfo, ThemeCharm(), "", 80))
	assert.Empty(t, RenderMessage(" \n \n", types.MessageTypeError, ThemeCharm(), "", 80))
}

func TestRenderMessage_NilTheme(t *testing.T) {
	assert.Contains(t, RenderMessage("ok", types.MessageTypeSuccess, nil, "", 80), "✓ ok")
}

func TestRenderMessage_FitsWidth(t *testing.T) {
	long := strings.Repeat("角", 100)

	out := RenderMessage(long, types.MessageTypeError, ThemeCharm(), "", 40)
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, long)
	assert.LessOrEqual(t, lipgloss.Width(out), 40)

	// Narrow terminals still get a readable message.
	out = RenderMessage(long, types.MessageTypeError, ThemeCharm(), "", 10)
	assert.Equal(t, 2+minMessageWidth, lipgloss.Width(out))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"主角主角", 4, "主…"},
		{"主角主角", 5, "主角…"},
		{"hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "✗", Glyph(types.MessageTypeError))
	assert.Equal(t, "•", Glyph(types.MessageType(99)))
}

func TestTheme_MessageColor(t *testing.T) {
	theme := ThemeCharm()
	assert.Equal(t, theme.MessageWarning, theme.MessageColor(types.MessageTypeWarning))
	assert.Equal(t, theme.MessageInfo, theme.MessageColor(types.MessageType(99)))
}
