package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme and styles for the TUI
type Theme struct {
	Name string

	// Core colors
	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Accent     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor

	// UI element colors
	Border     lipgloss.AdaptiveColor // Separator lines, borders
	Dimmed     lipgloss.AdaptiveColor // Very subtle text (shortcuts)
	Subtle     lipgloss.AdaptiveColor // Subtle UI elements
	Background lipgloss.AdaptiveColor // Background for overlays

	// Status line colors
	MessageSuccess lipgloss.AdaptiveColor
	MessageError   lipgloss.AdaptiveColor
	MessageInfo    lipgloss.AdaptiveColor
	MessageWarning lipgloss.AdaptiveColor
	MessageLoading lipgloss.AdaptiveColor

	// Palette colors
	PaletteForeground         lipgloss.AdaptiveColor
	PaletteBackground         lipgloss.AdaptiveColor
	PaletteSelectedForeground lipgloss.AdaptiveColor
	PaletteShortcut           lipgloss.AdaptiveColor
	PaletteGroup              lipgloss.AdaptiveColor

	// Component styles
	AppTitle  lipgloss.Style // App title with background
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Panel     lipgloss.Style // Palette overlay frame
}

// colors is the raw color set a theme is built from.
type colors struct {
	primary, secondary, accent, foreground, muted lipgloss.AdaptiveColor
	err, success, warning                         lipgloss.AdaptiveColor
	border, subtle, background                    lipgloss.AdaptiveColor
}

func build(name string, c colors) *Theme {
	t := &Theme{Name: name}

	t.Primary = c.primary
	t.Secondary = c.secondary
	t.Accent = c.accent
	t.Foreground = c.foreground
	t.Muted = c.muted
	t.Error = c.err
	t.Success = c.success
	t.Warning = c.warning

	t.Border = c.border
	t.Dimmed = c.muted
	t.Subtle = c.subtle
	t.Background = c.background

	t.MessageSuccess = c.success
	t.MessageError = c.err
	t.MessageInfo = c.primary
	t.MessageWarning = c.warning
	t.MessageLoading = c.accent

	t.PaletteForeground = c.foreground
	t.PaletteBackground = c.background
	t.PaletteSelectedForeground = c.primary
	t.PaletteShortcut = c.muted
	t.PaletteGroup = c.secondary

	t.restyle()
	return t
}

func (t *Theme) restyle() {
	t.AppTitle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.Header = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Background).
		Padding(0, 1)
}

// ThemeCharm returns the default Charm theme
func ThemeCharm() *Theme {
	return build("charm", colors{
		primary:    lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"},
		secondary:  lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"},
		accent:     lipgloss.AdaptiveColor{Light: "#F780E2", Dark: "#F780E2"},
		foreground: lipgloss.AdaptiveColor{Light: "235", Dark: "252"},
		muted:      lipgloss.AdaptiveColor{Light: "243", Dark: "243"},
		err:        lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"},
		success:    lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"},
		warning:    lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFAA00"},
		border:     lipgloss.AdaptiveColor{Light: "240", Dark: "240"},
		subtle:     lipgloss.AdaptiveColor{Light: "254", Dark: "236"},
		background: lipgloss.AdaptiveColor{Light: "255", Dark: "235"},
	})
}

// ThemeDracula returns a Dracula-inspired theme
func ThemeDracula() *Theme {
	return build("dracula", colors{
		primary:    lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"},
		secondary:  lipgloss.AdaptiveColor{Light: "#50FA7B", Dark: "#50FA7B"},
		accent:     lipgloss.AdaptiveColor{Light: "#FF79C6", Dark: "#FF79C6"},
		foreground: lipgloss.AdaptiveColor{Light: "#282A36", Dark: "#F8F8F2"},
		muted:      lipgloss.AdaptiveColor{Light: "#6272A4", Dark: "#6272A4"},
		err:        lipgloss.AdaptiveColor{Light: "#FF5555", Dark: "#FF5555"},
		success:    lipgloss.AdaptiveColor{Light: "#50FA7B", Dark: "#50FA7B"},
		warning:    lipgloss.AdaptiveColor{Light: "#FFB86C", Dark: "#FFB86C"},
		border:     lipgloss.AdaptiveColor{Light: "#44475A", Dark: "#44475A"},
		subtle:     lipgloss.AdaptiveColor{Light: "#F1F1F1", Dark: "#343746"},
		background: lipgloss.AdaptiveColor{Light: "#F8F8F2", Dark: "#282A36"},
	})
}

// ThemeNord returns a Nord-inspired theme
func ThemeNord() *Theme {
	return build("nord", colors{
		primary:    lipgloss.AdaptiveColor{Light: "#5E81AC", Dark: "#88C0D0"},
		secondary:  lipgloss.AdaptiveColor{Light: "#A3BE8C", Dark: "#A3BE8C"},
		accent:     lipgloss.AdaptiveColor{Light: "#B48EAD", Dark: "#B48EAD"},
		foreground: lipgloss.AdaptiveColor{Light: "#2E3440", Dark: "#ECEFF4"},
		muted:      lipgloss.AdaptiveColor{Light: "#4C566A", Dark: "#4C566A"},
		err:        lipgloss.AdaptiveColor{Light: "#BF616A", Dark: "#BF616A"},
		success:    lipgloss.AdaptiveColor{Light: "#A3BE8C", Dark: "#A3BE8C"},
		warning:    lipgloss.AdaptiveColor{Light: "#EBCB8B", Dark: "#EBCB8B"},
		border:     lipgloss.AdaptiveColor{Light: "#D8DEE9", Dark: "#3B4252"},
		subtle:     lipgloss.AdaptiveColor{Light: "#E5E9F0", Dark: "#3B4252"},
		background: lipgloss.AdaptiveColor{Light: "#ECEFF4", Dark: "#2E3440"},
	})
}

// Mode pins every adaptive color of t to its light or dark variant.
// ModeSystem leaves the terminal background in charge.
type Mode string

const (
	ModeSystem Mode = "system"
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
)

// WithMode returns a copy of t fixed to mode.
func (t *Theme) WithMode(mode Mode) *Theme {
	if mode != ModeLight && mode != ModeDark {
		return t
	}
	pin := func(c lipgloss.AdaptiveColor) lipgloss.AdaptiveColor {
		if mode == ModeLight {
			return lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Light}
		}
		return lipgloss.AdaptiveColor{Light: c.Dark, Dark: c.Dark}
	}

	out := *t
	for _, c := range []*lipgloss.AdaptiveColor{
		&out.Primary, &out.Secondary, &out.Accent, &out.Foreground, &out.Muted,
		&out.Error, &out.Success, &out.Warning, &out.Border, &out.Dimmed,
		&out.Subtle, &out.Background, &out.MessageSuccess, &out.MessageError,
		&out.MessageInfo, &out.MessageWarning, &out.MessageLoading,
		&out.PaletteForeground, &out.PaletteBackground,
		&out.PaletteSelectedForeground, &out.PaletteShortcut, &out.PaletteGroup,
	} {
		*c = pin(*c)
	}
	out.restyle()
	return &out
}

// GetTheme returns a theme by name, defaulting to Charm
func GetTheme(name string) *Theme {
	switch name {
	case "dracula":
		return ThemeDracula()
	case "nord":
		return ThemeNord()
	default:
		return ThemeCharm()
	}
}

// AvailableThemes returns a list of available theme names
func AvailableThemes() []string {
	return []string{"charm", "dracula", "nord"}
}
