package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/novix/internal/types"
	"github.com/renato0307/novix/internal/workspace"
)

// row is one line of the body listing.
type row struct {
	id    string
	label string
}

// bodyView summarizes the current view. The shell has no editors; the
// body shows what a view would list and marks the focused entity.
func (m *Model) bodyView() string {
	snap, loaded := m.cache.Snapshot()
	if !loaded && m.view != types.ViewSettings {
		return m.dim("Loading workspace… press " + m.cfg.KeyMap().Toggle + " for the command palette")
	}

	var rows []row
	switch m.view {
	case types.ViewProjects:
		rows = []row{{id: snap.Project, label: snap.Project}}
	case types.ViewCharacters:
		rows = cardRows(snap.Characters)
	case types.ViewWorld:
		rows = cardRows(snap.WorldCards)
	case types.ViewStyle:
		rows = cardRows(snap.Styles)
	case types.ViewContext:
		rows = cardRows(snap.Outlines)
		for _, bp := range snap.Blueprints {
			rows = append(rows, row{id: bp.ID, label: fmt.Sprintf("%s (%d scenes)", bp.Title, len(bp.ScenePlan))})
		}
	case types.ViewChapter:
		if snap.Chapter == "" {
			return m.dim("No chapter open. Type # in the palette to pick one.")
		}
		rows = []row{{id: snap.Chapter, label: "Editing " + snap.Chapter}}
	case types.ViewCanon:
		for _, p := range snap.Proposals {
			rows = append(rows, row{id: p.ID, label: fmt.Sprintf("%s [%s]", p.Name, p.Status)})
		}
	case types.ViewTechniques:
		for _, t := range snap.Techniques {
			rows = append(rows, row{id: t.ID, label: t.Title})
		}
	case types.ViewSettings:
		return m.settingsView(snap.LoadedAt)
	}

	if len(rows) == 0 {
		return m.dim("Nothing here yet. Create something with + in the palette.")
	}
	return m.renderRows(rows)
}

func cardRows(cards []workspace.Card) []row {
	rows := make([]row, 0, len(cards))
	for _, c := range cards {
		label := c.Title
		if len(c.Tags) > 0 {
			label += "  #" + strings.Join(c.Tags, " #")
		}
		rows = append(rows, row{id: c.ID, label: label})
	}
	return rows
}

func (m *Model) renderRows(rows []row) string {
	normal := lipgloss.NewStyle().Foreground(m.theme.Foreground)
	focused := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.id != "" && r.id == m.focus {
			lines = append(lines, focused.Render("▸ "+r.label))
			continue
		}
		lines = append(lines, normal.Render("  "+r.label))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) settingsView(loadedAt time.Time) string {
	autoApply := "off"
	if m.cfg.AutoApplyPatch {
		autoApply = "on"
	}
	loaded := "never"
	if !loadedAt.IsZero() {
		loaded = loadedAt.Format(time.Kitchen)
	}
	return m.renderRows([]row{
		{label: "theme: " + m.cfg.Theme},
		{label: "mode: " + m.cfg.Mode},
		{label: "density: " + m.cfg.Density},
		{label: "auto apply patch: " + autoApply},
		{label: "palette key: " + m.cfg.KeyMap().Toggle},
		{label: "data loaded: " + loaded},
	})
}

func (m *Model) dim(s string) string {
	return lipgloss.NewStyle().Foreground(m.theme.Dimmed).Render(s)
}
