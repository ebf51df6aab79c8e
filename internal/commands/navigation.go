package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/novix/internal/types"
)

// NavigationCommand returns an execute function that switches to view and
// optionally focuses an entity in it.
func NavigationCommand(view, focus string) ExecuteFunc {
	return func() tea.Cmd {
		return func() tea.Msg {
			return types.ViewSwitchMsg{View: view, Focus: focus}
		}
	}
}

// OpenChapterCommand returns an execute function that opens a chapter in
// the editor.
func OpenChapterCommand(id string) ExecuteFunc {
	return func() tea.Cmd {
		return func() tea.Msg {
			return types.OpenChapterMsg{ChapterID: id}
		}
	}
}

// SettingCommand returns an execute function that changes a setting.
func SettingCommand(key string, value any) ExecuteFunc {
	return func() tea.Cmd {
		return func() tea.Msg {
			return types.SettingChangedMsg{Key: key, Value: value}
		}
	}
}

// RefreshCommand returns an execute function that drops cached palette data.
func RefreshCommand() ExecuteFunc {
	return func() tea.Cmd {
		return func() tea.Msg {
			return types.RefreshDataMsg{}
		}
	}
}

// QuitCommand returns an execute function that quits the application.
func QuitCommand() ExecuteFunc {
	return func() tea.Cmd {
		return tea.Quit
	}
}

// tracked wraps a navigation item's action so running it also reports the
// item to the recent list.
func tracked(item Item) ExecuteFunc {
	run := item.Execute
	used := types.RecentUsedMsg{ID: item.ID, Title: item.Title, Subtitle: item.Subtitle}
	return func() tea.Cmd {
		report := func() tea.Msg { return used }
		if run == nil {
			return report
		}
		return tea.Batch(run(), report)
	}
}
