package messages

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/renato0307/novix/internal/types"
)

// Command layer helpers - return tea.Cmd with appropriate StatusMsg

// ErrorCmd returns a tea.Cmd that produces an error status message.
// Use this in command handlers when an operation fails.
//
// Example:
//
//	if err := store.PinTechnique(ctx, item); err != nil {
//	    return messages.ErrorCmd("Pin failed: %v", err)
//	}
func ErrorCmd(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return types.ErrorStatusMsg(msg)
	}
}

// SuccessCmd returns a tea.Cmd that produces a success status message.
// Use this in command handlers when an operation completes successfully.
//
// Example:
//
//	return messages.SuccessCmd("Created %s", label)
func SuccessCmd(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return types.SuccessMsg(msg)
	}
}

// InfoCmd returns a tea.Cmd that produces an info status message.
// Use this in command handlers for informational messages.
//
// Example:
//
//	return messages.InfoCmd("Palette data refreshed")
func InfoCmd(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return types.InfoMsg(msg)
	}
}

// WarningCmd returns a tea.Cmd that produces a warning status message.
// Use this for non-fatal notices such as options dropped by a schema check.
func WarningCmd(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return types.WarningMsg(msg)
	}
}

// Store layer helpers - return wrapped errors with context

// WrapError wraps an error with additional context using fmt.Errorf.
// Preserves the error chain for debugging with %w.
//
// Example:
//
//	snap, err := store.Snapshot(ctx)
//	if err != nil {
//	    return messages.WrapError(err, "failed to load project %s", project)
//	}
func WrapError(err error, format string, args ...any) error {
	context := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", context, err)
}
