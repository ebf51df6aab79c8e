package commands

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/novix/internal/cmdlang"
	"github.com/renato0307/novix/internal/messages"
)

// writeClipboard is replaced in tests; the system clipboard is not
// available on CI machines.
var writeClipboard = clipboard.WriteAll

// CopyToClipboard copies text to system clipboard and returns a user-friendly message
func CopyToClipboard(text string) (string, error) {
	if err := writeClipboard(text); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	lines := strings.Count(text, "\n") + 1
	return fmt.Sprintf("Copied %d line(s) to clipboard", lines), nil
}

// CopyExamplesCommand returns an execute function that copies the command
// language examples to the clipboard.
func CopyExamplesCommand() ExecuteFunc {
	return func() tea.Cmd {
		return func() tea.Msg {
			msg, err := CopyToClipboard(strings.Join(cmdlang.HelpExamples(), "\n"))
			if err != nil {
				return messages.ErrorCmd("%v", err)()
			}
			return messages.SuccessCmd("%s", msg)()
		}
	}
}
