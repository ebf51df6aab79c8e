package commands

import "time"

// Command execution constants
const (
	// DefaultStoreTimeout bounds every store call made by a palette action.
	// Actions run as tea.Cmds, so a slow backend must not pin a goroutine
	// forever.
	DefaultStoreTimeout = 10 * time.Second
)
