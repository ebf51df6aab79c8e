package components

// Layout constants
const (
	// ReservedLines is the chrome around the body: header, the gap below
	// it and the status line.
	ReservedLines = 3

	// MinBodyHeight keeps the body visible in very small terminals.
	MinBodyHeight = 3
)
