package ui

import "time"

// Home launcher grid.
const (
	gridColumns = 3
	gridRows    = 3
	gridSlots   = gridColumns * gridRows
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which launcher cells shrink.
	LayoutCompactWidth = 80

	// MaxContentWidth caps the width of word details.
	MaxContentWidth = 100
)

// Timing constants.
const (
	// DefaultNoticeTTL is how long a notice stays on screen.
	DefaultNoticeTTL = 4 * time.Second

	// DefaultRequestTimeout bounds a single workflow call from the UI.
	DefaultRequestTimeout = 30 * time.Second
)
