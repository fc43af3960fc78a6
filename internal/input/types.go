// Package input turns raw button samples into debounced press events.
// This package has NO external dependencies (no GPIO, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package input

import "time"

// NumButtons is the number of front-panel buttons.
const NumButtons = 5

// Button indices.
const (
	Button1 = iota
	Button2
	Button3
	Button4
	Button5
)

// Sample is a single raw reading of every button.
type Sample struct {
	Pressed [NumButtons]bool
	Time    time.Time
}

// Events is what modes see of the buttons on one tick.
type Events struct {
	// Short is set on the tick a press is released before the long-press threshold.
	Short [NumButtons]bool
	// Long is set once, on the tick a press reaches the long-press threshold.
	Long [NumButtons]bool
	// Held mirrors the debounced pressed state.
	Held [NumButtons]bool
}

// ShortPressed reports a short-press edge on button b.
func (e Events) ShortPressed(b int) bool { return e.Short[b] }

// LongPressed reports a long-press edge on button b.
func (e Events) LongPressed(b int) bool { return e.Long[b] }

// IsPressed reports whether button b is currently held.
func (e Events) IsPressed(b int) bool { return e.Held[b] }

// Counts tracks the number of press events per button since startup.
type Counts struct {
	Short [NumButtons]int
	Long  [NumButtons]int
}

// buttonState tracks debounce and press timing for one button.
type buttonState struct {
	// Current stable (debounced) state
	stable bool
	// Pending state during debounce
	pending    bool
	hasPending bool
	// Time when pending state was first observed
	pendingSince time.Time
	// Whether we have established a baseline
	baselined bool
	// Start of the current press and whether it already fired Long
	pressedAt time.Time
	longFired bool
}
