// Package mode owns the state shared between display modes and switches
// between them once per tick.
package mode

import (
	"github.com/sweeney/nixie-clock/internal/input"
	"github.com/sweeney/nixie-clock/internal/settings"
)

// Mode identifies a display mode.
type Mode int

const (
	Clock Mode = iota
	ClockSet
	AlarmSet
	Rest
	numModes
)

func (m Mode) String() string {
	switch m {
	case Clock:
		return "CLOCK"
	case ClockSet:
		return "CLOCK_SET"
	case AlarmSet:
		return "ALARM_SET"
	case Rest:
		return "REST"
	default:
		return "UNKNOWN"
	}
}

// Shared is the state every mode reads and mutates. It is owned by the main
// loop and handed to the current mode by reference on each tick; nothing
// else writes it while a mode runs.
type Shared struct {
	Settings *settings.Settings

	// Buttons holds this tick's button events.
	Buttons input.Events

	// RingDuration is the number of seconds the alarm keeps ringing; 0 = silent.
	RingDuration int

	// ShouldRoll is set while a roll animation owns the display.
	ShouldRoll bool

	// JustEntered is set for a mode on the tick it becomes current.
	JustEntered [numModes]bool
}
