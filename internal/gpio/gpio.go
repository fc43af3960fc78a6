// Package gpio provides button input and tube/buzzer output with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

// NumButtons is the number of front-panel buttons.
const NumButtons = 5

// ButtonReader reads the front-panel buttons.
type ButtonReader interface {
	// Read returns whether each button is pressed.
	// The buttons are wired active-low: raw 0 = pressed.
	Read() ([NumButtons]bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Pins holds the BCM line offsets used by the clock.
type Pins struct {
	Buttons [NumButtons]int
	Data    int // shift register serial in
	Clock   int // shift register clock
	Latch   int // shift register latch/strobe
	Dim     int // selects the reduced anode supply
	Buzzer  int
}

// DefaultPins matches the reference board wiring (BCM numbering).
var DefaultPins = Pins{
	Buttons: [NumButtons]int{5, 6, 13, 19, 26},
	Data:    10,
	Clock:   11,
	Latch:   8,
	Dim:     18,
	Buzzer:  12,
}
