// Package display models the eight-tube Nixie display and its drivers.
// Nothing in this package sleeps on its own except the refresh loop and
// the roll animation, which take their delays through injected hooks.
package display

import (
	"strings"
	"time"
)

// NumTubes is the number of tube positions, addressed 1..NumTubes.
const NumTubes = 8

// Digit is a cathode number 0-9, or Blank.
type Digit uint8

// Blank renders no digit.
const Blank Digit = 0x0F

// Tube is the staged value of one tube.
// At most one of BlinkOn and BlinkOff is set; both false means steady.
type Tube struct {
	Digit    Digit
	BlinkOn  bool
	BlinkOff bool
}

// Steady returns a non-blinking tube showing d.
func Steady(d Digit) Tube { return Tube{Digit: d} }

// Frame is a full display: Frame[0] is tube 1.
type Frame [NumTubes]Tube

// BlankFrame has every tube dark.
func BlankFrame() Frame {
	var f Frame
	for i := range f {
		f[i] = Steady(Blank)
	}
	return f
}

// FrameOf builds a steady frame from eight digits.
func FrameOf(digits [NumTubes]Digit) Frame {
	var f Frame
	for i, d := range digits {
		f[i] = Steady(d)
	}
	return f
}

// Digits returns the digit of each tube.
func (f Frame) Digits() [NumTubes]Digit {
	var d [NumTubes]Digit
	for i, t := range f {
		d[i] = t.Digit
	}
	return d
}

// String renders the frame as eight characters: digits, ' ' for a dark tube
// and '.' for a blinking separator.
func (f Frame) String() string {
	var b strings.Builder
	for _, t := range f {
		switch {
		case t.Digit <= 9:
			b.WriteByte('0' + byte(t.Digit))
		case t.BlinkOn || t.BlinkOff:
			b.WriteByte('.')
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Lit reports whether tube t is lit at the given offset into the current second.
// BlinkOn tubes light during the first half of the second, BlinkOff tubes
// during the second half.
func Lit(t Tube, subsecond time.Duration) bool {
	firstHalf := subsecond < 500*time.Millisecond
	switch {
	case t.BlinkOn:
		return firstHalf
	case t.BlinkOff:
		return !firstHalf
	default:
		return true
	}
}

// Brightness is the tube drive level.
type Brightness uint8

const (
	BrightnessHigh Brightness = iota
	BrightnessLow
)

// Toggle flips between high and low.
func (b Brightness) Toggle() Brightness {
	if b == BrightnessHigh {
		return BrightnessLow
	}
	return BrightnessHigh
}

func (b Brightness) String() string {
	if b == BrightnessLow {
		return "LOW"
	}
	return "HIGH"
}

// Driver stages tube values and flushes them to the hardware.
type Driver interface {
	// SetTube stages tube slot (1..NumTubes). Out-of-range slots are ignored.
	SetTube(slot int, t Tube)

	// Commit shows all staged tubes at once.
	Commit() error

	// SetBrightness changes the drive level.
	SetBrightness(b Brightness) error
}

// Show stages every tube of f and commits.
func Show(d Driver, f Frame) error {
	for i, t := range f {
		d.SetTube(i+1, t)
	}
	return d.Commit()
}
