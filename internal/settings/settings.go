// Package settings holds the clock's shared time snapshot, configuration bits
// and the alarm control byte.
package settings

import (
	"time"

	"github.com/sweeney/nixie-clock/internal/bcd"
)

// Time is a packed-decimal snapshot of the wall clock.
type Time struct {
	Seconds   bcd.Byte
	Minutes   bcd.Byte
	Hours     bcd.Byte // 24-hour
	Date      bcd.Byte
	Month     bcd.Byte
	Year      bcd.Byte // two digits
	DayOfWeek uint8    // 0 = Sunday
}

// Set refreshes the snapshot from t.
func (tm *Time) Set(t time.Time) {
	tm.Seconds = bcd.FromInt(t.Second())
	tm.Minutes = bcd.FromInt(t.Minute())
	tm.Hours = bcd.FromInt(t.Hour())
	tm.Date = bcd.FromInt(t.Day())
	tm.Month = bcd.FromInt(int(t.Month()))
	tm.Year = bcd.FromInt(t.Year())
	tm.DayOfWeek = uint8(t.Weekday())
}

// Main holds the user-facing configuration bits.
type Main struct {
	TimeFormat12h  bool
	DateFormatDDMM bool
	RestOnHour     bcd.Byte
	RestOnMinute   bcd.Byte
	WakeOnHour     bcd.Byte
	WakeOnMinute   bcd.Byte
}

// SleepEnabled reports whether rest and wake times differ.
// Identical rest and wake times disable the rest transition.
func (m Main) SleepEnabled() bool {
	return m.RestOnHour != m.WakeOnHour || m.RestOnMinute != m.WakeOnMinute
}

// Control is the persisted control byte. Bits 0-1 hold the alarm arm state.
type Control uint8

const armMask Control = 0x03

// ArmState returns the alarm arm state (0-3).
func (c Control) ArmState() uint8 { return uint8(c & armMask) }

// Alarm1Armed reports bit 0.
func (c Control) Alarm1Armed() bool { return c&0x01 != 0 }

// Alarm2Armed reports bit 1.
func (c Control) Alarm2Armed() bool { return c&0x02 != 0 }

// NextArmState advances the arm state modulo 4, leaving the other bits alone.
func (c Control) NextArmState() Control {
	next := (c.ArmState() + 1) % 4
	return c&^armMask | Control(next)
}

// Settings is the state shared between modes.
type Settings struct {
	Time    Time
	Main    Main
	Control Control
}

// ControlWriter persists the control byte.
type ControlWriter interface {
	WriteControl(c Control) error
}
