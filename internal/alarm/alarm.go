// Package alarm starts and times out the alarm ring.
package alarm

import (
	"log"
	"time"

	"github.com/sweeney/nixie-clock/internal/bcd"
	"github.com/sweeney/nixie-clock/internal/mode"
	"github.com/sweeney/nixie-clock/internal/settings"
)

// Time is an alarm time of day. An alarm without Set never rings, whatever
// its arm bit says.
type Time struct {
	Hour   bcd.Byte
	Minute bcd.Byte
	Set    bool
}

// Buzzer drives the sounder.
type Buzzer interface {
	SetBuzzer(on bool) error
}

// Event reports a change of ring state.
type Event string

const (
	EventNone      Event = ""
	EventRingStart Event = "RING_START"
	EventRingStop  Event = "RING_STOP"
)

// Checker watches the time snapshot for armed alarms.
type Checker struct {
	alarms      [2]Time
	ringSeconds int
	buzzer      Buzzer

	lastSecond time.Time // wall clock truncated to the second
	lastHour   bcd.Byte
	lastMinute bcd.Byte
	seen       bool
	ringing    bool
}

// NewChecker creates a checker for alarm 1 and alarm 2.
func NewChecker(alarms [2]Time, ringSeconds int, buzzer Buzzer) *Checker {
	return &Checker{alarms: alarms, ringSeconds: ringSeconds, buzzer: buzzer}
}

// Check runs once per tick, before the mode, with the time the snapshot was
// taken at. RingDuration counts down by the seconds elapsed since the last
// check. An armed alarm starts ringing on the first check inside its minute,
// so a blocking display sequence over second 0 does not skip it. The first
// check after startup only rings at second 0.
func (c *Checker) Check(sh *mode.Shared, now time.Time) Event {
	t := sh.Settings.Time
	sec := now.Truncate(time.Second)

	if c.seen {
		if elapsed := int(sec.Sub(c.lastSecond) / time.Second); elapsed > 0 && sh.RingDuration > 0 {
			sh.RingDuration = max(sh.RingDuration-elapsed, 0)
		}
	}
	newMinute := t.Seconds == 0x00
	if c.seen {
		newMinute = t.Hours != c.lastHour || t.Minutes != c.lastMinute
	}
	c.seen = true
	c.lastSecond = sec
	c.lastHour, c.lastMinute = t.Hours, t.Minutes

	if newMinute && c.due(sh.Settings) {
		sh.RingDuration = c.ringSeconds
	}

	ringing := sh.RingDuration > 0
	if ringing == c.ringing {
		return EventNone
	}
	c.ringing = ringing
	if err := c.buzzer.SetBuzzer(ringing); err != nil {
		log.Printf("alarm: buzzer: %v", err)
	}
	if ringing {
		return EventRingStart
	}
	return EventRingStop
}

func (c *Checker) due(s *settings.Settings) bool {
	armed := [2]bool{s.Control.Alarm1Armed(), s.Control.Alarm2Armed()}
	for i, a := range c.alarms {
		if a.Set && armed[i] && s.Time.Hours == a.Hour && s.Time.Minutes == a.Minute {
			return true
		}
	}
	return false
}
