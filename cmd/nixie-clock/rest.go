package main

import (
	"log"

	"github.com/sweeney/nixie-clock/internal/display"
	"github.com/sweeney/nixie-clock/internal/input"
	"github.com/sweeney/nixie-clock/internal/mode"
)

// restMode keeps the tubes dark until the wake-on time, a button press or a
// ringing alarm hands control back to the clock.
type restMode struct {
	drv      display.Driver
	switcher interface {
		SwitchMode(target mode.Mode, immediate bool)
	}
}

func (r *restMode) Run(sh *mode.Shared) {
	if sh.JustEntered[mode.Rest] {
		sh.JustEntered[mode.Rest] = false
		if err := display.Show(r.drv, display.BlankFrame()); err != nil {
			log.Printf("rest: commit: %v", err)
		}
	}

	t, m := sh.Settings.Time, sh.Settings.Main
	wake := t.Hours == m.WakeOnHour && t.Minutes == m.WakeOnMinute
	if wake || sh.RingDuration > 0 || anyShortPress(sh.Buttons) {
		// The waking press is consumed here.
		sh.Buttons = input.Events{}
		r.switcher.SwitchMode(mode.Clock, true)
	}
}

func anyShortPress(ev input.Events) bool {
	for b := 0; b < input.NumButtons; b++ {
		if ev.ShortPressed(b) {
			return true
		}
	}
	return false
}
