package input

import "time"

// Detector debounces button samples and detects short and long presses.
type Detector struct {
	debounceDuration time.Duration
	longPress        time.Duration
	buttons          [NumButtons]buttonState
	counts           Counts
}

// NewDetector creates a detector with the given debounce and long-press durations.
func NewDetector(debounceDuration, longPress time.Duration) *Detector {
	return &Detector{
		debounceDuration: debounceDuration,
		longPress:        longPress,
	}
}

// Process takes a new sample and returns this tick's events.
// A button reports nothing until its baseline is established, so a button
// held down at startup does not fire.
func (d *Detector) Process(s Sample) Events {
	var ev Events
	for i := range d.buttons {
		b := &d.buttons[i]
		short := d.processButton(b, s.Pressed[i], s.Time)

		if b.baselined && b.stable && !b.longFired && s.Time.Sub(b.pressedAt) >= d.longPress {
			b.longFired = true
			ev.Long[i] = true
			d.counts.Long[i]++
		}
		if short {
			ev.Short[i] = true
			d.counts.Short[i]++
		}
		ev.Held[i] = b.baselined && b.stable
	}
	return ev
}

// processButton handles debounce logic for a single button.
// Returns true if a press ended without reaching the long-press threshold.
func (d *Detector) processButton(b *buttonState, pressed bool, now time.Time) bool {
	// First time seeing this button
	if !b.baselined {
		if !b.hasPending || b.pending != pressed {
			// Start observing, or restart after a change
			b.pending = pressed
			b.hasPending = true
			b.pendingSince = now
			return false
		}

		if now.Sub(b.pendingSince) >= d.debounceDuration {
			b.stable = pressed
			b.baselined = true
			b.hasPending = false
			// A button held through startup never fires
			b.longFired = pressed
		}
		return false
	}

	// Already baselined - detect transitions
	if pressed == b.stable {
		b.hasPending = false
		return false
	}

	if !b.hasPending || b.pending != pressed {
		b.pending = pressed
		b.hasPending = true
		b.pendingSince = now
		return false
	}

	if now.Sub(b.pendingSince) < d.debounceDuration {
		return false
	}

	b.stable = pressed
	b.hasPending = false
	if pressed {
		b.pressedAt = b.pendingSince
		b.longFired = false
		return false
	}
	return !b.longFired
}

// IsBaselined returns whether every button has established a baseline.
func (d *Detector) IsBaselined() bool {
	for _, b := range d.buttons {
		if !b.baselined {
			return false
		}
	}
	return true
}

// CountsSnapshot returns a copy of the press counters.
func (d *Detector) CountsSnapshot() Counts {
	return d.counts
}
