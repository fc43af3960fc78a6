package clockmode

import (
	"github.com/sweeney/nixie-clock/internal/mode"
)

// displayDates shows the date, then the day of week, holding each for its
// dwell time. The whole sequence blocks the tick.
func (m *Mode) displayDates(sh *mode.Shared, roll bool) {
	m.displayDate(sh, roll)
	m.deps.Delay.Delay(m.cfg.DateDisplay)
	m.show(DayOfWeekFrame(sh.Settings))
	m.deps.Delay.Delay(m.cfg.DayDisplay)
}

// displayDate commits the date frame directly, or hands it to the animator.
// ShouldRoll is set for the animation and always cleared afterwards.
func (m *Mode) displayDate(sh *mode.Shared, roll bool) {
	f := DateFrame(sh.Settings)
	if !roll {
		m.show(f)
		return
	}
	sh.ShouldRoll = true
	defer func() { sh.ShouldRoll = false }()
	m.deps.Animator.RollWorldLine(true, f)
}
