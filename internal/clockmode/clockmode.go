// Package clockmode is the clock face: it renders time, date and day of week
// and turns button presses into alarm arming and mode switches.
package clockmode

import (
	"log"
	"time"

	"github.com/sweeney/nixie-clock/internal/bcd"
	"github.com/sweeney/nixie-clock/internal/display"
	"github.com/sweeney/nixie-clock/internal/input"
	"github.com/sweeney/nixie-clock/internal/mode"
	"github.com/sweeney/nixie-clock/internal/settings"
)

// Action names what a tick did.
type Action string

const (
	ActionRender     Action = "RENDER"
	ActionRest       Action = "REST"
	ActionDateRoll   Action = "DATE_ROLL"
	ActionDate       Action = "DATE"
	ActionClockSet   Action = "CLOCK_SET"
	ActionSilence    Action = "SILENCE"
	ActionArm        Action = "ARM"
	ActionAlarmSet   Action = "ALARM_SET"
	ActionRandomRoll Action = "RANDOM_ROLL"
	ActionBrightness Action = "BRIGHTNESS"
)

// Config holds the dwell times.
type Config struct {
	DateDisplay   time.Duration
	DayDisplay    time.Duration
	ArmDisplay    time.Duration
	SilenceSettle time.Duration
}

// DefaultConfig is used for zero fields.
var DefaultConfig = Config{
	DateDisplay:   2 * time.Second,
	DayDisplay:    time.Second,
	ArmDisplay:    time.Second,
	SilenceSettle: 200 * time.Millisecond,
}

// Switcher requests a mode change.
type Switcher interface {
	SwitchMode(target mode.Mode, immediate bool)
}

// Delayer blocks for a duration against the shared time base.
type Delayer interface {
	Delay(d time.Duration)
}

// Animator plays roll transitions on the display.
type Animator interface {
	RollWorldLine(cascade bool, target display.Frame)
	RollRandomWorldLineWithDelay(delay bool)
}

// Brightness gives feedback on the display drive level.
type Brightness interface {
	ToggleBrightness()
	ShowBrightness()
}

// Deps are the collaborators of the clock mode.
type Deps struct {
	Display    display.Driver
	Switcher   Switcher
	Delay      Delayer
	Animator   Animator
	Brightness Brightness
	Store      settings.ControlWriter
}

// action is one entry of the button table: when reports whether it applies,
// do performs it and reports whether the tick ends without rendering the time.
type action struct {
	name Action
	when func(sh *mode.Shared) bool
	do   func(sh *mode.Shared) (terminal bool)
}

// Mode is the clock mode handler.
type Mode struct {
	deps     Deps
	cfg      Config
	buttons  []action
	onAction func(Action)

	// hour and minute seen on the previous tick
	lastHour   bcd.Byte
	lastMinute bcd.Byte
	seen       bool
}

// New creates the clock mode.
func New(deps Deps, cfg Config) *Mode {
	if cfg.DateDisplay <= 0 {
		cfg.DateDisplay = DefaultConfig.DateDisplay
	}
	if cfg.DayDisplay <= 0 {
		cfg.DayDisplay = DefaultConfig.DayDisplay
	}
	if cfg.ArmDisplay <= 0 {
		cfg.ArmDisplay = DefaultConfig.ArmDisplay
	}
	if cfg.SilenceSettle <= 0 {
		cfg.SilenceSettle = DefaultConfig.SilenceSettle
	}
	m := &Mode{deps: deps, cfg: cfg}
	m.buttons = m.buttonActions()
	return m
}

// OnAction sets a callback invoked with the action taken on each Run.
func (m *Mode) OnAction(fn func(Action)) {
	m.onAction = fn
}

// Run implements mode.Handler.
func (m *Mode) Run(sh *mode.Shared) {
	a := m.Tick(sh)
	if m.onAction != nil {
		m.onAction(a)
	}
}

// Tick runs one cycle and returns the action taken. At most one button
// action runs per tick, in table order.
func (m *Mode) Tick(sh *mode.Shared) Action {
	if sh.JustEntered[mode.Clock] {
		sh.JustEntered[mode.Clock] = false
	}

	taken := ActionRender
	if m.minuteStarted(sh.Settings.Time) && restDue(sh.Settings) {
		m.deps.Switcher.SwitchMode(mode.Rest, false)
		return ActionRest
	}
	if sh.Settings.Time.Seconds == 0x00 {
		if sh.RingDuration == 0 {
			m.displayDates(sh, true)
			taken = ActionDateRoll
		}
	}

	for _, a := range m.buttons {
		if !a.when(sh) {
			continue
		}
		taken = a.name
		if a.do(sh) {
			return taken
		}
		break
	}

	m.show(TimeFrame(sh.Settings))
	return taken
}

// minuteStarted reports whether t is the first tick of its minute: second 0,
// or a new minute reached while a blocking sequence held the loop past second 0.
func (m *Mode) minuteStarted(t settings.Time) bool {
	started := t.Seconds == 0x00
	if m.seen {
		started = started || t.Hours != m.lastHour || t.Minutes != m.lastMinute
	}
	m.seen = true
	m.lastHour, m.lastMinute = t.Hours, t.Minutes
	return started
}

// restDue reports whether the clock has reached the rest-on time.
// Identical rest and wake times disable resting.
func restDue(s *settings.Settings) bool {
	return s.Main.SleepEnabled() &&
		s.Time.Minutes == s.Main.RestOnMinute &&
		s.Time.Hours == s.Main.RestOnHour
}

func (m *Mode) buttonActions() []action {
	return []action{
		{
			name: ActionDate,
			when: func(sh *mode.Shared) bool { return sh.Buttons.ShortPressed(input.Button2) },
			do: func(sh *mode.Shared) bool {
				m.displayDates(sh, false)
				return false
			},
		},
		{
			name: ActionClockSet,
			when: func(sh *mode.Shared) bool { return sh.Buttons.LongPressed(input.Button2) },
			do: func(sh *mode.Shared) bool {
				m.deps.Switcher.SwitchMode(mode.ClockSet, false)
				return true
			},
		},
		{
			name: ActionSilence,
			when: func(sh *mode.Shared) bool {
				return sh.Buttons.ShortPressed(input.Button3) && sh.RingDuration > 0
			},
			do: func(sh *mode.Shared) bool {
				sh.RingDuration = 0
				m.deps.Delay.Delay(m.cfg.SilenceSettle)
				return false
			},
		},
		{
			name: ActionArm,
			when: func(sh *mode.Shared) bool { return sh.Buttons.ShortPressed(input.Button3) },
			do: func(sh *mode.Shared) bool {
				m.cycleArmState(sh.Settings)
				return false
			},
		},
		{
			name: ActionAlarmSet,
			when: func(sh *mode.Shared) bool { return sh.Buttons.LongPressed(input.Button3) },
			do: func(sh *mode.Shared) bool {
				m.deps.Switcher.SwitchMode(mode.AlarmSet, false)
				return true
			},
		},
		{
			name: ActionRandomRoll,
			when: func(sh *mode.Shared) bool { return sh.Buttons.IsPressed(input.Button4) },
			do: func(sh *mode.Shared) bool {
				sh.ShouldRoll = true
				defer func() { sh.ShouldRoll = false }()
				m.deps.Animator.RollRandomWorldLineWithDelay(false)
				return false
			},
		},
		{
			name: ActionBrightness,
			when: func(sh *mode.Shared) bool { return sh.Buttons.IsPressed(input.Button5) },
			do: func(sh *mode.Shared) bool {
				m.deps.Brightness.ToggleBrightness()
				m.deps.Brightness.ShowBrightness()
				return true
			},
		},
	}
}

// cycleArmState advances the alarm arm bits, persists them and shows the result.
func (m *Mode) cycleArmState(s *settings.Settings) {
	s.Control = s.Control.NextArmState()
	if err := m.deps.Store.WriteControl(s.Control); err != nil {
		log.Printf("clockmode: persist control: %v", err)
	}
	m.show(ArmedAlarmsFrame(s.Control))
	m.deps.Delay.Delay(m.cfg.ArmDisplay)
}

func (m *Mode) show(f display.Frame) {
	if err := display.Show(m.deps.Display, f); err != nil {
		log.Printf("clockmode: commit: %v", err)
	}
}
