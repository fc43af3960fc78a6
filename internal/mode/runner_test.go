package mode

import (
	"testing"

	"github.com/sweeney/nixie-clock/internal/settings"
)

type recorder struct {
	name string
	log  *[]string
	fn   func(sh *Shared)
}

func (r recorder) Run(sh *Shared) {
	*r.log = append(*r.log, r.name)
	if r.fn != nil {
		r.fn(sh)
	}
}

func newShared() *Shared {
	return &Shared{Settings: &settings.Settings{}}
}

func TestModeString(t *testing.T) {
	tests := map[Mode]string{
		Clock:    "CLOCK",
		ClockSet: "CLOCK_SET",
		AlarmSet: "ALARM_SET",
		Rest:     "REST",
		Mode(42): "UNKNOWN",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d): got %q, want %q", int(m), got, want)
		}
	}
}

func TestFirstTickMarksInitialModeEntered(t *testing.T) {
	var calls []string
	r := NewRunner(Clock)
	sh := newShared()
	var entered bool
	r.Register(Clock, recorder{name: "clock", log: &calls, fn: func(sh *Shared) {
		entered = sh.JustEntered[Clock]
		sh.JustEntered[Clock] = false
	}})

	r.Tick(sh)
	if !entered {
		t.Error("initial mode should see JustEntered on first tick")
	}

	r.Tick(sh)
	if entered {
		t.Error("JustEntered should not be set again on the second tick")
	}
	if len(calls) != 2 {
		t.Errorf("expected 2 runs, got %v", calls)
	}
}

func TestDeferredSwitch(t *testing.T) {
	var calls []string
	r := NewRunner(Clock)
	sh := newShared()
	r.Register(Clock, recorder{name: "clock", log: &calls, fn: func(*Shared) {
		r.SwitchMode(Rest, false)
	}})
	r.Register(Rest, recorder{name: "rest", log: &calls})

	var switches []Transition
	r.OnSwitch(func(tr Transition) { switches = append(switches, tr) })

	r.Tick(sh)
	if r.Current() != Clock {
		t.Errorf("deferred switch should not apply within the tick, current=%s", r.Current())
	}

	r.Tick(sh)
	if r.Current() != Rest {
		t.Errorf("expected Rest after second tick, got %s", r.Current())
	}
	if !sh.JustEntered[Rest] {
		t.Error("Rest should be marked just entered")
	}
	if len(calls) != 2 || calls[1] != "rest" {
		t.Errorf("unexpected run order: %v", calls)
	}
	if len(switches) != 1 || switches[0] != (Transition{From: Clock, To: Rest}) {
		t.Errorf("unexpected switches: %+v", switches)
	}
}

func TestImmediateSwitch(t *testing.T) {
	var calls []string
	r := NewRunner(Clock)
	sh := newShared()
	r.Register(Clock, recorder{name: "clock", log: &calls, fn: func(*Shared) {
		r.SwitchMode(AlarmSet, true)
	}})
	r.Register(AlarmSet, recorder{name: "alarm-set", log: &calls})

	r.Tick(sh)
	if r.Current() != AlarmSet {
		t.Errorf("immediate switch should apply within the tick, got %s", r.Current())
	}
	if len(calls) != 2 || calls[1] != "alarm-set" {
		t.Errorf("unexpected run order: %v", calls)
	}
}

func TestImmediateSwitchBounded(t *testing.T) {
	var calls []string
	r := NewRunner(Clock)
	sh := newShared()
	r.Register(Clock, recorder{name: "clock", log: &calls, fn: func(*Shared) {
		r.SwitchMode(Clock, true)
	}})

	r.Tick(sh)
	if len(calls) != maxImmediate {
		t.Errorf("expected %d runs, got %d", maxImmediate, len(calls))
	}
}

func TestMissingHandlerReturnsToClock(t *testing.T) {
	var calls []string
	r := NewRunner(Clock)
	sh := newShared()
	r.Register(Clock, recorder{name: "clock", log: &calls, fn: func(*Shared) {
		if len(calls) == 1 {
			r.SwitchMode(ClockSet, false)
		}
	}})

	r.Tick(sh) // clock requests ClockSet
	r.Tick(sh) // ClockSet has no handler
	if len(calls) != 1 {
		t.Errorf("unregistered mode should not run a handler, calls=%v", calls)
	}

	r.Tick(sh)
	if r.Current() != Clock {
		t.Errorf("expected return to Clock, got %s", r.Current())
	}
	if len(calls) != 2 {
		t.Errorf("expected clock to run again, calls=%v", calls)
	}
}

func TestHandlerFunc(t *testing.T) {
	ran := false
	var h Handler = HandlerFunc(func(*Shared) { ran = true })
	h.Run(newShared())
	if !ran {
		t.Error("HandlerFunc should call the function")
	}
}
