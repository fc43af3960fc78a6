package internal

import (
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/sweeney/nixie-clock/internal/alarm"
	"github.com/sweeney/nixie-clock/internal/clockmode"
	"github.com/sweeney/nixie-clock/internal/display"
	"github.com/sweeney/nixie-clock/internal/gpio"
	"github.com/sweeney/nixie-clock/internal/input"
	"github.com/sweeney/nixie-clock/internal/mode"
	"github.com/sweeney/nixie-clock/internal/settings"
)

const pollInterval = 100 * time.Millisecond

// rig wires the clock from buttons to shift-register bits using fakes, the
// same way the daemon does.
type rig struct {
	reader  *gpio.FakeButtonReader
	out     *gpio.FakeOutputs
	path    string
	store   *settings.FileStore
	det     *input.Detector
	checker *alarm.Checker
	runner  *mode.Runner
	shared  *mode.Shared
	now     time.Time

	actions []clockmode.Action
	rings   []alarm.Event
}

type noDelay struct{}

func (noDelay) Delay(time.Duration) {}

func newRig(t *testing.T, start time.Time, control settings.Control, alarms [2]alarm.Time, samples [][gpio.NumButtons]bool) *rig {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.toml")
	r := &rig{
		reader: gpio.NewFakeButtonReader(samples),
		out:    &gpio.FakeOutputs{},
		path:   path,
		store:  settings.NewFileStore(path),
		det:    input.NewDetector(40*time.Millisecond, 1500*time.Millisecond),
		runner: mode.NewRunner(mode.Clock),
		now:    start,
		shared: &mode.Shared{Settings: &settings.Settings{Control: control}},
	}
	r.checker = alarm.NewChecker(alarms, 60, r.out)

	tubes := display.NewShiftDriver(r.out, func() time.Time { return r.now })
	panel := display.NewPanel(tubes, func(time.Duration) {}, rand.New(rand.NewPCG(7, 7)), display.PanelConfig{Steps: 8})
	clock := clockmode.New(clockmode.Deps{
		Display:    tubes,
		Switcher:   r.runner,
		Delay:      noDelay{},
		Animator:   panel,
		Brightness: panel,
		Store:      r.store,
	}, clockmode.DefaultConfig)
	clock.OnAction(func(a clockmode.Action) { r.actions = append(r.actions, a) })
	r.runner.Register(mode.Clock, clock)
	return r
}

// tick advances the clock by one poll interval and runs the main loop body.
func (r *rig) tick(t *testing.T) {
	t.Helper()
	r.now = r.now.Add(pollInterval)
	r.shared.Settings.Time.Set(r.now)

	pressed, err := r.reader.Read()
	if err != nil {
		t.Fatalf("button read: %v", err)
	}
	r.shared.Buttons = r.det.Process(input.Sample{Pressed: pressed, Time: r.now})
	if ev := r.checker.Check(r.shared, r.now); ev != alarm.EventNone {
		r.rings = append(r.rings, ev)
	}
	r.runner.Tick(r.shared)
}

// decode decodes a shift pattern into eight characters. Separator dots are
// ignored since their phase depends on the subsecond.
func decode(bits []bool) string {
	out := make([]byte, display.NumTubes)
	for i := range out {
		out[i] = ' '
		for d := 0; d <= 9; d++ {
			if bits[i*12+d] {
				out[i] = '0' + byte(d)
			}
		}
	}
	return string(out)
}

func (r *rig) shown() []string {
	var out []string
	for _, s := range r.out.Shifts {
		out = append(out, decode(s))
	}
	return out
}

func released() [gpio.NumButtons]bool { return [gpio.NumButtons]bool{} }

func pressing(b int) [gpio.NumButtons]bool {
	var s [gpio.NumButtons]bool
	s[b] = true
	return s
}

func script(parts ...[][gpio.NumButtons]bool) [][gpio.NumButtons]bool {
	var out [][gpio.NumButtons]bool
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func hold(s [gpio.NumButtons]bool, n int) [][gpio.NumButtons]bool {
	out := make([][gpio.NumButtons]bool, n)
	for i := range out {
		out[i] = s
	}
	return out
}

// TestIntegrationArmRingSilence arms alarm 1 with button 3, lets it ring,
// then silences it with a second press.
func TestIntegrationArmRingSilence(t *testing.T) {
	samples := script(
		hold(released(), 2),              // baseline
		hold(pressing(input.Button3), 2), // short press, released on tick 5
		hold(released(), 8),              // 07:00:00.0 on tick 9 rings
		hold(pressing(input.Button3), 2), // silence, released on tick 15
		hold(released(), 4),
	)
	start := time.Date(2026, 3, 14, 6, 59, 59, 0, time.Local)
	alarms := [2]alarm.Time{{Hour: 0x07, Minute: 0x00, Set: true}}
	r := newRig(t, start, 0, alarms, samples)

	for i := range samples {
		r.tick(t)
		switch i {
		case 5:
			if !r.shared.Settings.Control.Alarm1Armed() {
				t.Fatal("tick 5: alarm 1 should be armed")
			}
		case 9:
			if r.shared.RingDuration != 60 || !r.out.Buzzer {
				t.Fatalf("tick 9: ring=%d buzzer=%v, want ringing", r.shared.RingDuration, r.out.Buzzer)
			}
		case 15:
			if r.shared.RingDuration != 0 {
				t.Fatalf("tick 15: ring=%d, want silenced", r.shared.RingDuration)
			}
		}
	}

	if r.out.Buzzer {
		t.Error("buzzer should be off after silencing")
	}
	want := []alarm.Event{alarm.EventRingStart, alarm.EventRingStop}
	if len(r.rings) != 2 || r.rings[0] != want[0] || r.rings[1] != want[1] {
		t.Errorf("ring events: got %v, want %v", r.rings, want)
	}

	var arms, silences int
	for _, a := range r.actions {
		switch a {
		case clockmode.ActionArm:
			arms++
		case clockmode.ActionSilence:
			silences++
		}
	}
	if arms != 1 || silences != 1 {
		t.Errorf("actions: %d arms, %d silences; want 1 each", arms, silences)
	}

	// The arm state survives a restart.
	got, err := settings.NewFileStore(r.path).Load()
	if err != nil {
		t.Fatalf("reload state: %v", err)
	}
	if got != 0x01 {
		t.Errorf("persisted control: got %#x, want 0x01", got)
	}
}

// TestIntegrationDateRollAtMinute checks the time, date, day, time sequence
// on the shift chain when the minute turns over.
func TestIntegrationDateRollAtMinute(t *testing.T) {
	start := time.Date(2026, 3, 14, 12, 34, 59, 500*int(time.Millisecond), time.Local) // Saturday
	r := newRig(t, start, 0, [2]alarm.Time{}, hold(released(), 1))

	for i := 0; i < 6; i++ {
		r.tick(t)
	}

	shown := r.shown()
	idx := func(s string, from int) int {
		for i := from; i < len(shown); i++ {
			if shown[i] == s {
				return i
			}
		}
		return -1
	}
	before := idx("12 34 59", 0)
	date := idx("03 14 26", before+1)
	day := idx("   06   ", date+1)
	after := idx("12 35 00", day+1)
	if before < 0 || date < 0 || day < 0 || after < 0 {
		t.Fatalf("sequence not found (%d %d %d %d) in %q", before, date, day, after, shown)
	}
	if r.shared.ShouldRoll {
		t.Error("roll flag should be clear after the sequence")
	}
	if len(r.actions) < 5 || r.actions[4] != clockmode.ActionDateRoll {
		t.Errorf("actions: got %v, want DATE_ROLL on tick 4", r.actions)
	}
}

// TestIntegrationButtonHeldAtStartup verifies a button held through startup
// never fires.
func TestIntegrationButtonHeldAtStartup(t *testing.T) {
	samples := script(hold(pressing(input.Button3), 5), hold(released(), 3))
	start := time.Date(2026, 3, 14, 10, 0, 10, 0, time.Local)
	r := newRig(t, start, 0, [2]alarm.Time{}, samples)

	for range samples {
		r.tick(t)
	}
	for _, a := range r.actions {
		if a != clockmode.ActionRender {
			t.Errorf("unexpected action %s", a)
		}
	}
	if r.shared.Settings.Control != 0 {
		t.Errorf("control changed to %#x", r.shared.Settings.Control)
	}
}

// TestIntegrationPersistFailureStillArms checks that a failing store does not
// stop the arm state from changing on screen.
func TestIntegrationPersistFailureStillArms(t *testing.T) {
	samples := script(hold(released(), 2), hold(pressing(input.Button3), 2), hold(released(), 2))
	start := time.Date(2026, 3, 14, 10, 0, 10, 0, time.Local)
	r := newRig(t, start, 0x02, [2]alarm.Time{}, samples)

	// Replace the store with one that always fails.
	fail := &settings.FakeStore{WriteError: errors.New("read-only filesystem")}
	tubes := display.NewShiftDriver(r.out, func() time.Time { return r.now })
	panel := display.NewPanel(tubes, func(time.Duration) {}, nil, display.PanelConfig{})
	clock := clockmode.New(clockmode.Deps{
		Display:    tubes,
		Switcher:   r.runner,
		Delay:      noDelay{},
		Animator:   panel,
		Brightness: panel,
		Store:      fail,
	}, clockmode.DefaultConfig)
	r.runner.Register(mode.Clock, clock)

	for range samples {
		r.tick(t)
	}
	if r.shared.Settings.Control != 0x03 {
		t.Errorf("control: got %#x, want 0x03", r.shared.Settings.Control)
	}
	if len(fail.Writes) != 0 {
		t.Errorf("failing store recorded writes: %v", fail.Writes)
	}
	if got := r.shown(); got[len(got)-1] != "10 00 10" {
		t.Errorf("final frame: got %q, want time", got[len(got)-1])
	}
}
