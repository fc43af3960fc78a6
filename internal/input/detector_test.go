package input

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// feed processes pressed for button b at each offset (ms from t0) and returns the events.
func feed(d *Detector, b int, pressed bool, ms ...int) []Events {
	var out []Events
	for _, m := range ms {
		var s Sample
		s.Pressed[b] = pressed
		s.Time = t0.Add(time.Duration(m) * time.Millisecond)
		out = append(out, d.Process(s))
	}
	return out
}

func setupBaselinedDetector(t *testing.T) *Detector {
	t.Helper()
	d := NewDetector(50*time.Millisecond, time.Second)
	feed(d, Button1, false, 0, 50)
	if !d.IsBaselined() {
		t.Fatal("detector should be baselined")
	}
	return d
}

func TestBaselineEstablishment(t *testing.T) {
	d := NewDetector(50*time.Millisecond, time.Second)

	ev := feed(d, Button1, false, 0, 40)
	if d.IsBaselined() {
		t.Error("should not be baselined before debounce period")
	}
	for i, e := range ev {
		if e != (Events{}) {
			t.Errorf("sample %d: expected no events during baseline, got %+v", i, e)
		}
	}

	feed(d, Button1, false, 50)
	if !d.IsBaselined() {
		t.Error("should be baselined after debounce period")
	}
}

func TestShortPress(t *testing.T) {
	d := setupBaselinedDetector(t)

	// Press at 100, confirmed at 150
	ev := feed(d, Button2, true, 100, 150, 200)
	if ev[0].IsPressed(Button2) {
		t.Error("press should not be seen before debounce")
	}
	if !ev[1].IsPressed(Button2) || !ev[2].IsPressed(Button2) {
		t.Error("press should be held after debounce")
	}
	for i, e := range ev {
		if e.ShortPressed(Button2) || e.LongPressed(Button2) {
			t.Errorf("sample %d: no edges expected while held briefly", i)
		}
	}

	// Release at 300, confirmed at 350
	ev = feed(d, Button2, false, 300, 350, 400)
	if ev[0].ShortPressed(Button2) {
		t.Error("short edge should wait for debounced release")
	}
	if !ev[1].ShortPressed(Button2) {
		t.Error("expected short edge on debounced release")
	}
	if ev[1].IsPressed(Button2) {
		t.Error("button should not be held after release")
	}
	if ev[2].ShortPressed(Button2) {
		t.Error("short edge should fire once")
	}

	if got := d.CountsSnapshot().Short[Button2]; got != 1 {
		t.Errorf("expected 1 short press counted, got %d", got)
	}
}

func TestLongPress(t *testing.T) {
	d := setupBaselinedDetector(t)

	// Press starts at 100 (confirmed 150); long threshold reached at 1100
	ev := feed(d, Button3, true, 100, 150, 1000, 1100, 1200, 2000)
	longs := 0
	for i, e := range ev {
		if e.LongPressed(Button3) {
			longs++
			if i != 3 {
				t.Errorf("long edge at sample %d, want sample 3", i)
			}
		}
		if i > 0 && !e.IsPressed(Button3) {
			t.Errorf("sample %d: expected held", i)
		}
	}
	if longs != 1 {
		t.Errorf("expected exactly one long edge, got %d", longs)
	}

	// Release after a long press does not produce a short edge
	ev = feed(d, Button3, false, 2100, 2150)
	for i, e := range ev {
		if e.ShortPressed(Button3) {
			t.Errorf("sample %d: unexpected short edge after long press", i)
		}
	}

	c := d.CountsSnapshot()
	if c.Long[Button3] != 1 || c.Short[Button3] != 0 {
		t.Errorf("unexpected counts: %+v", c)
	}
}

func TestBounceIgnored(t *testing.T) {
	d := setupBaselinedDetector(t)

	// Contact bounce shorter than debounce
	feed(d, Button4, true, 100)
	feed(d, Button4, false, 120)
	feed(d, Button4, true, 140)
	ev := feed(d, Button4, false, 160, 210, 260)
	for i, e := range ev {
		if e.ShortPressed(Button4) || e.IsPressed(Button4) {
			t.Errorf("sample %d: bounce should be ignored, got %+v", i, e)
		}
	}
}

func TestHeldAtStartupNeverFires(t *testing.T) {
	d := NewDetector(50*time.Millisecond, time.Second)

	ev := feed(d, Button5, true, 0, 50, 2000)
	if !ev[2].IsPressed(Button5) {
		t.Error("button held through startup should report held")
	}
	for i, e := range ev {
		if e.LongPressed(Button5) {
			t.Errorf("sample %d: held-at-startup button should not fire long", i)
		}
	}

	ev = feed(d, Button5, false, 2100, 2150)
	for i, e := range ev {
		if e.ShortPressed(Button5) {
			t.Errorf("sample %d: held-at-startup button should not fire short", i)
		}
	}
}

func TestButtonsIndependent(t *testing.T) {
	d := setupBaselinedDetector(t)

	var s Sample
	s.Pressed[Button2] = true
	s.Pressed[Button4] = true
	for _, m := range []int{100, 150} {
		s.Time = t0.Add(time.Duration(m) * time.Millisecond)
		d.Process(s)
	}
	s.Pressed[Button2] = false
	var ev Events
	for _, m := range []int{200, 250} {
		s.Time = t0.Add(time.Duration(m) * time.Millisecond)
		ev = d.Process(s)
	}

	if !ev.ShortPressed(Button2) {
		t.Error("expected short edge on Button2")
	}
	if !ev.IsPressed(Button4) {
		t.Error("Button4 should still be held")
	}
	if ev.ShortPressed(Button4) || ev.IsPressed(Button2) {
		t.Errorf("buttons should not interfere: %+v", ev)
	}
}
