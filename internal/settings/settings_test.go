package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sweeney/nixie-clock/internal/bcd"
)

func TestTimeSet(t *testing.T) {
	var tm Time
	tm.Set(time.Date(2026, 10, 14, 23, 59, 7, 0, time.UTC)) // Wednesday

	want := Time{
		Seconds:   0x07,
		Minutes:   0x59,
		Hours:     0x23,
		Date:      0x14,
		Month:     0x10,
		Year:      0x26,
		DayOfWeek: 3,
	}
	if tm != want {
		t.Errorf("got %+v, want %+v", tm, want)
	}
}

func TestNextArmStateCycles(t *testing.T) {
	for s := 0; s < 4; s++ {
		for _, high := range []Control{0x00, 0x04, 0xA8, 0xFC} {
			c := high | Control(s)
			next := c.NextArmState()
			if got, want := next.ArmState(), uint8((s+1)%4); got != want {
				t.Errorf("state %d (high %#x): got %d, want %d", s, uint8(high), got, want)
			}
			if next&^armMask != high {
				t.Errorf("state %d: high bits changed from %#x to %#x", s, uint8(high), uint8(next&^armMask))
			}
		}
	}
}

func TestAlarmBits(t *testing.T) {
	tests := []struct {
		c      Control
		a1, a2 bool
	}{
		{0x00, false, false},
		{0x01, true, false},
		{0x02, false, true},
		{0x03, true, true},
		{0xFC, false, false},
	}
	for _, tt := range tests {
		if tt.c.Alarm1Armed() != tt.a1 || tt.c.Alarm2Armed() != tt.a2 {
			t.Errorf("%#x: got (%v, %v), want (%v, %v)", uint8(tt.c),
				tt.c.Alarm1Armed(), tt.c.Alarm2Armed(), tt.a1, tt.a2)
		}
	}
}

func TestSleepEnabled(t *testing.T) {
	m := Main{RestOnHour: 0x23, RestOnMinute: 0x00, WakeOnHour: 0x07, WakeOnMinute: 0x00}
	if !m.SleepEnabled() {
		t.Error("distinct rest/wake should enable sleep")
	}
	m.WakeOnHour = 0x23
	if m.SleepEnabled() {
		t.Error("identical rest/wake should disable sleep")
	}
	m.WakeOnMinute = bcd.Byte(0x01)
	if !m.SleepEnabled() {
		t.Error("minute difference should enable sleep")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	s := NewFileStore(path)

	c, err := s.Load()
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}
	if c != 0 {
		t.Errorf("missing file: got %#x, want 0", uint8(c))
	}

	if err := s.WriteControl(0xA6); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err = s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c != 0xA6 {
		t.Errorf("got %#x, want 0xa6", uint8(c))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "control = 166\n" {
		t.Errorf("unexpected file contents: %q", data)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	if err := os.WriteFile(path, []byte("control = [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestFakeStore(t *testing.T) {
	f := &FakeStore{}
	f.WriteControl(0x01)
	f.WriteControl(0x02)
	if len(f.Writes) != 2 || f.Writes[1] != 0x02 {
		t.Errorf("unexpected writes: %v", f.Writes)
	}
}
