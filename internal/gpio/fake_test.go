package gpio

import (
	"errors"
	"testing"
)

func TestFakeButtonReaderRead(t *testing.T) {
	samples := [][NumButtons]bool{
		{true, false, false, false, false},
		{false, true, false, false, false},
		{false, false, false, false, true},
	}

	f := NewFakeButtonReader(samples)

	for i, want := range samples {
		got, err := f.Read()
		if err != nil {
			t.Fatalf("sample %d: unexpected error: %v", i, err)
		}
		if got != want {
			t.Errorf("sample %d: expected %v, got %v", i, want, got)
		}
	}

	// Exhausted samples repeat the last one
	got, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != samples[2] {
		t.Errorf("repeat: expected %v, got %v", samples[2], got)
	}
}

func TestFakeButtonReaderNoSamples(t *testing.T) {
	f := NewFakeButtonReader(nil)

	_, err := f.Read()
	if err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeButtonReaderError(t *testing.T) {
	f := NewFakeButtonReader([][NumButtons]bool{{}})
	f.ReadError = errors.New("simulated error")

	_, err := f.Read()
	if err == nil || err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeButtonReaderCloseReset(t *testing.T) {
	samples := [][NumButtons]bool{
		{true},
		{false, true},
	}
	f := NewFakeButtonReader(samples)

	f.Read()
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Reset()
	if f.Closed {
		t.Error("Reset should clear Closed")
	}
	got, _ := f.Read()
	if got != samples[0] {
		t.Errorf("after reset: expected %v, got %v", samples[0], got)
	}
}

func TestFakeOutputs(t *testing.T) {
	f := &FakeOutputs{}
	bits := []bool{true, false, true}
	f.Shift(bits)
	bits[0] = false
	if !f.Shifts[0][0] {
		t.Error("Shift should record a copy of bits")
	}

	f.SetDim(true)
	f.SetBuzzer(true)
	if !f.Dim || !f.Buzzer {
		t.Errorf("expected dim and buzzer on, got dim=%v buzzer=%v", f.Dim, f.Buzzer)
	}

	f.Err = errors.New("line busy")
	if err := f.SetBuzzer(false); err == nil {
		t.Error("expected error")
	}
	if !f.Buzzer {
		t.Error("failed write should not change state")
	}
}

func TestDefaultPinsDistinct(t *testing.T) {
	seen := map[int]string{}
	add := func(name string, pin int) {
		if prev, ok := seen[pin]; ok {
			t.Errorf("pin %d used by %s and %s", pin, prev, name)
		}
		seen[pin] = name
	}
	for i, p := range DefaultPins.Buttons {
		add("button"+string(rune('1'+i)), p)
	}
	add("data", DefaultPins.Data)
	add("clock", DefaultPins.Clock)
	add("latch", DefaultPins.Latch)
	add("dim", DefaultPins.Dim)
	add("buzzer", DefaultPins.Buzzer)
}
