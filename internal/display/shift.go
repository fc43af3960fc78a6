package display

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Outputs per tube in the shift chain: cathodes 0-9, left dot, right dot.
const (
	bitsPerTube = 12
	dotRight    = 11
)

// Shifter clocks a bit pattern into the cathode driver chain and latches it.
type Shifter interface {
	Shift(bits []bool) error
	SetDim(dim bool) error
}

// ShiftDriver drives the tubes through a chain of high-voltage shift registers.
// Commit publishes the staged frame; Run keeps the hardware refreshed so that
// blinking tubes follow the wall-clock half second.
type ShiftDriver struct {
	out Shifter
	now func() time.Time

	staged Frame

	// mu guards active and serializes writes to out.
	mu     sync.Mutex
	active Frame
}

// NewShiftDriver creates a driver writing to out.
func NewShiftDriver(out Shifter, now func() time.Time) *ShiftDriver {
	return &ShiftDriver{
		out:    out,
		now:    now,
		staged: BlankFrame(),
		active: BlankFrame(),
	}
}

// SetTube stages one tube.
func (d *ShiftDriver) SetTube(slot int, t Tube) {
	if slot < 1 || slot > NumTubes {
		return
	}
	d.staged[slot-1] = t
}

// Commit makes the staged frame active and writes it immediately.
func (d *ShiftDriver) Commit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = d.staged
	return d.refreshLocked()
}

// SetBrightness selects the dim supply for BrightnessLow.
func (d *ShiftDriver) SetBrightness(b Brightness) error {
	if err := d.out.SetDim(b == BrightnessLow); err != nil {
		return fmt.Errorf("set brightness: %w", err)
	}
	return nil
}

// Run refreshes the tubes every interval until ctx is done, then blanks them.
func (d *ShiftDriver) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.mu.Lock()
			err := d.out.Shift(make([]bool, NumTubes*bitsPerTube))
			d.mu.Unlock()
			if err != nil {
				log.Printf("display: blank on shutdown: %v", err)
			}
			return
		case <-ticker.C:
			d.mu.Lock()
			err := d.refreshLocked()
			d.mu.Unlock()
			if err != nil {
				log.Printf("display: refresh: %v", err)
			}
		}
	}
}

func (d *ShiftDriver) refreshLocked() error {
	sub := time.Duration(d.now().Nanosecond())
	if err := d.out.Shift(encode(d.active, sub)); err != nil {
		return fmt.Errorf("shift frame: %w", err)
	}
	return nil
}

// encode maps a frame to shift-chain bits. Tube 1 is shifted first.
// A blank blinking tube lights its right dot.
func encode(f Frame, sub time.Duration) []bool {
	bits := make([]bool, NumTubes*bitsPerTube)
	for i, t := range f {
		base := i * bitsPerTube
		if !Lit(t, sub) {
			continue
		}
		switch {
		case t.Digit <= 9:
			bits[base+int(t.Digit)] = true
		case t.BlinkOn || t.BlinkOff:
			bits[base+dotRight] = true
		}
	}
	return bits
}
