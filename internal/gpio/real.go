//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// chipName is the Raspberry Pi header GPIO controller.
const chipName = "gpiochip0"

// RealButtonReader reads buttons from actual hardware using the Linux GPIO character device.
type RealButtonReader struct {
	chip  *gpiocdev.Chip
	lines *gpiocdev.Lines
}

// NewRealButtonReader requests the button lines as inputs with pull-ups.
func NewRealButtonReader(pins [NumButtons]int) (*RealButtonReader, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	lines, err := chip.RequestLines(pins[:], gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button pins %v: %w", pins, err)
	}

	return &RealButtonReader{chip: chip, lines: lines}, nil
}

// Read returns the pressed state of each button.
// Inverts raw GPIO: raw 0 (pulled to ground by the switch) = pressed.
func (r *RealButtonReader) Read() ([NumButtons]bool, error) {
	var pressed [NumButtons]bool
	raw := make([]int, NumButtons)
	if err := r.lines.Values(raw); err != nil {
		return pressed, fmt.Errorf("read button pins: %w", err)
	}
	for i, v := range raw {
		pressed[i] = v == 0
	}
	return pressed, nil
}

// Close releases GPIO resources.
func (r *RealButtonReader) Close() error {
	var errs []error
	if r.lines != nil {
		if err := r.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pins: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealOutputs drives the shift register chain, the dim line and the buzzer.
type RealOutputs struct {
	chip   *gpiocdev.Chip
	data   *gpiocdev.Line
	clock  *gpiocdev.Line
	latch  *gpiocdev.Line
	dim    *gpiocdev.Line
	buzzer *gpiocdev.Line
}

// NewRealOutputs requests the output lines, all driven low.
func NewRealOutputs(pins Pins) (*RealOutputs, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	o := &RealOutputs{chip: chip}
	req := []struct {
		name string
		pin  int
		line **gpiocdev.Line
	}{
		{"data", pins.Data, &o.data},
		{"clock", pins.Clock, &o.clock},
		{"latch", pins.Latch, &o.latch},
		{"dim", pins.Dim, &o.dim},
		{"buzzer", pins.Buzzer, &o.buzzer},
	}
	for _, r := range req {
		l, err := chip.RequestLine(r.pin, gpiocdev.AsOutput(0))
		if err != nil {
			o.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", r.name, r.pin, err)
		}
		*r.line = l
	}
	return o, nil
}

// Shift clocks bits into the chain, first bit first, then latches.
func (o *RealOutputs) Shift(bits []bool) error {
	for i, b := range bits {
		v := 0
		if b {
			v = 1
		}
		if err := o.data.SetValue(v); err != nil {
			return fmt.Errorf("set data bit %d: %w", i, err)
		}
		if err := pulse(o.clock); err != nil {
			return fmt.Errorf("clock bit %d: %w", i, err)
		}
	}
	if err := pulse(o.latch); err != nil {
		return fmt.Errorf("latch: %w", err)
	}
	return nil
}

// SetDim drives the dim line.
func (o *RealOutputs) SetDim(dim bool) error {
	return setBool(o.dim, dim)
}

// SetBuzzer drives the buzzer line.
func (o *RealOutputs) SetBuzzer(on bool) error {
	return setBool(o.buzzer, on)
}

// Close drives every line low and releases it.
func (o *RealOutputs) Close() error {
	var errs []error
	for _, l := range []*gpiocdev.Line{o.data, o.clock, o.latch, o.dim, o.buzzer} {
		if l == nil {
			continue
		}
		if err := l.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("reset line %d: %w", l.Offset(), err))
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line %d: %w", l.Offset(), err))
		}
	}
	if o.chip != nil {
		if err := o.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func pulse(l *gpiocdev.Line) error {
	if err := l.SetValue(1); err != nil {
		return err
	}
	return l.SetValue(0)
}

func setBool(l *gpiocdev.Line, on bool) error {
	v := 0
	if on {
		v = 1
	}
	return l.SetValue(v)
}
