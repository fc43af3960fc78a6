//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealButtonReader is not available on non-Linux platforms.
type RealButtonReader struct{}

// NewRealButtonReader returns an error on non-Linux platforms.
func NewRealButtonReader(pins [NumButtons]int) (*RealButtonReader, error) {
	return nil, errUnsupported
}

// Read is not implemented on non-Linux platforms.
func (r *RealButtonReader) Read() ([NumButtons]bool, error) {
	return [NumButtons]bool{}, errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (r *RealButtonReader) Close() error {
	return nil
}

// RealOutputs is not available on non-Linux platforms.
type RealOutputs struct{}

// NewRealOutputs returns an error on non-Linux platforms.
func NewRealOutputs(pins Pins) (*RealOutputs, error) {
	return nil, errUnsupported
}

// Shift is not implemented on non-Linux platforms.
func (o *RealOutputs) Shift(bits []bool) error { return errUnsupported }

// SetDim is not implemented on non-Linux platforms.
func (o *RealOutputs) SetDim(dim bool) error { return errUnsupported }

// SetBuzzer is not implemented on non-Linux platforms.
func (o *RealOutputs) SetBuzzer(on bool) error { return errUnsupported }

// Close is not implemented on non-Linux platforms.
func (o *RealOutputs) Close() error { return nil }
