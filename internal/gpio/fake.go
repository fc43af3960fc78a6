package gpio

import "errors"

// FakeButtonReader is a test double that returns scripted button states.
type FakeButtonReader struct {
	// Samples contains scripted button states to return.
	// Each call to Read() consumes the next sample.
	Samples [][NumButtons]bool

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeButtonReader creates a FakeButtonReader with the given samples.
func NewFakeButtonReader(samples [][NumButtons]bool) *FakeButtonReader {
	return &FakeButtonReader{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeButtonReader) Read() ([NumButtons]bool, error) {
	if f.ReadError != nil {
		return [NumButtons]bool{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return [NumButtons]bool{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close marks the reader as closed.
func (f *FakeButtonReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeButtonReader) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeOutputs records writes to the output lines.
type FakeOutputs struct {
	Shifts [][]bool
	Dim    bool
	Buzzer bool
	Closed bool
	Err    error
}

// Shift records a copy of bits.
func (f *FakeOutputs) Shift(bits []bool) error {
	if f.Err != nil {
		return f.Err
	}
	f.Shifts = append(f.Shifts, append([]bool(nil), bits...))
	return nil
}

// SetDim records the dim line.
func (f *FakeOutputs) SetDim(dim bool) error {
	if f.Err != nil {
		return f.Err
	}
	f.Dim = dim
	return nil
}

// SetBuzzer records the buzzer line.
func (f *FakeOutputs) SetBuzzer(on bool) error {
	if f.Err != nil {
		return f.Err
	}
	f.Buzzer = on
	return nil
}

// Close marks the outputs as closed.
func (f *FakeOutputs) Close() error {
	f.Closed = true
	return nil
}
