package display

import "sync"

// Recorder wraps a Driver and remembers the last committed frame.
// Last is safe to call from other goroutines.
type Recorder struct {
	Driver

	staged Frame

	mu   sync.Mutex
	last Frame
}

// NewRecorder wraps d.
func NewRecorder(d Driver) *Recorder {
	return &Recorder{Driver: d, staged: BlankFrame(), last: BlankFrame()}
}

// SetTube stages the tube on the wrapped driver and records it.
func (r *Recorder) SetTube(slot int, t Tube) {
	if slot >= 1 && slot <= NumTubes {
		r.staged[slot-1] = t
	}
	r.Driver.SetTube(slot, t)
}

// Commit commits the wrapped driver and records the frame.
func (r *Recorder) Commit() error {
	r.mu.Lock()
	r.last = r.staged
	r.mu.Unlock()
	return r.Driver.Commit()
}

// Last returns the most recently committed frame.
func (r *Recorder) Last() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
