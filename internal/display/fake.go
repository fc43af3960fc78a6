package display

// FakeDriver records staged tubes and commits for test assertions.
type FakeDriver struct {
	// Staged is the frame as currently staged.
	Staged Frame

	// Commits contains every committed frame, oldest first.
	Commits []Frame

	// Brightness is the last level set.
	Brightness Brightness

	// CommitError, if set, is returned by Commit (the frame is still recorded).
	CommitError error
}

// NewFakeDriver creates a FakeDriver with every tube dark.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{Staged: BlankFrame()}
}

// SetTube stages one tube.
func (f *FakeDriver) SetTube(slot int, t Tube) {
	if slot < 1 || slot > NumTubes {
		return
	}
	f.Staged[slot-1] = t
}

// Commit records the staged frame.
func (f *FakeDriver) Commit() error {
	f.Commits = append(f.Commits, f.Staged)
	return f.CommitError
}

// SetBrightness records b.
func (f *FakeDriver) SetBrightness(b Brightness) error {
	f.Brightness = b
	return nil
}

// Last returns the most recent commit and whether there was one.
func (f *FakeDriver) Last() (Frame, bool) {
	if len(f.Commits) == 0 {
		return Frame{}, false
	}
	return f.Commits[len(f.Commits)-1], true
}

// Reset clears recorded commits.
func (f *FakeDriver) Reset() {
	f.Staged = BlankFrame()
	f.Commits = nil
	f.CommitError = nil
}
