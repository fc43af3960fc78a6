package mode

import "log"

// Handler runs one tick of a mode.
type Handler interface {
	Run(sh *Shared)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(sh *Shared)

// Run calls f.
func (f HandlerFunc) Run(sh *Shared) { f(sh) }

// Transition describes a requested mode switch.
type Transition struct {
	From      Mode
	To        Mode
	Immediate bool
}

// Runner dispatches ticks to the current mode's handler.
type Runner struct {
	handlers map[Mode]Handler
	current  Mode
	pending  *Transition
	onSwitch func(Transition)
}

// NewRunner creates a runner starting in initial. The initial mode is
// treated as just entered on the first tick.
func NewRunner(initial Mode) *Runner {
	return &Runner{
		handlers: make(map[Mode]Handler),
		current:  initial,
		pending:  &Transition{From: initial, To: initial, Immediate: true},
	}
}

// Register sets the handler for m.
func (r *Runner) Register(m Mode, h Handler) {
	r.handlers[m] = h
}

// OnSwitch sets a callback invoked whenever a switch takes effect.
func (r *Runner) OnSwitch(fn func(Transition)) {
	r.onSwitch = fn
}

// Current returns the current mode.
func (r *Runner) Current() Mode {
	return r.current
}

// SwitchMode requests a transition to target. A non-immediate switch takes
// effect on the next tick; an immediate one runs target within the current tick.
// The caller must return without further rendering.
func (r *Runner) SwitchMode(target Mode, immediate bool) {
	r.pending = &Transition{From: r.current, To: target, Immediate: immediate}
}

// maxImmediate bounds immediate re-dispatch within a single tick.
const maxImmediate = 4

// Tick applies any pending switch and runs the current mode once.
func (r *Runner) Tick(sh *Shared) {
	for i := 0; ; i++ {
		r.apply(sh)

		h, ok := r.handlers[r.current]
		if !ok {
			log.Printf("mode: no handler for %s, returning to %s", r.current, Clock)
			r.SwitchMode(Clock, false)
			return
		}
		h.Run(sh)

		if r.pending == nil || !r.pending.Immediate || i+1 >= maxImmediate {
			return
		}
	}
}

func (r *Runner) apply(sh *Shared) {
	if r.pending == nil {
		return
	}
	t := *r.pending
	r.pending = nil
	r.current = t.To
	if t.To >= 0 && t.To < numModes {
		sh.JustEntered[t.To] = true
	}
	if t.From != t.To && r.onSwitch != nil {
		r.onSwitch(t)
	}
}
