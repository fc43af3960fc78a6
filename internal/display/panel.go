package display

import (
	"log"
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// PanelConfig tunes the roll animation.
type PanelConfig struct {
	Steps     int           // scramble frames per roll
	StepDelay time.Duration // time each scramble frame is shown
	Hold      time.Duration // hold after a random world line when delayed

	BrightnessHold time.Duration // time the brightness indicator is shown
}

// DefaultPanelConfig is used for zero fields.
var DefaultPanelConfig = PanelConfig{
	Steps:     24,
	StepDelay: 40 * time.Millisecond,
	Hold:      3 * time.Second,

	BrightnessHold: time.Second,
}

// Panel adds brightness control and the world-line roll animation on top of a Driver.
type Panel struct {
	drv   Driver
	delay func(time.Duration)
	rng   *rand.Rand
	cfg   PanelConfig

	brightness  Brightness
	interrupted atomic.Bool
}

// NewPanel creates a Panel. delay blocks for the given duration; rng may be nil.
func NewPanel(drv Driver, delay func(time.Duration), rng *rand.Rand, cfg PanelConfig) *Panel {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.Steps <= 0 {
		cfg.Steps = DefaultPanelConfig.Steps
	}
	if cfg.StepDelay <= 0 {
		cfg.StepDelay = DefaultPanelConfig.StepDelay
	}
	if cfg.Hold <= 0 {
		cfg.Hold = DefaultPanelConfig.Hold
	}
	if cfg.BrightnessHold <= 0 {
		cfg.BrightnessHold = DefaultPanelConfig.BrightnessHold
	}
	return &Panel{drv: drv, delay: delay, rng: rng, cfg: cfg}
}

// Brightness returns the current drive level.
func (p *Panel) Brightness() Brightness { return p.brightness }

// ToggleBrightness flips the drive level.
func (p *Panel) ToggleBrightness() {
	p.brightness = p.brightness.Toggle()
	if err := p.drv.SetBrightness(p.brightness); err != nil {
		log.Printf("display: %v", err)
	}
}

// BrightnessFrame lights every cathode 8 so the level can be judged.
func BrightnessFrame() Frame {
	var f Frame
	for i := range f {
		f[i] = Steady(8)
	}
	return f
}

// ShowBrightness shows the brightness indicator and holds it, so a button
// held through the hold toggles once per hold rather than once per tick.
func (p *Panel) ShowBrightness() {
	p.show(BrightnessFrame())
	p.delay(p.cfg.BrightnessHold)
}

// Interrupt cuts the running roll short; the target frame is shown at once.
// An interrupt that arrives between rolls cuts the next roll instead.
// Safe to call from another goroutine.
func (p *Panel) Interrupt() {
	p.interrupted.Store(true)
}

// RollWorldLine scrambles the tubes before settling on target. With cascade
// the tubes settle one at a time from the left, otherwise all together.
// Blank target tubes stay dark throughout.
func (p *Panel) RollWorldLine(cascade bool, target Frame) {
	p.roll(cascade, target)
}

// roll plays the animation and reports whether it was interrupted.
// The interrupt is consumed once the roll ends.
func (p *Panel) roll(cascade bool, target Frame) bool {
	for step := 0; step < p.cfg.Steps; step++ {
		if p.interrupted.Load() {
			break
		}
		var f Frame
		for i, t := range target {
			if t.Digit > 9 || (cascade && step >= settleStep(i, p.cfg.Steps)) {
				f[i] = t
				continue
			}
			f[i] = Steady(Digit(p.rng.IntN(10)))
		}
		p.show(f)
		p.delay(p.cfg.StepDelay)
	}
	p.show(target)
	return p.interrupted.Swap(false)
}

// RollRandomWorldLineWithDelay rolls to a random world line such as "1 048596"
// and, with delay, holds it afterwards unless the roll was interrupted.
func (p *Panel) RollRandomWorldLineWithDelay(delay bool) {
	digits := [NumTubes]Digit{Digit(p.rng.IntN(2)), Blank}
	for i := 2; i < NumTubes; i++ {
		digits[i] = Digit(p.rng.IntN(10))
	}
	if p.roll(true, FrameOf(digits)) {
		return
	}
	if delay {
		p.delay(p.cfg.Hold)
	}
}

// settleStep is the scramble step at which tube i (0-based) stops in a cascade.
func settleStep(i, steps int) int {
	return (i + 1) * steps / NumTubes
}

func (p *Panel) show(f Frame) {
	if err := Show(p.drv, f); err != nil {
		log.Printf("display: commit: %v", err)
	}
}
