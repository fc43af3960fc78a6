package config

import (
	"errors"
	"fmt"

	"github.com/sweeney/nixie-clock/internal/bcd"
	"github.com/sweeney/nixie-clock/internal/gpio"
)

// Validate checks a normalized config.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	c := cfg.Clock
	if (c.RestOn == "") != (c.WakeOn == "") {
		return errors.New("clock.rest_on and clock.wake_on must be set together")
	}
	if _, _, err := bcd.ParseClock(c.RestOn); err != nil {
		return fmt.Errorf("clock.rest_on: %w", err)
	}
	if _, _, err := bcd.ParseClock(c.WakeOn); err != nil {
		return fmt.Errorf("clock.wake_on: %w", err)
	}
	if len(c.Alarms) > 2 {
		return fmt.Errorf("clock.alarms: at most 2 alarms, got %d", len(c.Alarms))
	}
	for i, a := range c.Alarms {
		if _, _, err := bcd.ParseClock(a); err != nil {
			return fmt.Errorf("clock.alarms[%d]: %w", i, err)
		}
	}
	if c.RingSeconds < 0 {
		return fmt.Errorf("clock.ring_seconds: must be >= 0")
	}

	for name, v := range map[string]int{
		"clock.date_display_ms":      c.DateDisplayMs,
		"clock.day_display_ms":       c.DayDisplayMs,
		"clock.arm_display_ms":       c.ArmDisplayMs,
		"clock.silence_settle_ms":    c.SilenceSettleMs,
		"display.refresh_ms":         cfg.Display.RefreshMs,
		"display.roll_steps":         cfg.Display.RollSteps,
		"display.roll_step_ms":       cfg.Display.RollStepMs,
		"display.roll_hold_ms":       cfg.Display.RollHoldMs,
		"display.brightness_hold_ms": cfg.Display.BrightnessHoldMs,
		"input.poll_ms":              cfg.Input.PollMs,
		"input.debounce_ms":          cfg.Input.DebounceMs,
		"input.long_press_ms":        cfg.Input.LongPressMs,
		"mqtt.heartbeat_ms":          cfg.MQTT.HeartbeatMs,
	} {
		if v < 0 {
			return fmt.Errorf("%s: must be >= 0", name)
		}
	}

	if cfg.Input.LongPressMs <= cfg.Input.DebounceMs {
		return fmt.Errorf("input.long_press_ms (%d) must exceed input.debounce_ms (%d)",
			cfg.Input.LongPressMs, cfg.Input.DebounceMs)
	}

	return validatePins(cfg.GPIO)
}

func validatePins(g GPIOConfig) error {
	if len(g.Buttons) != gpio.NumButtons {
		return fmt.Errorf("gpio.buttons: want %d pins, got %d", gpio.NumButtons, len(g.Buttons))
	}

	seen := map[int]string{}
	check := func(name string, pin int) error {
		if pin < 0 {
			return fmt.Errorf("gpio.%s: negative pin %d", name, pin)
		}
		if prev, ok := seen[pin]; ok {
			return fmt.Errorf("gpio.%s: pin %d already used by %s", name, pin, prev)
		}
		seen[pin] = name
		return nil
	}

	for i, p := range g.Buttons {
		if err := check(fmt.Sprintf("buttons[%d]", i), p); err != nil {
			return err
		}
	}
	for _, l := range []struct {
		name string
		pin  int
	}{
		{"data", g.Data},
		{"clock", g.Clock},
		{"latch", g.Latch},
		{"dim", g.Dim},
		{"buzzer", g.Buzzer},
	} {
		if err := check(l.name, l.pin); err != nil {
			return err
		}
	}
	return nil
}
