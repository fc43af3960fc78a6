package config

import "github.com/sweeney/nixie-clock/internal/gpio"

// ApplyDefaults fills zero values.
func ApplyDefaults(cfg *Config) {
	c := &cfg.Clock
	if c.RestOn == "" && c.WakeOn == "" {
		// rest == wake: resting disabled
		c.RestOn, c.WakeOn = "00:00", "00:00"
	}
	if c.RingSeconds == 0 {
		c.RingSeconds = 60
	}
	def(&c.DateDisplayMs, 2000)
	def(&c.DayDisplayMs, 1000)
	def(&c.ArmDisplayMs, 1000)
	def(&c.SilenceSettleMs, 200)

	d := &cfg.Display
	def(&d.RefreshMs, 10)
	def(&d.RollSteps, 24)
	def(&d.RollStepMs, 40)
	def(&d.RollHoldMs, 3000)
	def(&d.BrightnessHoldMs, 1000)

	in := &cfg.Input
	def(&in.PollMs, 20)
	def(&in.DebounceMs, 40)
	def(&in.LongPressMs, 1500)

	g := &cfg.GPIO
	if len(g.Buttons) == 0 {
		g.Buttons = append([]int(nil), gpio.DefaultPins.Buttons[:]...)
	}
	def(&g.Data, gpio.DefaultPins.Data)
	def(&g.Clock, gpio.DefaultPins.Clock)
	def(&g.Latch, gpio.DefaultPins.Latch)
	def(&g.Dim, gpio.DefaultPins.Dim)
	def(&g.Buzzer, gpio.DefaultPins.Buzzer)

	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = "nixie-clock"
	}
	def(&cfg.MQTT.HeartbeatMs, 15*60*1000)

	if cfg.StatePath == "" {
		cfg.StatePath = "/var/lib/nixie-clock/state.toml"
	}
}

func def(v *int, d int) {
	if *v == 0 {
		*v = d
	}
}
