// Package config loads the clock daemon configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/nixie-clock/internal/alarm"
	"github.com/sweeney/nixie-clock/internal/bcd"
	"github.com/sweeney/nixie-clock/internal/gpio"
	"github.com/sweeney/nixie-clock/internal/settings"
)

type Config struct {
	Clock     ClockConfig   `yaml:"clock"`
	Display   DisplayConfig `yaml:"display"`
	Input     InputConfig   `yaml:"input"`
	GPIO      GPIOConfig    `yaml:"gpio"`
	MQTT      MQTTConfig    `yaml:"mqtt"`
	HTTP      HTTPConfig    `yaml:"http"`
	StatePath string        `yaml:"state_path"`
}

// ---- CLOCK ----

type ClockConfig struct {
	TimeFormat12h  bool     `yaml:"time_format_12h"`
	DateFormatDDMM bool     `yaml:"date_format_dd_mm"`
	RestOn         string   `yaml:"rest_on"` // HH:MM; equal to wake_on disables rest
	WakeOn         string   `yaml:"wake_on"`
	Alarms         []string `yaml:"alarms"` // up to two HH:MM values
	RingSeconds    int      `yaml:"ring_seconds"`

	DateDisplayMs   int `yaml:"date_display_ms"`
	DayDisplayMs    int `yaml:"day_display_ms"`
	ArmDisplayMs    int `yaml:"arm_display_ms"`
	SilenceSettleMs int `yaml:"silence_settle_ms"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	RefreshMs  int `yaml:"refresh_ms"`
	RollSteps  int `yaml:"roll_steps"`
	RollStepMs int `yaml:"roll_step_ms"`
	RollHoldMs int `yaml:"roll_hold_ms"`

	BrightnessHoldMs int `yaml:"brightness_hold_ms"`
}

// ---- INPUT ----

type InputConfig struct {
	PollMs      int `yaml:"poll_ms"`
	DebounceMs  int `yaml:"debounce_ms"`
	LongPressMs int `yaml:"long_press_ms"`
}

// ---- GPIO ----

// GPIOConfig holds BCM line offsets; 0 selects the board default.
type GPIOConfig struct {
	Buttons []int `yaml:"buttons"`
	Data    int   `yaml:"data"`
	Clock   int   `yaml:"clock"`
	Latch   int   `yaml:"latch"`
	Dim     int   `yaml:"dim"`
	Buzzer  int   `yaml:"buzzer"`
}

// ---- MQTT / HTTP ----

type MQTTConfig struct {
	Broker      string `yaml:"broker"` // empty disables publishing
	ClientID    string `yaml:"client_id"`
	HeartbeatMs int    `yaml:"heartbeat_ms"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"` // empty disables the status server
}

// Load reads, decodes and normalizes the file at path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML and applies defaults. An empty document is the
// all-defaults config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Main converts the clock section to settings bits. Call after Validate.
func (c ClockConfig) Main() (settings.Main, error) {
	m := settings.Main{
		TimeFormat12h:  c.TimeFormat12h,
		DateFormatDDMM: c.DateFormatDDMM,
	}
	var err error
	if m.RestOnHour, m.RestOnMinute, err = bcd.ParseClock(c.RestOn); err != nil {
		return m, fmt.Errorf("rest_on: %w", err)
	}
	if m.WakeOnHour, m.WakeOnMinute, err = bcd.ParseClock(c.WakeOn); err != nil {
		return m, fmt.Errorf("wake_on: %w", err)
	}
	return m, nil
}

// AlarmTimes returns alarm 1 and alarm 2. An alarm missing from the list is
// left unset and never rings.
func (c ClockConfig) AlarmTimes() ([2]alarm.Time, error) {
	var out [2]alarm.Time
	for i, s := range c.Alarms {
		if i >= len(out) {
			break
		}
		h, m, err := bcd.ParseClock(s)
		if err != nil {
			return out, fmt.Errorf("alarms[%d]: %w", i, err)
		}
		out[i] = alarm.Time{Hour: h, Minute: m, Set: true}
	}
	return out, nil
}

// Pins returns the GPIO line offsets.
func (g GPIOConfig) Pins() gpio.Pins {
	p := gpio.Pins{
		Data:   g.Data,
		Clock:  g.Clock,
		Latch:  g.Latch,
		Dim:    g.Dim,
		Buzzer: g.Buzzer,
	}
	copy(p.Buttons[:], g.Buttons)
	return p
}

// Ms converts a millisecond setting to a duration.
func Ms(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
