package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/sweeney/nixie-clock/internal/alarm"
	"github.com/sweeney/nixie-clock/internal/clockmode"
	"github.com/sweeney/nixie-clock/internal/config"
	"github.com/sweeney/nixie-clock/internal/display"
	"github.com/sweeney/nixie-clock/internal/gpio"
	"github.com/sweeney/nixie-clock/internal/input"
	"github.com/sweeney/nixie-clock/internal/mode"
	"github.com/sweeney/nixie-clock/internal/mqtt"
	"github.com/sweeney/nixie-clock/internal/settings"
	"github.com/sweeney/nixie-clock/internal/status"
)

// delayFunc adapts a sleep function to clockmode.Delayer.
type delayFunc func(time.Duration)

func (f delayFunc) Delay(d time.Duration) { f(d) }

// daemonDeps are the hardware and network collaborators of the daemon.
type daemonDeps struct {
	Config     *config.Config
	Buttons    gpio.ButtonReader
	Driver     display.Driver
	Buzzer     alarm.Buzzer
	Store      settings.ControlWriter
	Control    settings.Control // persisted control byte at startup
	Publisher  mqtt.Publisher
	MQTTStatus mqtt.ConnectionStatus // may be nil
	Tracker    *status.Tracker       // may be nil
	Delay      func(time.Duration)
	Rand       *rand.Rand // may be nil
	Now        func() time.Time
}

// daemon runs one tick of the clock at a time.
type daemon struct {
	buttons    gpio.ButtonReader
	detector   *input.Detector
	checker    *alarm.Checker
	runner     *mode.Runner
	shared     *mode.Shared
	frames     *display.Recorder
	panel      *display.Panel
	buzzer     alarm.Buzzer
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	heartbeat  time.Duration
	now        func() time.Time

	pressed       [gpio.NumButtons]bool
	actions       []clockmode.Action
	lastAction    clockmode.Action
	lastHeartbeat time.Time
}

func newDaemon(deps daemonDeps) (*daemon, error) {
	cfg := deps.Config
	clockSettings, err := cfg.Clock.Main()
	if err != nil {
		return nil, fmt.Errorf("clock settings: %w", err)
	}
	alarms, err := cfg.Clock.AlarmTimes()
	if err != nil {
		return nil, fmt.Errorf("alarm settings: %w", err)
	}

	frames := display.NewRecorder(deps.Driver)
	panel := display.NewPanel(frames, deps.Delay, deps.Rand, display.PanelConfig{
		Steps:     cfg.Display.RollSteps,
		StepDelay: config.Ms(cfg.Display.RollStepMs),
		Hold:      config.Ms(cfg.Display.RollHoldMs),

		BrightnessHold: config.Ms(cfg.Display.BrightnessHoldMs),
	})
	runner := mode.NewRunner(mode.Clock)

	d := &daemon{
		buttons:    deps.Buttons,
		detector:   input.NewDetector(config.Ms(cfg.Input.DebounceMs), config.Ms(cfg.Input.LongPressMs)),
		checker:    alarm.NewChecker(alarms, cfg.Clock.RingSeconds, deps.Buzzer),
		runner:     runner,
		frames:     frames,
		panel:      panel,
		buzzer:     deps.Buzzer,
		publisher:  deps.Publisher,
		mqttStatus: deps.MQTTStatus,
		tracker:    deps.Tracker,
		heartbeat:  config.Ms(cfg.MQTT.HeartbeatMs),
		now:        deps.Now,
		shared: &mode.Shared{
			Settings: &settings.Settings{Main: clockSettings, Control: deps.Control},
		},
	}

	clock := clockmode.New(clockmode.Deps{
		Display:    frames,
		Switcher:   runner,
		Delay:      delayFunc(deps.Delay),
		Animator:   panel,
		Brightness: panel,
		Store:      deps.Store,
	}, clockmode.Config{
		DateDisplay:   config.Ms(cfg.Clock.DateDisplayMs),
		DayDisplay:    config.Ms(cfg.Clock.DayDisplayMs),
		ArmDisplay:    config.Ms(cfg.Clock.ArmDisplayMs),
		SilenceSettle: config.Ms(cfg.Clock.SilenceSettleMs),
	})
	clock.OnAction(func(a clockmode.Action) {
		d.actions = append(d.actions, a)
	})

	runner.Register(mode.Clock, clock)
	runner.Register(mode.Rest, &restMode{drv: frames, switcher: runner})
	runner.OnSwitch(func(t mode.Transition) {
		log.Printf("mode: %s -> %s", t.From, t.To)
	})
	return d, nil
}

// reported lists the actions published as clock events.
var reported = map[clockmode.Action]bool{
	clockmode.ActionRest:     true,
	clockmode.ActionClockSet: true,
	clockmode.ActionAlarmSet: true,
	clockmode.ActionArm:      true,
	clockmode.ActionSilence:  true,
}

// step refreshes the time snapshot, reads the buttons and runs the alarm
// checker and the current mode once.
func (d *daemon) step() {
	t := d.now()
	d.shared.Settings.Time.Set(t)

	if pressed, err := d.buttons.Read(); err != nil {
		// Keep the last sample so a read glitch is not seen as a release.
		log.Printf("gpio read error: %v", err)
	} else {
		d.pressed = pressed
	}
	d.shared.Buttons = d.detector.Process(input.Sample{Pressed: d.pressed, Time: t})

	if ev := d.checker.Check(d.shared, t); ev != alarm.EventNone {
		log.Printf("alarm: %s", ev)
		d.publish(t, string(ev))
	}

	d.actions = d.actions[:0]
	d.runner.Tick(d.shared)
	for _, a := range d.actions {
		d.lastAction = a
		if reported[a] {
			log.Printf("action: %s (control=%#04x)", a, uint8(d.shared.Settings.Control))
			d.publish(t, string(a))
		}
	}

	d.updateTracker()

	if d.heartbeat > 0 && t.Sub(d.lastHeartbeat) >= d.heartbeat {
		d.lastHeartbeat = t
		d.publishSystem(t, "HEARTBEAT", "", false)
	}
}

func (d *daemon) publish(t time.Time, typ string) {
	c := d.shared.Settings.Control
	event := mqtt.Event{
		Timestamp: t,
		Type:      typ,
		Mode:      d.runner.Current().String(),
		Alarm1:    c.Alarm1Armed(),
		Alarm2:    c.Alarm2Armed(),
	}
	if err := d.publisher.Publish(event); err != nil {
		log.Printf("publish error: %v", err)
	}
}

// publishSystem sends a lifecycle event carrying a full status snapshot
// when a tracker is available.
func (d *daemon) publishSystem(t time.Time, event, reason string, retained bool) {
	se := mqtt.SystemEvent{
		Timestamp: t,
		Event:     event,
		Reason:    reason,
		Retained:  retained,
	}
	if d.tracker != nil {
		if event == "HEARTBEAT" {
			if net := readNetworkInfo(); net != nil {
				d.tracker.SetNetwork(net)
			}
		}
		d.updateTracker()
		se.RawPayload = status.FormatStatusEvent(d.tracker.Snapshot(), event, reason)
	}
	if err := d.publisher.PublishSystem(se); err != nil {
		log.Printf("failed to publish %s event: %v", event, err)
	}
}

func (d *daemon) updateTracker() {
	if d.tracker == nil {
		return
	}
	d.tracker.Update(d.clockStatus())
	if d.mqttStatus != nil {
		d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
	}
}

func (d *daemon) clockStatus() status.Clock {
	s := d.shared.Settings
	return status.Clock{
		Mode:         d.runner.Current().String(),
		Frame:        d.frames.Last().String(),
		Time:         fmt.Sprintf("%s:%s:%s", s.Time.Hours, s.Time.Minutes, s.Time.Seconds),
		Alarm1:       s.Control.Alarm1Armed(),
		Alarm2:       s.Control.Alarm2Armed(),
		RingDuration: d.shared.RingDuration,
		Brightness:   d.panel.Brightness().String(),
		LastAction:   string(d.lastAction),
		Counts:       d.detector.CountsSnapshot(),
		Ready:        d.detector.IsBaselined(),
	}
}

// shutdown blanks the tubes and silences the buzzer.
func (d *daemon) shutdown() {
	if err := display.Show(d.frames, display.BlankFrame()); err != nil {
		log.Printf("display: blank: %v", err)
	}
	if err := d.buzzer.SetBuzzer(false); err != nil {
		log.Printf("alarm: buzzer off: %v", err)
	}
}
