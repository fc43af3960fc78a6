// Command nixie-clock drives a Nixie tube desk clock: it renders the time on
// the tubes, handles the front-panel buttons and alarms, and reports to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sweeney/nixie-clock/internal/config"
	"github.com/sweeney/nixie-clock/internal/display"
	"github.com/sweeney/nixie-clock/internal/gpio"
	"github.com/sweeney/nixie-clock/internal/mqtt"
	"github.com/sweeney/nixie-clock/internal/settings"
	"github.com/sweeney/nixie-clock/internal/status"
	"github.com/sweeney/nixie-clock/internal/web"
)

func main() {
	configPath := flag.String("config", "/etc/nixie-clock/config.yaml", "Path to YAML config (missing file uses defaults)")
	broker := flag.String("broker", "", "MQTT broker address, overrides mqtt.broker")
	httpAddr := flag.String("http", "", "HTTP status address, overrides http.addr")
	printState := flag.Bool("print-state", false, "Print button and alarm state and exit")

	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if *broker != "" {
		cfg.MQTT.Broker = *broker
	}
	if *httpAddr != "" {
		cfg.HTTP.Addr = *httpAddr
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// loadConfig reads path, falling back to defaults when the file does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("config: %s not found, using defaults", path)
		return config.Parse([]byte("{}"))
	}
	return config.Load(path)
}

func run(cfg *config.Config, printState bool) error {
	store := settings.NewFileStore(cfg.StatePath)
	control, err := store.Load()
	if err != nil {
		log.Printf("state: %v, starting with alarms disarmed", err)
		control = 0
	}

	pins := cfg.GPIO.Pins()
	buttons, err := gpio.NewRealButtonReader(pins.Buttons)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	if printState {
		pressed, err := buttons.Read()
		if err != nil {
			return fmt.Errorf("read buttons: %w", err)
		}
		for i, p := range pressed {
			fmt.Printf("B%d: %s\n", i+1, pressState(p))
		}
		fmt.Printf("alarm1: %s, alarm2: %s\n", armString(control.Alarm1Armed()), armString(control.Alarm2Armed()))
		return nil
	}

	outputs, err := gpio.NewRealOutputs(pins)
	if err != nil {
		return fmt.Errorf("init outputs: %w", err)
	}
	defer outputs.Close()

	// Initialize MQTT
	var publisher mqtt.Publisher = mqtt.NopPublisher{}
	var mqttStatus mqtt.ConnectionStatus
	if cfg.MQTT.Broker != "" {
		p, err := mqtt.NewRealPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		publisher, mqttStatus = p, p
	}
	defer publisher.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      int64(cfg.Input.PollMs),
		DebounceMs:  int64(cfg.Input.DebounceMs),
		LongPressMs: int64(cfg.Input.LongPressMs),
		HeartbeatMs: int64(cfg.MQTT.HeartbeatMs),
		Broker:      cfg.MQTT.Broker,
		HTTPAddr:    cfg.HTTP.Addr,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Tube refresh runs until the loop returns, then blanks the chain.
	tubes := display.NewShiftDriver(outputs, time.Now)
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tubes.Run(ctx, config.Ms(cfg.Display.RefreshMs))
	}()
	defer wg.Wait()
	defer cancel()

	d, err := newDaemon(daemonDeps{
		Config:     cfg,
		Buttons:    buttons,
		Driver:     tubes,
		Buzzer:     outputs,
		Store:      store,
		Control:    control,
		Publisher:  publisher,
		MQTTStatus: mqttStatus,
		Tracker:    tracker,
		Delay:      time.Sleep,
		Now:        time.Now,
	})
	if err != nil {
		return err
	}

	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	log.Printf("started: poll=%dms debounce=%dms long_press=%dms broker=%q control=%#04x",
		cfg.Input.PollMs, cfg.Input.DebounceMs, cfg.Input.LongPressMs, cfg.MQTT.Broker, uint8(control))

	ticker := time.NewTicker(config.Ms(cfg.Input.PollMs))
	defer ticker.Stop()

	// A signal cuts any running roll short before the loop sees it.
	osSig := make(chan os.Signal, 1)
	signal.Notify(osSig, syscall.SIGINT, syscall.SIGTERM)
	sigCh := make(chan os.Signal, 1)
	go func() {
		s := <-osSig
		d.panel.Interrupt()
		sigCh <- s
	}()

	return runLoop(d, ticker.C, sigCh)
}

// runLoop publishes STARTUP, then steps the daemon on every tick until a
// signal arrives, when it publishes SHUTDOWN and blanks the tubes.
func runLoop(d *daemon, tick <-chan time.Time, sig <-chan os.Signal) error {
	start := d.now()
	d.lastHeartbeat = start
	d.publishSystem(start, "STARTUP", "", true)
	log.Printf("published startup event")

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			d.shutdown()
			d.publishSystem(d.now(), "SHUTDOWN", signalName, true)
			log.Printf("published shutdown event")
			return nil

		case <-tick:
			d.step()
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

func pressState(pressed bool) string {
	if pressed {
		return "DOWN"
	}
	return "UP"
}

func armString(armed bool) string {
	if armed {
		return "ARMED"
	}
	return "OFF"
}
