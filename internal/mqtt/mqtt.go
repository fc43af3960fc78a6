// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"
)

// Topic is the MQTT topic for clock events.
const Topic = "home/nixie-clock/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/nixie-clock/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a clock event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// Event is something the clock did that is worth reporting:
// a mode switch, an alarm arm change or a ring starting or stopping.
type Event struct {
	Timestamp time.Time
	Type      string // e.g. "ARM", "CLOCK_SET", "RING_START"
	Mode      string // mode current when the event happened
	Alarm1    bool
	Alarm2    bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT", "OFFLINE"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Clock ClockPayload `json:"clock"`
}

// ClockPayload contains the clock event details.
type ClockPayload struct {
	Timestamp string      `json:"timestamp"`
	Event     string      `json:"event"`
	Mode      string      `json:"mode"`
	Alarms    AlarmsArmed `json:"alarms"`
}

// AlarmsArmed reports which alarms are armed.
type AlarmsArmed struct {
	Alarm1 bool `json:"alarm1"`
	Alarm2 bool `json:"alarm2"`
}

// FormatPayload creates the JSON payload for a clock event.
func FormatPayload(event Event) ([]byte, error) {
	payload := Payload{
		Clock: ClockPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Type,
			Mode:      event.Mode,
			Alarms:    AlarmsArmed{Alarm1: event.Alarm1, Alarm2: event.Alarm2},
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
