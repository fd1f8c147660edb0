// Package events provides the in-process event bus used for cross-module
// notifications inside the client.
package events

import (
	"time"
)

// EventType identifies the kind of event.
type EventType string

const (
	// Capability lifecycle
	EventCapabilitiesResolved  EventType = "capabilities.resolved"
	EventCapabilitiesRefreshed EventType = "capabilities.refreshed"

	// Playback
	EventPlaybackDecided EventType = "playback.decided"

	// Module lifecycle
	EventModuleInitialized EventType = "module.initialized"
	EventModuleError       EventType = "module.error"

	// EventTypeAll subscribes a handler to every event.
	EventTypeAll EventType = "*"
)

// Event is a single bus message.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// EventHandler receives published events.
type EventHandler func(Event)
