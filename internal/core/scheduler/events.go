package scheduler

import (
	"time"

	"bloomlet/internal/core/model"
)

// State represents the scheduler mode.
type State string

const (
	StateIdle  State = "idle"
	StateArmed State = "armed"
)

// EventType defines the type of scheduler event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventFired       EventType = "fired"
)

// Event is a scheduler update for observers such as the tray status line.
type Event struct {
	Type       EventType
	State      State
	Active     bool
	Interval   model.Interval
	Delay      time.Duration
	NextFireAt time.Time
	At         time.Time
}
