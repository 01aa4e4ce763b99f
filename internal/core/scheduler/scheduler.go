// Package scheduler decides when the next automatic popup fires.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"bloomlet/internal/core/clock"
	"bloomlet/internal/core/model"
	"bloomlet/internal/core/random"
)

// DefaultDelay is used for the 60m interval and any unrecognized interval.
const DefaultDelay = 60 * time.Minute

// RandomDelay bounds the delay of the random interval.
var RandomDelay = random.Range{Min: 60 * time.Minute, Max: 120 * time.Minute}

// Config contains the collaborators of a Scheduler.
type Config struct {
	Clock  clock.Clock
	Random random.Source
	Logger *slog.Logger
}

// Scheduler is a single self re-arming timer. It is Idle while paused and
// Armed while a fire is pending.
type Scheduler struct {
	mu         sync.Mutex
	options    Config
	interval   model.Interval
	active     bool
	timer      clock.Timer
	generation uint64
	delay      time.Duration
	nextFireAt time.Time
	onFire     func()
	events     []chan Event
	closed     bool
}

// New creates an active, unarmed Scheduler. Call Start to arm it.
func New(interval model.Interval, options Config) *Scheduler {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Random == nil {
		options.Random = random.New()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Scheduler{
		options:  options,
		interval: interval,
		active:   true,
	}
}

// DelayFor maps an interval to the wait before the next fire.
func DelayFor(interval model.Interval, rng random.Source) time.Duration {
	switch interval {
	case model.Interval30m:
		return 30 * time.Minute
	case model.Interval60m:
		return 60 * time.Minute
	case model.Interval120m:
		return 120 * time.Minute
	case model.IntervalRandom:
		return RandomDelay.Pick(rng)
	default:
		return DefaultDelay
	}
}

// SetOnFire sets the handler invoked each time the timer fires.
func (scheduler *Scheduler) SetOnFire(handler func()) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.onFire = handler
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than block the scheduler.
func (scheduler *Scheduler) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.closed {
		close(ch)
		return ch
	}
	scheduler.events = append(scheduler.events, ch)
	return ch
}

// Start cancels any pending fire and arms a new one for the current interval.
// It is a no-op while paused.
func (scheduler *Scheduler) Start() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.startLocked()
}

// Stop cancels the pending fire without touching the active flag.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.closed {
		return
	}
	scheduler.stopLocked()
	scheduler.emitStateLocked()
}

// Pause clears the active flag and stops the timer.
func (scheduler *Scheduler) Pause() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.closed {
		return
	}
	scheduler.active = false
	scheduler.stopLocked()
	scheduler.emitStateLocked()
}

// Resume sets the active flag and arms the timer.
func (scheduler *Scheduler) Resume() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.active = true
	scheduler.startLocked()
}

// SetInterval applies a new interval; it takes effect from the next fire.
func (scheduler *Scheduler) SetInterval(interval model.Interval) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.interval = interval
	if scheduler.closed {
		return
	}
	scheduler.stopLocked()
	scheduler.startLocked()
}

// Active reports whether automatic popups are enabled.
func (scheduler *Scheduler) Active() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.active
}

// State reports whether a fire is pending.
func (scheduler *Scheduler) State() State {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.stateLocked()
}

// NextFireAt returns when the pending fire is due.
func (scheduler *Scheduler) NextFireAt() (time.Time, bool) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.timer == nil {
		return time.Time{}, false
	}
	return scheduler.nextFireAt, true
}

// Close stops the timer for good and closes every observer channel.
func (scheduler *Scheduler) Close() {
	scheduler.mu.Lock()
	if scheduler.closed {
		scheduler.mu.Unlock()
		return
	}
	scheduler.stopLocked()
	scheduler.closed = true
	events := scheduler.events
	scheduler.events = nil
	scheduler.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (scheduler *Scheduler) startLocked() {
	if scheduler.closed {
		return
	}
	scheduler.stopLocked()
	if !scheduler.active {
		scheduler.emitStateLocked()
		return
	}

	delay := DelayFor(scheduler.interval, scheduler.options.Random)
	scheduler.generation++
	generation := scheduler.generation
	scheduler.delay = delay
	scheduler.nextFireAt = scheduler.options.Clock.Now().Add(delay)
	scheduler.timer = scheduler.options.Clock.AfterFunc(delay, func() {
		scheduler.fire(generation)
	})
	scheduler.options.Logger.Debug("scheduler armed", "interval", string(scheduler.interval), "delay", delay)
	scheduler.emitStateLocked()
}

func (scheduler *Scheduler) stopLocked() {
	if scheduler.timer != nil {
		scheduler.timer.Stop()
		scheduler.timer = nil
	}
	scheduler.generation++
	scheduler.delay = 0
	scheduler.nextFireAt = time.Time{}
}

func (scheduler *Scheduler) fire(generation uint64) {
	scheduler.mu.Lock()
	if scheduler.closed || generation != scheduler.generation || scheduler.timer == nil {
		scheduler.mu.Unlock()
		return
	}
	scheduler.timer = nil
	handler := scheduler.onFire
	scheduler.emitLocked(Event{
		Type:     EventFired,
		State:    StateIdle,
		Active:   scheduler.active,
		Interval: scheduler.interval,
		At:       scheduler.options.Clock.Now(),
	})
	scheduler.mu.Unlock()

	if handler != nil {
		handler()
	}
	scheduler.Start()
}

func (scheduler *Scheduler) stateLocked() State {
	if scheduler.timer != nil {
		return StateArmed
	}
	return StateIdle
}

func (scheduler *Scheduler) emitStateLocked() {
	scheduler.emitLocked(Event{
		Type:       EventStateChange,
		State:      scheduler.stateLocked(),
		Active:     scheduler.active,
		Interval:   scheduler.interval,
		Delay:      scheduler.delay,
		NextFireAt: scheduler.nextFireAt,
		At:         scheduler.options.Clock.Now(),
	})
}

func (scheduler *Scheduler) emitLocked(event Event) {
	for _, ch := range scheduler.events {
		select {
		case ch <- event:
		default:
		}
	}
}
