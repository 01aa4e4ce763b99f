// Package clocktest provides a manually advanced clock.
package clocktest

import (
	"sync"
	"time"

	"bloomlet/internal/core/clock"
)

// Fake is a clock.Clock whose time only moves on Advance. Callbacks run
// synchronously on the goroutine calling Advance, in due-time order.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	fake *Fake
	at   time.Time
	seq  int
	fn   func()
}

var _ clock.Clock = (*Fake)(nil)

// New creates a fake clock starting at the given instant.
func New(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// AfterFunc registers fn to run once the fake time reaches now+delay.
func (fake *Fake) AfterFunc(delay time.Duration, fn func()) clock.Timer {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	fake.seq++
	timer := &fakeTimer{fake: fake, at: fake.now.Add(delay), seq: fake.seq, fn: fn}
	fake.timers = append(fake.timers, timer)
	return timer
}

// Advance moves time forward, firing every timer that becomes due,
// including timers scheduled by callbacks during the advance.
func (fake *Fake) Advance(delta time.Duration) {
	fake.mu.Lock()
	target := fake.now.Add(delta)
	fake.mu.Unlock()

	for {
		fake.mu.Lock()
		next := fake.nextDueLocked(target)
		if next == nil {
			fake.now = target
			fake.mu.Unlock()
			return
		}
		fake.removeLocked(next)
		fake.now = next.at
		fake.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (fake *Fake) Pending() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.timers)
}

// NextDue returns the delay until the earliest pending timer.
func (fake *Fake) NextDue() (time.Duration, bool) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	var earliest *fakeTimer
	for _, timer := range fake.timers {
		if earliest == nil || timer.before(earliest) {
			earliest = timer
		}
	}
	if earliest == nil {
		return 0, false
	}
	return earliest.at.Sub(fake.now), true
}

func (fake *Fake) nextDueLocked(target time.Time) *fakeTimer {
	var earliest *fakeTimer
	for _, timer := range fake.timers {
		if timer.at.After(target) {
			continue
		}
		if earliest == nil || timer.before(earliest) {
			earliest = timer
		}
	}
	return earliest
}

func (fake *Fake) removeLocked(target *fakeTimer) bool {
	for index, timer := range fake.timers {
		if timer == target {
			fake.timers = append(fake.timers[:index], fake.timers[index+1:]...)
			return true
		}
	}
	return false
}

func (timer *fakeTimer) before(other *fakeTimer) bool {
	if timer.at.Equal(other.at) {
		return timer.seq < other.seq
	}
	return timer.at.Before(other.at)
}

func (timer *fakeTimer) Stop() bool {
	timer.fake.mu.Lock()
	defer timer.fake.mu.Unlock()
	return timer.fake.removeLocked(timer)
}
