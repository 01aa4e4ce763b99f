// Package random provides the injectable randomness used for timing jitter,
// random intervals and message selection.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source draws uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a time-seeded Source that is safe for concurrent use.
func New() Source {
	return &lockedSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (source *lockedSource) Intn(n int) int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.rng.Intn(n)
}

// IntBetween returns a uniform integer in [low, high] inclusive.
func IntBetween(source Source, low, high int) int {
	if high <= low {
		return low
	}
	return low + source.Intn(high-low+1)
}

// Range is an inclusive duration range sampled at millisecond granularity.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Pick returns a uniform duration within the range.
func (value Range) Pick(source Source) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	low := int(value.Min / time.Millisecond)
	high := int(value.Max / time.Millisecond)
	return time.Duration(IntBetween(source, low, high)) * time.Millisecond
}

// Scripted replays a fixed sequence of draws, cycling when exhausted.
// Each draw is clamped into [0, n).
type Scripted struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewScripted creates a Scripted source. With no values every draw is 0.
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: values}
}

func (scripted *Scripted) Intn(n int) int {
	scripted.mu.Lock()
	defer scripted.mu.Unlock()
	if len(scripted.values) == 0 || n <= 0 {
		return 0
	}
	value := scripted.values[scripted.next%len(scripted.values)]
	scripted.next++
	if value < 0 {
		return 0
	}
	if value >= n {
		return n - 1
	}
	return value
}
