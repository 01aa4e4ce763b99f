package animation

import (
	"time"

	"bloomlet/internal/core/random"
)

// DefaultConfig returns the popup timing: 16ms fade ticks of 0.08 opacity,
// 45ms typing with [-20,40)ms jitter floored at 20ms, and a 5-7s hold
// (15s for test popups).
func DefaultConfig() Config {
	return Config{
		FadeTick: 16 * time.Millisecond,
		FadeStep: 0.08,
		TypeBase: 45 * time.Millisecond,
		TypeJitter: random.Range{
			Min: -20 * time.Millisecond,
			Max: 39 * time.Millisecond,
		},
		TypeMin: 20 * time.Millisecond,
		Hold: random.Range{
			Min: 5 * time.Second,
			Max: 7 * time.Second,
		},
		TestHold: 15 * time.Second,
	}
}
