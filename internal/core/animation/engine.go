// Package animation runs the timed phases of one popup session.
package animation

import (
	"math"
	"strings"
	"sync"
	"time"

	"bloomlet/internal/core/clock"
	"bloomlet/internal/core/random"

	"github.com/rivo/uniseg"
)

// Phase is the stage of a popup session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFadeIn
	PhaseReveal
	PhaseHold
	PhaseFadeOut
)

func (phase Phase) String() string {
	switch phase {
	case PhaseIdle:
		return "idle"
	case PhaseFadeIn:
		return "fade_in"
	case PhaseReveal:
		return "reveal"
	case PhaseHold:
		return "hold"
	case PhaseFadeOut:
		return "fade_out"
	default:
		return "unknown"
	}
}

// Config contains session timing values.
type Config struct {
	FadeTick time.Duration
	FadeStep float64

	TypeBase   time.Duration
	TypeJitter random.Range
	TypeMin    time.Duration

	Hold     random.Range
	TestHold time.Duration
}

// Renderer receives the visual effects of a session.
type Renderer interface {
	SetOpacity(opacity float64)
	AppendTypedChunk(text string, reset bool)
	Hide()
}

// Snapshot describes the live session.
type Snapshot struct {
	ID       uint64
	Phase    Phase
	Revealed int
	Total    int
	Opacity  float64
	Hold     time.Duration
}

// Engine drives at most one session at a time. Starting a session cancels
// the timers of the previous one.
type Engine struct {
	mu       sync.Mutex
	config   Config
	clock    clock.Clock
	rng      random.Source
	renderer Renderer
	lastID   uint64
	session  *session
	timer    clock.Timer
}

type session struct {
	id        uint64
	test      bool
	clusters  []string
	shown     strings.Builder
	revealed  int
	fadeTicks int
	opacity   float64
	phase     Phase
	hold      time.Duration
}

// New creates an animation engine.
func New(config Config, clk clock.Clock, rng random.Source, renderer Renderer) *Engine {
	if config.FadeStep <= 0 {
		config.FadeStep = DefaultConfig().FadeStep
	}
	if clk == nil {
		clk = clock.Real()
	}
	if rng == nil {
		rng = random.New()
	}
	return &Engine{
		config:   config,
		clock:    clk,
		rng:      rng,
		renderer: renderer,
	}
}

// Start begins a new session for text and returns its id.
func (engine *Engine) Start(text string, test bool) uint64 {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.cancelLocked()
	engine.lastID++
	current := &session{
		id:       engine.lastID,
		test:     test,
		clusters: splitGraphemes(text),
		phase:    PhaseFadeIn,
	}
	engine.session = current
	engine.renderer.SetOpacity(0)
	engine.scheduleLocked(current.id, engine.config.FadeTick, engine.fadeInTickLocked)
	return current.id
}

// Stop cancels the live session without hiding the surface. It reports
// whether a session was live.
func (engine *Engine) Stop() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancelLocked()
}

// Snapshot returns the state of the live session; ID is zero when idle.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	current := engine.session
	if current == nil {
		return Snapshot{Phase: PhaseIdle}
	}
	return Snapshot{
		ID:       current.id,
		Phase:    current.phase,
		Revealed: current.revealed,
		Total:    len(current.clusters),
		Opacity:  current.opacity,
		Hold:     current.hold,
	}
}

// TypeDelay draws the wait before the next revealed character.
func TypeDelay(config Config, rng random.Source) time.Duration {
	delay := config.TypeBase + config.TypeJitter.Pick(rng)
	if delay < config.TypeMin {
		return config.TypeMin
	}
	return delay
}

// HoldDuration draws how long a fully revealed message stays visible.
func HoldDuration(config Config, rng random.Source, test bool) time.Duration {
	if test {
		return config.TestHold
	}
	return config.Hold.Pick(rng)
}

// FadeTicks is the number of ticks a full fade takes.
func FadeTicks(config Config) int {
	return int(math.Ceil(1 / config.FadeStep))
}

func (engine *Engine) cancelLocked() bool {
	if engine.timer != nil {
		engine.timer.Stop()
		engine.timer = nil
	}
	live := engine.session != nil
	engine.session = nil
	return live
}

func (engine *Engine) scheduleLocked(id uint64, delay time.Duration, step func(*session)) {
	engine.timer = engine.clock.AfterFunc(delay, func() {
		engine.mu.Lock()
		defer engine.mu.Unlock()
		current := engine.session
		if current == nil || current.id != id {
			return
		}
		engine.timer = nil
		step(current)
	})
}

func (engine *Engine) fadeInTickLocked(current *session) {
	current.fadeTicks++
	current.opacity = math.Min(1, float64(current.fadeTicks)*engine.config.FadeStep)
	engine.renderer.SetOpacity(current.opacity)
	if current.opacity < 1 {
		engine.scheduleLocked(current.id, engine.config.FadeTick, engine.fadeInTickLocked)
		return
	}

	current.fadeTicks = 0
	current.phase = PhaseReveal
	if len(current.clusters) == 0 {
		engine.startHoldLocked(current)
		return
	}
	engine.scheduleLocked(current.id, TypeDelay(engine.config, engine.rng), engine.revealTickLocked)
}

func (engine *Engine) revealTickLocked(current *session) {
	current.shown.WriteString(current.clusters[current.revealed])
	current.revealed++
	engine.renderer.AppendTypedChunk(current.shown.String(), current.revealed == 1)
	if current.revealed < len(current.clusters) {
		engine.scheduleLocked(current.id, TypeDelay(engine.config, engine.rng), engine.revealTickLocked)
		return
	}
	engine.startHoldLocked(current)
}

func (engine *Engine) startHoldLocked(current *session) {
	current.phase = PhaseHold
	current.hold = HoldDuration(engine.config, engine.rng, current.test)
	engine.scheduleLocked(current.id, current.hold, func(held *session) {
		held.phase = PhaseFadeOut
		engine.scheduleLocked(held.id, engine.config.FadeTick, engine.fadeOutTickLocked)
	})
}

func (engine *Engine) fadeOutTickLocked(current *session) {
	current.fadeTicks++
	current.opacity = math.Max(0, 1-float64(current.fadeTicks)*engine.config.FadeStep)
	engine.renderer.SetOpacity(current.opacity)
	if current.opacity > 0 {
		engine.scheduleLocked(current.id, engine.config.FadeTick, engine.fadeOutTickLocked)
		return
	}
	engine.renderer.Hide()
	engine.session = nil
}

func splitGraphemes(text string) []string {
	var clusters []string
	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		clusters = append(clusters, graphemes.Str())
	}
	return clusters
}
