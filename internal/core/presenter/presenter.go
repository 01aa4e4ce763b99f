// Package presenter owns the popup lifecycle: trigger policy, placement,
// session animation and user-driven geometry changes.
package presenter

import (
	"log/slog"
	"math"
	"sync"

	"bloomlet/internal/core/animation"
	"bloomlet/internal/core/clock"
	"bloomlet/internal/core/model"
	"bloomlet/internal/core/random"
)

// Surface is the native popup window.
type Surface interface {
	// WorkArea returns the usable region of the primary display.
	WorkArea() model.Rect
	// Show makes the surface visible at the given bounds with zero opacity.
	Show(bounds model.Rect)
	SetBounds(bounds model.Rect)
	SetOpacity(opacity float64)
	// ShowMessage starts a session with its theme and font. The text itself
	// is delivered through AppendTypedChunk as it is revealed.
	ShowMessage(text string, theme model.Theme, font model.FontFamily)
	AppendTypedChunk(text string, reset bool)
	NotifyResized(size model.Size)
	Hide()
}

// PreferenceStore provides preferences and remembers popup geometry.
type PreferenceStore interface {
	Current() model.Preferences
	RememberGeometry(bounds model.Rect)
}

// MessageSelector picks the message for a new session.
type MessageSelector interface {
	Select(preferred model.Category) (model.Message, bool)
}

// Gate reports whether automatic popups are currently allowed.
type Gate interface {
	Active() bool
}

// Request describes a trigger.
type Request struct {
	Preferred model.Category
	Test      bool
	// Manual triggers come from an explicit user action and ignore pause.
	Manual bool
}

// Config contains the collaborators and tuning of a Presenter.
type Config struct {
	Animation animation.Config
	Margin    int
	Clock     clock.Clock
	Random    random.Source
	Logger    *slog.Logger
}

type interactionKind int

const (
	interactionDrag interactionKind = iota + 1
	interactionResize
)

type interaction struct {
	kind   interactionKind
	edges  Edge
	start  model.Rect
	totalX float64
	totalY float64
}

// Presenter shows at most one popup session at a time.
type Presenter struct {
	mu          sync.Mutex
	surface     Surface
	prefs       PreferenceStore
	selector    MessageSelector
	gate        Gate
	engine      *animation.Engine
	logger      *slog.Logger
	margin      int
	bounds      model.Rect
	interaction *interaction
}

// New creates a Presenter. gate may be nil, in which case every trigger fires.
func New(surface Surface, prefs PreferenceStore, selector MessageSelector, gate Gate, config Config) *Presenter {
	if config.Margin <= 0 {
		config.Margin = DefaultMargin
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Animation == (animation.Config{}) {
		config.Animation = animation.DefaultConfig()
	}
	return &Presenter{
		surface:  surface,
		prefs:    prefs,
		selector: selector,
		gate:     gate,
		engine:   animation.New(config.Animation, config.Clock, config.Random, surface),
		logger:   config.Logger,
		margin:   config.Margin,
		bounds:   model.Rect{Size: model.DefaultPopupSize()},
	}
}

// Trigger starts a new session, superseding any live one. Automatic triggers
// are dropped while paused. It reports whether a popup was shown.
func (presenter *Presenter) Trigger(request Request) bool {
	if !request.Manual && presenter.gate != nil && !presenter.gate.Active() {
		presenter.logger.Debug("automatic popup skipped while paused")
		return false
	}

	presenter.mu.Lock()
	defer presenter.mu.Unlock()

	wasLive := presenter.engine.Stop()
	presenter.interaction = nil

	message, ok := presenter.selector.Select(request.Preferred)
	if !ok {
		if wasLive {
			presenter.surface.Hide()
		}
		presenter.logger.Debug("popup abandoned: message catalog is empty")
		return false
	}

	prefs := presenter.prefs.Current()
	presenter.bounds = Placement(prefs, presenter.surface.WorkArea(), presenter.margin)

	presenter.surface.ShowMessage(message.Text, prefs.Theme, prefs.FontFamily)
	presenter.surface.NotifyResized(presenter.bounds.Size)
	presenter.surface.Show(presenter.bounds)
	id := presenter.engine.Start(message.Text, request.Test)

	presenter.logger.Info("popup shown",
		"session", id,
		"category", string(message.Category),
		"test", request.Test,
		"manual", request.Manual,
	)
	return true
}

// Dismiss cancels the live session and hides the surface.
func (presenter *Presenter) Dismiss() bool {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	presenter.interaction = nil
	if !presenter.engine.Stop() {
		return false
	}
	presenter.surface.Hide()
	return true
}

// Live reports whether a session is running.
func (presenter *Presenter) Live() bool {
	return presenter.engine.Snapshot().ID != 0
}

// Session returns the state of the live session.
func (presenter *Presenter) Session() animation.Snapshot {
	return presenter.engine.Snapshot()
}

// Bounds returns the live popup geometry, or the default geometry at the
// origin when no popup is live.
func (presenter *Presenter) Bounds() model.Rect {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	if !presenter.Live() {
		return model.Rect{Size: model.DefaultPopupSize()}
	}
	return presenter.bounds
}

// DragBy moves the popup by a pointer delta. The first call of a gesture
// captures the starting geometry. Session timers are unaffected.
func (presenter *Presenter) DragBy(dx, dy float64) {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	gesture := presenter.gestureLocked(interactionDrag, 0)
	if gesture == nil {
		return
	}
	gesture.totalX += dx
	gesture.totalY += dy
	presenter.bounds = model.Rect{
		Point: model.Point{
			X: gesture.start.X + roundInt(gesture.totalX),
			Y: gesture.start.Y + roundInt(gesture.totalY),
		},
		Size: gesture.start.Size,
	}
	presenter.surface.SetBounds(presenter.bounds)
}

// EndDrag commits the dragged position to the preferences.
func (presenter *Presenter) EndDrag() {
	presenter.endGesture(interactionDrag)
}

// ResizeBy resizes the popup from the grabbed edges by a pointer delta.
func (presenter *Presenter) ResizeBy(edges Edge, dx, dy float64) {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	gesture := presenter.gestureLocked(interactionResize, edges)
	if gesture == nil {
		return
	}
	gesture.totalX += dx
	gesture.totalY += dy
	presenter.bounds = Resize(gesture.start, edges, roundInt(gesture.totalX), roundInt(gesture.totalY))
	presenter.surface.SetBounds(presenter.bounds)
	presenter.surface.NotifyResized(presenter.bounds.Size)
}

// EndResize commits the resized geometry to the preferences.
func (presenter *Presenter) EndResize() {
	presenter.endGesture(interactionResize)
}

func (presenter *Presenter) gestureLocked(kind interactionKind, edges Edge) *interaction {
	if !presenter.Live() {
		presenter.interaction = nil
		return nil
	}
	current := presenter.interaction
	if current == nil || current.kind != kind || current.edges != edges {
		current = &interaction{kind: kind, edges: edges, start: presenter.bounds}
		presenter.interaction = current
	}
	return current
}

func (presenter *Presenter) endGesture(kind interactionKind) {
	presenter.mu.Lock()
	current := presenter.interaction
	if current == nil || current.kind != kind {
		presenter.mu.Unlock()
		return
	}
	presenter.interaction = nil
	bounds := presenter.bounds
	presenter.mu.Unlock()

	presenter.prefs.RememberGeometry(bounds)
	presenter.logger.Debug("popup geometry saved",
		"x", bounds.X, "y", bounds.Y,
		"width", bounds.Width, "height", bounds.Height,
	)
}

func roundInt(value float64) int {
	return int(math.Round(value))
}
