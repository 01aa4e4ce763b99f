package presenter

import (
	"strings"
	"sync"
	"testing"
	"time"

	"bloomlet/internal/core/animation"
	"bloomlet/internal/core/clock/clocktest"
	"bloomlet/internal/core/model"
	"bloomlet/internal/core/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type surfaceCall struct {
	name   string
	text   string
	reset  bool
	bounds model.Rect
	size   model.Size
}

type fakeSurface struct {
	mu    sync.Mutex
	area  model.Rect
	calls []surfaceCall
}

func (surface *fakeSurface) record(call surfaceCall) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.calls = append(surface.calls, call)
}

func (surface *fakeSurface) WorkArea() model.Rect { return surface.area }
func (surface *fakeSurface) Show(bounds model.Rect) {
	surface.record(surfaceCall{name: "show", bounds: bounds})
}
func (surface *fakeSurface) SetBounds(bounds model.Rect) {
	surface.record(surfaceCall{name: "bounds", bounds: bounds})
}
func (surface *fakeSurface) SetOpacity(float64) {}
func (surface *fakeSurface) ShowMessage(text string, _ model.Theme, _ model.FontFamily) {
	surface.record(surfaceCall{name: "message", text: text})
}
func (surface *fakeSurface) AppendTypedChunk(text string, reset bool) {
	surface.record(surfaceCall{name: "chunk", text: text, reset: reset})
}
func (surface *fakeSurface) NotifyResized(size model.Size) {
	surface.record(surfaceCall{name: "resized", size: size})
}
func (surface *fakeSurface) Hide() {
	surface.record(surfaceCall{name: "hide"})
}

func (surface *fakeSurface) named(name string) []surfaceCall {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	var matched []surfaceCall
	for _, call := range surface.calls {
		if call.name == name {
			matched = append(matched, call)
		}
	}
	return matched
}

func (surface *fakeSurface) since(index int) []surfaceCall {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	return append([]surfaceCall(nil), surface.calls[index:]...)
}

func (surface *fakeSurface) count() int {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	return len(surface.calls)
}

type memoryStore struct {
	mu         sync.Mutex
	prefs      model.Preferences
	remembered []model.Rect
}

func (store *memoryStore) Current() model.Preferences {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.prefs.Clone()
}

func (store *memoryStore) RememberGeometry(bounds model.Rect) {
	store.mu.Lock()
	defer store.mu.Unlock()
	position := bounds.Point
	store.prefs.PopupPosition = &position
	store.prefs.PopupSize = bounds.Size
	store.remembered = append(store.remembered, bounds)
}

type queueSelector struct {
	messages []model.Message
	requests []model.Category
}

func (selector *queueSelector) Select(preferred model.Category) (model.Message, bool) {
	selector.requests = append(selector.requests, preferred)
	if len(selector.messages) == 0 {
		return model.Message{}, false
	}
	next := selector.messages[0]
	if len(selector.messages) > 1 {
		selector.messages = selector.messages[1:]
	}
	return next, true
}

type gateFunc func() bool

func (gate gateFunc) Active() bool { return gate() }

type fixture struct {
	presenter *Presenter
	surface   *fakeSurface
	store     *memoryStore
	selector  *queueSelector
	clock     *clocktest.Fake
	active    bool
}

func newFixture(texts ...string) *fixture {
	var messages []model.Message
	for _, text := range texts {
		messages = append(messages, model.Message{Text: text, Category: model.CategoryMotivational})
	}
	current := &fixture{
		surface:  &fakeSurface{area: model.Rect{Size: model.Size{Width: 1920, Height: 1080}}},
		store:    &memoryStore{prefs: model.DefaultPreferences()},
		selector: &queueSelector{messages: messages},
		clock:    clocktest.New(time.Unix(0, 0)),
		active:   true,
	}
	current.presenter = New(current.surface, current.store, current.selector,
		gateFunc(func() bool { return current.active }),
		Config{
			Animation: animation.DefaultConfig(),
			Clock:     current.clock,
			Random:    random.NewScripted(0),
		})
	return current
}

func TestPlacement(t *testing.T) {
	area := model.Rect{Point: model.Point{X: 0, Y: 25}, Size: model.Size{Width: 1440, Height: 875}}
	prefs := model.DefaultPreferences()

	corner := Placement(prefs, area, DefaultMargin)
	assert.Equal(t, model.Rect{Point: model.Point{X: 1096, Y: 756}, Size: model.DefaultPopupSize()}, corner)

	prefs.Position = model.PlacementCenter
	center := Placement(prefs, area, DefaultMargin)
	assert.Equal(t, model.Point{X: 560, Y: 403}, center.Point)

	prefs.PopupPosition = &model.Point{X: 10, Y: 20}
	prefs.PopupSize = model.Size{Width: 50, Height: 1000}
	remembered := Placement(prefs, area, DefaultMargin)
	assert.Equal(t, model.Rect{Point: model.Point{X: 10, Y: 20}, Size: model.Size{Width: 240, Height: 400}}, remembered)
}

func TestResizeClamps(t *testing.T) {
	start := model.Rect{Point: model.Point{X: 100, Y: 100}, Size: model.DefaultPopupSize()}

	narrow := Resize(start, EdgeRight, 50-320, 0)
	assert.Equal(t, 240, narrow.Width)
	assert.Equal(t, start.Point, narrow.Point)

	tall := Resize(start, EdgeBottom, 0, 1000-120)
	assert.Equal(t, 400, tall.Height)
}

func TestResizeFromTopLeftKeepsOppositeEdge(t *testing.T) {
	start := model.Rect{Point: model.Point{X: 100, Y: 100}, Size: model.DefaultPopupSize()}

	grown := Resize(start, EdgeTop|EdgeLeft, -40, -30)
	assert.Equal(t, model.Rect{Point: model.Point{X: 60, Y: 70}, Size: model.Size{Width: 360, Height: 150}}, grown)
	assert.Equal(t, start.X+start.Width, grown.X+grown.Width)
	assert.Equal(t, start.Y+start.Height, grown.Y+grown.Height)

	clamped := Resize(start, EdgeLeft, 500, 0)
	assert.Equal(t, 240, clamped.Width)
	assert.Equal(t, start.X+start.Width, clamped.X+clamped.Width)
}

func TestTriggerShowsAtDefaultCorner(t *testing.T) {
	current := newFixture("You are doing great.")

	require.True(t, current.presenter.Trigger(Request{}))

	shows := current.surface.named("show")
	require.Len(t, shows, 1)
	assert.Equal(t, model.Rect{Point: model.Point{X: 1576, Y: 936}, Size: model.DefaultPopupSize()}, shows[0].bounds)
	assert.Equal(t, []surfaceCall{{name: "resized", size: model.DefaultPopupSize()}}, current.surface.named("resized"))
	assert.True(t, current.presenter.Live())
	assert.Equal(t, shows[0].bounds, current.presenter.Bounds())
}

func TestTriggerEmptyCatalogIsSilent(t *testing.T) {
	current := newFixture()

	assert.NotPanics(t, func() {
		assert.False(t, current.presenter.Trigger(Request{Manual: true, Test: true}))
	})

	assert.Empty(t, current.surface.named("show"))
	assert.False(t, current.presenter.Live())
	assert.Equal(t, model.Rect{Size: model.DefaultPopupSize()}, current.presenter.Bounds())
}

func TestAutomaticTriggerRespectsPause(t *testing.T) {
	current := newFixture("hello")
	current.active = false

	assert.False(t, current.presenter.Trigger(Request{}))
	assert.Empty(t, current.surface.named("show"))

	assert.True(t, current.presenter.Trigger(Request{Preferred: model.CategoryMotivational, Test: true, Manual: true}))
	assert.Len(t, current.surface.named("show"), 1)
	assert.Equal(t, []model.Category{model.CategoryMotivational}, current.selector.requests)
}

func TestBackToBackTriggersSupersede(t *testing.T) {
	current := newFixture("first message", "second")
	current.presenter.Trigger(Request{})
	current.clock.Advance(300 * time.Millisecond)
	require.NotEmpty(t, current.surface.named("chunk"))

	mark := current.surface.count()
	current.presenter.Trigger(Request{})
	current.clock.Advance(30 * time.Second)

	var typed []string
	hides := 0
	for _, call := range current.surface.since(mark) {
		switch call.name {
		case "chunk":
			typed = append(typed, call.text)
			assert.True(t, strings.HasPrefix("second", call.text), "unexpected chunk %q", call.text)
		case "hide":
			hides++
		}
	}
	require.NotEmpty(t, typed)
	assert.Equal(t, "second", typed[len(typed)-1])
	assert.Equal(t, 1, hides)
	assert.Len(t, current.surface.named("hide"), 1)
	assert.False(t, current.presenter.Live())
	assert.Equal(t, 0, current.clock.Pending())
}

func TestDragPersistsAndNextTriggerReusesPosition(t *testing.T) {
	current := newFixture("one", "two")
	current.presenter.Trigger(Request{})
	current.clock.Advance(100 * time.Millisecond)

	current.presenter.DragBy(20, 0)
	current.presenter.DragBy(30, 0)
	current.presenter.EndDrag()

	expected := model.Rect{Point: model.Point{X: 1626, Y: 936}, Size: model.DefaultPopupSize()}
	assert.Equal(t, []model.Rect{expected}, current.store.remembered)
	bounds := current.surface.named("bounds")
	require.Len(t, bounds, 2)
	assert.Equal(t, expected, bounds[1].bounds)

	current.clock.Advance(time.Minute)
	current.presenter.Trigger(Request{})

	shows := current.surface.named("show")
	require.Len(t, shows, 2)
	assert.Equal(t, expected, shows[1].bounds)
}

func TestDragDoesNotDisturbTimers(t *testing.T) {
	current := newFixture("abc")
	current.presenter.Trigger(Request{})
	current.clock.Advance(250 * time.Millisecond)
	before := current.presenter.Session()

	current.presenter.DragBy(-15, 12)
	current.presenter.EndDrag()

	after := current.presenter.Session()
	assert.Equal(t, before, after)
	// fade-in 208ms, 3 characters at 25ms, 5s hold, 208ms fade-out
	current.clock.Advance(208*time.Millisecond + 75*time.Millisecond + 5*time.Second + 208*time.Millisecond - 250*time.Millisecond)
	assert.Len(t, current.surface.named("hide"), 1)
}

func TestResizeNotifiesAndPersists(t *testing.T) {
	current := newFixture("resize me")
	current.presenter.Trigger(Request{})

	current.presenter.ResizeBy(EdgeTop|EdgeLeft, -20, -10)
	current.presenter.ResizeBy(EdgeTop|EdgeLeft, -20, -20)
	current.presenter.EndResize()

	expected := model.Rect{Point: model.Point{X: 1536, Y: 906}, Size: model.Size{Width: 360, Height: 150}}
	assert.Equal(t, []model.Rect{expected}, current.store.remembered)
	resized := current.surface.named("resized")
	require.Len(t, resized, 3)
	assert.Equal(t, expected.Size, resized[2].size)
	assert.Equal(t, expected, current.presenter.Bounds())
}

func TestResizeClampsDuringGesture(t *testing.T) {
	current := newFixture("tiny")
	current.presenter.Trigger(Request{})

	current.presenter.ResizeBy(EdgeRight, -270, 0)
	current.presenter.EndResize()
	current.presenter.ResizeBy(EdgeBottom, 0, 880)
	current.presenter.EndResize()

	require.Len(t, current.store.remembered, 2)
	assert.Equal(t, 240, current.store.remembered[0].Width)
	assert.Equal(t, model.Size{Width: 240, Height: 400}, current.store.remembered[1].Size)
}

func TestGesturesIgnoredWithoutLivePopup(t *testing.T) {
	current := newFixture("gone")

	current.presenter.DragBy(10, 10)
	current.presenter.EndDrag()
	current.presenter.ResizeBy(EdgeRight, 10, 0)
	current.presenter.EndResize()

	assert.Empty(t, current.store.remembered)
	assert.Empty(t, current.surface.named("bounds"))
}

func TestDismissHidesLivePopup(t *testing.T) {
	current := newFixture("closing")
	assert.False(t, current.presenter.Dismiss())

	current.presenter.Trigger(Request{})
	assert.True(t, current.presenter.Dismiss())

	assert.Len(t, current.surface.named("hide"), 1)
	assert.Equal(t, 0, current.clock.Pending())
	assert.False(t, current.presenter.Live())
}
