package app

import (
	"sync"
	"testing"
	"time"

	"bloomlet/internal/core/catalog"
	"bloomlet/internal/core/clock/clocktest"
	"bloomlet/internal/core/model"
	"bloomlet/internal/core/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSurface struct {
	mu       sync.Mutex
	shown    []model.Rect
	messages []string
	hides    int
}

func (surface *recordingSurface) WorkArea() model.Rect {
	return model.Rect{Size: model.Size{Width: 1280, Height: 800}}
}

func (surface *recordingSurface) Show(bounds model.Rect) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.shown = append(surface.shown, bounds)
}

func (surface *recordingSurface) ShowMessage(text string, _ model.Theme, _ model.FontFamily) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.messages = append(surface.messages, text)
}

func (surface *recordingSurface) Hide() {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.hides++
}

func (surface *recordingSurface) SetBounds(model.Rect)          {}
func (surface *recordingSurface) SetOpacity(float64)            {}
func (surface *recordingSurface) AppendTypedChunk(string, bool) {}
func (surface *recordingSurface) NotifyResized(model.Size)      {}

func (surface *recordingSurface) showCount() int {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	return len(surface.shown)
}

type memoryStore struct {
	mu      sync.Mutex
	prefs   model.Preferences
	updates int
}

func (store *memoryStore) Current() model.Preferences {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.prefs.Clone()
}

func (store *memoryStore) Update(patch model.Patch) model.Preferences {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.prefs = store.prefs.Merge(patch)
	store.updates++
	return store.prefs.Clone()
}

func (store *memoryStore) RememberGeometry(bounds model.Rect) {
	position := bounds.Point
	store.Update(model.Patch{PopupPosition: &position, PopupSize: &bounds.Size})
}

type harness struct {
	controller *Controller
	surface    *recordingSurface
	store      *memoryStore
	clock      *clocktest.Fake
	start      time.Time
}

func newHarness(welcome time.Duration, messages ...model.Message) *harness {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	current := &harness{
		surface: &recordingSurface{},
		store:   &memoryStore{prefs: model.DefaultPreferences()},
		clock:   clocktest.New(start),
		start:   start,
	}
	current.controller = New(Config{
		Store:        current.store,
		Catalog:      catalog.New(messages),
		Surface:      current.surface,
		WelcomeDelay: welcome,
		Clock:        current.clock,
		Random:       random.NewScripted(0),
	})
	return current
}

var sampleMessages = []model.Message{
	{Text: "Breathe in slowly.", Category: model.CategoryMindfulness},
	{Text: "You can do hard things.", Category: model.CategoryMotivational},
	{Text: "It is okay to rest.", Category: model.CategoryComforting},
}

func TestStartShowsWelcomePopupAndArmsScheduler(t *testing.T) {
	current := newHarness(3*time.Second, sampleMessages...)
	current.controller.Start()

	next, ok := current.controller.NextReminder()
	require.True(t, ok)
	assert.Equal(t, current.start.Add(60*time.Minute), next)

	current.clock.Advance(2 * time.Second)
	assert.Equal(t, 0, current.surface.showCount())
	current.clock.Advance(time.Second)
	assert.Equal(t, 1, current.surface.showCount())
}

func TestWelcomePopupDisabled(t *testing.T) {
	current := newHarness(0, sampleMessages...)
	current.controller.Start()

	current.clock.Advance(time.Minute)
	assert.Equal(t, 0, current.surface.showCount())
}

func TestSchedulerFiresAutomaticPopups(t *testing.T) {
	current := newHarness(0, sampleMessages...)
	current.controller.Start()

	current.clock.Advance(60 * time.Minute)
	assert.Equal(t, 1, current.surface.showCount())

	next, ok := current.controller.NextReminder()
	require.True(t, ok)
	assert.Equal(t, current.start.Add(120*time.Minute), next)
}

func TestPauseBlocksAutomaticButNotManual(t *testing.T) {
	current := newHarness(3*time.Second, sampleMessages...)
	current.controller.Start()
	current.controller.Pause()

	current.clock.Advance(3 * time.Hour)
	assert.Equal(t, 0, current.surface.showCount())
	_, armed := current.controller.NextReminder()
	assert.False(t, armed)

	assert.True(t, current.controller.RequestImmediatePopup())
	assert.Equal(t, 1, current.surface.showCount())
	assert.Equal(t, []string{"You can do hard things."}, current.surface.messages)
}

func TestTogglePause(t *testing.T) {
	current := newHarness(0, sampleMessages...)
	current.controller.Start()

	assert.False(t, current.controller.TogglePause())
	assert.False(t, current.controller.Active())
	assert.True(t, current.controller.TogglePause())
	assert.True(t, current.controller.Active())

	current.clock.Advance(60 * time.Minute)
	assert.Equal(t, 1, current.surface.showCount())
}

func TestSavePreferencesReschedulesAndDismisses(t *testing.T) {
	current := newHarness(0, sampleMessages...)
	current.controller.Start()
	current.clock.Advance(10 * time.Minute)
	require.True(t, current.controller.RequestImmediatePopup())

	interval := model.Interval30m
	updated := current.controller.SavePreferences(model.Patch{Interval: &interval})

	assert.Equal(t, model.Interval30m, updated.Interval)
	assert.Equal(t, model.Interval30m, current.controller.Preferences().Interval)
	assert.Equal(t, 1, current.surface.hides)
	next, ok := current.controller.NextReminder()
	require.True(t, ok)
	assert.Equal(t, current.start.Add(40*time.Minute), next)
}

func TestSavePreferencesBeforeStartSetsFirstDelay(t *testing.T) {
	current := newHarness(0, sampleMessages...)
	interval := model.Interval120m
	current.controller.SavePreferences(model.Patch{Interval: &interval})

	_, armed := current.controller.NextReminder()
	assert.False(t, armed)

	current.controller.Start()
	next, ok := current.controller.NextReminder()
	require.True(t, ok)
	assert.Equal(t, current.start.Add(120*time.Minute), next)

	current.clock.Advance(60 * time.Minute)
	assert.Equal(t, 0, current.surface.showCount())
}

func TestSavePreferencesWhilePausedStaysIdle(t *testing.T) {
	current := newHarness(0, sampleMessages...)
	current.controller.Start()
	current.controller.Pause()

	theme := model.ThemeDark
	current.controller.SavePreferences(model.Patch{Theme: &theme})

	_, armed := current.controller.NextReminder()
	assert.False(t, armed)
	assert.Equal(t, 1, current.store.updates)
}

func TestReportWindowGeometry(t *testing.T) {
	current := newHarness(0, sampleMessages...)
	assert.Equal(t, model.Rect{Size: model.DefaultPopupSize()}, current.controller.ReportWindowGeometry())

	require.True(t, current.controller.RequestImmediatePopup())
	assert.Equal(t, model.Rect{
		Point: model.Point{X: 1280 - 320 - 24, Y: 800 - 120 - 24},
		Size:  model.DefaultPopupSize(),
	}, current.controller.ReportWindowGeometry())
}

func TestEmptyCatalogPopupIsSilent(t *testing.T) {
	current := newHarness(time.Second)
	current.controller.Start()
	current.clock.Advance(time.Second)

	assert.False(t, current.controller.RequestImmediatePopup())
	assert.Equal(t, 0, current.surface.showCount())
}

func TestCloseCancelsEverything(t *testing.T) {
	current := newHarness(3*time.Second, sampleMessages...)
	current.controller.Start()
	require.True(t, current.controller.RequestImmediatePopup())

	current.controller.Close()
	current.controller.Close()

	assert.Equal(t, 0, current.clock.Pending())
	assert.Equal(t, 1, current.surface.hides)
	current.clock.Advance(3 * time.Hour)
	assert.Equal(t, 1, current.surface.showCount())
}
