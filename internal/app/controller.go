// Package app wires the reminder engine together and exposes the commands
// used by the tray, the settings panel and the CLI.
package app

import (
	"log/slog"
	"sync"
	"time"

	"bloomlet/internal/core/animation"
	"bloomlet/internal/core/catalog"
	"bloomlet/internal/core/clock"
	"bloomlet/internal/core/model"
	"bloomlet/internal/core/presenter"
	"bloomlet/internal/core/random"
	"bloomlet/internal/core/scheduler"
	"bloomlet/internal/core/selector"
)

// PreferenceStore holds the user preferences.
type PreferenceStore interface {
	Current() model.Preferences
	Update(patch model.Patch) model.Preferences
	RememberGeometry(bounds model.Rect)
}

// Config contains the collaborators of a Controller.
type Config struct {
	Store   PreferenceStore
	Catalog *catalog.Catalog
	Surface presenter.Surface
	// WelcomeDelay is the wait before the first popup after Start; zero
	// disables the welcome popup.
	WelcomeDelay time.Duration
	Animation    animation.Config
	Clock        clock.Clock
	Random       random.Source
	Logger       *slog.Logger
}

// Controller owns the scheduler, the presenter and the welcome timer.
type Controller struct {
	mu        sync.Mutex
	store     PreferenceStore
	catalog   *catalog.Catalog
	scheduler *scheduler.Scheduler
	presenter *presenter.Presenter
	clock     clock.Clock
	logger    *slog.Logger
	welcome   time.Duration
	welcomeT  clock.Timer
	started   bool
	closed    bool
}

// New builds a Controller. Nothing is scheduled until Start.
func New(config Config) *Controller {
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Random == nil {
		config.Random = random.New()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Catalog == nil {
		config.Catalog = catalog.Empty()
	}

	prefs := config.Store.Current()
	sched := scheduler.New(prefs.Interval, scheduler.Config{
		Clock:  config.Clock,
		Random: config.Random,
		Logger: config.Logger.With("component", "scheduler"),
	})
	pick := selector.New(config.Catalog, config.Store, config.Random)
	show := presenter.New(config.Surface, config.Store, pick, sched, presenter.Config{
		Animation: config.Animation,
		Clock:     config.Clock,
		Random:    config.Random,
		Logger:    config.Logger.With("component", "presenter"),
	})

	controller := &Controller{
		store:     config.Store,
		catalog:   config.Catalog,
		scheduler: sched,
		presenter: show,
		clock:     config.Clock,
		logger:    config.Logger,
		welcome:   config.WelcomeDelay,
	}
	sched.SetOnFire(controller.handleFire)
	return controller
}

// Start arms the scheduler and the welcome popup. It runs once.
func (controller *Controller) Start() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.started || controller.closed {
		return
	}
	controller.started = true

	// Preferences saved before Start must decide the first delay.
	interval := controller.store.Current().Interval
	controller.logger.Info("reminders started",
		"messages", controller.catalog.Len(),
		"interval", string(interval),
	)
	controller.scheduler.SetInterval(interval)
	if controller.welcome > 0 {
		controller.welcomeT = controller.clock.AfterFunc(controller.welcome, controller.handleWelcome)
	}
}

// Preferences returns the current preferences.
func (controller *Controller) Preferences() model.Preferences {
	return controller.store.Current()
}

// SavePreferences merges patch into the preferences, closes the live popup so
// the next one uses the new settings and re-arms the scheduler.
func (controller *Controller) SavePreferences(patch model.Patch) model.Preferences {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	updated := controller.store.Update(patch)
	controller.presenter.Dismiss()
	if controller.started && !controller.closed {
		controller.scheduler.SetInterval(updated.Interval)
	}
	controller.logger.Info("preferences saved",
		"interval", string(updated.Interval),
		"theme", string(updated.Theme),
	)
	return updated
}

// RequestImmediatePopup shows a test popup now, preferring motivational
// messages. It fires even while paused.
func (controller *Controller) RequestImmediatePopup() bool {
	return controller.presenter.Trigger(presenter.Request{
		Preferred: model.CategoryMotivational,
		Test:      true,
		Manual:    true,
	})
}

// ReportWindowGeometry returns the live popup bounds, or {0,0,320,120}
// when no popup is shown.
func (controller *Controller) ReportWindowGeometry() model.Rect {
	return controller.presenter.Bounds()
}

// Pause stops automatic popups.
func (controller *Controller) Pause() {
	controller.scheduler.Pause()
	controller.logger.Info("reminders paused")
}

// Resume restarts automatic popups from a fresh delay.
func (controller *Controller) Resume() {
	controller.scheduler.Resume()
	controller.logger.Info("reminders resumed")
}

// TogglePause flips the pause state and reports whether reminders are now active.
func (controller *Controller) TogglePause() bool {
	if controller.scheduler.Active() {
		controller.Pause()
		return false
	}
	controller.Resume()
	return true
}

// Active reports whether automatic popups are enabled.
func (controller *Controller) Active() bool {
	return controller.scheduler.Active()
}

// NextReminder returns when the next automatic popup is due.
func (controller *Controller) NextReminder() (time.Time, bool) {
	return controller.scheduler.NextFireAt()
}

// Subscribe returns scheduler events for status displays.
func (controller *Controller) Subscribe(buffer int) <-chan scheduler.Event {
	return controller.scheduler.Subscribe(buffer)
}

// Presenter exposes the presenter for wiring popup gestures.
func (controller *Controller) Presenter() *presenter.Presenter {
	return controller.presenter
}

// Close cancels every timer and hides the popup.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	if controller.welcomeT != nil {
		controller.welcomeT.Stop()
		controller.welcomeT = nil
	}
	controller.mu.Unlock()

	controller.scheduler.Close()
	controller.presenter.Dismiss()
	controller.logger.Info("reminders stopped")
}

func (controller *Controller) handleFire() {
	controller.presenter.Trigger(presenter.Request{})
}

func (controller *Controller) handleWelcome() {
	controller.mu.Lock()
	controller.welcomeT = nil
	closed := controller.closed
	controller.mu.Unlock()
	if closed {
		return
	}
	controller.presenter.Trigger(presenter.Request{})
}
