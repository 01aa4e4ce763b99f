// Package tray is the system tray menu.
package tray

import (
	"fmt"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"
)

const (
	tooltip  = "Bloomlet"
	macTitle = "🌸"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowNow     func()
	OnTogglePause func()
	OnSettings    func()
	OnQuit        func()
}

// Icons are the tray icons for the active and paused states.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	icons      Icons
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	paused     bool
}

// New creates a tray manager and installs its menu. app may be nil in tests.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		icons:     icons,
		callbacks: callbacks,
	}
	manager.statusItem = fyne.NewMenuItem(StatusText(false, time.Time{}), nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem(pauseLabel(false), invoke(&manager.callbacks.OnTogglePause))

	manager.refreshMenu()
	if app != nil {
		systray.SetTooltip(tooltip)
		if runtime.GOOS == "darwin" {
			systray.SetTitle(macTitle)
		}
	}
	return manager
}

// Menu builds the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("Bloomlet",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show now", invoke(&manager.callbacks.OnShowNow)),
		manager.pauseItem,
		fyne.NewMenuItem("Settings…", invoke(&manager.callbacks.OnSettings)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
}

// SetState updates the pause toggle, icon and status line.
func (manager *Manager) SetState(paused bool, nextFireAt time.Time) {
	manager.paused = paused
	manager.pauseItem.Label = pauseLabel(paused)
	manager.statusItem.Label = StatusText(paused, nextFireAt)
	manager.refreshMenu()
}

// StatusText describes the scheduler state for the menu status line.
func StatusText(paused bool, nextFireAt time.Time) string {
	switch {
	case paused:
		return "Reminders paused"
	case nextFireAt.IsZero():
		return "Reminders active"
	default:
		return fmt.Sprintf("Next reminder at %s", nextFireAt.Format("15:04"))
	}
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(manager.Menu())
	icon := manager.icons.Active
	if manager.paused && manager.icons.Paused != nil {
		icon = manager.icons.Paused
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
