package cli

import (
	"errors"
	"time"

	"bloomlet/internal/app"
	"bloomlet/internal/config"
	"bloomlet/internal/core/model"
	"bloomlet/internal/platform"
	"bloomlet/internal/storage"
	"bloomlet/internal/ui/popup"
	"bloomlet/internal/ui/preferences"
	"bloomlet/internal/ui/tray"
	"bloomlet/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const appID = "app.bloomlet"

// runDesktop runs the tray application until Quit. A second launch hands a
// show request to the running instance and exits.
func runDesktop(opts *options) error {
	logger := opts.logger
	guard, err := platform.AcquireSingleInstance(config.AppName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("already running, asking the running instance to show a popup")
		if signalErr := platform.SignalRunningInstance(config.AppName, platform.CommandShow, signalTimeout); signalErr != nil {
			logger.Warn("running instance did not answer", "error", signalErr)
		}
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	store := storage.NewPreferencesStore(opts.config.PreferencesPath, logger.With("component", "preferences"))
	if err := store.Load(); err != nil {
		logger.Warn("preferences unreadable, defaults applied", "path", store.Path(), "error", err)
	}
	messages := opts.loadCatalog()

	fyneApp := fyneapp.NewWithID(appID)
	activeIcon := resources.MustIcon(resources.IconActive)
	fyneApp.SetIcon(activeIcon)
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	trayWindow := fyneApp.NewWindow(config.AppName)
	trayWindow.SetContent(widget.NewLabel("Bloomlet is running in the system tray."))
	trayWindow.SetCloseIntercept(trayWindow.Hide)
	desktopApp.SetSystemTrayWindow(trayWindow)

	surface := popup.New(fyneApp, logger.With("component", "popup"))
	controller := app.New(app.Config{
		Store:        store,
		Catalog:      messages,
		Surface:      surface,
		WelcomeDelay: opts.config.WelcomeDelay,
		Logger:       logger,
	})
	surface.SetGestures(controller.Presenter())

	settingsWindow := preferences.New(fyneApp, controller.Preferences(), preferences.Callbacks{
		OnSave: func(patch model.Patch) {
			controller.SavePreferences(patch)
		},
		OnTest: func() {
			controller.RequestImmediatePopup()
		},
	})

	trayManager := tray.New(desktopApp, tray.Icons{
		Active: activeIcon,
		Paused: resources.MustIcon(resources.IconPaused),
	}, tray.Callbacks{
		OnShowNow: func() {
			controller.RequestImmediatePopup()
		},
		OnTogglePause: func() {
			controller.TogglePause()
		},
		OnSettings: func() {
			settingsWindow.Update(controller.Preferences())
			settingsWindow.Show()
		},
		OnQuit: func() {
			controller.Close()
			fyneApp.Quit()
		},
	})

	events := controller.Subscribe(8)
	go func() {
		for event := range events {
			next := time.Time{}
			if event.Active {
				next = event.NextFireAt
			}
			paused := !event.Active
			fyne.Do(func() {
				trayManager.SetState(paused, next)
			})
		}
	}()

	guard.Serve(func(command string) {
		if command != platform.CommandShow {
			logger.Warn("unknown instance command", "command", command)
			return
		}
		controller.RequestImmediatePopup()
	})

	controller.Start()
	fyneApp.Run()
	controller.Close()
	return nil
}
