package app

import (
	"context"
	"sync/atomic"

	"image-processor/internal/camera"
	"image-processor/internal/config"
	"image-processor/internal/gui"
	"image-processor/internal/logger"
	"image-processor/internal/models"
	"image-processor/internal/services"
	"image-processor/internal/timing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
)

const (
	AppName         = "Image Processor"
	AppID           = "com.imageprocessing.imageprocessor"
	AppVersion      = "1.0.0"
	MinWindowWidth  = 900
	MinWindowHeight = 700
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	guiManager *gui.Manager
	session    *services.SessionService
	handlers   *Handlers
	lifecycle  *Lifecycle
	logger     logger.Logger
	running    atomic.Bool
}

// NewApplication builds the window and services. Cancelling ctx stops a running capture.
func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(MinWindowWidth, MinWindowHeight))
	window.SetFixedSize(false)
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":          AppVersion,
		"camera_index":     cfg.CameraIndex,
		"max_display_size": cfg.MaxDisplaySize,
		"log_level":        cfg.LogLevel.String(),
	})

	tracker := timing.NewTracker(0)
	// samples are only reported at debug level
	tracker.SetEnabled(cfg.LogLevel <= zerolog.DebugLevel)
	images := services.NewImageService(log, tracker)
	session := services.NewSessionService(models.NewSession(), images, cfg.Highlight, log, tracker)

	guiManager := gui.NewManager(window, log, cfg.MaxDisplaySize)

	ctx, cancel := context.WithCancel(ctx)

	newCapture := func(n camera.Notifier) services.CaptureRunner {
		preview := camera.NewWindowPreview(camera.PreviewTitle)
		return camera.NewCapture(camera.NewVideoDevice(cfg.CameraIndex), preview, preview, n, log)
	}

	handlers := NewHandlers(ctx, session, guiManager, guiManager.Prompts(), guiManager.Notifier(), newCapture, log)
	lifecycle := NewLifecycle(cancel, handlers, guiManager, session, tracker, log)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		guiManager: guiManager,
		session:    session,
		handlers:   handlers,
		lifecycle:  lifecycle,
		logger:     log,
	}

	application.setupHandlers()

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) setupHandlers() {
	bindings := map[models.Action]func(){
		models.ActionLoadFile:       a.handlers.HandleLoad,
		models.ActionCapture:        a.handlers.HandleCapture,
		models.ActionShowOriginal:   a.handlers.HandleShowOriginal,
		models.ActionIsolateChannel: a.handlers.HandleIsolateChannel,
		models.ActionRotate:         a.handlers.HandleRotate,
		models.ActionNegate:         a.handlers.HandleNegate,
		models.ActionDrawCircle:     a.handlers.HandleDrawCircle,
		models.ActionExport:         a.handlers.HandleExport,
	}

	for action, handler := range bindings {
		a.guiManager.SetActionHandler(action, handler)
	}
	a.handlers.refreshActions()
}

// Run blocks until the main window closes.
func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.window.SetContent(a.guiManager.GetMainContainer())
	a.window.Show()

	a.logger.Info("Application", "GUI displayed", nil)
	a.running.Store(true)
	a.fyneApp.Run()
	a.running.Store(false)

	return nil
}

// Shutdown releases every resource and quits the event loop. Safe to call from any goroutine.
func (a *Application) Shutdown() {
	a.lifecycle.Shutdown()
	if !a.running.Load() {
		return
	}
	fyne.Do(func() {
		a.fyneApp.Quit()
	})
}
