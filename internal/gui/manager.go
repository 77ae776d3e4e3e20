package gui

import (
	"image-processor/internal/gui/components"
	"image-processor/internal/logger"
	"image-processor/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// Manager owns the widgets of the main window. Methods that touch widgets hop onto the
// UI thread with fyne.Do, so they are safe to call from worker goroutines.
type Manager struct {
	window     fyne.Window
	logger     logger.Logger
	maxDisplay int
	isShutdown bool

	imageDisplay *components.ImageDisplay
	toolbar      *components.Toolbar
	statusBar    *components.StatusBar
	prompts      *Prompts
	notifier     *Notifier
}

func NewManager(window fyne.Window, log logger.Logger, maxDisplay int) *Manager {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	m := &Manager{
		window:       window,
		logger:       log,
		maxDisplay:   maxDisplay,
		imageDisplay: components.NewImageDisplay(),
		toolbar:      components.NewToolbar(),
		statusBar:    components.NewStatusBar(),
		prompts:      NewPrompts(window),
		notifier:     NewNotifier(window),
	}

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"image_width":      components.ImageDisplayWidth,
		"image_height":     components.ImageDisplayHeight,
		"max_display_size": maxDisplay,
	})

	return m
}

func (m *Manager) GetMainContainer() *fyne.Container {
	return container.NewBorder(
		m.toolbar.GetContainer(),
		m.statusBar.GetContainer(),
		nil, nil,
		m.imageDisplay.GetContainer(),
	)
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) Prompts() *Prompts {
	return m.prompts
}

func (m *Manager) Notifier() *Notifier {
	return m.notifier
}

func (m *Manager) SetActionHandler(action models.Action, handler func()) {
	m.toolbar.SetHandler(action, handler)
}

func (m *Manager) ApplyActions(enabled models.ActionSet) {
	fyne.Do(func() {
		m.toolbar.ApplyActions(enabled)
	})
}

// ShowImage converts img right away and hands the result to the view. img may be
// released once ShowImage returns.
func (m *Manager) ShowImage(img *models.Image) {
	if img == nil {
		return
	}

	display, err := ToDisplayImage(img, m.maxDisplay)
	if err != nil {
		m.ShowError("Display Error", err)
		return
	}

	width, height, source := img.Width(), img.Height(), img.Source()
	fyne.Do(func() {
		m.imageDisplay.SetImage(display)
		m.statusBar.SetImageInfo(width, height, source)
	})

	m.logger.Debug("GUIManager", "image displayed", map[string]interface{}{
		"width":          width,
		"height":         height,
		"display_bounds": display.Bounds().String(),
	})
}

func (m *Manager) UpdateStatus(status string) {
	fyne.Do(func() {
		m.statusBar.SetStatus(status)
	})
}

func (m *Manager) ShowError(title string, err error) {
	m.logger.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})

	fyne.Do(func() {
		dialog.ShowError(err, m.window)
	})
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)
}
