package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"image-processor/internal/camera"
	"image-processor/internal/logger"
	"image-processor/internal/models"
	"image-processor/internal/services"
	"image-processor/internal/transform"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// View is the part of the main window the handlers drive.
type View interface {
	GetWindow() fyne.Window
	ShowImage(img *models.Image)
	ApplyActions(enabled models.ActionSet)
	UpdateStatus(status string)
	ShowError(title string, err error)
}

type Prompter interface {
	Int(title, label string, lo, hi, def int, cb func(int, bool))
	Choice(title, label string, options []string, cb func(string, bool))
}

// CaptureNotifier adds the success message shown once an accepted frame is on screen.
type CaptureNotifier interface {
	camera.Notifier
	Captured()
}

// CaptureFactory builds a fresh single-use capture for each request.
type CaptureFactory func(n camera.Notifier) services.CaptureRunner

type Handlers struct {
	ctx        context.Context
	session    *services.SessionService
	view       View
	prompts    Prompter
	notifier   CaptureNotifier
	newCapture CaptureFactory
	logger     logger.Logger
	wg         sync.WaitGroup
}

func NewHandlers(ctx context.Context, ss *services.SessionService, view View, prompts Prompter, notifier CaptureNotifier, newCapture CaptureFactory, log logger.Logger) *Handlers {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Handlers{
		ctx:        ctx,
		session:    ss,
		view:       view,
		prompts:    prompts,
		notifier:   notifier,
		newCapture: newCapture,
		logger:     log,
	}
}

func (h *Handlers) HandleLoad() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			h.view.ShowError("File Load Error", err)
			return
		}
		if reader == nil {
			return
		}

		h.startLoad(reader, reader.URI().Name())
	}, h.view.GetWindow())

	d.SetFilter(storage.NewExtensionFileFilter(services.SupportedExtensions))
	d.Show()
}

// startLoad decodes r on a worker goroutine and closes it. Every action stays disabled
// until the new image is on screen. It reports whether a load was started.
func (h *Handlers) startLoad(r io.ReadCloser, name string) bool {
	if !services.IsSupported(name) {
		h.logger.Warning("Handlers", "unsupported file type", map[string]interface{}{
			"name": name,
		})
		r.Close()
		return false
	}

	if !h.session.Session().BeginLoad() {
		h.logger.Warning("Handlers", "session busy, load ignored", map[string]interface{}{
			"name": name,
		})
		r.Close()
		return false
	}

	h.view.ApplyActions(models.ActionSet{})
	h.view.UpdateStatus("Loading image...")

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer r.Close()
		h.loadFrom(r, name)
	}()
	return true
}

// loadFrom decodes r into the session and displays it, then releases the load flag.
// Undecodable input only logs a warning.
func (h *Handlers) loadFrom(r io.Reader, name string) {
	defer h.refreshActions()
	defer h.session.Session().EndLoad()

	img, err := h.session.LoadFromReader(r, name)
	if err != nil {
		h.view.UpdateStatus("Ready")
		return
	}

	h.view.ShowImage(img)
	h.view.UpdateStatus("Image loaded: " + name)
}

// HandleCapture runs the camera loop on a worker goroutine. Every action stays
// disabled until the loop exits.
func (h *Handlers) HandleCapture() {
	if h.session.Session().Busy() {
		return
	}

	h.view.ApplyActions(models.ActionSet{})
	h.view.UpdateStatus("Capturing... SPACE to take the photo, ESC to cancel")

	runner := h.newCapture(h.notifier)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer h.refreshActions()

		// HighGUI windows belong to the thread that created them.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		img, err := h.session.Capture(h.ctx, runner)
		switch {
		case errors.Is(err, context.Canceled):
			h.logger.Info("Handlers", "capture aborted by shutdown", nil)
		case errors.Is(err, services.ErrCaptureInProgress):
			h.logger.Warning("Handlers", "session busy, capture ignored", nil)
		case err != nil:
			// already surfaced by the capture notifier
			h.view.UpdateStatus("Ready")
		case img == nil:
			h.view.UpdateStatus("Capture cancelled")
		default:
			h.view.ShowImage(img)
			h.view.UpdateStatus("Photo captured")
			h.notifier.Captured()
		}
	}()
}

func (h *Handlers) HandleShowOriginal() {
	img := h.session.ShowOriginal()
	if img == nil {
		return
	}
	h.view.ShowImage(img)
	h.view.UpdateStatus("Showing original")
	h.refreshActions()
}

func (h *Handlers) HandleIsolateChannel() {
	h.prompts.Choice("Channel", "Keep channel:", models.ChannelLabels, func(label string, ok bool) {
		if !ok {
			return
		}

		ch, err := models.ParseChannel(label)
		if err != nil {
			h.view.ShowError("Channel Error", err)
			return
		}

		h.show(h.session.IsolateChannel(ch))
	})
}

func (h *Handlers) HandleRotate() {
	label := fmt.Sprintf("Angle in degrees (%d to %d):", transform.MinAngle, transform.MaxAngle)
	h.prompts.Int("Rotate", label, transform.MinAngle, transform.MaxAngle, 0, func(angle int, ok bool) {
		if !ok {
			return
		}
		h.show(h.session.Rotate(angle))
	})
}

func (h *Handlers) HandleNegate() {
	h.show(h.session.Negate())
}

// HandleDrawCircle asks for the centre and then a radius bounded by that centre.
func (h *Handlers) HandleDrawCircle() {
	maxX, maxY, ok := h.session.CircleBounds()
	if !ok {
		return
	}

	h.prompts.Int("Circle", fmt.Sprintf("X (0 to %d):", maxX), 0, maxX, maxX/2, func(x int, ok bool) {
		if !ok {
			return
		}

		h.prompts.Int("Circle", fmt.Sprintf("Y (0 to %d):", maxY), 0, maxY, maxY/2, func(y int, ok bool) {
			if !ok {
				return
			}

			maxRadius, _ := h.session.MaxRadius(x, y)
			if maxRadius < 1 {
				h.view.ShowError("Circle", fmt.Errorf("%w: no room for a circle centred on the edge at (%d, %d)",
					transform.ErrInvalidCircle, x, y))
				return
			}

			h.prompts.Int("Circle", fmt.Sprintf("Radius (max %d):", maxRadius), 1, maxRadius, maxRadius, func(r int, ok bool) {
				if !ok {
					return
				}
				h.show(h.session.DrawCircle(transform.Circle{X: x, Y: y, Radius: r}))
			})
		})
	})
}

func (h *Handlers) HandleExport() {
	if h.session.Session().Displayed() == nil {
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			h.view.ShowError("File Save Error", err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := h.session.Export(writer, writer.URI().Name()); err != nil {
			h.view.ShowError("Image Save Error", err)
			return
		}
		h.view.UpdateStatus("Image saved: " + writer.URI().Name())
	}, h.view.GetWindow())

	d.SetFilter(storage.NewExtensionFileFilter(services.SupportedExtensions))
	d.SetFileName("image.png")
	d.Show()
}

func (h *Handlers) show(img *models.Image, err error) {
	if errors.Is(err, models.ErrSessionBusy) {
		return
	}
	if err != nil {
		h.view.ShowError("Processing Error", err)
		return
	}
	if img == nil {
		return
	}

	h.view.ShowImage(img)
	h.view.UpdateStatus(fmt.Sprintf("Applied %s", img.Source()))
	h.refreshActions()
}

func (h *Handlers) refreshActions() {
	h.view.ApplyActions(h.session.EnabledActions())
}

// Wait blocks until background loads and captures finish or timeout elapses.
// It reports whether everything finished.
func (h *Handlers) Wait(timeout time.Duration) bool {
	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return true
	case <-time.After(timeout):
		return false
	}
}
