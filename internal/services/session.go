package services

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"time"

	"image-processor/internal/logger"
	"image-processor/internal/models"
	"image-processor/internal/timing"
	"image-processor/internal/transform"
)

// ErrCaptureInProgress is returned when a capture is requested while a load or another capture is running.
var ErrCaptureInProgress = errors.New("capture already in progress")

// CaptureRunner is satisfied by *camera.Capture.
type CaptureRunner interface {
	Run(ctx context.Context) (*models.Image, error)
}

// SessionService applies user actions to the session. Transformations read the stored
// image and publish their result as the displayed buffer; only loads and captures
// replace the stored image.
type SessionService struct {
	session   *models.Session
	images    *ImageService
	highlight color.RGBA
	logger    logger.Logger
	timing    *timing.Tracker
}

func NewSessionService(session *models.Session, images *ImageService, highlight color.RGBA, log logger.Logger, tracker *timing.Tracker) *SessionService {
	if session == nil {
		session = models.NewSession()
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if tracker == nil {
		tracker = timing.NewTracker(0)
	}
	if images == nil {
		images = NewImageService(log, tracker)
	}

	return &SessionService{
		session:   session,
		images:    images,
		highlight: highlight,
		logger:    log,
		timing:    tracker,
	}
}

func (ss *SessionService) Session() *models.Session {
	return ss.session
}

func (ss *SessionService) EnabledActions() models.ActionSet {
	return models.EnabledActions(ss.session.State())
}

// LoadFromFile decodes path and stores it. On failure the session is untouched.
func (ss *SessionService) LoadFromFile(path string) (*models.Image, error) {
	img, err := ss.images.DecodeFile(path)
	if err != nil {
		ss.logger.Warning("SessionService", "load failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return nil, err
	}

	return ss.store(img), nil
}

// LoadFromReader is LoadFromFile for content handed over by a file dialog.
func (ss *SessionService) LoadFromReader(r io.Reader, name string) (*models.Image, error) {
	img, err := ss.images.DecodeReader(r, name)
	if err != nil {
		ss.logger.Warning("SessionService", "load failed", map[string]interface{}{
			"path":  name,
			"error": err.Error(),
		})
		return nil, err
	}

	return ss.store(img), nil
}

func (ss *SessionService) store(img *models.Image) *models.Image {
	fields := img.Fields()
	ss.session.Replace(img)
	ss.logger.Info("SessionService", "image stored", fields)
	return img
}

// Capture runs c and stores the accepted frame. A cancelled capture returns (nil, nil)
// and leaves the session as it was.
func (ss *SessionService) Capture(ctx context.Context, c CaptureRunner) (*models.Image, error) {
	if !ss.session.BeginCapture() {
		return nil, ErrCaptureInProgress
	}
	defer ss.session.EndCapture()

	img, err := c.Run(ctx)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, nil
	}

	return ss.store(img), nil
}

// ShowOriginal re-displays the stored image, dropping any derived buffer.
func (ss *SessionService) ShowOriginal() *models.Image {
	return ss.session.ShowCurrent()
}

func (ss *SessionService) IsolateChannel(ch models.Channel) (*models.Image, error) {
	return ss.apply("isolate_channel", map[string]interface{}{"channel": ch.String()},
		func(img *models.Image) (*models.Image, error) {
			return transform.IsolateChannel(img, ch)
		})
}

func (ss *SessionService) Rotate(angle int) (*models.Image, error) {
	return ss.apply("rotate", map[string]interface{}{"angle": angle},
		func(img *models.Image) (*models.Image, error) {
			return transform.Rotate(img, angle)
		})
}

func (ss *SessionService) Negate() (*models.Image, error) {
	return ss.apply("negate", nil, transform.Negate)
}

func (ss *SessionService) DrawCircle(c transform.Circle) (*models.Image, error) {
	return ss.apply("draw_circle", map[string]interface{}{"x": c.X, "y": c.Y, "radius": c.Radius},
		func(img *models.Image) (*models.Image, error) {
			return transform.DrawFilledCircle(img, c, ss.highlight)
		})
}

// CircleBounds returns the largest valid centre coordinates for the stored image.
// ok is false when nothing is loaded or the session is busy.
func (ss *SessionService) CircleBounds() (maxX, maxY int, ok bool) {
	_ = ss.session.Inspect(func(current, _ *models.Image) error {
		if current != nil {
			maxX, maxY = transform.CenterBounds(current.Width(), current.Height())
			ok = true
		}
		return nil
	})
	return maxX, maxY, ok
}

// MaxRadius returns the largest radius that keeps a circle at (x, y) inside the stored image.
func (ss *SessionService) MaxRadius(x, y int) (radius int, ok bool) {
	_ = ss.session.Inspect(func(current, _ *models.Image) error {
		if current != nil {
			radius = transform.MaxRadius(current.Width(), current.Height(), x, y)
			ok = true
		}
		return nil
	})
	return radius, ok
}

// Export encodes the displayed buffer to w. name selects the format.
func (ss *SessionService) Export(w io.Writer, name string) error {
	err := ss.session.Inspect(func(_, displayed *models.Image) error {
		if displayed == nil {
			return fmt.Errorf("export: %w", transform.ErrNoImage)
		}
		return ss.images.Export(w, displayed, name)
	})
	if errors.Is(err, models.ErrSessionBusy) {
		return fmt.Errorf("export: %w", err)
	}
	return err
}

// apply runs op on the stored image under the session lock. Without one it does
// nothing and returns (nil, nil).
func (ss *SessionService) apply(operation string, fields map[string]interface{}, op func(*models.Image) (*models.Image, error)) (*models.Image, error) {
	var elapsed time.Duration
	result, err := ss.session.Apply(func(current *models.Image) (*models.Image, error) {
		span := ss.timing.Start(operation)
		defer func() { elapsed = span.End() }()
		return op(current)
	})

	switch {
	case errors.Is(err, models.ErrSessionBusy):
		ss.logger.Warning("SessionService", "session busy, ignoring", map[string]interface{}{
			"operation": operation,
		})
		return nil, err
	case err != nil:
		ss.logger.Error("SessionService", err, map[string]interface{}{
			"operation": operation,
		})
		return nil, err
	case result == nil:
		ss.logger.Debug("SessionService", "no image loaded, ignoring", map[string]interface{}{
			"operation": operation,
		})
		return nil, nil
	}

	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["operation"] = operation
	fields["duration_ms"] = elapsed.Milliseconds()
	ss.logger.Info("SessionService", "transformation applied", fields)

	return result, nil
}
