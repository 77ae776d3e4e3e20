package app

import (
	"context"
	"sync"
	"time"

	"image-processor/internal/logger"
	"image-processor/internal/services"
	"image-processor/internal/timing"
)

const (
	// CaptureWaitTimeout bounds how long shutdown waits for a running capture loop.
	CaptureWaitTimeout = 5 * time.Second

	// ShutdownTimeout is the budget for the whole lifecycle shutdown.
	ShutdownTimeout = CaptureWaitTimeout + 5*time.Second
)

type shutdowner interface {
	Shutdown()
}

type Lifecycle struct {
	cancel     context.CancelFunc
	handlers   *Handlers
	guiManager shutdowner
	session    *services.SessionService
	tracker    *timing.Tracker
	logger     logger.Logger
	once       sync.Once
}

func NewLifecycle(cancel context.CancelFunc, h *Handlers, gm shutdowner, ss *services.SessionService, tracker *timing.Tracker, log logger.Logger) *Lifecycle {
	return &Lifecycle{
		cancel:     cancel,
		handlers:   h,
		guiManager: gm,
		session:    ss,
		tracker:    tracker,
		logger:     log,
	}
}

// Shutdown stops background work and releases the session buffers. Later calls are no-ops.
func (l *Lifecycle) Shutdown() {
	l.once.Do(l.shutdown)
}

func (l *Lifecycle) shutdown() {
	l.logger.Info("Lifecycle", "shutdown sequence initiated", nil)

	// A running capture loop notices the cancelled context on its next frame.
	if l.cancel != nil {
		l.cancel()
	}

	if l.handlers != nil && !l.handlers.Wait(CaptureWaitTimeout) {
		l.logger.Warning("Lifecycle", "background work still running", map[string]interface{}{
			"timeout": CaptureWaitTimeout.String(),
		})
	}

	if l.guiManager != nil {
		l.guiManager.Shutdown()
		l.logger.Debug("Lifecycle", "GUI manager shutdown completed", nil)
	}

	if l.tracker != nil {
		for _, op := range []string{"decode", "isolate_channel", "rotate", "negate", "draw_circle", "encode"} {
			if avg := l.tracker.GetAverageTime(op); avg > 0 {
				l.logger.Debug("Lifecycle", "operation timing", map[string]interface{}{
					"operation": op,
					"average":   avg.String(),
					"samples":   len(l.tracker.GetTimings(op)),
				})
			}
		}
	}

	if l.session != nil {
		l.session.Session().Shutdown()
	}

	l.logger.Info("Lifecycle", "shutdown sequence completed", nil)
}
