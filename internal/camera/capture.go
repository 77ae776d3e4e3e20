package camera

import (
	"context"
	"fmt"
	"sync"

	"image-processor/internal/logger"
	"image-processor/internal/models"
)

// Notifier surfaces capture progress to the user.
type Notifier interface {
	// Starting is shown while the device opens and until the first frame arrives.
	Starting()
	DismissStarting()
	Warning(err error)
}

// Outcome describes how a capture loop ended.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Capture runs one blocking preview-and-accept loop over a Device. It is single use:
// once Closed it cannot be run again.
type Capture struct {
	device   Device
	preview  Preview
	input    Input
	notifier Notifier
	logger   logger.Logger

	mu      sync.Mutex
	state   State
	outcome Outcome
	frames  int
}

func NewCapture(device Device, preview Preview, input Input, notifier Notifier, log logger.Logger) *Capture {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Capture{
		device:   device,
		preview:  preview,
		input:    input,
		notifier: notifier,
		logger:   log,
		state:    StateIdle,
	}
}

func (c *Capture) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Outcome is meaningful once State is Closed.
func (c *Capture) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Frames reports how many frames reached the preview.
func (c *Capture) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

func (c *Capture) transition(to State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.CanTransitionTo(to) {
		return &TransitionError{From: c.state, To: to}
	}

	c.logger.Debug("Capture", "state transition", map[string]interface{}{
		"from": c.state.String(),
		"to":   to.String(),
	})
	c.state = to
	return nil
}

// Run opens the device and previews frames until the user accepts or cancels, the
// device stops producing frames, or ctx is done. An accepted frame is returned and
// owned by the caller; cancellation returns (nil, nil). Device failures wrap
// ErrDeviceUnavailable and have already been reported through the Notifier.
func (c *Capture) Run(ctx context.Context) (*models.Image, error) {
	if err := c.transition(StateOpening); err != nil {
		return nil, err
	}

	c.notifier.Starting()
	c.logger.Info("Capture", "opening device", map[string]interface{}{
		"device": c.device.Name(),
	})

	if err := c.device.Open(); err != nil {
		c.notifier.DismissStarting()
		c.finish(OutcomeFailed)
		// Close after a failed open must not leak a half-initialised handle.
		c.closeDevice()
		return nil, c.fail(err)
	}

	defer c.closeDevice()
	defer c.preview.Close()

	if err := c.transition(StatePreviewing); err != nil {
		c.notifier.DismissStarting()
		c.finish(OutcomeFailed)
		return nil, err
	}

	starting := true
	for {
		if err := ctx.Err(); err != nil {
			if starting {
				c.notifier.DismissStarting()
			}
			c.finish(OutcomeCancelled)
			return nil, err
		}

		frame, err := c.device.ReadFrame()
		if starting {
			c.notifier.DismissStarting()
			starting = false
		}
		if err != nil {
			c.finish(OutcomeFailed)
			return nil, c.fail(err)
		}

		c.preview.Show(frame)
		c.mu.Lock()
		c.frames++
		c.mu.Unlock()

		switch c.input.PollKey() {
		case KeyAccept:
			c.finish(OutcomeAccepted)
			c.logger.Info("Capture", "frame accepted", frame.Fields())
			return frame, nil
		case KeyCancel:
			frame.Close()
			c.finish(OutcomeCancelled)
			c.logger.Info("Capture", "capture cancelled", nil)
			return nil, nil
		default:
			frame.Close()
		}
	}
}

func (c *Capture) fail(cause error) error {
	err := fmt.Errorf("%w: %v", ErrDeviceUnavailable, cause)
	c.logger.Error("Capture", err, map[string]interface{}{
		"device": c.device.Name(),
	})
	c.notifier.Warning(err)
	return err
}

func (c *Capture) finish(outcome Outcome) {
	c.mu.Lock()
	c.outcome = outcome
	c.mu.Unlock()
}

// closeDevice releases the device and moves to Closed. Later calls are no-ops.
func (c *Capture) closeDevice() {
	c.mu.Lock()
	closed := c.state == StateClosed
	c.mu.Unlock()
	if closed {
		return
	}

	if err := c.device.Close(); err != nil {
		c.logger.Warning("Capture", "device close failed", map[string]interface{}{
			"device": c.device.Name(),
			"error":  err.Error(),
		})
	}
	_ = c.transition(StateClosed)
}
