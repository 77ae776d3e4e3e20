// Package camera drives a webcam through an explicit capture state machine.
package camera

import (
	"errors"
	"fmt"

	"image-processor/internal/models"
	"image-processor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

var (
	// ErrDeviceUnavailable covers a device that cannot be opened or stops producing frames.
	ErrDeviceUnavailable = errors.New("camera device unavailable")
	// ErrEndOfStream is returned by Device.ReadFrame when no frame could be read.
	ErrEndOfStream = errors.New("camera frame stream ended")
)

// Device is a stateful frame source. Close must be safe to call after a failed Open.
type Device interface {
	Open() error
	ReadFrame() (*models.Image, error)
	Close() error
	Name() string
}

// VideoDevice reads frames from a local capture device through OpenCV.
type VideoDevice struct {
	index   int
	capture *gocv.VideoCapture
}

func NewVideoDevice(index int) *VideoDevice {
	return &VideoDevice{index: index}
}

func (d *VideoDevice) Name() string {
	return fmt.Sprintf("camera:%d", d.index)
}

func (d *VideoDevice) Open() error {
	if d.capture != nil {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(d.index)
	if err != nil {
		return fmt.Errorf("open %s: %w", d.Name(), err)
	}

	if !capture.IsOpened() {
		capture.Close()
		return fmt.Errorf("open %s: device did not start", d.Name())
	}

	d.capture = capture
	return nil
}

// ReadFrame returns a new BGR frame owned by the caller.
func (d *VideoDevice) ReadFrame() (*models.Image, error) {
	if d.capture == nil {
		return nil, fmt.Errorf("read %s: device not open", d.Name())
	}

	mat := gocv.NewMat()
	if ok := d.capture.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, ErrEndOfStream
	}

	sm, err := safe.Adopt(mat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEndOfStream, err)
	}

	frame, err := models.NewImage(sm, models.OrderBGR, d.Name())
	if err != nil {
		sm.Close()
		return nil, err
	}
	return frame, nil
}

func (d *VideoDevice) Close() error {
	if d.capture == nil {
		return nil
	}

	err := d.capture.Close()
	d.capture = nil
	return err
}
