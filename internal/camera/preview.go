package camera

import (
	"image-processor/internal/models"

	"gocv.io/x/gocv"
)

// Key is a user signal read while previewing.
type Key int

const (
	KeyNone Key = iota
	KeyAccept
	KeyCancel
)

const (
	keySpace  = 32
	keyEscape = 27

	// PreviewTitle tells the user which keys the preview window understands.
	PreviewTitle = "Press SPACE to take a photo or ESCAPE to close the window"
)

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyAccept:
		return "Accept"
	case KeyCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// KeyFromCode maps a raw key code to a capture signal.
func KeyFromCode(code int) Key {
	switch code {
	case keySpace:
		return KeyAccept
	case keyEscape:
		return KeyCancel
	default:
		return KeyNone
	}
}

// Preview is the transient live surface used while capturing.
type Preview interface {
	Show(frame *models.Image)
	Close()
}

// Input reports the most recent user signal without blocking.
type Input interface {
	PollKey() Key
}

// WindowPreview is an OpenCV HighGUI window. It is both the preview surface and,
// because WaitKey pumps its events, the input source.
type WindowPreview struct {
	title  string
	window *gocv.Window
	delay  int
}

func NewWindowPreview(title string) *WindowPreview {
	if title == "" {
		title = PreviewTitle
	}
	return &WindowPreview{title: title, delay: 1}
}

func (p *WindowPreview) Show(frame *models.Image) {
	if frame == nil || !frame.Valid() {
		return
	}
	if p.window == nil {
		p.window = gocv.NewWindow(p.title)
	}

	if frame.Order() == models.OrderBGR {
		p.window.IMShow(frame.Mat().GetMat())
		return
	}

	// HighGUI expects BGR
	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(frame.Mat().GetMat(), &bgr, gocv.ColorRGBToBGR)
	p.window.IMShow(bgr)
}

func (p *WindowPreview) PollKey() Key {
	if p.window == nil {
		return KeyNone
	}
	return KeyFromCode(p.window.WaitKey(p.delay))
}

func (p *WindowPreview) Close() {
	if p.window == nil {
		return
	}
	p.window.Close()
	p.window = nil
}
