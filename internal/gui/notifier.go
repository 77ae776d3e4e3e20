package gui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const (
	MessageStarting = "Webcam is starting, please wait."
	MessageWarning  = "Check the webcam and try again."
	MessageCaptured = "Photo captured successfully!"
)

// Notifier shows the capture notifications. Its methods may be called from any
// goroutine; dialogs are created on the UI thread.
type Notifier struct {
	window fyne.Window

	mu       sync.Mutex
	starting dialog.Dialog
}

func NewNotifier(window fyne.Window) *Notifier {
	return &Notifier{window: window}
}

func (n *Notifier) Starting() {
	fyne.Do(func() {
		d := dialog.NewCustomWithoutButtons("Capture", widget.NewLabel(MessageStarting), n.window)

		n.mu.Lock()
		previous := n.starting
		n.starting = d
		n.mu.Unlock()

		if previous != nil {
			previous.Hide()
		}
		d.Show()
	})
}

func (n *Notifier) DismissStarting() {
	fyne.Do(func() {
		n.mu.Lock()
		d := n.starting
		n.starting = nil
		n.mu.Unlock()

		if d != nil {
			d.Hide()
		}
	})
}

// Warning reports a camera failure. err is logged by the caller; the dialog text is fixed.
func (n *Notifier) Warning(err error) {
	fyne.Do(func() {
		dialog.ShowInformation("Warning", MessageWarning, n.window)
	})
}

func (n *Notifier) Captured() {
	fyne.Do(func() {
		dialog.ShowInformation("Capture", MessageCaptured, n.window)
	})
}
