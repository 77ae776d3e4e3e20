package models

import (
	"errors"
	"sync"
)

// ErrSessionBusy is returned when an edit is requested while a load or capture owns the session.
var ErrSessionBusy = errors.New("session busy loading or capturing")

// Session holds at most one stored image plus the buffer currently shown.
//
// The stored image only changes through Replace (file load or camera capture).
// Transformations run inside Apply, under the same lock Replace takes, so a buffer
// is never released while an OpenCV call is reading it.
type Session struct {
	mu        sync.RWMutex
	current   *Image
	displayed *Image
	capturing bool
	loading   bool
}

func NewSession() *Session {
	return &Session{}
}

// Current returns the stored image or nil. The session keeps ownership; use Apply or
// Inspect to read pixels while other goroutines may replace it.
func (s *Session) Current() *Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Displayed returns the buffer most recently sent to the display, or nil.
func (s *Session) Displayed() *Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayed
}

func (s *Session) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Replace stores img as the session image, shows it, and closes whatever it displaces.
func (s *Session) Replace(img *Image) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.displayed != nil && s.displayed != s.current && s.displayed != img {
		s.displayed.Close()
	}
	if s.current != nil && s.current != img {
		s.current.Close()
	}

	s.current = img
	s.displayed = img
}

// SetDisplayed records img as the visible buffer. A previous derived buffer is closed;
// the stored image never is.
func (s *Session) SetDisplayed(img *Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setDisplayedLocked(img)
}

func (s *Session) setDisplayedLocked(img *Image) {
	if s.displayed != nil && s.displayed != s.current && s.displayed != img {
		s.displayed.Close()
	}
	s.displayed = img
}

// Apply runs fn on the stored image with the session locked and displays its result.
// Without a stored image it returns (nil, nil); while a load or capture is running it
// returns ErrSessionBusy. fn must not call back into the session.
func (s *Session) Apply(fn func(current *Image) (*Image, error)) (*Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading || s.capturing {
		return nil, ErrSessionBusy
	}
	if s.current == nil {
		return nil, nil
	}

	result, err := fn(s.current)
	if err != nil || result == nil {
		return nil, err
	}

	s.setDisplayedLocked(result)
	return result, nil
}

// ShowCurrent makes the stored image the displayed one again and returns it.
// It returns nil when there is nothing stored or the session is busy.
func (s *Session) ShowCurrent() *Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.loading || s.capturing {
		return nil
	}
	s.setDisplayedLocked(s.current)
	return s.current
}

// Inspect calls fn with both buffers under the read lock. Either may be nil.
// fn must not call back into the session.
func (s *Session) Inspect(fn func(current, displayed *Image) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loading || s.capturing {
		return ErrSessionBusy
	}
	return fn(s.current, s.displayed)
}

// BeginLoad marks a background load as running. It fails while another load or a
// capture is in progress.
func (s *Session) BeginLoad() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading || s.capturing {
		return false
	}
	s.loading = true
	return true
}

func (s *Session) EndLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// BeginCapture marks a capture loop as running. It fails while a load or another
// capture is in progress.
func (s *Session) BeginCapture() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capturing || s.loading {
		return false
	}
	s.capturing = true
	return true
}

func (s *Session) EndCapture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capturing = false
}

func (s *Session) IsCapturing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capturing
}

// Busy reports whether a load or capture currently owns the session.
func (s *Session) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading || s.capturing
}

// State snapshots the fields EnabledActions depends on.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		HasImage:     s.current != nil,
		HasDisplayed: s.displayed != nil,
		Capturing:    s.capturing,
		Loading:      s.loading,
	}
}

// Clear releases every buffer the session holds.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.displayed != nil && s.displayed != s.current {
		s.displayed.Close()
	}
	if s.current != nil {
		s.current.Close()
	}

	s.current = nil
	s.displayed = nil
}

func (s *Session) Shutdown() {
	s.Clear()
}
