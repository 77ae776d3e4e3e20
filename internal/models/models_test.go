package models

import (
	"errors"
	"testing"

	"image-processor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

func newTestImage(t *testing.T, w, h int) *Image {
	t.Helper()
	mat, err := safe.NewMat(h, w, gocv.MatTypeCV8UC3)
	if err != nil {
		t.Fatalf("NewMat() error = %v", err)
	}
	img, err := NewImage(mat, OrderBGR, "test")
	if err != nil {
		mat.Close()
		t.Fatalf("NewImage() error = %v", err)
	}
	return img
}

func TestNewImage_RejectsNonColour(t *testing.T) {
	mat, err := safe.NewMat(3, 3, gocv.MatTypeCV8UC1)
	if err != nil {
		t.Fatalf("NewMat() error = %v", err)
	}
	defer mat.Close()

	if _, err := NewImage(mat, OrderBGR, "gray"); err == nil {
		t.Error("expected error for single channel Mat")
	}
}

func TestImage_Attributes(t *testing.T) {
	img := newTestImage(t, 7, 5)
	defer img.Close()

	if img.Width() != 7 || img.Height() != 5 {
		t.Errorf("size = %dx%d, want 7x5", img.Width(), img.Height())
	}
	if img.Stride() < 7*3 {
		t.Errorf("Stride() = %d, want >= 21", img.Stride())
	}
	if img.Order() != OrderBGR {
		t.Errorf("Order() = %v", img.Order())
	}
}

func TestChannelOrder_Index(t *testing.T) {
	tests := []struct {
		order ChannelOrder
		ch    Channel
		want  int
	}{
		{OrderBGR, ChannelBlue, 0},
		{OrderBGR, ChannelGreen, 1},
		{OrderBGR, ChannelRed, 2},
		{OrderRGB, ChannelRed, 0},
		{OrderRGB, ChannelGreen, 1},
		{OrderRGB, ChannelBlue, 2},
	}

	for _, tt := range tests {
		t.Run(tt.order.String()+"/"+tt.ch.String(), func(t *testing.T) {
			got, err := tt.order.Index(tt.ch)
			if err != nil {
				t.Fatalf("Index() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Index() = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := OrderBGR.Index(Channel(9)); err == nil {
		t.Error("expected error for unknown channel")
	}
}

func TestParseChannel(t *testing.T) {
	for _, label := range ChannelLabels {
		ch, err := ParseChannel(label)
		if err != nil {
			t.Fatalf("ParseChannel(%q) error = %v", label, err)
		}
		if ch.String() != label {
			t.Errorf("round trip %q -> %v", label, ch)
		}
	}
	if _, err := ParseChannel("Alpha"); err == nil {
		t.Error("expected error for unknown label")
	}
}

func TestSession_ReplaceClosesPrevious(t *testing.T) {
	s := NewSession()
	if s.Current() != nil || s.HasImage() {
		t.Fatal("new session should be empty")
	}

	first := newTestImage(t, 2, 2)
	s.Replace(first)

	derived := newTestImage(t, 2, 2)
	s.SetDisplayed(derived)

	second := newTestImage(t, 3, 3)
	s.Replace(second)
	defer s.Clear()

	if first.Valid() {
		t.Error("replaced image should be closed")
	}
	if derived.Valid() {
		t.Error("displayed derivative should be closed on replace")
	}
	if s.Current() != second || s.Displayed() != second {
		t.Error("replacement should become current and displayed")
	}
}

func TestSession_SetDisplayedKeepsStoredImage(t *testing.T) {
	s := NewSession()
	stored := newTestImage(t, 2, 2)
	s.Replace(stored)
	defer s.Clear()

	a := newTestImage(t, 2, 2)
	s.SetDisplayed(a)
	b := newTestImage(t, 2, 2)
	s.SetDisplayed(b)

	if a.Valid() {
		t.Error("previous derived buffer should be closed")
	}
	if !stored.Valid() {
		t.Error("stored image must not be closed by display updates")
	}

	s.SetDisplayed(stored)
	if b.Valid() {
		t.Error("derived buffer should be closed when the original is shown again")
	}
	if !stored.Valid() || s.Displayed() != stored {
		t.Error("stored image should be displayed and still valid")
	}
}

func TestSession_Capture(t *testing.T) {
	s := NewSession()
	if !s.BeginCapture() {
		t.Fatal("first BeginCapture should succeed")
	}
	if s.BeginCapture() {
		t.Error("second BeginCapture should fail while capturing")
	}
	if !s.State().Capturing {
		t.Error("State().Capturing = false")
	}
	s.EndCapture()
	if s.IsCapturing() {
		t.Error("still capturing after EndCapture")
	}
}

func TestSession_LoadAndCaptureExclusive(t *testing.T) {
	s := NewSession()
	if !s.BeginLoad() {
		t.Fatal("first BeginLoad should succeed")
	}
	if s.BeginLoad() || s.BeginCapture() {
		t.Error("a second load or a capture must not start during a load")
	}
	if !s.State().Loading || !s.Busy() {
		t.Error("session should report the load")
	}
	s.EndLoad()

	if !s.BeginCapture() {
		t.Fatal("BeginCapture should succeed once the load ends")
	}
	if s.BeginLoad() {
		t.Error("BeginLoad must fail during a capture")
	}
	s.EndCapture()
	if s.Busy() {
		t.Error("still busy after EndCapture")
	}
}

func TestSession_Apply(t *testing.T) {
	s := NewSession()
	defer s.Clear()

	calls := 0
	op := func(current *Image) (*Image, error) {
		calls++
		return current.Clone()
	}

	if img, err := s.Apply(op); img != nil || err != nil || calls != 0 {
		t.Fatalf("Apply without image = (%v, %v), calls %d; want a silent no-op", img, err, calls)
	}

	stored := newTestImage(t, 2, 2)
	s.Replace(stored)

	first, err := s.Apply(op)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if s.Displayed() != first || s.Current() != stored {
		t.Error("result should be displayed without replacing the stored image")
	}

	s.BeginLoad()
	if _, err := s.Apply(op); !errors.Is(err, ErrSessionBusy) {
		t.Errorf("Apply during load error = %v, want ErrSessionBusy", err)
	}
	if s.ShowCurrent() != nil {
		t.Error("ShowCurrent should refuse during a load")
	}
	if err := s.Inspect(func(_, _ *Image) error { return nil }); !errors.Is(err, ErrSessionBusy) {
		t.Errorf("Inspect during load error = %v, want ErrSessionBusy", err)
	}
	s.EndLoad()

	if s.ShowCurrent() != stored || first.Valid() {
		t.Error("ShowCurrent should display the stored image and release the derived one")
	}

	failing := func(*Image) (*Image, error) { return nil, errors.New("boom") }
	if _, err := s.Apply(failing); err == nil {
		t.Error("Apply should return the operation's error")
	}
	if s.Displayed() != stored {
		t.Error("a failed operation must not change the display")
	}
}

func TestEnabledActions(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		enabled []Action
	}{
		{"empty", State{}, []Action{ActionLoadFile, ActionCapture}},
		{"loaded", State{HasImage: true, HasDisplayed: true}, AllActions},
		{"capturing", State{HasImage: true, HasDisplayed: true, Capturing: true}, nil},
		{"loading", State{HasImage: true, HasDisplayed: true, Loading: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := EnabledActions(tt.state)
			if len(set) != len(tt.enabled) {
				t.Errorf("got %d actions, want %d", len(set), len(tt.enabled))
			}
			for _, a := range tt.enabled {
				if !set.Has(a) {
					t.Errorf("%v should be enabled", a)
				}
			}
		})
	}
}
