package safe

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestNewMat_InvalidDimensions(t *testing.T) {
	if _, err := NewMat(0, 10, gocv.MatTypeCV8UC3); err == nil {
		t.Error("expected error for zero rows")
	}
	if _, err := NewMat(10, -1, gocv.MatTypeCV8UC3); err == nil {
		t.Error("expected error for negative cols")
	}
}

func TestMat_CloseIsIdempotent(t *testing.T) {
	m, err := NewMat(4, 6, gocv.MatTypeCV8UC3)
	if err != nil {
		t.Fatalf("NewMat() error = %v", err)
	}

	if m.Rows() != 4 || m.Cols() != 6 || m.Channels() != 3 {
		t.Fatalf("unexpected shape %dx%dx%d", m.Cols(), m.Rows(), m.Channels())
	}
	if m.Step() < 6*3 {
		t.Errorf("Step() = %d, want >= %d", m.Step(), 6*3)
	}

	m.Close()
	m.Close()

	if m.IsValid() {
		t.Error("Mat still valid after Close")
	}
	if !m.Empty() || m.Rows() != 0 {
		t.Error("closed Mat should report empty")
	}
	if _, err := m.Clone(); err == nil {
		t.Error("Clone of closed Mat should fail")
	}
}

func TestMat_CloneIsIndependent(t *testing.T) {
	m, err := NewMat(2, 2, gocv.MatTypeCV8UC3)
	if err != nil {
		t.Fatalf("NewMat() error = %v", err)
	}
	defer m.Close()

	if err := m.SetUCharAt3(0, 0, 1, 42); err != nil {
		t.Fatalf("SetUCharAt3() error = %v", err)
	}

	c, err := m.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	defer c.Close()

	if err := m.SetUCharAt3(0, 0, 1, 7); err != nil {
		t.Fatalf("SetUCharAt3() error = %v", err)
	}

	v, err := c.GetUCharAt3(0, 0, 1)
	if err != nil {
		t.Fatalf("GetUCharAt3() error = %v", err)
	}
	if v != 42 {
		t.Errorf("clone value = %d, want 42", v)
	}
	if c.ID() == m.ID() {
		t.Error("clone shares ID with source")
	}
}

func TestValidators(t *testing.T) {
	if err := ValidateCoordinates(0, 0, 1, 1, "test"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateCoordinates(1, 0, 1, 1, "test"); err == nil {
		t.Error("expected row out of bounds")
	}
	if err := ValidateChannel(3, 3, "test"); err == nil {
		t.Error("expected channel out of bounds")
	}
	if err := ValidateDimensions(maxDimension+1, 1, "test"); err == nil {
		t.Error("expected oversize error")
	}
	if err := ValidateMatForOperation(nil, "test"); err == nil {
		t.Error("expected nil Mat error")
	}
}
