// Package transform holds the single-call OpenCV operations the editor offers.
// Every function reads its input and returns a newly allocated image; inputs are never mutated.
package transform

import (
	"errors"
	"fmt"

	"image-processor/internal/models"
	"image-processor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

var (
	ErrNoImage       = errors.New("no image loaded")
	ErrInvalidAngle  = errors.New("rotation angle out of range")
	ErrInvalidCircle = errors.New("invalid circle")
)

const (
	MinAngle = -360
	MaxAngle = 360

	// MaxIntensity is the largest value of an 8-bit channel.
	MaxIntensity = 255
)

func validateInput(img *models.Image, operation string) error {
	if img == nil || !img.Valid() {
		return fmt.Errorf("%s: %w", operation, ErrNoImage)
	}
	return safe.ValidateColorMat(img.Mat(), operation)
}

// adopt wraps dst as a derivative of src, closing dst if that fails.
func adopt(src *models.Image, dst gocv.Mat, operation string) (*models.Image, error) {
	mat, err := safe.Adopt(dst)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	out, err := src.Derive(mat, operation)
	if err != nil {
		mat.Close()
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return out, nil
}
