package gui

import (
	"fmt"
	"image"

	"image-processor/internal/models"
	"image-processor/internal/opencv/conversion"

	"github.com/disintegration/imaging"
)

// ToDisplayImage converts img for the embedded view, shrinking it so its longest
// side is at most maxSize. Images that already fit are returned at full size.
func ToDisplayImage(img *models.Image, maxSize int) (image.Image, error) {
	rgba, err := conversion.ToImage(img)
	if err != nil {
		return nil, fmt.Errorf("display conversion failed: %w", err)
	}

	b := rgba.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return rgba, nil
	}

	return imaging.Fit(rgba, maxSize, maxSize, imaging.Lanczos), nil
}
