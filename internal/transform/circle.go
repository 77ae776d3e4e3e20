package transform

import (
	"fmt"
	"image"
	"image/color"

	"image-processor/internal/models"

	"gocv.io/x/gocv"
)

// Circle is a filled circle request. X and Y are pixel indices.
type Circle struct {
	X, Y   int
	Radius int
}

// CenterBounds returns the largest valid centre coordinates for an image of the given size.
func CenterBounds(width, height int) (maxX, maxY int) {
	return width - 1, height - 1
}

// MaxRadius is the distance from (x, y) to the nearest edge pixel, so a circle of that
// radius touches the border without crossing it. It is 0 for centres on the border or outside.
func MaxRadius(width, height, x, y int) int {
	maxX, maxY := CenterBounds(width, height)
	if x < 0 || y < 0 || x > maxX || y > maxY {
		return 0
	}
	return min(x, y, maxX-x, maxY-y)
}

// ValidateCircle rejects circles that would leave the image. Radius is never clamped.
func ValidateCircle(width, height int, c Circle) error {
	maxX, maxY := CenterBounds(width, height)
	if c.X < 0 || c.X > maxX || c.Y < 0 || c.Y > maxY {
		return fmt.Errorf("%w: centre (%d,%d) outside [0,%d]x[0,%d]", ErrInvalidCircle, c.X, c.Y, maxX, maxY)
	}

	limit := MaxRadius(width, height, c.X, c.Y)
	if c.Radius < 1 || c.Radius > limit {
		return fmt.Errorf("%w: radius %d not in [1, %d]", ErrInvalidCircle, c.Radius, limit)
	}
	return nil
}

// DrawFilledCircle paints c in fill onto a copy of img.
func DrawFilledCircle(img *models.Image, c Circle, fill color.RGBA) (*models.Image, error) {
	if err := validateInput(img, "draw_circle"); err != nil {
		return nil, err
	}

	if err := ValidateCircle(img.Width(), img.Height(), c); err != nil {
		return nil, err
	}

	out, err := img.Clone()
	if err != nil {
		return nil, fmt.Errorf("draw_circle: %w", err)
	}

	// gocv maps color.RGBA onto a BGR scalar; swap for RGB buffers.
	if img.Order() == models.OrderRGB {
		fill.R, fill.B = fill.B, fill.R
	}

	dst := out.Mat().GetMat()
	gocv.Circle(&dst, image.Pt(c.X, c.Y), c.Radius, fill, -1)

	return out, nil
}
