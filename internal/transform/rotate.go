package transform

import (
	"fmt"
	"image"
	"math"

	"image-processor/internal/models"

	"gocv.io/x/gocv"
)

// Rotate turns img by angle degrees (counter-clockwise for positive values) about its
// geometric centre with unit scale. The output keeps the input size; uncovered corners are black.
func Rotate(img *models.Image, angle int) (*models.Image, error) {
	if angle < MinAngle || angle > MaxAngle {
		return nil, fmt.Errorf("rotate: %w: %d not in [%d, %d]", ErrInvalidAngle, angle, MinAngle, MaxAngle)
	}

	if err := validateInput(img, "rotate"); err != nil {
		return nil, err
	}

	width, height := img.Width(), img.Height()
	m := rotationMatrix(float64(width)/2, float64(height)/2, float64(angle))
	defer m.Close()

	dst := gocv.NewMat()
	gocv.WarpAffine(img.Mat().GetMat(), &dst, m, image.Pt(width, height))

	return adopt(img, dst, fmt.Sprintf("rotate:%d", angle))
}

// rotationMatrix builds the 2x3 affine matrix for a rotation about a sub-pixel centre,
// the same matrix cv::getRotationMatrix2D produces. gocv.GetRotationMatrix2D takes an
// image.Point centre, which would truncate w/2 and h/2 for odd sizes.
func rotationMatrix(cx, cy, angleDeg float64) gocv.Mat {
	coeffs := rotationCoefficients(cx, cy, angleDeg)

	m := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			m.SetDoubleAt(row, col, coeffs[row][col])
		}
	}
	return m
}

func rotationCoefficients(cx, cy, angleDeg float64) [2][3]float64 {
	rad := angleDeg * math.Pi / 180
	alpha := math.Cos(rad)
	beta := math.Sin(rad)

	return [2][3]float64{
		{alpha, beta, (1-alpha)*cx - beta*cy},
		{-beta, alpha, beta*cx + (1-alpha)*cy},
	}
}
