package transform

import (
	"image-processor/internal/models"

	"gocv.io/x/gocv"
)

// Negate replaces every channel value v with MaxIntensity - v.
func Negate(img *models.Image) (*models.Image, error) {
	if err := validateInput(img, "negate"); err != nil {
		return nil, err
	}

	dst := gocv.NewMat()
	gocv.BitwiseNot(img.Mat().GetMat(), &dst)

	return adopt(img, dst, "negate")
}
