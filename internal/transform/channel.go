package transform

import (
	"fmt"

	"image-processor/internal/models"

	"gocv.io/x/gocv"
)

// IsolateChannel keeps ch and zeroes the two other channels of every pixel.
func IsolateChannel(img *models.Image, ch models.Channel) (*models.Image, error) {
	if err := validateInput(img, "isolate_channel"); err != nil {
		return nil, err
	}

	keep, err := img.Order().Index(ch)
	if err != nil {
		return nil, fmt.Errorf("isolate_channel: %w", err)
	}

	planes := gocv.Split(img.Mat().GetMat())
	defer func() {
		for i := range planes {
			planes[i].Close()
		}
	}()

	if len(planes) != 3 {
		return nil, fmt.Errorf("isolate_channel: expected 3 planes, got %d", len(planes))
	}

	for i := range planes {
		if i != keep {
			planes[i].SetTo(gocv.NewScalar(0, 0, 0, 0))
		}
	}

	dst := gocv.NewMat()
	gocv.Merge(planes, &dst)

	return adopt(img, dst, "isolate_channel:"+ch.String())
}
