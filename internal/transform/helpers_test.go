package transform

import (
	"testing"

	"image-processor/internal/models"
	"image-processor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// newPatternImage fills every byte with a value derived from its position so that
// channel mix-ups and shifted pixels are detectable.
func newPatternImage(t *testing.T, w, h int, order models.ChannelOrder) *models.Image {
	t.Helper()

	mat, err := safe.NewMat(h, w, gocv.MatTypeCV8UC3)
	if err != nil {
		t.Fatalf("NewMat() error = %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < 3; c++ {
				if err := mat.SetUCharAt3(y, x, c, patternValue(x, y, c)); err != nil {
					t.Fatalf("SetUCharAt3() error = %v", err)
				}
			}
		}
	}

	img, err := models.NewImage(mat, order, "pattern")
	if err != nil {
		mat.Close()
		t.Fatalf("NewImage() error = %v", err)
	}
	return img
}

func patternValue(x, y, c int) uint8 {
	return uint8((x*7 + y*13 + c*60 + 20) % 256)
}

func newBlackImage(t *testing.T, w, h int, order models.ChannelOrder) *models.Image {
	t.Helper()

	mat, err := safe.NewMat(h, w, gocv.MatTypeCV8UC3)
	if err != nil {
		t.Fatalf("NewMat() error = %v", err)
	}
	m := mat.GetMat()
	m.SetTo(gocv.NewScalar(0, 0, 0, 0))

	img, err := models.NewImage(mat, order, "black")
	if err != nil {
		mat.Close()
		t.Fatalf("NewImage() error = %v", err)
	}
	return img
}

func pixel(t *testing.T, img *models.Image, x, y int) [3]uint8 {
	t.Helper()

	var px [3]uint8
	for c := 0; c < 3; c++ {
		v, err := img.Mat().GetUCharAt3(y, x, c)
		if err != nil {
			t.Fatalf("GetUCharAt3(%d,%d,%d) error = %v", y, x, c, err)
		}
		px[c] = v
	}
	return px
}

func mustBytes(t *testing.T, img *models.Image) []byte {
	t.Helper()
	data, err := img.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	return data
}
