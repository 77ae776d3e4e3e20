package conversion

import (
	"fmt"
	"image"
	"image/color"

	"image-processor/internal/models"
	"image-processor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// ToImage converts a session image into an RGBA image for display, honouring its channel order.
func ToImage(src *models.Image) (*image.RGBA, error) {
	if src == nil || !src.Valid() {
		return nil, fmt.Errorf("image is nil or released")
	}

	mat := src.Mat()
	if !mat.IsContinuous() {
		// ROI views keep the parent's row step; a clone is packed.
		packed, err := mat.Clone()
		if err != nil {
			return nil, fmt.Errorf("pixel access failed: %w", err)
		}
		defer packed.Close()
		mat = packed
	}

	data, err := mat.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("pixel access failed: %w", err)
	}

	width, height, stride := mat.Cols(), mat.Rows(), mat.Step()
	if len(data) < stride*(height-1)+width*3 {
		return nil, fmt.Errorf("pixel buffer too small: %d bytes for %dx%d (stride %d)", len(data), width, height, stride)
	}

	rIdx, err := src.Order().Index(models.ChannelRed)
	if err != nil {
		return nil, err
	}
	gIdx, _ := src.Order().Index(models.ChannelGreen)
	bIdx, _ := src.Order().Index(models.ChannelBlue)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		out := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			px := row[x*3 : x*3+3]
			out[x*4+0] = px[rIdx]
			out[x*4+1] = px[gIdx]
			out[x*4+2] = px[bIdx]
			out[x*4+3] = 255
		}
	}

	return img, nil
}

// FromImage copies any Go image into an RGB ordered session image. Alpha is dropped.
func FromImage(src image.Image, source string) (*models.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if err := safe.ValidateDimensions(width, height, "FromImage"); err != nil {
		return nil, err
	}

	data := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			i := (y*width + x) * 3
			data[i+0] = c.R
			data[i+1] = c.G
			data[i+2] = c.B
		}
	}

	tmp, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, data)
	if err != nil {
		return nil, fmt.Errorf("Mat creation failed: %w", err)
	}
	defer tmp.Close()

	// Clone so the Mat no longer references Go memory.
	mat, err := safe.NewMatFromMat(tmp)
	if err != nil {
		return nil, err
	}

	img, err := models.NewImage(mat, models.OrderRGB, source)
	if err != nil {
		mat.Close()
		return nil, err
	}
	return img, nil
}

// ToBGR returns a BGR ordered copy of src, the layout OpenCV encoders expect.
func ToBGR(src *models.Image) (*models.Image, error) {
	if src == nil || !src.Valid() {
		return nil, fmt.Errorf("image is nil or released")
	}

	if src.Order() == models.OrderBGR {
		return src.Clone()
	}

	srcMat := src.Mat().GetMat()
	dst := gocv.NewMat()
	gocv.CvtColor(srcMat, &dst, gocv.ColorRGBToBGR)

	mat, err := safe.Adopt(dst)
	if err != nil {
		return nil, fmt.Errorf("colour conversion failed: %w", err)
	}

	img, err := models.NewImage(mat, models.OrderBGR, src.Source())
	if err != nil {
		mat.Close()
		return nil, err
	}
	return img, nil
}
