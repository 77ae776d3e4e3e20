package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageDisplayWidth  = 800
	ImageDisplayHeight = 600
)

// ImageDisplay is the single embedded view of the main window.
type ImageDisplay struct {
	container   *fyne.Container
	image       *canvas.Image
	placeholder *widget.Label
}

func NewImageDisplay() *ImageDisplay {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(ImageDisplayWidth, ImageDisplayHeight))

	placeholder := widget.NewLabel("Load an image or capture a photo to begin")
	placeholder.Alignment = fyne.TextAlignCenter

	return &ImageDisplay{
		container:   container.NewStack(img, container.NewCenter(placeholder)),
		image:       img,
		placeholder: placeholder,
	}
}

func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}

// SetImage swaps the shown picture. nil clears the view.
func (id *ImageDisplay) SetImage(img image.Image) {
	id.image.Image = img
	if img == nil {
		id.placeholder.Show()
	} else {
		id.placeholder.Hide()
	}
	id.image.Refresh()
}
