package models

import (
	"fmt"

	"image-processor/internal/opencv/safe"
)

// ChannelOrder records how the three bytes of a pixel are laid out.
// OpenCV decodes and captures BGR; buffers converted from Go images are RGB.
type ChannelOrder int

const (
	OrderBGR ChannelOrder = iota
	OrderRGB
)

func (o ChannelOrder) String() string {
	switch o {
	case OrderBGR:
		return "BGR"
	case OrderRGB:
		return "RGB"
	default:
		return fmt.Sprintf("ChannelOrder(%d)", int(o))
	}
}

// Index returns the byte offset of channel c within a pixel.
func (o ChannelOrder) Index(c Channel) (int, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("unknown channel %d", int(c))
	}

	switch o {
	case OrderBGR:
		return 2 - int(c), nil
	case OrderRGB:
		return int(c), nil
	default:
		return 0, fmt.Errorf("unknown channel order %d", int(o))
	}
}

// Channel selects one colour component independent of byte order.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
)

// ChannelLabels lists the choices in the order the channel prompt offers them.
var ChannelLabels = []string{"Blue", "Green", "Red"}

func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "Red"
	case ChannelGreen:
		return "Green"
	case ChannelBlue:
		return "Blue"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

func (c Channel) Valid() bool {
	return c >= ChannelRed && c <= ChannelBlue
}

// ParseChannel maps a prompt label back to a Channel.
func ParseChannel(label string) (Channel, error) {
	switch label {
	case "Red", "R":
		return ChannelRed, nil
	case "Green", "G":
		return ChannelGreen, nil
	case "Blue", "B":
		return ChannelBlue, nil
	default:
		return 0, fmt.Errorf("unknown channel label %q", label)
	}
}

// Image is an owned three channel, 8-bit pixel buffer.
type Image struct {
	mat    *safe.Mat
	order  ChannelOrder
	source string
}

// NewImage takes ownership of mat. source describes where the pixels came from
// (a path, "camera:0", or the name of the transformation that produced them).
func NewImage(mat *safe.Mat, order ChannelOrder, source string) (*Image, error) {
	if err := safe.ValidateColorMat(mat, "NewImage"); err != nil {
		return nil, err
	}

	return &Image{
		mat:    mat,
		order:  order,
		source: source,
	}, nil
}

func (i *Image) Width() int             { return i.mat.Cols() }
func (i *Image) Height() int            { return i.mat.Rows() }
func (i *Image) Stride() int            { return i.mat.Step() }
func (i *Image) Order() ChannelOrder    { return i.order }
func (i *Image) Source() string         { return i.source }
func (i *Image) Mat() *safe.Mat         { return i.mat }
func (i *Image) Valid() bool            { return i != nil && i.mat != nil && i.mat.IsValid() }
func (i *Image) Bytes() ([]byte, error) { return i.mat.ToBytes() }

// Derive wraps a new buffer produced from i, keeping its channel order.
func (i *Image) Derive(mat *safe.Mat, operation string) (*Image, error) {
	return NewImage(mat, i.order, operation)
}

// Clone deep-copies the pixel buffer.
func (i *Image) Clone() (*Image, error) {
	mat, err := i.mat.Clone()
	if err != nil {
		return nil, err
	}
	return NewImage(mat, i.order, i.source)
}

func (i *Image) Close() {
	if i == nil || i.mat == nil {
		return
	}
	i.mat.Close()
}

func (i *Image) Fields() map[string]interface{} {
	return map[string]interface{}{
		"width":  i.Width(),
		"height": i.Height(),
		"stride": i.Stride(),
		"order":  i.order.String(),
		"source": i.source,
	}
}
