package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"image-processor/internal/logger"
	"image-processor/internal/models"
	"image-processor/internal/opencv/conversion"
	"image-processor/internal/opencv/safe"
	"image-processor/internal/timing"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// ErrDecode marks input that could not be read or is not a decodable image.
var ErrDecode = errors.New("image decode failed")

// ErrUnsupportedFormat is returned when exporting to an extension the encoder does not know.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// SupportedExtensions are the file types offered by the open and save dialogs.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png"}

// ImageService is the file side of the image source: decoding on load and encoding on export.
type ImageService struct {
	logger logger.Logger
	timing *timing.Tracker
}

func NewImageService(log logger.Logger, tracker *timing.Tracker) *ImageService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if tracker == nil {
		tracker = timing.NewTracker(0)
	}
	return &ImageService{logger: log, timing: tracker}
}

// DecodeFile reads path and decodes it into a BGR image.
func (is *ImageService) DecodeFile(path string) (*models.Image, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDecode, path, err)
	}

	return is.DecodeBytes(data, path)
}

// DecodeReader drains r and decodes its content. The caller closes r.
func (is *ImageService) DecodeReader(r io.Reader, name string) (*models.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDecode, name, err)
	}

	return is.DecodeBytes(data, name)
}

// DecodeBytes decodes data with OpenCV into a BGR image. If OpenCV cannot read it
// (for example a build without that codec) the pure Go decoders are tried and the
// result is RGB ordered.
func (is *ImageService) DecodeBytes(data []byte, name string) (*models.Image, error) {
	span := is.timing.Start("decode")
	defer span.End()

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrDecode, name)
	}

	img, err := decodeOpenCV(data, name)
	if err != nil {
		fallback, fbErr := decodeGo(data, name)
		if fbErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
		}
		is.logger.Debug("ImageService", "decoded with Go fallback", map[string]interface{}{
			"name":     name,
			"cv_error": err.Error(),
		})
		img = fallback
	}

	is.logger.Debug("ImageService", "image decoded", map[string]interface{}{
		"name":       name,
		"size_bytes": len(data),
		"width":      img.Width(),
		"height":     img.Height(),
		"order":      img.Order().String(),
	})

	return img, nil
}

func decodeOpenCV(data []byte, name string) (*models.Image, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, err
	}

	sm, err := safe.Adopt(mat)
	if err != nil {
		return nil, err
	}

	img, err := models.NewImage(sm, models.OrderBGR, name)
	if err != nil {
		sm.Close()
		return nil, err
	}
	return img, nil
}

// decodeGo reads data with the image package decoders, applying EXIF orientation.
func decodeGo(data []byte, name string) (*models.Image, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	return conversion.FromImage(src, name)
}

// Encode serialises img in the format implied by ext (".png", ".jpg" or ".jpeg").
func (is *ImageService) Encode(img *models.Image, ext string) ([]byte, error) {
	span := is.timing.Start("encode")
	defer span.End()

	fileExt, err := encoderFor(ext)
	if err != nil {
		return nil, err
	}

	bgr, err := conversion.ToBGR(img)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	defer bgr.Close()

	buf, err := gocv.IMEncode(fileExt, bgr.Mat().GetMat())
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ext, err)
	}
	defer buf.Close()

	// GetBytes aliases native memory released by buf.Close.
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// Export writes img to w, picking the encoder from name's extension.
func (is *ImageService) Export(w io.Writer, img *models.Image, name string) error {
	data, err := is.Encode(img, filepath.Ext(name))
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	is.logger.Info("ImageService", "image exported", map[string]interface{}{
		"name":       name,
		"size_bytes": len(data),
	})
	return nil
}

func encoderFor(ext string) (gocv.FileExt, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return gocv.PNGFileExt, nil
	case ".jpg", ".jpeg":
		return gocv.JPEGFileExt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupported reports whether path has one of SupportedExtensions.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
