package encoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// ErrEmptyImage is returned when asked to encode an image with no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// PNGEncoder encodes images to PNG using Go's standard library.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() Format    { return PNG }
func (e *PNGEncoder) Extension() string { return PNG.Extension() }

func (e *PNGEncoder) Encode(img image.Image, _ float64) ([]byte, error) {
	if err := checkBounds(img); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(512 * 1024) // pre-alloc 512KB

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	err := enc.Encode(&buf, img)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func checkBounds(img image.Image) error {
	if img == nil {
		return ErrEmptyImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyImage, b.Dx(), b.Dy())
	}
	return nil
}
