package encoder

import (
	"bytes"
	"image"
	"image/jpeg"
	"math"
)

// JPEGEncoder encodes images to JPEG using Go's standard library.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() Format    { return JPEG }
func (e *JPEGEncoder) Extension() string { return JPEG.Extension() }

// Encode maps quality in [0.1, 1.0] onto the 1-100 scale of image/jpeg.
func (e *JPEGEncoder) Encode(img image.Image, quality float64) ([]byte, error) {
	if err := checkBounds(img); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(256 * 1024) // pre-alloc 256KB, enough for typical screenshots

	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality(quality)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func jpegQuality(q float64) int {
	v := int(math.Round(q * 100))
	if v < 1 {
		v = 1
	}
	if v > 100 {
		v = 100
	}
	return v
}
