package encoder

import (
	"bytes"
	"image"

	"golang.org/x/image/tiff"
)

// TIFFEncoder encodes images to Deflate-compressed TIFF. Lossless.
type TIFFEncoder struct{}

func (e *TIFFEncoder) Format() Format    { return TIFF }
func (e *TIFFEncoder) Extension() string { return TIFF.Extension() }

func (e *TIFFEncoder) Encode(img image.Image, _ float64) ([]byte, error) {
	if err := checkBounds(img); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	b := img.Bounds()
	buf.Grow(b.Dx() * b.Dy() * 2)

	err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
