package encoder

import (
	"image"
	"math"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format.
	Format() Format

	// Encode converts the image to bytes. quality is in [0.1, 1.0] and is
	// ignored by lossless encoders.
	Encode(img image.Image, quality float64) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}

// Quality bounds for JPEG output.
const (
	MinQuality     = 0.1
	MaxQuality     = 1.0
	DefaultQuality = 0.9
)

// ClampQuality clamps q into [MinQuality, MaxQuality].
func ClampQuality(q float64) float64 {
	switch {
	case math.IsNaN(q):
		return DefaultQuality
	case q < MinQuality:
		return MinQuality
	case q > MaxQuality:
		return MaxQuality
	}
	return q
}
