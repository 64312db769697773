// Package resize scales raster images to an exact pixel size.
//
// The output is always exactly the requested width and height: the source
// is stretched non-uniformly, never cropped or letterboxed. Aspect locking is
// the caller's job (see HeightForWidth).
package resize

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// MaxPixels caps the destination buffer at 256 MP (1 GiB of NRGBA).
const MaxPixels = 1 << 28

var (
	ErrInvalidSize = errors.New("target width and height must be positive")
	ErrEmptySource = errors.New("source image has no pixels")
	ErrTooLarge    = errors.New("target buffer too large")
)

// DefaultFilter is the resampling kernel used when none is named.
const DefaultFilter = "lanczos"

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
}

// Filter returns the resampling filter registered under name.
// An empty name selects DefaultFilter.
func Filter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		name = DefaultFilter
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown filter %q (want one of %s)",
			name, strings.Join(FilterNames(), ", "))
	}
	return f, nil
}

// FilterNames lists the registered filter names, sorted.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for n := range filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resize allocates a w×h NRGBA buffer and resamples img into it.
func Resize(img image.Image, w, h int, filter imaging.ResampleFilter) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptySource
	}
	if int64(w)*int64(h) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, w, h)
	}

	out := imaging.Resize(img, w, h, filter)

	// Output must be exactly w×h.
	if b := out.Bounds(); b.Dx() != w || b.Dy() != h {
		return nil, fmt.Errorf("resize produced %dx%d, want %dx%d", b.Dx(), b.Dy(), w, h)
	}
	return out, nil
}

// HeightForWidth returns the height that keeps srcW:srcH at width w.
// The result is at least 1.
func HeightForWidth(w, srcW, srcH int) int {
	if srcW <= 0 || srcH <= 0 || w <= 0 {
		return 0
	}
	h := int(math.Round(float64(w) * float64(srcH) / float64(srcW)))
	if h < 1 {
		h = 1
	}
	return h
}
