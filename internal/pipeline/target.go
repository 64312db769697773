package pipeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AnyUserName/storeresize-cli/internal/encoder"
	"github.com/AnyUserName/storeresize-cli/internal/naming"
	"github.com/AnyUserName/storeresize-cli/internal/resize"
)

// ErrInvalidTarget means the requested size is missing, non-numeric or not
// positive. Processing is skipped entirely.
var ErrInvalidTarget = errors.New("invalid target size")

// Target describes the output of a batch.
type Target struct {
	Width   int
	Height  int
	Format  encoder.Format
	Quality float64 // jpeg only, clamped to [0.1, 1.0] when a run starts
	Suffix  string
	Filter  string // resampling filter name, see resize.FilterNames
}

// NewTarget returns a PNG target of w×h with default quality, suffix and filter.
func NewTarget(w, h int) Target {
	return Target{
		Width:   w,
		Height:  h,
		Format:  encoder.PNG,
		Quality: encoder.DefaultQuality,
		Suffix:  naming.DefaultSuffix,
		Filter:  resize.DefaultFilter,
	}
}

// Validate reports ErrInvalidTarget for non-positive dimensions and rejects
// unknown filters.
func (t Target) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTarget, t.Width, t.Height)
	}
	if _, err := resize.Filter(t.Filter); err != nil {
		return err
	}
	return nil
}

func (t Target) String() string {
	s := fmt.Sprintf("%dx%d %s", t.Width, t.Height, t.Format)
	if t.Format == encoder.JPEG {
		s += fmt.Sprintf(" q=%.2f", t.Quality)
	}
	return s
}

// ParseSize parses width and height as typed by a user. Fractional values are
// truncated. Anything non-numeric or not positive after truncation yields
// ErrInvalidTarget.
func ParseSize(width, height string) (int, int, error) {
	w, err := parseDim(width)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: width %q", ErrInvalidTarget, width)
	}
	h, err := parseDim(height)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: height %q", ErrInvalidTarget, height)
	}
	return w, h, nil
}

func parseDim(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt32 {
		return 0, strconv.ErrRange
	}
	n := int(f)
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
