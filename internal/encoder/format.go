package encoder

import (
	"fmt"
	"strings"
)

// Format is an output raster format.
type Format int

const (
	PNG Format = iota
	JPEG
	TIFF
)

// Formats lists every supported output format in display order.
var Formats = []Format{PNG, JPEG, TIFF}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case TIFF:
		return "tiff"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Extension returns the file extension used for exported files.
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return f.String()
}

// Lossless reports whether the format ignores the quality parameter.
func (f Format) Lossless() bool { return f != JPEG }

// ParseFormat accepts format names and common extensions, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "tiff", "tif":
		return TIFF, nil
	}
	return 0, fmt.Errorf("unsupported format %q (want png, jpeg or tiff)", s)
}

// MarshalText implements encoding.TextMarshaler so formats read naturally in
// JSON and YAML.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
