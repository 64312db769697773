package encoder

import (
	"fmt"
	"image"
	"strings"
)

// Registry maps each output format to its encoder.
type Registry struct {
	encoders map[Format]Encoder
}

// NewRegistry creates a registry with every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[Format]Encoder),
	}

	for _, enc := range []Encoder{
		&PNGEncoder{},
		&JPEGEncoder{},
		&TIFFEncoder{},
	} {
		r.encoders[enc.Format()] = enc
	}

	return r
}

// Get returns the encoder for the given format, or nil if none is registered.
func (r *Registry) Get(f Format) Encoder {
	return r.encoders[f]
}

// Encode looks up the encoder for f and encodes img with it.
func (r *Registry) Encode(img image.Image, f Format, quality float64) ([]byte, error) {
	enc := r.Get(f)
	if enc == nil {
		return nil, fmt.Errorf("no encoder for %s", f)
	}
	return enc.Encode(img, quality)
}

// Available returns all registered format names in display order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range Formats {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f.String())
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
