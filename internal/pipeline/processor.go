package pipeline

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/storeresize-cli/internal/encoder"
	"github.com/AnyUserName/storeresize-cli/internal/hasher"
	"github.com/AnyUserName/storeresize-cli/internal/naming"
	"github.com/AnyUserName/storeresize-cli/internal/resize"
	"github.com/AnyUserName/storeresize-cli/internal/source"
)

// Processed is one resized and encoded image.
type Processed struct {
	// Name is the source base name.
	Name string
	// FileName is the name used when this image is exported on its own.
	FileName string
	Format   encoder.Format
	// Image is the resized raster that Data encodes.
	Image *image.NRGBA
	Data  []byte
	// Hash is the xxhash64 of Data.
	Hash string
	// OriginalSize is the source byte size, or source.UnknownSize.
	OriginalSize int64
}

// Width returns the pixel width of the resized image.
func (p Processed) Width() int { return p.Image.Bounds().Dx() }

// Height returns the pixel height of the resized image.
func (p Processed) Height() int { return p.Image.Bounds().Dy() }

// Failure records an input that was dropped from a batch.
type Failure struct {
	Index int // position in the input list
	Name  string
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s (#%d): %v", f.Name, f.Index, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// processImage handles a single source image: resize, encode, name.
func processImage(src source.Image, t Target, filter imaging.ResampleFilter, registry *encoder.Registry) (p Processed, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing panicked: %v", r)
		}
	}()

	resized, err := resize.Resize(src.Pixels, t.Width, t.Height, filter)
	if err != nil {
		return Processed{}, fmt.Errorf("resize: %w", err)
	}

	data, err := registry.Encode(resized, t.Format, t.Quality)
	if err != nil {
		return Processed{}, fmt.Errorf("encode %s: %w", t.Format, err)
	}

	return Processed{
		Name:         src.Name,
		FileName:     naming.Single(src.Name, t.Suffix, t.Format.Extension()),
		Format:       t.Format,
		Image:        resized,
		Data:         data,
		Hash:         hasher.Sum(data),
		OriginalSize: src.Size,
	}, nil
}
