// Package source loads input images from files, directories and in-memory
// drop payloads.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/storeresize-cli/internal/imgutil"
	"github.com/AnyUserName/storeresize-cli/internal/naming"
)

// UnknownSize marks an Image whose original byte size could not be determined.
const UnknownSize int64 = -1

// ErrNotImage is returned for inputs with no recognized image signature.
var ErrNotImage = errors.New("not a supported image")

// Image is a decoded source image. It is never modified after loading.
type Image struct {
	// Name is the original filename without extension.
	Name string
	// Pixels is the decoded raster, already rotated per EXIF orientation.
	Pixels image.Image
	// Width and Height are the pixel dimensions of Pixels.
	Width, Height int
	// Size is the original encoded size in bytes, or UnknownSize.
	Size int64
	// Kind is the detected input container.
	Kind imgutil.Kind
	// Path is the file the image came from; empty for drop payloads.
	Path string
}

// Open reads, sniffs and decodes the file at path. The byte size is looked up
// with a best-effort stat.
func Open(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("read %s: %w", path, err)
	}

	size := UnknownSize
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	img, err := decode(path, data, size)
	if err != nil {
		return Image{}, fmt.Errorf("%s: %w", path, err)
	}
	img.Path = path
	return img, nil
}

// FromBytes decodes an encoded drop payload. suggestedName may be empty, in
// which case the image is called "image".
func FromBytes(suggestedName string, data []byte) (Image, error) {
	return decode(suggestedName, data, UnknownSize)
}

// FromImage wraps an already decoded raster.
func FromImage(suggestedName string, px image.Image) Image {
	b := px.Bounds()
	return Image{
		Name:   naming.BaseName(suggestedName),
		Pixels: px,
		Width:  b.Dx(),
		Height: b.Dy(),
		Size:   UnknownSize,
	}
}

func decode(name string, data []byte, size int64) (Image, error) {
	kind, err := imgutil.SniffReader(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("sniff: %w", err)
	}
	if kind == imgutil.KindUnknown {
		return Image{}, ErrNotImage
	}

	px, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("decode %s: %w", kind, err)
	}

	if kind.HasExif() {
		px = applyOrientation(px, readOrientation(data))
	}

	img := FromImage(name, px)
	img.Size = size
	img.Kind = kind
	return img, nil
}
