package source

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"
)

// EXIF orientation values (TIFF 6.0, tag 0x0112).
const (
	orientNormal     = 1
	orientFlipH      = 2
	orientRotate180  = 3
	orientFlipV      = 4
	orientTranspose  = 5
	orientRotate270  = 6
	orientTransverse = 7
	orientRotate90   = 8
)

// readOrientation returns the IFD0 orientation tag, or orientNormal when the
// data carries no usable EXIF.
func readOrientation(data []byte) int {
	// JPEG carries EXIF inside an APP1 segment; TIFF starts with it.
	raw, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return orientNormal
	}
	tags, _, err := exif.GetFlatExifData(raw, nil)
	if err != nil {
		return orientNormal
	}

	found := 0
	for _, tag := range tags {
		if tag.TagName != "Orientation" {
			continue
		}
		v := orientationValue(tag.Value)
		if v == 0 {
			continue
		}
		// IFD1 describes the embedded thumbnail; the main image wins.
		if !strings.Contains(tag.IfdPath, "IFD1") {
			return v
		}
		if found == 0 {
			found = v
		}
	}
	if found == 0 {
		return orientNormal
	}
	return found
}

func orientationValue(v any) int {
	var n int
	switch x := v.(type) {
	case []uint16:
		if len(x) == 0 {
			return 0
		}
		n = int(x[0])
	case uint16:
		n = int(x)
	case []uint32:
		if len(x) == 0 {
			return 0
		}
		n = int(x[0])
	default:
		return 0
	}
	if n < orientNormal || n > orientRotate90 {
		return 0
	}
	return n
}

func applyOrientation(img image.Image, o int) image.Image {
	switch o {
	case orientFlipH:
		return imaging.FlipH(img)
	case orientRotate180:
		return imaging.Rotate180(img)
	case orientFlipV:
		return imaging.FlipV(img)
	case orientTranspose:
		return imaging.Transpose(img)
	case orientRotate270:
		return imaging.Rotate270(img)
	case orientTransverse:
		return imaging.Transverse(img)
	case orientRotate90:
		return imaging.Rotate90(img)
	}
	return img
}
