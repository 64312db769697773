package encoder

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/tiff"
)

func opaqueGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func assertSamePixels(t *testing.T, want *image.NRGBA, got image.Image) {
	t.Helper()
	if got.Bounds().Dx() != want.Bounds().Dx() || got.Bounds().Dy() != want.Bounds().Dy() {
		t.Fatalf("bounds: got %v, want %v", got.Bounds(), want.Bounds())
	}
	gb := got.Bounds()
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < want.Bounds().Dx(); x++ {
			w := want.NRGBAAt(x, y)
			g := color.NRGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y)).(color.NRGBA)
			if w != g {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestPNG_Lossless(t *testing.T) {
	src := opaqueGradient(37, 23)
	data, err := (&PNGEncoder{}).Encode(src, 0.1)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	dec, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertSamePixels(t, src, dec)
}

func TestTIFF_Lossless(t *testing.T) {
	src := opaqueGradient(41, 17)
	data, err := (&TIFFEncoder{}).Encode(src, 0.5)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	dec, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertSamePixels(t, src, dec)
}

func TestJPEG_QualityOrdersSize(t *testing.T) {
	src := opaqueGradient(128, 96)
	enc := &JPEGEncoder{}

	hi, err := enc.Encode(src, 1.0)
	if err != nil {
		t.Fatalf("encode q=1.0: %v", err)
	}
	lo, err := enc.Encode(src, 0.1)
	if err != nil {
		t.Fatalf("encode q=0.1: %v", err)
	}
	if len(hi) < len(lo) {
		t.Errorf("q=1.0 size %d < q=0.1 size %d", len(hi), len(lo))
	}

	dec, err := jpeg.Decode(bytes.NewReader(hi))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dec.Bounds().Dx() != 128 || dec.Bounds().Dy() != 96 {
		t.Fatalf("decoded bounds: %v", dec.Bounds())
	}

	// q=1.0 should stay visually close to the source.
	var maxDiff int
	for y := 0; y < 96; y++ {
		for x := 0; x < 128; x++ {
			w := src.NRGBAAt(x, y)
			g := color.NRGBAModel.Convert(dec.At(x, y)).(color.NRGBA)
			for _, d := range []int{
				int(w.R) - int(g.R), int(w.G) - int(g.G), int(w.B) - int(g.B),
			} {
				if d < 0 {
					d = -d
				}
				if d > maxDiff {
					maxDiff = d
				}
			}
		}
	}
	if maxDiff > 40 {
		t.Errorf("max channel diff at q=1.0: %d", maxDiff)
	}
}

func TestEncode_EmptyImage(t *testing.T) {
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	for _, f := range Formats {
		_, err := NewRegistry().Encode(empty, f, DefaultQuality)
		if !errors.Is(err, ErrEmptyImage) {
			t.Errorf("%s: got %v, want ErrEmptyImage", f, err)
		}
	}
}

func TestClampQuality(t *testing.T) {
	cases := map[float64]float64{
		-1:   MinQuality,
		0:    MinQuality,
		0.05: MinQuality,
		0.1:  0.1,
		0.75: 0.75,
		1.0:  1.0,
		3.5:  MaxQuality,
	}
	for in, want := range cases {
		if got := ClampQuality(in); got != want {
			t.Errorf("ClampQuality(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestJPEGQualityMapping(t *testing.T) {
	if got := jpegQuality(0.1); got != 10 {
		t.Errorf("0.1 -> %d, want 10", got)
	}
	if got := jpegQuality(1.0); got != 100 {
		t.Errorf("1.0 -> %d, want 100", got)
	}
	if got := jpegQuality(0.86); got != 86 {
		t.Errorf("0.86 -> %d, want 86", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"png": PNG, "PNG": PNG, ".png": PNG,
		"jpeg": JPEG, "jpg": JPEG, " JPG ": JPEG,
		"tiff": TIFF, "tif": TIFF,
	} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseFormat("webp"); err == nil {
		t.Error("webp should be rejected")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, f := range Formats {
		enc := r.Get(f)
		if enc == nil {
			t.Fatalf("missing encoder for %s", f)
		}
		if enc.Format() != f {
			t.Errorf("encoder for %s reports %s", f, enc.Format())
		}
		if enc.Extension() != f.Extension() {
			t.Errorf("extension for %s: %q", f, enc.Extension())
		}
	}
	if got := r.String(); got != "encoders: png, jpeg, tiff" {
		t.Errorf("String() = %q", got)
	}
}
