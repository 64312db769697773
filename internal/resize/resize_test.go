package resize

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestResize_ExactDimensions(t *testing.T) {
	sources := []image.Image{
		solid(100, 100, color.NRGBA{R: 200, A: 255}),
		solid(200, 50, color.NRGBA{G: 200, A: 255}),
		solid(7, 300, color.NRGBA{B: 200, A: 255}),
		solid(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255}),
	}
	targets := [][2]int{{50, 50}, {1, 1}, {1242, 2208}, {300, 7}, {64, 1}}

	for _, src := range sources {
		for _, tg := range targets {
			out, err := Resize(src, tg[0], tg[1], imaging.Lanczos)
			if err != nil {
				t.Fatalf("resize %v -> %v: %v", src.Bounds().Size(), tg, err)
			}
			if out.Bounds().Dx() != tg[0] || out.Bounds().Dy() != tg[1] {
				t.Errorf("resize %v -> %v: got %v", src.Bounds().Size(), tg, out.Bounds().Size())
			}
		}
	}
}

func TestResize_PreservesAlpha(t *testing.T) {
	src := solid(40, 40, color.NRGBA{R: 220, G: 60, B: 30, A: 0})
	for y := 0; y < 40; y++ {
		for x := 20; x < 40; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 220, G: 60, B: 30, A: 255})
		}
	}

	out, err := Resize(src, 10, 10, imaging.CatmullRom)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if a := out.NRGBAAt(0, 5).A; a > 10 {
		t.Errorf("left edge alpha: got %d, want ~0", a)
	}
	if a := out.NRGBAAt(9, 5).A; a < 245 {
		t.Errorf("right edge alpha: got %d, want ~255", a)
	}
}

func TestResize_InvalidSize(t *testing.T) {
	src := solid(4, 4, color.NRGBA{A: 255})
	for _, tg := range [][2]int{{0, 10}, {10, 0}, {-5, 10}, {10, -5}, {0, 0}} {
		_, err := Resize(src, tg[0], tg[1], imaging.Lanczos)
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("%v: got %v, want ErrInvalidSize", tg, err)
		}
	}
}

func TestResize_EmptySource(t *testing.T) {
	_, err := Resize(image.NewNRGBA(image.Rect(0, 0, 0, 5)), 10, 10, imaging.Lanczos)
	if !errors.Is(err, ErrEmptySource) {
		t.Errorf("got %v, want ErrEmptySource", err)
	}
	_, err = Resize(nil, 10, 10, imaging.Lanczos)
	if !errors.Is(err, ErrEmptySource) {
		t.Errorf("nil source: got %v, want ErrEmptySource", err)
	}
}

func TestResize_TooLarge(t *testing.T) {
	src := solid(2, 2, color.NRGBA{A: 255})
	_, err := Resize(src, 1<<15, 1<<14, imaging.Lanczos)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("got %v, want ErrTooLarge", err)
	}
}

func TestFilter(t *testing.T) {
	if _, err := Filter(""); err != nil {
		t.Errorf("default filter: %v", err)
	}
	for _, n := range FilterNames() {
		if _, err := Filter(n); err != nil {
			t.Errorf("Filter(%q): %v", n, err)
		}
	}
	if _, err := Filter("CatmullRom"); err != nil {
		t.Errorf("case-insensitive lookup failed: %v", err)
	}
	if _, err := Filter("nearest-ish"); err == nil {
		t.Error("unknown filter accepted")
	}
}

func TestHeightForWidth(t *testing.T) {
	cases := []struct{ w, srcW, srcH, want int }{
		{50, 100, 100, 50},
		{50, 200, 50, 13},
		{1242, 1242, 2208, 2208},
		{1, 1000, 1, 1},
		{10, 0, 10, 0},
	}
	for _, c := range cases {
		if got := HeightForWidth(c.w, c.srcW, c.srcH); got != c.want {
			t.Errorf("HeightForWidth(%d, %d, %d) = %d, want %d", c.w, c.srcW, c.srcH, got, c.want)
		}
	}
}
