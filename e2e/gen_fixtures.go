//go:build ignore

// gen_fixtures creates small inputs for a storeresize smoke run.
// Usage: go run gen_fixtures.go <output_dir>
//
//	storeresize resize <output_dir> -W 50 -H 50 -o /tmp/out
//	storeresize validate /tmp/out/Resized_Batch_*
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "more"), 0o755); err != nil {
		panic(err)
	}

	// Square and wide PNGs.
	writePNG(filepath.Join(dir, "a.png"), gradient(100, 100))
	writePNG(filepath.Join(dir, "b.png"), gradient(200, 50))

	// Same base name twice; batch export must still keep both.
	writePNG(filepath.Join(dir, "photo.png"), solidWithBorder(120, 80, 60))
	writeJPEG(filepath.Join(dir, "more", "photo.jpg"), gradient(160, 120))

	// Lossless TIFF with alpha.
	writeTIFF(filepath.Join(dir, "logo.tiff"), alphaGradient(64, 64))

	// Not an image; skipped with a warning.
	if err := os.WriteFile(filepath.Join(dir, "notes.png"), []byte("not really a png"), 0o644); err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func create(path string) *os.File {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	return f
}

func writePNG(path string, img *image.NRGBA) {
	f := create(path)
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f := create(path)
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}

func writeTIFF(path string, img *image.NRGBA) {
	f := create(path)
	defer f.Close()
	if err := tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		panic(err)
	}
}
