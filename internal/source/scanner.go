package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// IsImagePath reports whether path has a recognized image extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Scan walks dir and returns the paths of all image files in lexical order.
// Hidden files and directories are skipped.
func Scan(dir string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !d.Type().IsRegular() {
			return nil
		}
		if IsImagePath(path) {
			paths = append(paths, path)
		}
		return nil
	})

	return paths, err
}

// LoadAll opens every path in argument order, expanding directories with Scan.
// Inputs that fail to load are skipped and reported in errs; images keeps the
// order of those that succeeded.
func LoadAll(paths []string) (images []Image, errs []error) {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("stat %s: %w", p, err))
			continue
		}

		files := []string{p}
		if info.IsDir() {
			files, err = Scan(p)
			if err != nil {
				errs = append(errs, fmt.Errorf("scan %s: %w", p, err))
				continue
			}
		}

		for _, f := range files {
			img, err := Open(f)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			images = append(images, img)
		}
	}
	return images, errs
}
