// Package naming derives collision-free output filenames for exported images.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DefaultSuffix is appended to every base name unless overridden.
const DefaultSuffix = "_resized"

// FallbackBase names images that arrive without a usable filename.
const FallbackBase = "image"

// FolderPrefix starts every batch export folder name.
const FolderPrefix = "Resized_Batch_"

// Item is one entry of a batch to be named.
type Item struct {
	Base string // original name without extension
	Ext  string // extension without dot
}

// BaseName strips directories and the last extension from name.
func BaseName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return FallbackBase
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		// ".png" has no stem; keep the whole name rather than an empty one.
		base = strings.TrimPrefix(name, ".")
	}
	if base == "" {
		return FallbackBase
	}
	return base
}

// Single returns the name used when one image is exported on its own:
// {base}{suffix}.{ext}.
func Single(base, suffix, ext string) string {
	return base + suffix + "." + ext
}

// Indexed returns {base}{suffix}_{index}.{ext}.
func Indexed(base, suffix string, index int, ext string) string {
	return fmt.Sprintf("%s%s_%d.%s", base, suffix, index, ext)
}

// Batch names every item by its position, so duplicates in Base never collide.
func Batch(items []Item, suffix string) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = Indexed(it.Base, suffix, i, it.Ext)
	}
	return names
}

// Folder returns the export folder name for a batch written at t.
// There is no check against existing folders; two exports in the same second
// share a name.
func Folder(t time.Time) string {
	return fmt.Sprintf("%s%d", FolderPrefix, t.Unix())
}
