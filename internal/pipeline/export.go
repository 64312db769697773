package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/storeresize-cli/internal/manifest"
	"github.com/AnyUserName/storeresize-cli/internal/naming"
	"github.com/AnyUserName/storeresize-cli/internal/source"
)

// Exporter writes processed images to disk.
type Exporter struct {
	// Manifest adds manifest.FileName to every batch folder.
	Manifest bool
	// Log receives write failures, which are otherwise swallowed.
	// Defaults to os.Stderr.
	Log io.Writer
	// Now stamps batch folder names. Defaults to time.Now.
	Now func() time.Time
}

// ExportReport summarizes a batch export.
type ExportReport struct {
	Folder  string   // absolute or parent-relative path of the batch folder
	Written []string // file names inside Folder, in batch order
	Failed  int
}

// WriteSingle writes p into dir under its single-export name.
func (e *Exporter) WriteSingle(dir string, p Processed) (string, error) {
	path := filepath.Join(dir, p.FileName)
	if err := os.WriteFile(path, p.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", p.FileName, err)
	}
	return path, nil
}

// WriteBatch creates a fresh Resized_Batch_{unix} folder under parent and
// writes every image into it with position-indexed names. Individual write
// failures are logged and counted, never returned; only a folder that cannot
// be created is an error.
func (e *Exporter) WriteBatch(parent string, r *BatchResult) (ExportReport, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	folder := filepath.Join(parent, naming.Folder(now()))
	rep := ExportReport{Folder: folder}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return rep, fmt.Errorf("create batch folder: %w", err)
	}

	names := r.Names()
	var files []manifest.File
	for i, p := range r.Images {
		name := names[i]
		if err := os.WriteFile(filepath.Join(folder, name), p.Data, 0o644); err != nil {
			e.warnf("write %s: %v", name, err)
			rep.Failed++
			continue
		}
		rep.Written = append(rep.Written, name)
		files = append(files, manifestFile(name, p))
	}

	if e.Manifest {
		m := manifest.New(r.ID, filepath.Base(folder), manifestTarget(r.Target))
		m.Files = files
		for _, f := range r.Failures {
			m.Failures = append(m.Failures, manifest.Failure{Source: f.Name, Error: f.Err.Error()})
		}
		if err := manifest.WriteJSON(m, filepath.Join(folder, manifest.FileName)); err != nil {
			e.warnf("write manifest: %v", err)
		}
	}

	return rep, nil
}

func (e *Exporter) warnf(format string, args ...any) {
	w := e.Log
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "[storeresize] warning: "+format+"\n", args...)
}

func manifestFile(name string, p Processed) manifest.File {
	f := manifest.File{
		Name:   name,
		Source: p.Name,
		Format: p.Format.String(),
		Width:  p.Width(),
		Height: p.Height(),
		Size:   int64(len(p.Data)),
		Hash:   p.Hash,
	}
	if p.OriginalSize != source.UnknownSize {
		f.OriginalSize = p.OriginalSize
	}
	return f
}

func manifestTarget(t Target) manifest.Target {
	mt := manifest.Target{
		Width:  t.Width,
		Height: t.Height,
		Format: t.Format.String(),
		Suffix: t.Suffix,
		Filter: t.Filter,
	}
	if !t.Format.Lossless() {
		mt.Quality = t.Quality
	}
	return mt
}
