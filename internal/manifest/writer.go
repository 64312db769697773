package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// New creates an empty manifest with defaults.
func New(batchID, folder string, target Target) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		BatchID:     batchID,
		Folder:      folder,
		Target:      target,
	}
}

// ComputeStats recalculates aggregate statistics from files and failures.
// Unknown original sizes do not count toward TotalInputBytes.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalFiles = len(m.Files)
	s.TotalFailures = len(m.Failures)
	for _, f := range m.Files {
		s.TotalOutputBytes += f.Size
		if f.OriginalSize > 0 {
			s.TotalInputBytes += f.OriginalSize
		}
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to path.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Read loads a manifest from path. A directory is taken to be a batch folder
// holding FileName.
func Read(path string) (*Manifest, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", fmt.Errorf("parse manifest: %w", err)
	}
	return &m, path, nil
}
