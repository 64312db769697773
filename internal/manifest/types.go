package manifest

// FileName is the manifest written into every batch export folder.
const FileName = "resize.manifest.json"

// Manifest describes one exported batch.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt string    `json:"generated_at"`
	BatchID     string    `json:"batch_id"`
	Folder      string    `json:"folder"`
	Target      Target    `json:"target"`
	Files       []File    `json:"files"`
	Failures    []Failure `json:"failures,omitempty"`
	Stats       Stats     `json:"stats"`
}

// Target records the settings the batch was processed with.
type Target struct {
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Format  string  `json:"format"`
	Quality float64 `json:"quality,omitempty"` // jpeg only
	Suffix  string  `json:"suffix"`
	Filter  string  `json:"filter"`
}

// File is one exported image.
type File struct {
	Name         string `json:"name"`   // relative to the batch folder
	Source       string `json:"source"` // original base name
	Format       string `json:"format"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int64  `json:"size"`
	OriginalSize int64  `json:"original_size,omitempty"` // -1 or omitted when unknown
	Hash         string `json:"hash"`                    // xxhash64, 16 hex chars
}

// Failure is an input dropped from the batch.
type Failure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// Stats aggregates batch metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalFiles       int   `json:"total_files"`
	TotalFailures    int   `json:"total_failures"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
