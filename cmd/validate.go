package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	_ "golang.org/x/image/tiff"

	"github.com/AnyUserName/storeresize-cli/internal/encoder"
	"github.com/AnyUserName/storeresize-cli/internal/hasher"
	"github.com/AnyUserName/storeresize-cli/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <batch_folder_or_manifest>",
	Short: "Check an exported batch against its manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	m, path, err := manifest.Read(args[0])
	if err != nil {
		return err
	}
	logVerbose("manifest: %s", path)

	errs := validateManifest(m, filepath.Dir(path))
	if len(errs) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d files at %dx%d, all present and intact\n", len(m.Files), m.Target.Width, m.Target.Height)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}
	if m.Target.Width <= 0 || m.Target.Height <= 0 {
		errs = append(errs, fmt.Sprintf("invalid target size %dx%d", m.Target.Width, m.Target.Height))
	}
	if _, err := encoder.ParseFormat(m.Target.Format); err != nil {
		errs = append(errs, fmt.Sprintf("target: %v", err))
	}

	seen := map[string]bool{}
	for i, f := range m.Files {
		if f.Name == "" {
			errs = append(errs, fmt.Sprintf("file[%d]: missing name", i))
			continue
		}
		if seen[f.Name] {
			errs = append(errs, fmt.Sprintf("file[%d]: duplicate name %q", i, f.Name))
		}
		seen[f.Name] = true

		if f.Width != m.Target.Width || f.Height != m.Target.Height {
			errs = append(errs, fmt.Sprintf("%s: size %dx%d does not match target %dx%d",
				f.Name, f.Width, f.Height, m.Target.Width, m.Target.Height))
		}
		if f.Hash == "" {
			errs = append(errs, fmt.Sprintf("%s: missing hash", f.Name))
		}

		full := filepath.Join(baseDir, f.Name)
		info, err := os.Stat(full)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: file not found", f.Name))
			continue
		}
		if info.Size() != f.Size {
			errs = append(errs, fmt.Sprintf("%s: size mismatch: manifest=%d, disk=%d", f.Name, f.Size, info.Size()))
		}
		if f.Hash != "" {
			sum, err := hasher.SumFile(full)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", f.Name, err))
			} else if sum != f.Hash {
				errs = append(errs, fmt.Sprintf("%s: hash mismatch: manifest=%s, disk=%s", f.Name, f.Hash, sum))
			}
		}
		if w, h, err := decodedSize(full); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", f.Name, err))
		} else if w != f.Width || h != f.Height {
			errs = append(errs, fmt.Sprintf("%s: decodes as %dx%d, manifest says %dx%d", f.Name, w, h, f.Width, f.Height))
		}
	}

	if m.Stats.TotalFiles != len(m.Files) {
		errs = append(errs, fmt.Sprintf("stats.total_files mismatch: %d != %d", m.Stats.TotalFiles, len(m.Files)))
	}
	if m.Stats.TotalFailures != len(m.Failures) {
		errs = append(errs, fmt.Sprintf("stats.total_failures mismatch: %d != %d", m.Stats.TotalFailures, len(m.Failures)))
	}

	return errs
}

func decodedSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
