package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/storeresize-cli/internal/config"
	"github.com/AnyUserName/storeresize-cli/internal/encoder"
	"github.com/AnyUserName/storeresize-cli/internal/pipeline"
	"github.com/AnyUserName/storeresize-cli/internal/resize"
	"github.com/AnyUserName/storeresize-cli/internal/source"
)

// Target flags shared by resize and watch.
var (
	targetWidth      string
	targetHeight     string
	targetPreset     string
	targetFormat     string
	targetQuality    float64
	targetSuffix     string
	targetFilter     string
	targetLockAspect bool
	outDir           string
	noManifest       bool
)

func addTargetFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVarP(&targetWidth, "width", "W", "", "target width in pixels")
	f.StringVarP(&targetHeight, "height", "H", "", "target height in pixels")
	f.StringVarP(&targetPreset, "preset", "p", "", "named target size (see `storeresize presets`)")
	f.StringVarP(&targetFormat, "format", "f", "", "output format: png, jpeg or tiff")
	f.Float64VarP(&targetQuality, "quality", "q", encoder.DefaultQuality, "jpeg quality 0.1-1.0")
	f.StringVar(&targetSuffix, "suffix", "", "filename suffix (default \"_resized\")")
	f.StringVar(&targetFilter, "filter", "", "resampling filter: "+fmt.Sprint(resize.FilterNames()))
	f.BoolVar(&targetLockAspect, "lock-aspect", false, "derive height from width using the first image's aspect ratio")
	f.StringVarP(&outDir, "out", "o", "", "output directory (default from config, else .)")
	f.BoolVar(&noManifest, "no-manifest", false, "do not write a manifest into batch folders")
}

// resolveTarget merges flags over the config file. first supplies the aspect
// ratio for --lock-aspect.
func resolveTarget(c *cobra.Command, cfg *config.Config, first source.Image) (pipeline.Target, error) {
	flags := c.Flags()
	t := pipeline.NewTarget(0, 0)

	var err error
	switch {
	case flags.Changed("width") && targetLockAspect && !flags.Changed("height"):
		var w int
		w, _, err = pipeline.ParseSize(targetWidth, "1")
		if err == nil {
			t.Width = w
			t.Height = resize.HeightForWidth(w, first.Width, first.Height)
		}
	case flags.Changed("width") || flags.Changed("height"):
		t.Width, t.Height, err = pipeline.ParseSize(targetWidth, targetHeight)
	case flags.Changed("preset"):
		set, perr := cfg.PresetSet()
		if perr != nil {
			return t, perr
		}
		p, perr := set.Get(targetPreset)
		if perr != nil {
			return t, perr
		}
		t.Width, t.Height = p.Width, p.Height
	default:
		t.Width, t.Height, err = cfg.Size()
	}
	if err != nil {
		return t, err
	}

	t.Format = cfg.Format
	if flags.Changed("format") {
		if t.Format, err = encoder.ParseFormat(targetFormat); err != nil {
			return t, err
		}
	}

	t.Quality = cfg.Quality
	if flags.Changed("quality") {
		t.Quality = encoder.ClampQuality(targetQuality)
	}

	t.Suffix = *cfg.Suffix
	if flags.Changed("suffix") {
		t.Suffix = targetSuffix
	}

	t.Filter = cfg.Filter
	if flags.Changed("filter") {
		t.Filter = targetFilter
	}

	return t, t.Validate()
}

func resolveOutDir(c *cobra.Command, cfg *config.Config) string {
	if c.Flags().Changed("out") {
		return outDir
	}
	return cfg.Output
}

func writeManifest(cfg *config.Config) bool {
	return !noManifest && *cfg.Manifest
}
