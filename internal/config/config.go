// Package config loads optional defaults for the CLI from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AnyUserName/storeresize-cli/internal/encoder"
	"github.com/AnyUserName/storeresize-cli/internal/naming"
	"github.com/AnyUserName/storeresize-cli/internal/preset"
	"github.com/AnyUserName/storeresize-cli/internal/resize"
)

// DefaultPath is looked up in the working directory when --config is unset.
const DefaultPath = "storeresize.yaml"

// Config represents the application configuration.
type Config struct {
	Preset   string            `yaml:"preset"`
	Width    int               `yaml:"width"`
	Height   int               `yaml:"height"`
	Format   encoder.Format    `yaml:"format"`
	Quality  float64           `yaml:"quality"`
	Suffix   *string           `yaml:"suffix"` // nil keeps the default; "" disables it
	Filter   string            `yaml:"filter"`
	Output   string            `yaml:"output"`
	Manifest *bool             `yaml:"manifest"`
	Presets  map[string][2]int `yaml:"presets"`
	Watch    WatchConfig       `yaml:"watch"`
}

// WatchConfig tunes drop-folder mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	suffix := naming.DefaultSuffix
	manifest := true
	return &Config{
		Preset:   preset.Default,
		Format:   encoder.PNG,
		Quality:  encoder.DefaultQuality,
		Suffix:   &suffix,
		Filter:   resize.DefaultFilter,
		Output:   ".",
		Manifest: &manifest,
		Watch:    WatchConfig{DebounceMS: 500},
	}
}

// Load reads and parses the configuration file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadOptional loads path if it exists and falls back to Default otherwise.
// An explicitly requested path must exist.
func LoadOptional(path string, explicit bool) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg, err := Load(path)
	if err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Suffix == nil {
		c.Suffix = d.Suffix
	}
	if c.Manifest == nil {
		c.Manifest = d.Manifest
	}
	if c.Filter == "" {
		c.Filter = d.Filter
	}
	if c.Output == "" {
		c.Output = d.Output
	}
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = d.Watch.DebounceMS
	}
}

// Validate checks the configured values.
func (c *Config) Validate() error {
	if (c.Width != 0 || c.Height != 0) && (c.Width <= 0 || c.Height <= 0) {
		return fmt.Errorf("width and height must both be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Quality < encoder.MinQuality || c.Quality > encoder.MaxQuality {
		return fmt.Errorf("quality %.2f outside [%.1f, %.1f]", c.Quality, encoder.MinQuality, encoder.MaxQuality)
	}
	if _, err := resize.Filter(c.Filter); err != nil {
		return err
	}
	presets, err := c.PresetSet()
	if err != nil {
		return err
	}
	if c.Width == 0 && c.Height == 0 {
		if _, err := presets.Get(c.Preset); err != nil {
			return err
		}
	}
	return nil
}

// PresetSet returns the built-in presets merged with the configured ones.
func (c *Config) PresetSet() (*preset.Set, error) {
	return preset.NewSet(c.Presets)
}

// Size resolves the configured target size: explicit width/height win over
// the preset.
func (c *Config) Size() (int, int, error) {
	if c.Width > 0 && c.Height > 0 {
		return c.Width, c.Height, nil
	}
	set, err := c.PresetSet()
	if err != nil {
		return 0, 0, err
	}
	p, err := set.Get(c.Preset)
	if err != nil {
		return 0, 0, err
	}
	return p.Width, p.Height, nil
}
