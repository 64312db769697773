// Package preset holds named target sizes for common store screenshot and
// icon requirements.
package preset

import (
	"fmt"
	"sort"
	"strings"
)

// Preset is a fixed target size.
type Preset struct {
	Name        string
	Width       int
	Height      int
	Description string
}

// Default is the preset used when neither a size nor a preset is given.
const Default = "iphone-5.5"

// Built-in presets.
var builtin = map[string]Preset{
	"iphone-5.5":   {Width: 1242, Height: 2208, Description: "App Store iPhone 5.5\" portrait"},
	"iphone-6.5":   {Width: 1242, Height: 2688, Description: "App Store iPhone 6.5\" portrait"},
	"iphone-6.7":   {Width: 1290, Height: 2796, Description: "App Store iPhone 6.7\" portrait"},
	"iphone-6.9":   {Width: 1320, Height: 2868, Description: "App Store iPhone 6.9\" portrait"},
	"ipad-12.9":    {Width: 2048, Height: 2732, Description: "App Store iPad 12.9\" portrait"},
	"ipad-13":      {Width: 2064, Height: 2752, Description: "App Store iPad 13\" portrait"},
	"mac":          {Width: 2880, Height: 1800, Description: "Mac App Store 16:10"},
	"watch":        {Width: 410, Height: 502, Description: "Apple Watch Ultra"},
	"app-icon":     {Width: 1024, Height: 1024, Description: "App Store icon"},
	"play-icon":    {Width: 512, Height: 512, Description: "Google Play hi-res icon"},
	"play-feature": {Width: 1024, Height: 500, Description: "Google Play feature graphic"},
	"play-phone":   {Width: 1080, Height: 1920, Description: "Google Play phone screenshot"},
}

// Set is a lookup of built-in presets merged with user-defined ones.
type Set struct {
	presets map[string]Preset
}

// NewSet returns the built-in presets overlaid with custom sizes. Custom
// entries replace built-ins of the same name.
func NewSet(custom map[string][2]int) (*Set, error) {
	s := &Set{presets: make(map[string]Preset, len(builtin)+len(custom))}
	for name, p := range builtin {
		p.Name = name
		s.presets[name] = p
	}
	for name, wh := range custom {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("preset with empty name")
		}
		if wh[0] <= 0 || wh[1] <= 0 {
			return nil, fmt.Errorf("preset %q: size %dx%d must be positive", name, wh[0], wh[1])
		}
		s.presets[name] = Preset{Name: name, Width: wh[0], Height: wh[1], Description: "custom"}
	}
	return s, nil
}

// Get returns a preset by name, case-insensitively.
func (s *Set) Get(name string) (Preset, error) {
	if p, ok := s.presets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return Preset{}, fmt.Errorf("unknown preset %q", name)
}

// All returns every preset sorted by name.
func (s *Set) All() []Preset {
	out := make([]Preset, 0, len(s.presets))
	for _, p := range s.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
