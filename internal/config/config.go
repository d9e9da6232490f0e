// Package config carries the engine settings an installation can tune.
// Settings load from YAML; a missing file means defaults, and partial
// files inherit the defaults they do not override.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ExportSettings size the rendered drawing.
type ExportSettings struct {
	// MarginMm pads the drawing on every side.
	MarginMm float64 `yaml:"marginMm"`
	// HoleRadiusMm draws round stitch holes.
	HoleRadiusMm float64 `yaml:"holeRadiusMm"`
	// SlitLengthMm draws slit stitch holes.
	SlitLengthMm float64 `yaml:"slitLengthMm"`
}

// EngineSettings are the tunable limits of the pattern engines.
type EngineSettings struct {
	// HistoryCap bounds the undo stack.
	HistoryCap int `yaml:"historyCap"`
	// OffsetSamples is the flattening resolution of curve seam offsets.
	OffsetSamples int            `yaml:"offsetSamples"`
	Export        ExportSettings `yaml:"export"`
}

// Default returns the settings used when nothing is configured.
func Default() EngineSettings {
	return EngineSettings{
		HistoryCap:    120,
		OffsetSamples: 32,
		Export: ExportSettings{
			MarginMm:     10,
			HoleRadiusMm: 0.6,
			SlitLengthMm: 3,
		},
	}
}

// Load reads settings from a YAML file. An empty path or a missing file
// yields the defaults; values a file leaves out or sets out of range
// fall back to their defaults too.
func Load(path string) (EngineSettings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("reading settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return s.normalized(), nil
}

// normalized replaces out-of-range values with their defaults. Zero
// margins are allowed; zero hole sizes are not drawable.
func (s EngineSettings) normalized() EngineSettings {
	def := Default()
	if s.HistoryCap < 1 {
		s.HistoryCap = def.HistoryCap
	}
	if s.OffsetSamples < 2 {
		s.OffsetSamples = def.OffsetSamples
	}
	if s.Export.MarginMm < 0 {
		s.Export.MarginMm = def.Export.MarginMm
	}
	if s.Export.HoleRadiusMm <= 0 {
		s.Export.HoleRadiusMm = def.Export.HoleRadiusMm
	}
	if s.Export.SlitLengthMm <= 0 {
		s.Export.SlitLengthMm = def.Export.SlitLengthMm
	}
	return s
}
