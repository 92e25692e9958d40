// Package config handles configuration loading and rendering defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root structure of the optional configuration file.
type Config struct {
	Map    Map    `yaml:"map,omitempty"`
	Output Output `yaml:"output,omitempty"`
}

// Map controls the rendered map document.
type Map struct {
	TileURL     string `yaml:"tile_url,omitempty"`
	Attribution string `yaml:"attribution,omitempty"`
	Zoom        int    `yaml:"zoom,omitempty"`
}

// Output names the files written by the tools.
type Output struct {
	Filtered string `yaml:"filtered,omitempty"`
	Map      string `yaml:"map,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Map: Map{
			TileURL:     "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: "&copy; OpenStreetMap contributors",
			Zoom:        10,
		},
		Output: Output{
			Filtered: "filtered.json",
			Map:      "map.html",
		},
	}
}

// Load reads and parses the YAML configuration file from the specified
// path, falling back to defaults for omitted fields. An empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.Map.TileURL == "" {
		cfg.Map.TileURL = Default().Map.TileURL
	}
	if cfg.Map.Zoom <= 0 {
		cfg.Map.Zoom = Default().Map.Zoom
	}
	if cfg.Output.Filtered == "" {
		cfg.Output.Filtered = Default().Output.Filtered
	}
	if cfg.Output.Map == "" {
		cfg.Output.Map = Default().Output.Map
	}

	return cfg, nil
}
