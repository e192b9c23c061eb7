package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is an optional YAML run description: a source list plus defaults
// that flags can still override.
//
//	sources:
//	  - city_a.json
//	  - https://example.com/city_b.json
//	output: cities.gpx
//	dedup: false
type Manifest struct {
	Sources []string `yaml:"sources"`
	Output  string   `yaml:"output"`
	Dedup   *bool    `yaml:"dedup"`
}

func loadManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}
