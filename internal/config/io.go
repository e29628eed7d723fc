package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveProject writes a project configuration as indented JSON.
func SaveProject(cfg *ProjectConfig, path string) error {
	out := *cfg
	out.Gradient.Stops = cfg.Gradient.SortedStops()

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write project %s: %w", path, err)
	}
	return nil
}

// LoadProject reads a project file. Missing fields take their documented
// defaults; wrong-typed values are returned as errors.
func LoadProject(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project %s: %w", path, err)
	}

	cfg := &ProjectConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	return cfg, nil
}

// SavePalettes writes a palette collection as indented JSON.
func SavePalettes(palettes []Palette, path string) error {
	data, err := json.MarshalIndent(palettes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode palettes: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write palettes %s: %w", path, err)
	}
	return nil
}

// LoadPalettes reads a palette collection. A single palette object is
// accepted as a one-element collection.
func LoadPalettes(path string) ([]Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palettes %s: %w", path, err)
	}

	var list []Palette
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single Palette
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("failed to parse palettes %s: %w", path, err)
	}
	return []Palette{single}, nil
}
