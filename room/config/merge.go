package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// mergeJSONFile reads a JSON object from path into inline. Entries already present inline
// take precedence.
func mergeJSONFile[T any](path string, inline *map[string]T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var fromFile map[string]T
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if *inline == nil {
		*inline = make(map[string]T, len(fromFile))
	}
	for name, v := range fromFile {
		if _, exists := (*inline)[name]; !exists {
			(*inline)[name] = v
		}
	}
	return nil
}

// MergeMaterials merges materials from a file with inline materials
func (m *Materials) MergeMaterials() error {
	if m.FromFile == "" {
		return nil
	}
	return mergeJSONFile(m.FromFile, &m.Inline)
}

// MergeSurfaceAssignments merges surface assignments from a file with inline assignments
func (sa *SurfaceAssignments) MergeSurfaceAssignments() error {
	if sa.FromFile == "" {
		return nil
	}
	return mergeJSONFile(sa.FromFile, &sa.Inline)
}

// HasMaterial reports whether a material is defined inline (after merging)
func (m *Materials) HasMaterial(name string) bool {
	_, exists := m.Inline[name]
	return exists
}

// LoadAndMerge loads all external files and merges their contents
func (c *ExperimentConfig) LoadAndMerge() error {
	// Merge materials first since surface assignments depend on them
	if err := c.Materials.MergeMaterials(); err != nil {
		return fmt.Errorf("merging materials: %w", err)
	}

	// Then merge surface assignments
	if err := c.SurfaceAssignments.MergeSurfaceAssignments(); err != nil {
		return fmt.Errorf("merging surface assignments: %w", err)
	}

	return nil
}
