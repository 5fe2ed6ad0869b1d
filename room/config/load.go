package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadOptions selects the steps LoadFromFile runs after parsing
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
	MergeFiles          bool
}

// LoadFromFile parses a scene config. Unknown keys are an error so that a misspelled
// option is not silently ignored.
func LoadFromFile(path string, opts LoadOptions) (*ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := &ExperimentConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if opts.ResolvePaths {
		if err := config.ResolvePaths(NewPathResolver(filepath.Dir(path))); err != nil {
			return nil, fmt.Errorf("resolving paths: %w", err)
		}
	}
	if opts.MergeFiles {
		if err := config.LoadAndMerge(); err != nil {
			return nil, fmt.Errorf("merging external files: %w", err)
		}
	}
	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("validation errors:\n%s", FormatValidationErrors(errs))
		}
	}
	return config, nil
}

// SaveToFile stamps the config with the current time and commit and writes it as YAML
func SaveToFile(config *ExperimentConfig, path string) error {
	NewMetadataCollector().PopulateMetadata(config)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ResolvePaths rewrites every file reference relative to the config's directory. The mesh,
// when given, must exist; side files are checked when they are merged.
func (c *ExperimentConfig) ResolvePaths(resolver *PathResolver) error {
	for _, p := range []*string{&c.Input.Mesh.Path, &c.Materials.FromFile, &c.SurfaceAssignments.FromFile} {
		*p = resolver.ResolvePath(*p)
	}
	if mesh := c.Input.Mesh.Path; mesh != "" && !resolver.FileExists(mesh) {
		return fmt.Errorf("mesh file %s does not exist", mesh)
	}
	return nil
}
