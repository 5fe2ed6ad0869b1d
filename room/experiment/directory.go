package experiment

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	ExperimentsDir = "experiments"
	LatestSymlink  = "latest"
)

type ExperimentDir struct {
	Path      string    // Absolute path to experiment directory
	ID        string    // Unique experiment identifier
	Timestamp time.Time // When the experiment was created
}

// CreateExperimentDirectory creates a new experiment directory under baseDir/experiments
// and points baseDir/experiments/latest at it.
func CreateExperimentDirectory(baseDir string) (*ExperimentDir, error) {
	root := filepath.Join(baseDir, ExperimentsDir)
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating experiments directory: %w", err)
	}

	now := time.Now().UTC()
	id := GenerateExperimentID(now)

	absPath, err := filepath.Abs(filepath.Join(root, id))
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	if err := os.Mkdir(absPath, 0755); err != nil {
		return nil, fmt.Errorf("creating experiment directory: %w", err)
	}

	latestPath := filepath.Join(root, LatestSymlink)
	_ = os.Remove(latestPath)
	if err := os.Symlink(id, latestPath); err != nil {
		// Don't fail if symlink creation fails
		log.Printf("Warning: failed to create latest symlink: %v", err)
	}

	return &ExperimentDir{
		Path:      absPath,
		ID:        id,
		Timestamp: now,
	}, nil
}

// GetFilePath returns the absolute path for a file in the experiment directory
func (e *ExperimentDir) GetFilePath(filename string) string {
	return filepath.Join(e.Path, filename)
}

// CopyConfigFile copies the provided config file to the experiment directory
func (e *ExperimentDir) CopyConfigFile(srcPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	destPath := e.GetFilePath(filepath.Base(srcPath))
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
