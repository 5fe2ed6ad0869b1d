package config

import (
	"os"
	"path/filepath"
)

// PathResolver resolves paths in a config relative to the directory holding it
type PathResolver struct {
	baseDir string
}

func NewPathResolver(baseDir string) *PathResolver {
	return &PathResolver{baseDir: baseDir}
}

// ResolvePath joins relative paths onto the base directory. Empty and absolute paths are
// returned unchanged.
func (pr *PathResolver) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(pr.baseDir, path)
}

// FileExists checks if a file exists and is a regular file
func (pr *PathResolver) FileExists(path string) bool {
	info, err := os.Stat(pr.ResolvePath(path))
	return err == nil && info.Mode().IsRegular()
}
