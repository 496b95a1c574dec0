package utils

import (
	"os"
	"path/filepath"
)

// WriteFile writes data to a file, creating directories as needed
func WriteFile(path string, data []byte, perm os.FileMode) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, perm)
}

// RootedPath joins path under root. An empty root leaves path untouched.
func RootedPath(root, path string) string {
	if root == "" {
		return path
	}
	return filepath.Join(root, path)
}
