// Package fileutil holds the permission modes and write helper for
// generated files.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadableByAll is the file permission mode for generated source files
// read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// DirMode is the permission mode of created output directories.
const DirMode os.FileMode = 0o755

// WriteFile writes data to path, creating missing parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, ReadableByAll); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
