package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oasgen/internal/fileutil"
)

// WriteFiles writes all generated files to the specified output directory.
// The directory is created if it doesn't exist.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	if err := os.MkdirAll(outputDir, fileutil.DirMode); err != nil {
		return fmt.Errorf("generator: failed to create output directory: %w", err)
	}

	for _, file := range r.Files {
		safeName := filepath.Base(file.Name)
		if safeName != file.Name {
			return fmt.Errorf("generator: invalid file name %q: must not contain path separators", file.Name)
		}
		if err := os.WriteFile(filepath.Join(outputDir, safeName), file.Content, fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("generator: failed to write file %s: %w", file.Name, err)
		}
	}
	return nil
}

// WriteFile writes a single generated file to the specified path.
func (f *GeneratedFile) WriteFile(path string) error {
	if err := fileutil.WriteFile(path, f.Content); err != nil {
		return fmt.Errorf("generator: %s: %w", f.Name, err)
	}
	return nil
}
