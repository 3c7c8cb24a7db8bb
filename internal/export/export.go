// Package export writes finished documents to disk. It is a thin sink: path
// construction beyond joining the directory and filename happens upstream.
package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileExporter writes documents into a target directory, creating it when
// needed.
type FileExporter struct {
	Dir string
}

// NewFileExporter creates a new file exporter
func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{Dir: dir}
}

// Export writes the document text to <Dir>/<filename>.
func (e *FileExporter) Export(docText, filename string) error {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(e.Dir, filename)
	if err := os.WriteFile(path, []byte(docText), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
