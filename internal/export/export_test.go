package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportWritesDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs", "tables")
	exporter := NewFileExporter(dir)

	err := exporter.Export("<html>orders</html>", "orders.html")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "orders.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>orders</html>", string(data))
}

func TestExportOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	exporter := NewFileExporter(dir)

	require.NoError(t, exporter.Export("first", "orders.html"))
	require.NoError(t, exporter.Export("second", "orders.html"))

	data, err := os.ReadFile(filepath.Join(dir, "orders.html"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestExportFailsOnUnwritableDirectory(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	exporter := NewFileExporter(filepath.Join(blocker, "sub"))
	err := exporter.Export("doc", "orders.html")
	assert.Error(t, err)
}
