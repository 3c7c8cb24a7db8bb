// Package render serializes a document model into a self-contained HTML
// report with deterministic structure and escaping.
package render

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/tabledoc/tabledoc/internal/document"
)

// placeholder is rendered for absent descriptions.
const placeholder = "-"

// styleBlock is emitted verbatim at the top of every document: bordered
// tables, zebra-striped rows, and a fixed heading palette.
const styleBlock = `<style>
body { font-family: sans-serif; margin: 2em; }
h1, h2 { color: #2c5d8a; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #b0b0b0; padding: 4px 8px; text-align: left; }
th { background-color: #2c5d8a; color: #ffffff; }
tr:nth-child(even) { background-color: #eef3f8; }
</style>`

// HTMLRenderer writes a document model as HTML
type HTMLRenderer struct {
	writer io.Writer
}

// NewHTMLRenderer creates a new HTML renderer
func NewHTMLRenderer(w io.Writer) *HTMLRenderer {
	return &HTMLRenderer{writer: w}
}

// Document renders the model to a complete HTML document string.
func Document(m *document.Model) (string, error) {
	var buf bytes.Buffer
	if err := NewHTMLRenderer(&buf).Render(m); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render writes the full document. Output is byte-identical across calls for
// the same model: section order is fixed and nothing time- or map-ordered is
// interpolated. Every model value is HTML-escaped before interpolation.
func (r *HTMLRenderer) Render(m *document.Model) error {
	if err := validate(m); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(r.writer, "<!DOCTYPE html>")
	_, _ = fmt.Fprintln(r.writer, "<html>")
	_, _ = fmt.Fprintln(r.writer, "<head>")
	_, _ = fmt.Fprintln(r.writer, `<meta charset="utf-8">`)
	_, _ = fmt.Fprintf(r.writer, "<title>%s</title>\n", html.EscapeString(m.Title))
	_, _ = fmt.Fprintln(r.writer, styleBlock)
	_, _ = fmt.Fprintln(r.writer, "</head>")
	_, _ = fmt.Fprintln(r.writer, "<body>")

	_, _ = fmt.Fprintf(r.writer, "<h1>%s</h1>\n", html.EscapeString(m.Title))
	_, _ = fmt.Fprintf(r.writer, "<p>%s</p>\n", escapeOrPlaceholder(m.Description))

	r.renderColumns(m.Columns)
	r.renderDependencies(m.Dependencies)

	_, _ = fmt.Fprintln(r.writer, "</body>")
	_, _ = fmt.Fprintln(r.writer, "</html>")

	return nil
}

// validate rejects malformed models before any output is produced. A failure
// here is a programming defect upstream, not a data condition.
func validate(m *document.Model) error {
	if m == nil {
		return fmt.Errorf("cannot render nil document model")
	}
	if m.Title == "" {
		return fmt.Errorf("cannot render document with empty title")
	}

	seen := make(map[string]bool, len(m.Columns))
	for _, col := range m.Columns {
		if col.Name == "" {
			return fmt.Errorf("document %q has a column with an empty name", m.Title)
		}
		if seen[col.Name] {
			return fmt.Errorf("document %q has duplicate column %q", m.Title, col.Name)
		}
		seen[col.Name] = true
	}

	return nil
}

func (r *HTMLRenderer) renderColumns(columns []document.ColumnDescriptor) {
	_, _ = fmt.Fprintln(r.writer, "<h2>Column Definitions</h2>")
	_, _ = fmt.Fprintln(r.writer, "<table>")
	_, _ = fmt.Fprintln(r.writer, "<tr><th>Column</th><th>Type</th><th>Nullable</th><th>FK Table</th><th>FK Column</th><th>FK Name</th><th>Index</th><th>Description</th></tr>")

	for _, col := range columns {
		nullable := "NO"
		if col.Nullable {
			nullable = "YES"
		}

		var fkTable, fkColumn, fkName string
		if col.ForeignKey != nil {
			fkTable = col.ForeignKey.ReferencedTable
			fkColumn = col.ForeignKey.ReferencedColumn
			fkName = col.ForeignKey.ConstraintName
		}

		_, _ = fmt.Fprintf(r.writer, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(col.Name),
			html.EscapeString(col.DeclaredType),
			nullable,
			html.EscapeString(fkTable),
			html.EscapeString(fkColumn),
			html.EscapeString(fkName),
			html.EscapeString(col.IndexName),
			escapeOrPlaceholder(col.Description))
	}

	_, _ = fmt.Fprintln(r.writer, "</table>")
}

func (r *HTMLRenderer) renderDependencies(deps []document.Dependency) {
	_, _ = fmt.Fprintln(r.writer, "<h2>Dependencies</h2>")
	_, _ = fmt.Fprintln(r.writer, "<table>")
	_, _ = fmt.Fprintln(r.writer, "<tr><th>#</th><th>Table</th><th>Kind</th><th>Object</th><th>Direction</th><th>Description</th></tr>")

	for _, dep := range deps {
		_, _ = fmt.Fprintf(r.writer, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			dep.SequenceID,
			html.EscapeString(dep.Table),
			html.EscapeString(string(dep.Kind)),
			html.EscapeString(dep.ObjectName),
			html.EscapeString(string(dep.Direction)),
			escapeOrPlaceholder(dep.Description))
	}

	_, _ = fmt.Fprintln(r.writer, "</table>")
}

func escapeOrPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return html.EscapeString(s)
}
