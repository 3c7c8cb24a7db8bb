package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabledoc/tabledoc/internal/document"
)

func ordersModel() *document.Model {
	return &document.Model{
		Title:       "orders",
		Description: "Customer orders",
		Columns: []document.ColumnDescriptor{
			{Name: "id", DeclaredType: "int", Nullable: false},
			{
				Name:         "customer_id",
				DeclaredType: "int",
				Nullable:     true,
				ForeignKey: &document.ForeignKey{
					ReferencedTable:  "customers",
					ReferencedColumn: "id",
					ConstraintName:   "fk_orders_customer",
				},
			},
		},
		Dependencies: []document.Dependency{
			{SequenceID: 1, Table: "orders", Kind: document.KindTable, ObjectName: "customers", Direction: document.DirectionParent},
		},
	}
}

func TestRenderOrdersScenario(t *testing.T) {
	doc, err := Document(ordersModel())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<h1>orders</h1>")
	assert.Contains(t, doc, "<p>Customer orders</p>")
	assert.Contains(t, doc, "<h2>Column Definitions</h2>")
	assert.Contains(t, doc, "<h2>Dependencies</h2>")

	// id: no FK, no index, no description.
	assert.Contains(t, doc, "<tr><td>id</td><td>int</td><td>NO</td><td></td><td></td><td></td><td></td><td>-</td></tr>")
	// customer_id: FK fields populated.
	assert.Contains(t, doc, "<tr><td>customer_id</td><td>int</td><td>YES</td><td>customers</td><td>id</td><td>fk_orders_customer</td><td></td><td>-</td></tr>")
	// the single dependency row.
	assert.Contains(t, doc, "<tr><td>1</td><td>orders</td><td>Table</td><td>customers</td><td>Parent</td><td>-</td></tr>")

	// Style block precedes the title heading.
	assert.Less(t, strings.Index(doc, "<style>"), strings.Index(doc, "<h1>"))
	assert.Contains(t, doc, "tr:nth-child(even)")
}

func TestRenderMissingDescriptionPlaceholder(t *testing.T) {
	model := &document.Model{Title: "widgets"}

	doc, err := Document(model)
	require.NoError(t, err)
	assert.Contains(t, doc, "<p>-</p>")
}

func TestRenderEmptyDependencyBody(t *testing.T) {
	model := &document.Model{
		Title:   "widgets",
		Columns: []document.ColumnDescriptor{{Name: "id", DeclaredType: "int"}},
	}

	doc, err := Document(model)
	require.NoError(t, err)

	// Header row only, no data rows.
	depSection := doc[strings.Index(doc, "<h2>Dependencies</h2>"):]
	assert.Contains(t, depSection, "<tr><th>#</th>")
	assert.Equal(t, 1, strings.Count(depSection, "<tr>"))
}

func TestRenderEscapesMarkup(t *testing.T) {
	model := &document.Model{
		Title:       "orders<script>",
		Description: `say "hi" & <b>bye</b>`,
		Columns: []document.ColumnDescriptor{
			{Name: "id", DeclaredType: "int", Description: "<script>alert(1)</script>"},
		},
		Dependencies: []document.Dependency{
			{SequenceID: 1, Table: "orders", Kind: document.KindRoutine, ObjectName: "fn<svg>", Direction: document.DirectionChild},
		},
	}

	doc, err := Document(model)
	require.NoError(t, err)

	assert.NotContains(t, doc, "<script>")
	assert.Contains(t, doc, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, doc, "&lt;b&gt;bye&lt;/b&gt;")
	assert.Contains(t, doc, "&amp;")
	assert.Contains(t, doc, "&#34;hi&#34;")
	assert.Contains(t, doc, "fn&lt;svg&gt;")
}

func TestRenderIdempotent(t *testing.T) {
	model := ordersModel()

	first, err := Document(model)
	require.NoError(t, err)
	second, err := Document(model)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderRejectsMalformedModels(t *testing.T) {
	tests := []struct {
		name  string
		model *document.Model
	}{
		{"nil model", nil},
		{"empty title", &document.Model{}},
		{
			"empty column name",
			&document.Model{Title: "t", Columns: []document.ColumnDescriptor{{Name: ""}}},
		},
		{
			"duplicate column name",
			&document.Model{Title: "t", Columns: []document.ColumnDescriptor{{Name: "id"}, {Name: "id"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Document(tt.model)
			assert.Error(t, err)
		})
	}
}
