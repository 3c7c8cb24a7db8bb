package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabledoc/tabledoc/internal/catalog"
)

func intPtr(n int) *int { return &n }

func TestNormalizePreservesOrdinalOrder(t *testing.T) {
	raw := []catalog.RawColumn{
		{Name: "zulu", BaseType: "int"},
		{Name: "alpha", BaseType: "text"},
		{Name: "mike", BaseType: "int"},
	}

	columns := Normalize(raw)
	require.Len(t, columns, 3)
	assert.Equal(t, "zulu", columns[0].Name)
	assert.Equal(t, "alpha", columns[1].Name)
	assert.Equal(t, "mike", columns[2].Name)
}

func TestNormalizeDeclaredType(t *testing.T) {
	tests := []struct {
		name string
		raw  catalog.RawColumn
		want string
	}{
		{
			name: "type with length",
			raw:  catalog.RawColumn{Name: "title", BaseType: "varchar", Length: intPtr(50)},
			want: "varchar(50)",
		},
		{
			name: "type without length",
			raw:  catalog.RawColumn{Name: "id", BaseType: "int"},
			want: "int",
		},
		{
			name: "precision",
			raw:  catalog.RawColumn{Name: "price", BaseType: "decimal", Length: intPtr(10)},
			want: "decimal(10)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns := Normalize([]catalog.RawColumn{tt.raw})
			require.Len(t, columns, 1)
			assert.Equal(t, tt.want, columns[0].DeclaredType)
		})
	}
}

func TestNormalizeDescriptionPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"first non-empty wins", []string{"primary", "supplementary"}, "primary"},
		{"skips empty candidates", []string{"", "supplementary"}, "supplementary"},
		{"all empty means absent", []string{"", ""}, ""},
		{"no candidates means absent", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns := Normalize([]catalog.RawColumn{
				{Name: "c", BaseType: "int", Descriptions: tt.candidates},
			})
			require.Len(t, columns, 1)
			assert.Equal(t, tt.want, columns[0].Description)
		})
	}
}

func TestNormalizeForeignKey(t *testing.T) {
	raw := []catalog.RawColumn{
		{
			Name:     "customer_id",
			BaseType: "int",
			ForeignKey: &catalog.ForeignKeyRef{
				ConstraintName:   "fk_orders_customer",
				ReferencedTable:  "customers",
				ReferencedColumn: "id",
			},
		},
		{Name: "note", BaseType: "text"},
	}

	columns := Normalize(raw)
	require.Len(t, columns, 2)

	require.NotNil(t, columns[0].ForeignKey)
	assert.Equal(t, "customers", columns[0].ForeignKey.ReferencedTable)
	assert.Equal(t, "id", columns[0].ForeignKey.ReferencedColumn)
	assert.Equal(t, "fk_orders_customer", columns[0].ForeignKey.ConstraintName)

	assert.Nil(t, columns[1].ForeignKey)
}

func TestNormalizeIndexTieBreak(t *testing.T) {
	// A column in several indexes always reports the alphabetically first.
	columns := Normalize([]catalog.RawColumn{
		{Name: "email", BaseType: "text", Indexes: []string{"idx_users_email_status", "idx_users_email"}},
	})
	require.Len(t, columns, 1)
	assert.Equal(t, "idx_users_email", columns[0].IndexName)

	columns = Normalize([]catalog.RawColumn{
		{Name: "email", BaseType: "text"},
	})
	assert.Equal(t, "", columns[0].IndexName)
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Empty(t, Normalize(nil))
}
