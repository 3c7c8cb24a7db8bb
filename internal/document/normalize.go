package document

import (
	"fmt"
	"sort"

	"github.com/tabledoc/tabledoc/internal/catalog"
)

// Normalize converts raw catalog column facts into canonical descriptors,
// preserving the catalog's ordinal order.
func Normalize(raw []catalog.RawColumn) []ColumnDescriptor {
	columns := make([]ColumnDescriptor, 0, len(raw))
	for _, rc := range raw {
		columns = append(columns, ColumnDescriptor{
			Name:         rc.Name,
			DeclaredType: declaredType(rc),
			Nullable:     rc.Nullable,
			ForeignKey:   foreignKey(rc.ForeignKey),
			IndexName:    indexName(rc.Indexes),
			Description:  firstNonEmpty(rc.Descriptions),
		})
	}
	return columns
}

// declaredType renders the base type with a "(N)" suffix when a length or
// precision is present. Pure string formatting, no type-family mapping.
func declaredType(rc catalog.RawColumn) string {
	if rc.Length == nil {
		return rc.BaseType
	}
	return fmt.Sprintf("%s(%d)", rc.BaseType, *rc.Length)
}

func foreignKey(ref *catalog.ForeignKeyRef) *ForeignKey {
	if ref == nil {
		return nil
	}
	return &ForeignKey{
		ReferencedTable:  ref.ReferencedTable,
		ReferencedColumn: ref.ReferencedColumn,
		ConstraintName:   ref.ConstraintName,
	}
}

// indexName picks the alphabetically first index when a column belongs to
// more than one, so repeated runs always report the same name.
func indexName(indexes []string) string {
	if len(indexes) == 0 {
		return ""
	}

	names := make([]string, len(indexes))
	copy(names, indexes)
	sort.Strings(names)
	return names[0]
}

// firstNonEmpty selects the highest-priority description candidate.
func firstNonEmpty(candidates []string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
