package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// SQLiteReader reads catalog facts from a SQLite database. SQLite has no
// schema namespaces, no comments, and no stored routines, so the identity's
// Schema is ignored, descriptions are always absent, and routine discovery
// yields nothing.
type SQLiteReader struct {
	db *sql.DB
}

// NewSQLiteReader creates a catalog reader backed by the given client.
func NewSQLiteReader(client *SQLiteClient) *SQLiteReader {
	return &SQLiteReader{db: client.db}
}

// TableDescription always returns "": SQLite has no table comments.
func (r *SQLiteReader) TableDescription(ctx context.Context, id TableIdentity) (string, error) {
	return "", nil
}

// Columns returns one RawColumn per column in declaration order.
func (r *SQLiteReader) Columns(ctx context.Context, id TableIdentity) ([]RawColumn, error) {
	fks, err := r.columnForeignKeys(ctx, id)
	if err != nil {
		return nil, err
	}

	indexes, err := r.columnIndexes(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", id.Name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []RawColumn
	for rows.Next() {
		var cid, notNull, pk int
		var name, declaredType string
		var defaultValue sql.NullString

		if err := rows.Scan(&cid, &name, &declaredType, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		baseType, length := splitDeclaredType(declaredType)
		col := RawColumn{
			Name:     name,
			BaseType: baseType,
			Length:   length,
			Nullable: notNull == 0,
			Indexes:  indexes[name],
		}
		if fk, ok := fks[name]; ok {
			ref := fk
			col.ForeignKey = &ref
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// splitDeclaredType splits a declared type like "VARCHAR(50)" into its base
// name and length. SQLite stores the declaration verbatim, so the length is
// embedded in the type text rather than reported separately.
func splitDeclaredType(declared string) (string, *int) {
	open := strings.Index(declared, "(")
	if open < 0 || !strings.HasSuffix(declared, ")") {
		return declared, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(declared[open+1 : len(declared)-1]))
	if err != nil {
		return declared, nil
	}

	return strings.TrimSpace(declared[:open]), &n
}

// columnForeignKeys maps column name to its foreign key. SQLite does not
// expose constraint names, so ConstraintName stays empty.
func (r *SQLiteReader) columnForeignKeys(ctx context.Context, id TableIdentity) (map[string]ForeignKeyRef, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", id.Name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fks := make(map[string]ForeignKeyRef)
	for rows.Next() {
		var fkID, seq int
		var table, from string
		var to sql.NullString
		var onUpdate, onDelete, match string

		if err := rows.Scan(&fkID, &seq, &table, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}

		if _, ok := fks[from]; !ok {
			fks[from] = ForeignKeyRef{
				ReferencedTable:  table,
				ReferencedColumn: to.String,
			}
		}
	}

	return fks, rows.Err()
}

// columnIndexes maps column name to the indexes it participates in.
func (r *SQLiteReader) columnIndexes(ctx context.Context, id TableIdentity) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_list(%s)", id.Name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexNames []string
	for rows.Next() {
		var seq, unique, partial int
		var name, origin string

		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return nil, err
		}
		indexNames = append(indexNames, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	indexes := make(map[string][]string)
	for _, indexName := range indexNames {
		infoRows, err := r.db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_info(%s)", indexName))
		if err != nil {
			return nil, err
		}

		for infoRows.Next() {
			var seqno, cid int
			var column sql.NullString
			if err := infoRows.Scan(&seqno, &cid, &column); err != nil {
				infoRows.Close()
				return nil, err
			}
			if column.Valid {
				indexes[column.String] = append(indexes[column.String], indexName)
			}
		}
		if err := infoRows.Err(); err != nil {
			infoRows.Close()
			return nil, err
		}
		infoRows.Close()
	}

	return indexes, nil
}

// OutgoingForeignKeys returns the tables the subject references.
func (r *SQLiteReader) OutgoingForeignKeys(ctx context.Context, id TableIdentity) ([]TableRef, error) {
	fks, err := r.foreignKeyTargets(ctx, id.Name)
	if err != nil {
		return nil, err
	}

	var refs []TableRef
	for _, table := range fks {
		refs = append(refs, TableRef{Table: table})
	}

	return refs, nil
}

// IncomingForeignKeys scans every other table's foreign keys for references
// to the subject. SQLite has no reverse lookup, so this walks sqlite_master.
func (r *SQLiteReader) IncomingForeignKeys(ctx context.Context, id TableIdentity) ([]TableRef, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	var refs []TableRef
	for _, table := range tables {
		if table == id.Name {
			continue
		}

		targets, err := r.foreignKeyTargets(ctx, table)
		if err != nil {
			return nil, err
		}
		for _, target := range targets {
			if target == id.Name {
				refs = append(refs, TableRef{Table: table})
				break
			}
		}
	}

	return refs, nil
}

// foreignKeyTargets returns the tables referenced by the named table's
// foreign keys, in PRAGMA discovery order.
func (r *SQLiteReader) foreignKeyTargets(ctx context.Context, table string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var fkID, seq int
		var target, from string
		var to sql.NullString
		var onUpdate, onDelete, match string

		if err := rows.Scan(&fkID, &seq, &target, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	return targets, rows.Err()
}

// ReferencingRoutines always returns nothing: SQLite has no stored routines.
func (r *SQLiteReader) ReferencingRoutines(ctx context.Context, id TableIdentity) ([]RoutineRef, error) {
	return nil, nil
}
