package catalog

import (
	"context"
	"database/sql"
)

// MySQLReader reads catalog facts from a MySQL database. The table identity's
// Schema is the MySQL database name.
type MySQLReader struct {
	db *sql.DB
}

// NewMySQLReader creates a catalog reader backed by the given client.
func NewMySQLReader(client *MySQLClient) *MySQLReader {
	return &MySQLReader{db: client.db}
}

// TableDescription returns the table's comment, or "" when absent.
func (r *MySQLReader) TableDescription(ctx context.Context, id TableIdentity) (string, error) {
	query := `
		SELECT table_comment
		FROM information_schema.tables
		WHERE table_schema = ? AND table_name = ?
	`

	var description string
	err := r.db.QueryRowContext(ctx, query, id.Schema, id.Name).Scan(&description)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return description, nil
}

// Columns returns one RawColumn per column in ordinal order. MySQL reports a
// column comment and, for generated columns, a generation expression; both
// are surfaced as description candidates, comment first.
func (r *MySQLReader) Columns(ctx context.Context, id TableIdentity) ([]RawColumn, error) {
	fks, err := r.columnForeignKeys(ctx, id)
	if err != nil {
		return nil, err
	}

	indexes, err := r.columnIndexes(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			c.column_name,
			c.data_type,
			COALESCE(c.character_maximum_length, c.numeric_precision, 0),
			c.is_nullable,
			c.column_comment,
			COALESCE(c.generation_expression, '')
		FROM information_schema.columns c
		WHERE c.table_schema = ? AND c.table_name = ?
		ORDER BY c.ordinal_position
	`

	rows, err := r.db.QueryContext(ctx, query, id.Schema, id.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []RawColumn
	for rows.Next() {
		var col RawColumn
		var length int
		var nullable, comment, generated string

		if err := rows.Scan(&col.Name, &col.BaseType, &length, &nullable, &comment, &generated); err != nil {
			return nil, err
		}

		if length > 0 {
			col.Length = &length
		}
		col.Nullable = (nullable == "YES")
		if comment != "" || generated != "" {
			col.Descriptions = []string{comment, generated}
		}
		col.Indexes = indexes[col.Name]
		if fk, ok := fks[col.Name]; ok {
			ref := fk
			col.ForeignKey = &ref
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// columnForeignKeys maps column name to its owning foreign key constraint.
func (r *MySQLReader) columnForeignKeys(ctx context.Context, id TableIdentity) (map[string]ForeignKeyRef, error) {
	query := `
		SELECT
			kcu.column_name,
			kcu.constraint_name,
			kcu.referenced_table_name,
			kcu.referenced_column_name
		FROM information_schema.key_column_usage kcu
		WHERE kcu.table_schema = ?
			AND kcu.table_name = ?
			AND kcu.referenced_table_name IS NOT NULL
		ORDER BY kcu.ordinal_position
	`

	rows, err := r.db.QueryContext(ctx, query, id.Schema, id.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fks := make(map[string]ForeignKeyRef)
	for rows.Next() {
		var column string
		var fk ForeignKeyRef
		if err := rows.Scan(&column, &fk.ConstraintName, &fk.ReferencedTable, &fk.ReferencedColumn); err != nil {
			return nil, err
		}
		if _, ok := fks[column]; !ok {
			fks[column] = fk
		}
	}

	return fks, rows.Err()
}

// columnIndexes maps column name to the indexes it participates in.
func (r *MySQLReader) columnIndexes(ctx context.Context, id TableIdentity) (map[string][]string, error) {
	query := `
		SELECT s.column_name, s.index_name
		FROM information_schema.statistics s
		WHERE s.table_schema = ? AND s.table_name = ?
		ORDER BY s.index_name, s.seq_in_index
	`

	rows, err := r.db.QueryContext(ctx, query, id.Schema, id.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	indexes := make(map[string][]string)
	for rows.Next() {
		var column, index string
		if err := rows.Scan(&column, &index); err != nil {
			return nil, err
		}
		indexes[column] = append(indexes[column], index)
	}

	return indexes, rows.Err()
}

// OutgoingForeignKeys returns the tables the subject references.
func (r *MySQLReader) OutgoingForeignKeys(ctx context.Context, id TableIdentity) ([]TableRef, error) {
	query := `
		SELECT kcu.referenced_table_name
		FROM information_schema.key_column_usage kcu
		WHERE kcu.table_schema = ?
			AND kcu.table_name = ?
			AND kcu.referenced_table_name IS NOT NULL
		ORDER BY kcu.constraint_name
	`
	return r.tableRefs(ctx, query, id.Schema, id.Name)
}

// IncomingForeignKeys returns the tables that reference the subject.
func (r *MySQLReader) IncomingForeignKeys(ctx context.Context, id TableIdentity) ([]TableRef, error) {
	query := `
		SELECT kcu.table_name
		FROM information_schema.key_column_usage kcu
		WHERE kcu.referenced_table_schema = ?
			AND kcu.referenced_table_name = ?
		ORDER BY kcu.constraint_name
	`
	return r.tableRefs(ctx, query, id.Schema, id.Name)
}

func (r *MySQLReader) tableRefs(ctx context.Context, query string, args ...any) ([]TableRef, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []TableRef
	for rows.Next() {
		var ref TableRef
		if err := rows.Scan(&ref.Table); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}

// ReferencingRoutines finds routines whose definition contains the table
// name. Substring match against routine_definition, advisory only.
func (r *MySQLReader) ReferencingRoutines(ctx context.Context, id TableIdentity) ([]RoutineRef, error) {
	query := `
		SELECT routine_name, routine_comment
		FROM information_schema.routines
		WHERE routine_schema = ?
			AND routine_definition LIKE CONCAT('%', ?, '%')
		ORDER BY routine_name
	`

	rows, err := r.db.QueryContext(ctx, query, id.Schema, id.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []RoutineRef
	for rows.Next() {
		var routine RoutineRef
		if err := rows.Scan(&routine.Name, &routine.Comment); err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}

	return routines, rows.Err()
}
