package catalog

import (
	"context"
	"fmt"
)

// PostgresReader reads catalog facts from a PostgreSQL database.
type PostgresReader struct {
	client *PostgresClient
}

// NewPostgresReader creates a catalog reader backed by the given client.
func NewPostgresReader(client *PostgresClient) *PostgresReader {
	return &PostgresReader{client: client}
}

// TableDescription returns the table's comment, or "" when absent.
func (r *PostgresReader) TableDescription(ctx context.Context, id TableIdentity) (string, error) {
	query := `
		SELECT COALESCE(obj_description(c.oid, 'pg_class'), '')
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relname = $2 AND c.relkind = 'r'
	`

	rows, err := r.client.conn.Query(ctx, query, id.Schema, id.Name)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var description string
	if rows.Next() {
		if err := rows.Scan(&description); err != nil {
			return "", err
		}
	}

	return description, rows.Err()
}

// Columns returns one RawColumn per column in ordinal order.
func (r *PostgresReader) Columns(ctx context.Context, id TableIdentity) ([]RawColumn, error) {
	fks, err := r.columnForeignKeys(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read column foreign keys: %w", err)
	}

	indexes, err := r.columnIndexes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read column indexes: %w", err)
	}

	query := `
		SELECT
			c.column_name,
			c.data_type,
			COALESCE(c.character_maximum_length, 0),
			c.is_nullable,
			COALESCE(col_description(pc.oid, c.ordinal_position), '')
		FROM information_schema.columns c
		JOIN pg_class pc ON pc.relname = c.table_name
		JOIN pg_namespace pn ON pn.oid = pc.relnamespace AND pn.nspname = c.table_schema
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`

	rows, err := r.client.conn.Query(ctx, query, id.Schema, id.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []RawColumn
	for rows.Next() {
		var col RawColumn
		var length int
		var nullable, comment string

		if err := rows.Scan(&col.Name, &col.BaseType, &length, &nullable, &comment); err != nil {
			return nil, err
		}

		if length > 0 {
			col.Length = &length
		}
		col.Nullable = (nullable == "YES")
		if comment != "" {
			col.Descriptions = []string{comment}
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
func (r *PostgresReader) columnForeignKeys(ctx context.Context, id TableIdentity) (map[string]ForeignKeyRef, error) {
	query := `
		SELECT
			kcu.column_name,
			tc.constraint_name,
			ccu.table_name,
			ccu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = $1
			AND tc.table_name = $2
		ORDER BY kcu.ordinal_position
	`

	rows, err := r.client.conn.Query(ctx, query, id.Schema, id.Name)
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
func (r *PostgresReader) columnIndexes(ctx context.Context, id TableIdentity) (map[string][]string, error) {
	query := `
		SELECT a.attname, i.relname
		FROM pg_class t
		JOIN pg_index ix ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
		JOIN pg_namespace n ON n.oid = t.relnamespace
		WHERE t.relkind = 'r'
			AND n.nspname = $1
			AND t.relname = $2
		ORDER BY i.relname
	`

	rows, err := r.client.conn.Query(ctx, query, id.Schema, id.Name)
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
func (r *PostgresReader) OutgoingForeignKeys(ctx context.Context, id TableIdentity) ([]TableRef, error) {
	query := `
		SELECT ccu.table_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = $1
			AND tc.table_name = $2
		ORDER BY tc.constraint_name
	`
	return r.tableRefs(ctx, query, id.Schema, id.Name)
}

// IncomingForeignKeys returns the tables that reference the subject.
func (r *PostgresReader) IncomingForeignKeys(ctx context.Context, id TableIdentity) ([]TableRef, error) {
	query := `
		SELECT tc.table_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND ccu.table_schema = $1
			AND ccu.table_name = $2
		ORDER BY tc.constraint_name
	`
	return r.tableRefs(ctx, query, id.Schema, id.Name)
}

func (r *PostgresReader) tableRefs(ctx context.Context, query string, args ...any) ([]TableRef, error) {
	rows, err := r.client.conn.Query(ctx, query, args...)
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

// ReferencingRoutines finds routines whose source text contains the table
// name. Substring match against pg_proc.prosrc, advisory only.
func (r *PostgresReader) ReferencingRoutines(ctx context.Context, id TableIdentity) ([]RoutineRef, error) {
	query := `
		SELECT p.proname, COALESCE(obj_description(p.oid, 'pg_proc'), '')
		FROM pg_proc p
		JOIN pg_namespace n ON n.oid = p.pronamespace
		WHERE n.nspname = $1
			AND p.prosrc LIKE '%' || $2 || '%'
		ORDER BY p.proname
	`

	rows, err := r.client.conn.Query(ctx, query, id.Schema, id.Name)
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
