package catalog

import "context"

// TableIdentity is the qualified name of the table being documented.
// Schema may be empty for engines without schema namespaces (SQLite).
type TableIdentity struct {
	Schema string
	Name   string
}

func (id TableIdentity) String() string {
	if id.Schema == "" {
		return id.Name
	}
	return id.Schema + "." + id.Name
}

// ForeignKeyRef describes the foreign key constraint a column participates in.
type ForeignKeyRef struct {
	ConstraintName   string
	ReferencedTable  string
	ReferencedColumn string
}

// RawColumn is a single column fact in the shape the catalog reports it,
// before normalization.
type RawColumn struct {
	Name     string
	BaseType string
	// Length is the declared length or precision, nil when the type has none.
	Length   *int
	Nullable bool
	// Descriptions holds candidate description sources in source priority
	// order. Engines with a single comment facility report at most one entry.
	Descriptions []string
	// Indexes lists every index the column belongs to.
	Indexes    []string
	ForeignKey *ForeignKeyRef
}

// TableRef names a table on the other side of a foreign key.
type TableRef struct {
	Table string
}

// RoutineRef names a stored routine whose definition text mentions the
// subject table. Comment is the routine's own catalog comment, if any.
type RoutineRef struct {
	Name    string
	Comment string
}

// Reader is the engine-agnostic catalog access contract. Implementations are
// read-only. A table identity that does not resolve yields empty results from
// every method, not an error; the pipeline decides what an all-empty result
// means.
type Reader interface {
	// TableDescription returns the table's catalog comment, or "" when absent.
	TableDescription(ctx context.Context, id TableIdentity) (string, error)

	// Columns returns one RawColumn per column in the table's native ordinal
	// order.
	Columns(ctx context.Context, id TableIdentity) ([]RawColumn, error)

	// OutgoingForeignKeys returns the tables referenced by the subject's
	// foreign keys, in catalog discovery order.
	OutgoingForeignKeys(ctx context.Context, id TableIdentity) ([]TableRef, error)

	// IncomingForeignKeys returns the tables whose foreign keys reference the
	// subject, in catalog discovery order.
	IncomingForeignKeys(ctx context.Context, id TableIdentity) ([]TableRef, error)

	// ReferencingRoutines returns stored routines whose definition text
	// contains the subject table's name as a substring. This is a textual
	// heuristic: string literals and unrelated identifiers produce false
	// positives, and dynamic SQL or views produce false negatives. The result
	// is advisory.
	ReferencingRoutines(ctx context.Context, id TableIdentity) ([]RoutineRef, error)
}
