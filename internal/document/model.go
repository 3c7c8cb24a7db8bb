// Package document holds the engine-agnostic model of a finished table
// report, the normalization of raw catalog facts into it, and the dependency
// resolution between the subject table and other schema objects.
package document

// Kind classifies what a dependency points at.
type Kind string

const (
	KindTable   Kind = "Table"
	KindRoutine Kind = "Routine"
)

// Direction tells which side of a dependency the subject table is on.
// Parent means the subject references the object; Child means the object
// references the subject.
type Direction string

const (
	DirectionParent Direction = "Parent"
	DirectionChild  Direction = "Child"
)

// ForeignKey is the resolved foreign key target of a column.
type ForeignKey struct {
	ReferencedTable  string
	ReferencedColumn string
	ConstraintName   string
}

// ColumnDescriptor is the canonical description of one table column.
type ColumnDescriptor struct {
	Name         string
	DeclaredType string
	Nullable     bool
	ForeignKey   *ForeignKey
	IndexName    string
	Description  string
}

// Dependency links the subject table to another schema object.
type Dependency struct {
	// SequenceID is 1-based and strictly increasing in discovery order
	// across all resolution passes.
	SequenceID  int
	Table       string
	Kind        Kind
	ObjectName  string
	Direction   Direction
	Description string
}

// Model is the complete in-memory report for one table. It is built once by
// the pipeline and read-only from the renderer's point of view.
type Model struct {
	Title        string
	Description  string
	Columns      []ColumnDescriptor
	Dependencies []Dependency
}
