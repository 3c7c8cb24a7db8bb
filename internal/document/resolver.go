package document

import (
	"context"
	"fmt"

	"github.com/tabledoc/tabledoc/internal/catalog"
)

// depKey identifies a dependency for deduplication.
type depKey struct {
	kind      Kind
	object    string
	direction Direction
}

// ResolveDependencies derives the subject table's dependency list in three
// fixed passes: outgoing foreign keys (Parent/Table), incoming foreign keys
// (Child/Table), then stored routines whose definition text mentions the
// table (Child/Routine). Discovery order is preserved within each pass and
// sequence ids run 1-based across all of them. A duplicate
// (kind, object, direction) triple is dropped on second discovery.
//
// The routine pass inherits the reader's substring heuristic: entries may be
// false positives and real references may be missed, so the routine rows are
// advisory rather than authoritative.
func ResolveDependencies(ctx context.Context, r catalog.Reader, id catalog.TableIdentity) ([]Dependency, error) {
	var deps []Dependency
	seen := make(map[depKey]bool)

	add := func(kind Kind, object string, direction Direction, description string) {
		key := depKey{kind: kind, object: object, direction: direction}
		if seen[key] {
			return
		}
		seen[key] = true
		deps = append(deps, Dependency{
			SequenceID:  len(deps) + 1,
			Table:       id.String(),
			Kind:        kind,
			ObjectName:  object,
			Direction:   direction,
			Description: description,
		})
	}

	outgoing, err := r.OutgoingForeignKeys(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve outgoing foreign keys for %s: %w", id, err)
	}
	for _, ref := range outgoing {
		add(KindTable, ref.Table, DirectionParent, "")
	}

	incoming, err := r.IncomingForeignKeys(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve incoming foreign keys for %s: %w", id, err)
	}
	for _, ref := range incoming {
		add(KindTable, ref.Table, DirectionChild, "")
	}

	routines, err := r.ReferencingRoutines(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve referencing routines for %s: %w", id, err)
	}
	for _, routine := range routines {
		add(KindRoutine, routine.Name, DirectionChild, routine.Comment)
	}

	return deps, nil
}
