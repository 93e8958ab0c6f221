// storage defines the persistence contract every resource is stored through:
// a generic record store with an atomic compare-and-set on the record's
// version marker. Implementations live under infra (in-memory arena,
// Elasticsearch); the domain services only ever see this interface.
package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/metadata"
	"github.com/tasklink/tasklink/internal/domain/paging"
)

// Record is implemented by every persisted entity type. The With* methods
// return modified copies so that stores can assign ids and metadata without
// knowing anything else about the entity's shape.
type Record[T any] interface {
	RecordID() uuid.UUID
	RecordMeta() metadata.Metadata
	WithID(id uuid.UUID) T
	WithMeta(meta metadata.Metadata) T
}

// Store is the generic persistence contract.
//
// All mutation is atomic at the level of one record. Swap is the
// compare-and-set primitive: it writes only if the record's current version
// still equals expected, and it assigns a fresh, never-before-seen version on
// success. Operations on different records never contend with each other.
type Store[T Record[T]] interface {
	// Insert assigns an id, timestamps and an initial version, persists the
	// record atomically, and returns it in full.
	Insert(ctx context.Context, record T) (T, error)

	// Get retrieves a record by id, returning NotFound if it is absent.
	Get(ctx context.Context, id uuid.UUID) (T, error)

	// List applies the query's scope/search/sort/slice semantics over the
	// collection. The parent scope, when non-nil, restricts to records under
	// that parent relation and is applied before counting and pagination.
	// The ordering is total (ties broken by id) so repeated listings over an
	// unchanged collection paginate stably.
	List(ctx context.Context, query paging.Query, parent *uuid.UUID) (*paging.Result[T], error)

	// Swap atomically replaces the record iff its current version equals
	// expected, advancing to a new version. Returns VersionConflict when a
	// concurrent writer got there first.
	Swap(ctx context.Context, id uuid.UUID, expected metadata.Version, record T) (T, error)

	// Delete removes the record unconditionally, regardless of any versions
	// concurrent readers may hold.
	Delete(ctx context.Context, id uuid.UUID) error
}

// <-- Errors

// NotFound is returned when no record exists under the given id
type NotFound struct {
	ID uuid.UUID
}

func (e NotFound) Error() string {
	return fmt.Sprintf("Could not find a record with id [%v]", e.ID)
}

// VersionConflict is returned when a write presented a version that no longer
// matches the record's current one. Routine under contention, not a fault;
// the caller should re-fetch and retry with a fresh token.
type VersionConflict struct {
	ID uuid.UUID
}

func (e VersionConflict) Error() string {
	return fmt.Sprintf("Version provided did not match the persisted version for [%v]", e.ID)
}

// InvalidPersistedData is returned when stored data cannot be mapped back
// into a domain record
type InvalidPersistedData struct {
	PersistedData interface{}
}

func (e InvalidPersistedData) Error() string {
	return fmt.Sprintf("Invalid persisted data [%v]", e.PersistedData)
}

//     Errors -->
