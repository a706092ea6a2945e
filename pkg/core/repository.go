package core

import "context"

// SchemaVersion is the current version of the store layout.
// Bumping it must only add collections; upgrades are create-if-absent.
const SchemaVersion = 2

// Repository defines the contract for storing and retrieving entity records.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (Filesystem, SQLite, memory).
//
// Every operation is atomic on its own. There is no multi-operation transaction.
type Repository interface {
	// Initialize opens the underlying handle and upgrades the schema.
	// It must be idempotent and safe to call concurrently.
	Initialize(ctx context.Context) error

	// Put persists a record. It creates if not exists, or replaces it if it does.
	Put(ctx context.Context, collection string, rec Record) error

	// Get retrieves a record by its ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, collection, id string) (Record, error)

	// List returns all records of a collection in no particular order.
	List(ctx context.Context, collection string) ([]Record, error)

	// Delete removes a record by its ID. Deleting a missing record is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Close releases the underlying handle.
	Close() error
}

// Watchable defines an interface for repositories that can report changes.
type Watchable interface {
	// Watch emits events for records whose "<collection>/<id>" matches pattern.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
