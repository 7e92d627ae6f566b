package attendance

import "context"

// =============================================================================
// STORE - Persistence contract for attendance records
// =============================================================================

// Store persists attendance records.
//
// CONTRACT:
//   - Save is an upsert by id: insert if the id is unseen, otherwise
//     overwrite in place. All other records are left untouched.
//   - List methods return snapshot copies; callers may mutate the result
//     without corrupting the store.
//
// Implementations: store/memory (testing/dev), store/sqlite (production).
type Store interface {
	// Save upserts a record by id.
	Save(ctx context.Context, rec Record) error

	// Get returns the record with the given id, or ErrRecordNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// ListByStatus returns all records with the given status.
	ListByStatus(ctx context.Context, status Status) ([]Record, error)

	// ListAll returns every record.
	ListAll(ctx context.Context) ([]Record, error)
}
