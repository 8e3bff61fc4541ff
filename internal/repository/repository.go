package repository

import "context"

// RunRepository defines the interface for run-history persistence.
type RunRepository interface {
	// Create inserts a new run record and fills in its generated ID.
	Create(ctx context.Context, run *RunRecord) error

	// List returns the most recent runs, newest first, bounded by limit.
	List(ctx context.Context, limit int) ([]*RunRecord, error)

	// Get retrieves a single run by ID.
	Get(ctx context.Context, id int64) (*RunRecord, error)
}
