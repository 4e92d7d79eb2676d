package recommendations

import "context"

// Repo defines persistence operations for recommendation rows.
type Repo interface {
	// DeleteBySnapshot removes all rows for a snapshot and returns how many
	// were deleted.
	DeleteBySnapshot(ctx context.Context, snapshotID string) (int, error)
	// BulkInsert inserts the rows and returns how many were written.
	BulkInsert(ctx context.Context, rows []Recommendation) (int, error)
	// ListBySnapshot returns rows in insertion (position) order.
	ListBySnapshot(ctx context.Context, snapshotID string) ([]Recommendation, error)
}
