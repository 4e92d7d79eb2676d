package snapshots

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "snapshot not found" }

// Repo defines persistence operations for snapshots.
type Repo interface {
	Create(ctx context.Context, snapshot Snapshot) error
	GetByID(ctx context.Context, snapshotID string) (Snapshot, error)
	Exists(ctx context.Context, snapshotID string) (bool, error)
}
