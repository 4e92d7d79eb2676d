package snapshots

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo stores snapshots in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Snapshot
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Snapshot)}
}

// Create stores the snapshot.
func (r *MemoryRepo) Create(ctx context.Context, snapshot Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := time.Now().UTC()
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = now
	}
	snapshot.UpdatedAt = now
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[snapshot.ID] = snapshot
	return nil
}

// GetByID returns a snapshot by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, snapshotID string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot, ok := r.byID[snapshotID]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snapshot, nil
}

// Exists reports whether the snapshot is stored.
func (r *MemoryRepo) Exists(ctx context.Context, snapshotID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[snapshotID]
	return ok, nil
}

var _ Repo = (*MemoryRepo)(nil)
