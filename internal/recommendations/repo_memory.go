package recommendations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores recommendation rows in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu         sync.RWMutex
	bySnapshot map[string][]Recommendation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{bySnapshot: make(map[string][]Recommendation)}
}

// DeleteBySnapshot removes all rows for a snapshot.
func (r *MemoryRepo) DeleteBySnapshot(ctx context.Context, snapshotID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := len(r.bySnapshot[snapshotID])
	delete(r.bySnapshot, snapshotID)
	return deleted, nil
}

// BulkInsert appends the rows to their snapshots.
func (r *MemoryRepo) BulkInsert(ctx context.Context, rows []Recommendation) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		r.bySnapshot[row.SnapshotID] = append(r.bySnapshot[row.SnapshotID], row)
	}
	return len(rows), nil
}

// ListBySnapshot returns rows in insertion (position) order.
func (r *MemoryRepo) ListBySnapshot(ctx context.Context, snapshotID string) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	stored := r.bySnapshot[snapshotID]
	out := make([]Recommendation, len(stored))
	copy(out, stored)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
