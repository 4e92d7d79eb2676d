package assumptions

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores assumption records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]Record)}
}

// ListByUpgradeKey returns all candidate records for an upgrade type, ordered
// by record ID for determinism.
func (r *MemoryRepo) ListByUpgradeKey(ctx context.Context, upgradeKey string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []Record
	for _, record := range r.records {
		if record.UpgradeKey == upgradeKey {
			out = append(out, record)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Upsert stores the record.
func (r *MemoryRepo) Upsert(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
