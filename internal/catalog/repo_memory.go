package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores catalog items in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Item
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Item)}
}

// ListActive returns active items for a feature/lead-class pair, ordered by
// sort_rank then display_name.
func (r *MemoryRepo) ListActive(ctx context.Context, featureKey, leadClass string, limit int) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 8
	}

	r.mu.RLock()
	var out []Item
	for _, item := range r.items {
		if item.IsActive && item.FeatureKey == featureKey && item.LeadClass == leadClass {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].SortRank != out[j].SortRank {
			return out[i].SortRank < out[j].SortRank
		}
		return out[i].DisplayName < out[j].DisplayName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetByID returns a catalog item by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, itemID string) (Item, error) {
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[itemID]
	if !ok {
		return Item{}, ErrNotFound
	}
	return item, nil
}

// Upsert stores the item.
func (r *MemoryRepo) Upsert(ctx context.Context, item Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
