package incentives

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores incentive rules in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rules: make(map[string]Rule)}
}

// ListActive returns active rules ordered by ID for determinism.
func (r *MemoryRepo) ListActive(ctx context.Context) ([]Rule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []Rule
	for _, rule := range r.rules {
		if rule.IsActive {
			out = append(out, rule)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Upsert stores the rule.
func (r *MemoryRepo) Upsert(ctx context.Context, rule Rule) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID] = rule
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
