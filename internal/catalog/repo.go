package catalog

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "catalog item not found" }

// Repo defines read access to the upgrade catalog, plus the upsert the seed
// loader uses.
type Repo interface {
	// ListActive returns active items for a feature/lead-class pair, ordered
	// by sort_rank then display_name, limited to limit rows.
	ListActive(ctx context.Context, featureKey, leadClass string, limit int) ([]Item, error)
	GetByID(ctx context.Context, itemID string) (Item, error)
	Upsert(ctx context.Context, item Item) error
}
