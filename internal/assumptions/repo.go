package assumptions

import "context"

// Repo defines read access to assumption records, plus the upsert the seed
// loader uses.
type Repo interface {
	// ListByUpgradeKey returns all candidate records for an upgrade type.
	// Zero records is a normal, expected result.
	ListByUpgradeKey(ctx context.Context, upgradeKey string) ([]Record, error)
	Upsert(ctx context.Context, record Record) error
}
