package incentives

import "context"

// Repo defines read access to incentive rules, plus the upsert the seed
// loader uses.
type Repo interface {
	ListActive(ctx context.Context) ([]Rule, error)
	Upsert(ctx context.Context, rule Rule) error
}
