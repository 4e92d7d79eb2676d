package incentives

import (
	"context"
	"fmt"

	"retrofit-backend/internal/catalog"
	"retrofit-backend/internal/geo"
)

// Result is the set of incentives applying to one card, with summed totals.
type Result struct {
	Incentives []Applied
	TotalMin   float64
	TotalMax   float64
}

// Resolver matches active incentive rules against a catalog item and a
// property location.
type Resolver struct {
	Repo Repo
}

// NewResolver constructs a Resolver.
func NewResolver(repo Repo) *Resolver {
	return &Resolver{Repo: repo}
}

// ResolveForItem returns the incentives whose scope covers loc and whose
// applicability filter matches the item's ID or tags. A lookup error is
// returned to the caller, which degrades the card rather than failing it.
func (r *Resolver) ResolveForItem(ctx context.Context, item catalog.Item, loc geo.Location) (Result, error) {
	rules, err := r.Repo.ListActive(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list incentive rules: %w", err)
	}

	var result Result
	for _, rule := range rules {
		if !appliesToItem(rule, item) {
			continue
		}
		if !geo.Matches(rule.Scope, loc) {
			continue
		}
		result.Incentives = append(result.Incentives, Applied{
			ID:        rule.ID,
			Name:      rule.Name,
			AmountMin: rule.AmountMin,
			AmountMax: rule.AmountMax,
		})
		result.TotalMin += rule.AmountMin
		result.TotalMax += rule.AmountMax
	}
	return result, nil
}

func appliesToItem(rule Rule, item catalog.Item) bool {
	for _, id := range rule.AppliesCatalogIDs {
		if id == item.ID {
			return true
		}
	}
	for _, tag := range rule.AppliesTags {
		for _, itemTag := range item.Tags {
			if tag == itemTag {
				return true
			}
		}
	}
	return false
}
