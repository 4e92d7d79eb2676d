package incentives

import "retrofit-backend/internal/geo"

// Rule is a geographically scoped financial incentive. Read-only reference
// data; a rule applies to specific catalog items, to tags, or to both.
// Single-amount incentives store the same value in both amount bounds.
type Rule struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	AmountMin         float64   `json:"amountMin"`
	AmountMax         float64   `json:"amountMax"`
	Scope             geo.Scope `json:"scope"`
	AppliesCatalogIDs []string  `json:"appliesCatalogIds,omitempty"`
	AppliesTags       []string  `json:"appliesTags,omitempty"`
	IsActive          bool      `json:"isActive"`
}

// Applied is an incentive attached to a card for display.
type Applied struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AmountMin float64 `json:"amountMin"`
	AmountMax float64 `json:"amountMax"`
}
