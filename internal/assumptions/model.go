package assumptions

import "time"

// Record is one candidate cost/savings estimate for an upgrade type. Several
// records may exist per upgrade key (different data sources); the resolver
// picks exactly one. Records are never mutated by the engine.
type Record struct {
	ID                string     `json:"id"`
	UpgradeKey        string     `json:"upgradeKey"`
	InstallCostMin    *float64   `json:"installCostMin"`
	InstallCostMax    *float64   `json:"installCostMax"`
	AnnualSavingsMin  *float64   `json:"annualSavingsMin"`
	AnnualSavingsMax  *float64   `json:"annualSavingsMax"`
	ExpectedLifeYears *int       `json:"expectedLifeYears"`
	Source            string     `json:"source"`
	UpdatedAt         *time.Time `json:"updatedAt"`
}
