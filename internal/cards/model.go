package cards

import "retrofit-backend/internal/incentives"

// UpgradeCard is the final ranked output unit. Cards are built fresh on every
// request and never persisted.
type UpgradeCard struct {
	Title             string               `json:"title"`
	FeatureKey        string               `json:"featureKey"`
	CatalogItemID     string               `json:"catalogItemId"`
	InstallCostMin    *float64             `json:"installCostMin"`
	InstallCostMax    *float64             `json:"installCostMax"`
	AnnualSavingsMin  *float64             `json:"annualSavingsMin"`
	AnnualSavingsMax  *float64             `json:"annualSavingsMax"`
	Incentives        []incentives.Applied `json:"incentives"`
	IncentiveTotalMin float64              `json:"incentiveTotalMin"`
	IncentiveTotalMax float64              `json:"incentiveTotalMax"`
	NetCostMin        *float64             `json:"netCostMin"`
	NetCostMax        *float64             `json:"netCostMax"`
	PaybackYearsMin   *float64             `json:"paybackYearsMin"`
	PaybackYearsMax   *float64             `json:"paybackYearsMax"`
	ROIReady          bool                 `json:"roiReady"`
	Bullets           []string             `json:"bullets,omitempty"`
	Notes             string               `json:"notes,omitempty"`
}
