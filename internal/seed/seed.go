package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"retrofit-backend/internal/assumptions"
	"retrofit-backend/internal/catalog"
	"retrofit-backend/internal/geo"
	"retrofit-backend/internal/incentives"
)

// File is the on-disk layout of the reference-data YAML.
type File struct {
	CatalogItems []catalogItem      `yaml:"catalogItems"`
	Assumptions  []assumptionRecord `yaml:"assumptions"`
	Incentives   []incentiveRule    `yaml:"incentives"`
}

type catalogItem struct {
	ID          string   `yaml:"id"`
	DisplayName string   `yaml:"displayName"`
	FeatureKey  string   `yaml:"featureKey"`
	LeadClass   string   `yaml:"leadClass"`
	IntentKeys  []string `yaml:"intentKeys"`
	Tags        []string `yaml:"tags"`
	SortRank    int      `yaml:"sortRank"`
	IsActive    *bool    `yaml:"isActive"`
}

type assumptionRecord struct {
	ID               string   `yaml:"id"`
	UpgradeKey       string   `yaml:"upgradeKey"`
	InstallCostMin   *float64 `yaml:"installCostMin"`
	InstallCostMax   *float64 `yaml:"installCostMax"`
	AnnualSavingsMin *float64 `yaml:"annualSavingsMin"`
	AnnualSavingsMax *float64 `yaml:"annualSavingsMax"`
	ExpectedLifeYrs  *int     `yaml:"expectedLifeYears"`
	Source           string   `yaml:"source"`
}

type incentiveRule struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	AmountMin        float64  `yaml:"amountMin"`
	AmountMax        float64  `yaml:"amountMax"`
	ScopeMode        string   `yaml:"scopeMode"`
	States           []string `yaml:"states"`
	Zips             []string `yaml:"zips"`
	ZipPrefixes      []string `yaml:"zipPrefixes"`
	AppliesCatalogID []string `yaml:"appliesCatalogIds"`
	AppliesTags      []string `yaml:"appliesTags"`
	IsActive         *bool    `yaml:"isActive"`
}

// Repos is the set of writable repos a seed run needs.
type Repos struct {
	Catalog     catalog.Repo
	Assumptions assumptions.Repo
	Incentives  incentives.Repo
}

// Parse decodes a reference-data YAML document.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse seed file: %w", err)
	}
	return f, nil
}

// LoadFile reads and decodes a reference-data YAML file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Apply upserts every record in the file. Records default to active unless
// the file says otherwise.
func Apply(ctx context.Context, repos Repos, f File) error {
	for _, item := range f.CatalogItems {
		if err := repos.Catalog.Upsert(ctx, catalog.Item{
			ID:          item.ID,
			DisplayName: item.DisplayName,
			FeatureKey:  item.FeatureKey,
			LeadClass:   item.LeadClass,
			IntentKeys:  item.IntentKeys,
			Tags:        item.Tags,
			SortRank:    item.SortRank,
			IsActive:    activeFlag(item.IsActive),
		}); err != nil {
			return fmt.Errorf("upsert catalog item %s: %w", item.ID, err)
		}
	}

	for _, record := range f.Assumptions {
		if err := repos.Assumptions.Upsert(ctx, assumptions.Record{
			ID:                record.ID,
			UpgradeKey:        record.UpgradeKey,
			InstallCostMin:    record.InstallCostMin,
			InstallCostMax:    record.InstallCostMax,
			AnnualSavingsMin:  record.AnnualSavingsMin,
			AnnualSavingsMax:  record.AnnualSavingsMax,
			ExpectedLifeYears: record.ExpectedLifeYrs,
			Source:            record.Source,
		}); err != nil {
			return fmt.Errorf("upsert assumption %s: %w", record.ID, err)
		}
	}

	for _, rule := range f.Incentives {
		if err := repos.Incentives.Upsert(ctx, incentives.Rule{
			ID:        rule.ID,
			Name:      rule.Name,
			AmountMin: rule.AmountMin,
			AmountMax: rule.AmountMax,
			Scope: geo.Scope{
				Mode:        rule.ScopeMode,
				States:      rule.States,
				Zips:        rule.Zips,
				ZipPrefixes: rule.ZipPrefixes,
			},
			AppliesCatalogIDs: rule.AppliesCatalogID,
			AppliesTags:       rule.AppliesTags,
			IsActive:          activeFlag(rule.IsActive),
		}); err != nil {
			return fmt.Errorf("upsert incentive %s: %w", rule.ID, err)
		}
	}

	return nil
}

func activeFlag(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
