package cards

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"retrofit-backend/internal/assumptions"
	"retrofit-backend/internal/catalog"
	"retrofit-backend/internal/geo"
	"retrofit-backend/internal/incentives"
	"retrofit-backend/internal/recommendations"
	"retrofit-backend/internal/shared/metrics"
	"retrofit-backend/internal/shared/telemetry"
)

// Assembler builds the ordered upgrade-card list for a snapshot from its
// persisted recommendations. All lookups go through injected read-only repos.
type Assembler struct {
	Recommendations recommendations.Repo
	Catalog         catalog.Repo
	Assumptions     assumptions.Repo
	Incentives      *incentives.Resolver
}

// NewAssembler constructs an Assembler.
func NewAssembler(recRepo recommendations.Repo, catalogRepo catalog.Repo, assumptionRepo assumptions.Repo, incentiveResolver *incentives.Resolver) *Assembler {
	return &Assembler{
		Recommendations: recRepo,
		Catalog:         catalogRepo,
		Assumptions:     assumptionRepo,
		Incentives:      incentiveResolver,
	}
}

// BuildCards assembles and ranks upgrade cards for a snapshot at the given
// location. A snapshot without recommendations yields an empty list, not an
// error. Per-card lookup failures degrade the card rather than the batch.
func (a *Assembler) BuildCards(ctx context.Context, snapshotID string, loc geo.Location) ([]UpgradeCard, error) {
	start := time.Now()

	rows, err := a.Recommendations.ListBySnapshot(ctx, snapshotID)
	if err != nil {
		metrics.IncCardBuildFailed()
		return nil, fmt.Errorf("load recommendations for %s: %w", snapshotID, err)
	}

	cards := make([]UpgradeCard, 0, len(rows))
	for _, row := range rows {
		if !row.Chosen || row.CatalogItemID == nil {
			continue
		}
		cards = append(cards, a.buildCard(ctx, row, loc))
	}

	rankCards(cards)

	metrics.AddCardsBuilt(len(cards))
	metrics.ObserveCardBuildDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("cards.built", map[string]any{
		"snapshot_id": snapshotID,
		"cards":       len(cards),
		"rows":        len(rows),
	})
	return cards, nil
}

func (a *Assembler) buildCard(ctx context.Context, row recommendations.Recommendation, loc geo.Location) UpgradeCard {
	card := UpgradeCard{
		FeatureKey:    row.FeatureKey,
		CatalogItemID: *row.CatalogItemID,
		Incentives:    []incentives.Applied{},
	}

	item, err := a.Catalog.GetByID(ctx, *row.CatalogItemID)
	if err != nil {
		// Display metadata is cosmetic; fall back to the raw finding text.
		telemetry.Warn("cards.catalog_lookup_failed", map[string]any{
			"snapshot_id":     row.SnapshotID,
			"catalog_item_id": *row.CatalogItemID,
			"error":           err.Error(),
		})
		item = catalog.Item{ID: *row.CatalogItemID}
		card.Title = titleFromRaw(row)
	} else {
		card.Title = item.DisplayName
	}

	record := a.resolveAssumptions(ctx, row)
	if record != nil {
		install := NormalizeRange(record.InstallCostMin, record.InstallCostMax)
		savings := NormalizeRange(record.AnnualSavingsMin, record.AnnualSavingsMax)
		card.InstallCostMin = install.Min
		card.InstallCostMax = install.Max
		card.AnnualSavingsMin = savings.Min
		card.AnnualSavingsMax = savings.Max
		if record.Source != "" {
			card.Notes = "Estimates from " + record.Source
		}
		if record.ExpectedLifeYears != nil {
			card.Bullets = append(card.Bullets, fmt.Sprintf("Expected life: %d years", *record.ExpectedLifeYears))
		}
	}
	if condition := strings.TrimSpace(row.RawCondition); condition != "" {
		card.Bullets = append(card.Bullets, "Observed: "+condition)
	}
	if recommendation := strings.TrimSpace(row.RawRecommendation); recommendation != "" {
		card.Bullets = append(card.Bullets, recommendation)
	}

	a.resolveIncentives(ctx, &card, row, item, loc)

	economics := ComputeEconomics(
		card.InstallCostMin, card.InstallCostMax,
		card.AnnualSavingsMin, card.AnnualSavingsMax,
		card.IncentiveTotalMin, card.IncentiveTotalMax,
	)
	card.NetCostMin = economics.NetMin
	card.NetCostMax = economics.NetMax
	card.PaybackYearsMin = economics.PaybackMin
	card.PaybackYearsMax = economics.PaybackMax
	card.ROIReady = economics.ROIReady
	return card
}

// resolveAssumptions loads candidate records for the row's upgrade type and
// picks the best one. Missing data and lookup failures both come back nil;
// the card simply has no economics.
func (a *Assembler) resolveAssumptions(ctx context.Context, row recommendations.Recommendation) *assumptions.Record {
	candidates, err := a.Assumptions.ListByUpgradeKey(ctx, row.FeatureKey)
	if err != nil {
		telemetry.Warn("cards.assumption_lookup_failed", map[string]any{
			"snapshot_id": row.SnapshotID,
			"feature_key": row.FeatureKey,
			"error":       err.Error(),
		})
		return nil
	}
	return assumptions.PickBest(candidates)
}

// resolveIncentives attaches matching incentives to the card. A resolution
// failure degrades the card to "no incentives shown".
func (a *Assembler) resolveIncentives(ctx context.Context, card *UpgradeCard, row recommendations.Recommendation, item catalog.Item, loc geo.Location) {
	if a.Incentives == nil {
		return
	}
	result, err := a.Incentives.ResolveForItem(ctx, item, loc)
	if err != nil {
		telemetry.Warn("cards.incentive_resolution_failed", map[string]any{
			"snapshot_id":     row.SnapshotID,
			"catalog_item_id": card.CatalogItemID,
			"error":           err.Error(),
		})
		return
	}
	if result.Incentives != nil {
		card.Incentives = result.Incentives
	}
	card.IncentiveTotalMin = result.TotalMin
	card.IncentiveTotalMax = result.TotalMax
}

// rankCards orders roi_ready cards first, then by ascending payback key.
// The sort is stable, so the persisted insertion order breaks remaining ties.
func rankCards(cards []UpgradeCard) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if a.ROIReady != b.ROIReady {
			return a.ROIReady
		}
		return paybackSortKey(a) < paybackSortKey(b)
	})
}

// paybackSortKey falls back from payback min to payback max, then +Inf.
func paybackSortKey(card UpgradeCard) float64 {
	if card.PaybackYearsMin != nil {
		return *card.PaybackYearsMin
	}
	if card.PaybackYearsMax != nil {
		return *card.PaybackYearsMax
	}
	return math.Inf(1)
}

func titleFromRaw(row recommendations.Recommendation) string {
	if feature := strings.TrimSpace(row.RawFeature); feature != "" {
		return feature
	}
	return row.FeatureKey
}
