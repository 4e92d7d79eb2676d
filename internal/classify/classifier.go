package classify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"retrofit-backend/internal/catalog"
)

// Finding sections, in pipeline order.
const (
	SectionPriority   = "priority"
	SectionAdditional = "additional"
)

// Canonical feature keys with equipment lead class.
const (
	FeatureAirConditioner   = "air_conditioner"
	FeatureHeatingEquipment = "heating_equipment"
	FeatureWaterHeater      = "water_heater"
	FeatureSolarPV          = "solar_pv"
)

// Intent keys that carry no upgrade signal.
const (
	IntentOther = "other"
	IntentNone  = "none"
)

const maxCandidates = 5

// Finding is one raw inspection observation. Immutable input.
type Finding struct {
	Section            string `json:"section"`
	FeatureText        string `json:"featureText"`
	ConditionText      string `json:"conditionText"`
	RecommendationText string `json:"recommendationText"`
}

// ClassifiedFinding is the canonical classification of a Finding together
// with its ranked catalog candidates. It is transient: the persister consumes
// it immediately.
type ClassifiedFinding struct {
	FeatureKey string
	IntentKey  string
	LeadClass  string
	Confidence float64
	Candidates []catalog.Item
	Raw        Finding
}

// Classifier turns raw findings into classified findings with catalog
// candidates. The catalog repo is injected read-only.
type Classifier struct {
	Catalog catalog.Repo
}

// NewClassifier constructs a Classifier.
func NewClassifier(catalogRepo catalog.Repo) *Classifier {
	return &Classifier{Catalog: catalogRepo}
}

// Classify classifies a single finding. The second return is false when the
// finding carries no actionable recommendation and must be skipped entirely.
func (c *Classifier) Classify(ctx context.Context, finding Finding) (ClassifiedFinding, bool, error) {
	recommendation := normalize(finding.RecommendationText)
	if skipRecommendation(recommendation) {
		return ClassifiedFinding{}, false, nil
	}

	featureKey := featureKeyFor(normalize(finding.FeatureText))
	intentKey := intentKeyFor(recommendation)
	leadClass := leadClassFor(featureKey)

	classified := ClassifiedFinding{
		FeatureKey: featureKey,
		IntentKey:  intentKey,
		LeadClass:  leadClass,
		Confidence: confidenceFor(finding.Section, featureKey, intentKey, leadClass),
		Raw:        finding,
	}

	candidates, err := c.candidatesFor(ctx, featureKey, leadClass, intentKey)
	if err != nil {
		return ClassifiedFinding{}, false, fmt.Errorf("catalog candidates for %s/%s: %w", featureKey, leadClass, err)
	}
	classified.Candidates = candidates
	return classified, true, nil
}

// ClassifyAll classifies a batch of findings and orders the results:
// priority stage before additional, equipment before service within a stage,
// ties broken by descending confidence. Skipped findings produce no output.
func (c *Classifier) ClassifyAll(ctx context.Context, findings []Finding) ([]ClassifiedFinding, error) {
	out := make([]ClassifiedFinding, 0, len(findings))
	for _, finding := range findings {
		classified, ok, err := c.Classify(ctx, finding)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, classified)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if sa, sb := sectionRank(a.Raw.Section), sectionRank(b.Raw.Section); sa != sb {
			return sa < sb
		}
		if la, lb := leadClassRank(a.LeadClass), leadClassRank(b.LeadClass); la != lb {
			return la < lb
		}
		return a.Confidence > b.Confidence
	})
	return out, nil
}

// candidatesFor queries the catalog and partitions intent-matching items
// ahead of the rest. The catalog's sort_rank/display_name order is preserved
// within each partition; this is the authoritative ranking.
func (c *Classifier) candidatesFor(ctx context.Context, featureKey, leadClass, intentKey string) ([]catalog.Item, error) {
	items, err := c.Catalog.ListActive(ctx, featureKey, leadClass, 8)
	if err != nil {
		return nil, err
	}

	preferred := make([]catalog.Item, 0, len(items))
	rest := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if item.HasIntent(intentKey) {
			preferred = append(preferred, item)
		} else {
			rest = append(rest, item)
		}
	}
	out := append(preferred, rest...)
	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out, nil
}

// skipRecommendation reports whether the normalized recommendation text
// carries no actionable signal.
func skipRecommendation(normalized string) bool {
	switch normalized {
	case "", "—", "n/a":
		return true
	}
	return false
}

func leadClassFor(featureKey string) string {
	switch featureKey {
	case FeatureAirConditioner, FeatureHeatingEquipment, FeatureWaterHeater, FeatureSolarPV:
		return catalog.LeadClassEquipment
	default:
		return catalog.LeadClassService
	}
}

func confidenceFor(section, featureKey, intentKey, leadClass string) float64 {
	confidence := 0.6
	if strings.EqualFold(strings.TrimSpace(section), SectionPriority) {
		confidence += 0.25
	}
	if intentKey != IntentOther && intentKey != IntentNone {
		confidence += 0.10
	}
	if leadClass == catalog.LeadClassEquipment && isHVACOrDHW(featureKey) {
		confidence += 0.05
	}
	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}

// isHVACOrDHW covers the three mechanical keys; solar_pv is equipment but
// does not earn the bonus.
func isHVACOrDHW(featureKey string) bool {
	switch featureKey {
	case FeatureAirConditioner, FeatureHeatingEquipment, FeatureWaterHeater:
		return true
	}
	return false
}

func sectionRank(section string) int {
	if strings.EqualFold(strings.TrimSpace(section), SectionPriority) {
		return 0
	}
	return 1
}

func leadClassRank(leadClass string) int {
	if leadClass == catalog.LeadClassEquipment {
		return 0
	}
	return 1
}
