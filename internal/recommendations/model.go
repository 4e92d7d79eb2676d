package recommendations

import "time"

// Recommendation is the persisted link between a snapshot and a chosen
// catalog item, one row per qualifying finding. Rows are fully replaced on
// every regeneration; Position preserves insertion order for ranking
// tie-breaks downstream.
type Recommendation struct {
	ID                string    `json:"id"`
	SnapshotID        string    `json:"snapshotId"`
	JobID             string    `json:"jobId,omitempty"`
	FeatureKey        string    `json:"featureKey"`
	IntentKey         string    `json:"intentKey"`
	CatalogItemID     *string   `json:"catalogItemId"`
	LeadClass         string    `json:"leadClass"`
	Confidence        float64   `json:"confidence"`
	Chosen            bool      `json:"chosen"`
	RawFeature        string    `json:"rawFeature"`
	RawCondition      string    `json:"rawCondition"`
	RawRecommendation string    `json:"rawRecommendation"`
	ErrorCode         *string   `json:"errorCode,omitempty"`
	ErrorMessage      *string   `json:"errorMessage,omitempty"`
	Position          int       `json:"position"`
	CreatedAt         time.Time `json:"createdAt"`
}
