package catalog

// Lead classes distinguish purchasable units from labor-led work.
const (
	LeadClassEquipment = "equipment"
	LeadClassService   = "service"
)

// Item is a sellable upgrade product or service definition. Items are owned
// by an external catalog and are read-only to the engine.
type Item struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	FeatureKey  string   `json:"featureKey"`
	LeadClass   string   `json:"leadClass"`
	IntentKeys  []string `json:"intentKeys"`
	Tags        []string `json:"tags"`
	SortRank    int      `json:"sortRank"`
	IsActive    bool     `json:"isActive"`
}

// HasIntent reports whether the item serves the given intent key.
func (i Item) HasIntent(intentKey string) bool {
	for _, k := range i.IntentKeys {
		if k == intentKey {
			return true
		}
	}
	return false
}
