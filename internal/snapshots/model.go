package snapshots

import "time"

// Snapshot is one inspection snapshot of a property. The engine only needs
// its existence and property location; the rest of the snapshot lifecycle is
// owned by the inspection workflow.
type Snapshot struct {
	ID            string    `json:"id"`
	PropertyZip   string    `json:"propertyZip"`
	PropertyState string    `json:"propertyState"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
