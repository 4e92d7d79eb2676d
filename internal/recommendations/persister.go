package recommendations

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"retrofit-backend/internal/classify"
	"retrofit-backend/internal/shared/metrics"
	"retrofit-backend/internal/shared/telemetry"
	"retrofit-backend/internal/snapshots"
)

// Result summarizes one persist call.
type Result struct {
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

// Persister replaces a snapshot's recommendation rows from classified
// findings. Regeneration is idempotent by replacement: delete everything for
// the snapshot, then insert the new rows.
type Persister struct {
	Snapshots snapshots.Repo
	Repo      Repo

	// Delete-then-insert is not safe under concurrent regeneration of the
	// same snapshot, so persists are serialized per snapshot_id.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPersister constructs a Persister.
func NewPersister(snapshotRepo snapshots.Repo, repo Repo) *Persister {
	return &Persister{
		Snapshots: snapshotRepo,
		Repo:      repo,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Persist stores one row per classified finding for the snapshot. The
// snapshot must exist; if it does not, no writes happen. An empty input is a
// successful no-op. A delete failure is logged and does not block the insert.
func (p *Persister) Persist(ctx context.Context, snapshotID, jobID string, classified []classify.ClassifiedFinding) (Result, error) {
	exists, err := p.Snapshots.Exists(ctx, snapshotID)
	if err != nil {
		return Result{}, fmt.Errorf("check snapshot %s: %w", snapshotID, err)
	}
	if !exists {
		return Result{}, ErrSnapshotNotFound
	}

	if len(classified) == 0 {
		return Result{}, nil
	}

	rows := buildRows(snapshotID, jobID, classified)

	lock := p.lockFor(snapshotID)
	lock.Lock()
	defer lock.Unlock()

	var result Result
	deleted, err := p.Repo.DeleteBySnapshot(ctx, snapshotID)
	if err != nil {
		// The insert is still attempted; stale rows are better than none.
		telemetry.Warn("persist.delete_failed", map[string]any{
			"snapshot_id": snapshotID,
			"job_id":      jobID,
			"error":       err.Error(),
		})
	} else {
		result.Deleted = deleted
	}

	inserted, err := p.Repo.BulkInsert(ctx, rows)
	if err != nil {
		telemetry.Error("persist.insert_failed", map[string]any{
			"snapshot_id": snapshotID,
			"job_id":      jobID,
			"rows":        len(rows),
			"error":       err.Error(),
		})
		return result, fmt.Errorf("insert recommendations for %s: %w", snapshotID, err)
	}
	result.Inserted = inserted

	noMatch := 0
	for _, row := range rows {
		if !row.Chosen {
			noMatch++
		}
	}
	metrics.AddRecommendationsPersisted(inserted)
	metrics.AddRecommendationsNoMatch(noMatch)
	telemetry.Info("persist.complete", map[string]any{
		"snapshot_id": snapshotID,
		"job_id":      jobID,
		"inserted":    inserted,
		"deleted":     result.Deleted,
		"no_match":    noMatch,
	})
	return result, nil
}

func (p *Persister) lockFor(snapshotID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	lock, ok := p.locks[snapshotID]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[snapshotID] = lock
	}
	return lock
}

func buildRows(snapshotID, jobID string, classified []classify.ClassifiedFinding) []Recommendation {
	now := time.Now().UTC()
	rows := make([]Recommendation, 0, len(classified))
	for i, cf := range classified {
		row := Recommendation{
			ID:                uuid.NewString(),
			SnapshotID:        snapshotID,
			JobID:             jobID,
			FeatureKey:        cf.FeatureKey,
			IntentKey:         cf.IntentKey,
			LeadClass:         cf.LeadClass,
			Confidence:        cf.Confidence,
			RawFeature:        cf.Raw.FeatureText,
			RawCondition:      cf.Raw.ConditionText,
			RawRecommendation: cf.Raw.RecommendationText,
			Position:          i,
			CreatedAt:         now,
		}
		if len(cf.Candidates) > 0 {
			itemID := cf.Candidates[0].ID
			row.CatalogItemID = &itemID
			row.Chosen = true
		} else {
			code := ErrorCodeNoMatch
			message := fmt.Sprintf("no active catalog item for %s/%s", cf.FeatureKey, cf.LeadClass)
			row.ErrorCode = &code
			row.ErrorMessage = &message
		}
		rows = append(rows, row)
	}
	return rows
}
