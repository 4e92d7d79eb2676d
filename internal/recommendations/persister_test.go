package recommendations

import (
	"context"
	"errors"
	"testing"

	"retrofit-backend/internal/catalog"
	"retrofit-backend/internal/classify"
	"retrofit-backend/internal/snapshots"
)

func newTestPersister(t *testing.T) (*Persister, *MemoryRepo) {
	t.Helper()
	snapshotRepo := snapshots.NewMemoryRepo()
	if err := snapshotRepo.Create(context.Background(), snapshots.Snapshot{ID: "snap-1"}); err != nil {
		t.Fatalf("create snapshot: %v", err)
	}
	repo := NewMemoryRepo()
	return NewPersister(snapshotRepo, repo), repo
}

func classifiedFixture() []classify.ClassifiedFinding {
	return []classify.ClassifiedFinding{
		{
			FeatureKey: "attic_insulation",
			IntentKey:  "increase_r_value",
			LeadClass:  catalog.LeadClassService,
			Confidence: 0.95,
			Candidates: []catalog.Item{{ID: "ins-1"}, {ID: "ins-2"}},
			Raw:        classify.Finding{Section: classify.SectionPriority, FeatureText: "Attic Insulation", ConditionText: "R-19", RecommendationText: "Insulate to R-49"},
		},
		{
			FeatureKey: "water_heater",
			IntentKey:  "replace",
			LeadClass:  catalog.LeadClassEquipment,
			Confidence: 1.0,
			Raw:        classify.Finding{Section: classify.SectionPriority, FeatureText: "Water Heater", RecommendationText: "Replace aging unit"},
		},
	}
}

func TestPersistBuildsRows(t *testing.T) {
	persister, repo := newTestPersister(t)

	result, err := persister.Persist(context.Background(), "snap-1", "job-1", classifiedFixture())
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if result.Inserted != 2 || result.Deleted != 0 {
		t.Fatalf("result = %+v, want inserted=2 deleted=0", result)
	}

	rows, err := repo.ListBySnapshot(context.Background(), "snap-1")
	if err != nil {
		t.Fatalf("ListBySnapshot: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	chosen := rows[0]
	if chosen.CatalogItemID == nil || *chosen.CatalogItemID != "ins-1" {
		t.Fatalf("catalog_item_id = %v, want first candidate ins-1", chosen.CatalogItemID)
	}
	if !chosen.Chosen || chosen.ErrorCode != nil {
		t.Fatalf("chosen row should have no error: %+v", chosen)
	}
	if chosen.RawFeature != "Attic Insulation" || chosen.RawCondition != "R-19" {
		t.Fatalf("raw audit fields not carried: %+v", chosen)
	}

	noMatch := rows[1]
	if noMatch.Chosen || noMatch.CatalogItemID != nil {
		t.Fatalf("row without candidates must not be chosen: %+v", noMatch)
	}
	if noMatch.ErrorCode == nil || *noMatch.ErrorCode != ErrorCodeNoMatch {
		t.Fatalf("error_code = %v, want NO_MATCH", noMatch.ErrorCode)
	}
}

func TestPersistSnapshotNotFoundFailsFast(t *testing.T) {
	persister, repo := newTestPersister(t)

	_, err := persister.Persist(context.Background(), "missing", "job-1", classifiedFixture())
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("err = %v, want ErrSnapshotNotFound", err)
	}

	rows, _ := repo.ListBySnapshot(context.Background(), "missing")
	if len(rows) != 0 {
		t.Fatalf("no rows should be written for a missing snapshot, got %d", len(rows))
	}
}

func TestPersistEmptyInputIsNoOp(t *testing.T) {
	persister, repo := newTestPersister(t)

	// Pre-existing rows must survive an empty regeneration.
	if _, err := persister.Persist(context.Background(), "snap-1", "job-1", classifiedFixture()); err != nil {
		t.Fatalf("seed Persist: %v", err)
	}

	result, err := persister.Persist(context.Background(), "snap-1", "job-2", nil)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if result.Inserted != 0 || result.Deleted != 0 {
		t.Fatalf("empty input should write nothing, got %+v", result)
	}

	rows, _ := repo.ListBySnapshot(context.Background(), "snap-1")
	if len(rows) != 2 {
		t.Fatalf("existing rows should be untouched, got %d", len(rows))
	}
}

func TestPersistIsIdempotentByReplacement(t *testing.T) {
	persister, repo := newTestPersister(t)
	input := classifiedFixture()

	first, err := persister.Persist(context.Background(), "snap-1", "job-1", input)
	if err != nil {
		t.Fatalf("first Persist: %v", err)
	}
	second, err := persister.Persist(context.Background(), "snap-1", "job-2", input)
	if err != nil {
		t.Fatalf("second Persist: %v", err)
	}

	if first.Inserted != second.Inserted {
		t.Fatalf("inserted counts differ: %d vs %d", first.Inserted, second.Inserted)
	}
	if second.Deleted != first.Inserted {
		t.Fatalf("second run should delete the first run's rows: %+v", second)
	}

	rows, _ := repo.ListBySnapshot(context.Background(), "snap-1")
	if len(rows) != len(input) {
		t.Fatalf("row count after regeneration = %d, want %d", len(rows), len(input))
	}
}

type deleteFailingRepo struct {
	*MemoryRepo
}

func (r deleteFailingRepo) DeleteBySnapshot(ctx context.Context, snapshotID string) (int, error) {
	return 0, errors.New("delete failed")
}

func TestPersistDeleteFailureStillInserts(t *testing.T) {
	snapshotRepo := snapshots.NewMemoryRepo()
	if err := snapshotRepo.Create(context.Background(), snapshots.Snapshot{ID: "snap-1"}); err != nil {
		t.Fatalf("create snapshot: %v", err)
	}
	memory := NewMemoryRepo()
	persister := NewPersister(snapshotRepo, deleteFailingRepo{memory})

	result, err := persister.Persist(context.Background(), "snap-1", "job-1", classifiedFixture())
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if result.Inserted != 2 || result.Deleted != 0 {
		t.Fatalf("result = %+v, want inserted=2 deleted=0", result)
	}

	rows, _ := memory.ListBySnapshot(context.Background(), "snap-1")
	if len(rows) != 2 {
		t.Fatalf("insert must still happen after delete failure, got %d rows", len(rows))
	}
}

type insertFailingRepo struct {
	*MemoryRepo
}

func (r insertFailingRepo) BulkInsert(ctx context.Context, rows []Recommendation) (int, error) {
	return 0, errors.New("insert failed")
}

func TestPersistInsertFailureReturnsError(t *testing.T) {
	snapshotRepo := snapshots.NewMemoryRepo()
	if err := snapshotRepo.Create(context.Background(), snapshots.Snapshot{ID: "snap-1"}); err != nil {
		t.Fatalf("create snapshot: %v", err)
	}
	persister := NewPersister(snapshotRepo, insertFailingRepo{NewMemoryRepo()})

	_, err := persister.Persist(context.Background(), "snap-1", "job-1", classifiedFixture())
	if err == nil {
		t.Fatalf("expected insert error to be returned")
	}
}
