package recommendations

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"retrofit-backend/internal/catalog"
	"retrofit-backend/internal/classify"
	"retrofit-backend/internal/snapshots"
)

func setupRecommendationRouter(t *testing.T) (*gin.Engine, *snapshots.MemoryRepo, *catalog.MemoryRepo, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	snapshotRepo := snapshots.NewMemoryRepo()
	catalogRepo := catalog.NewMemoryRepo()
	recRepo := NewMemoryRepo()

	handler := NewHandler(classify.NewClassifier(catalogRepo), NewPersister(snapshotRepo, recRepo))
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router, snapshotRepo, catalogRepo, recRepo
}

func postFindings(t *testing.T, router *gin.Engine, snapshotID string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshots/"+snapshotID+"/recommendations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestGenerateRecommendations(t *testing.T) {
	router, snapshotRepo, catalogRepo, recRepo := setupRecommendationRouter(t)

	if err := snapshotRepo.Create(context.Background(), snapshots.Snapshot{ID: "snap-1", PropertyZip: "97123", PropertyState: "OR"}); err != nil {
		t.Fatalf("create snapshot: %v", err)
	}
	if err := catalogRepo.Upsert(context.Background(), catalog.Item{
		ID:          "ins-1",
		DisplayName: "Attic Insulation Upgrade",
		FeatureKey:  "attic_insulation",
		LeadClass:   catalog.LeadClassService,
		IsActive:    true,
	}); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	payload := map[string]any{
		"jobId": "job-1",
		"findings": []map[string]string{
			{
				"section":            "priority",
				"featureText":        "Attic Insulation",
				"conditionText":      "R-13, below current code",
				"recommendationText": "Insulate to R-49",
			},
			{
				"section":            "additional",
				"featureText":        "Water Heater",
				"conditionText":      "Functional",
				"recommendationText": "—",
			},
		},
	}

	resp := postFindings(t, router, "snap-1", payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		JobID    string `json:"jobId"`
		Inserted int    `json:"inserted"`
		Deleted  int    `json:"deleted"`
		Skipped  int    `json:"skipped"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.JobID != "job-1" {
		t.Fatalf("jobId = %q", result.JobID)
	}
	if result.Inserted != 1 || result.Deleted != 0 || result.Skipped != 1 {
		t.Fatalf("counts = %+v, want inserted 1, deleted 0, skipped 1", result)
	}

	rows, err := recRepo.ListBySnapshot(context.Background(), "snap-1")
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("stored %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.FeatureKey != "attic_insulation" || !row.Chosen || row.CatalogItemID == nil || *row.CatalogItemID != "ins-1" {
		t.Fatalf("stored row = %+v", row)
	}
	if row.JobID != "job-1" {
		t.Fatalf("jobId on row = %q", row.JobID)
	}
}

func TestGenerateRecommendationsSnapshotMissing(t *testing.T) {
	router, _, _, _ := setupRecommendationRouter(t)

	resp := postFindings(t, router, "ghost", map[string]any{
		"findings": []map[string]string{
			{"featureText": "Attic Insulation", "recommendationText": "Insulate to R-49"},
		},
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errResp.Error.Code != "snapshot_not_found" {
		t.Fatalf("error code = %q", errResp.Error.Code)
	}
}

func TestGenerateRecommendationsInvalidBody(t *testing.T) {
	router, snapshotRepo, _, _ := setupRecommendationRouter(t)
	if err := snapshotRepo.Create(context.Background(), snapshots.Snapshot{ID: "snap-1"}); err != nil {
		t.Fatalf("create snapshot: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshots/snap-1/recommendations", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestGenerateRecommendationsDefaultsJobID(t *testing.T) {
	router, snapshotRepo, catalogRepo, _ := setupRecommendationRouter(t)
	if err := snapshotRepo.Create(context.Background(), snapshots.Snapshot{ID: "snap-1"}); err != nil {
		t.Fatalf("create snapshot: %v", err)
	}
	if err := catalogRepo.Upsert(context.Background(), catalog.Item{
		ID: "ins-1", FeatureKey: "attic_insulation", LeadClass: catalog.LeadClassService, IsActive: true,
	}); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	resp := postFindings(t, router, "snap-1", map[string]any{
		"findings": []map[string]string{
			{"featureText": "Attic Insulation", "recommendationText": "Insulate to R-49"},
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		JobID string `json:"jobId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.JobID == "" {
		t.Fatalf("expected a generated jobId")
	}
}
