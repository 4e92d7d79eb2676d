package recommendations

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"retrofit-backend/internal/classify"
	"retrofit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the classifier and persister.
type Handler struct {
	Classifier *classify.Classifier
	Persister  *Persister
}

// NewHandler constructs a Handler.
func NewHandler(classifier *classify.Classifier, persister *Persister) *Handler {
	return &Handler{Classifier: classifier, Persister: persister}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/snapshots/:id/recommendations", h.generate)
}

type generateRequest struct {
	JobID    string             `json:"jobId"`
	Findings []classify.Finding `json:"findings"`
}

func (h *Handler) generate(c *gin.Context) {
	snapshotID := strings.TrimSpace(c.Param("id"))
	c.Set("snapshotId", snapshotID)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	jobID := strings.TrimSpace(req.JobID)
	if jobID == "" {
		jobID = uuid.NewString()
	}
	c.Set("jobId", jobID)

	classified, err := h.Classifier.ClassifyAll(c.Request.Context(), req.Findings)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "classification_failed", "failed to classify findings", nil)
		return
	}
	skipped := len(req.Findings) - len(classified)

	result, err := h.Persister.Persist(c.Request.Context(), snapshotID, jobID, classified)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			respond.Error(c, http.StatusNotFound, "snapshot_not_found", "snapshot does not exist", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "storage_error", "failed to persist recommendations", nil)
		return
	}

	respond.OK(c, gin.H{
		"snapshotId": snapshotID,
		"jobId":      jobID,
		"inserted":   result.Inserted,
		"deleted":    result.Deleted,
		"skipped":    skipped,
	})
}
