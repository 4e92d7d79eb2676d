package snapshots

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"retrofit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the snapshot repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches snapshot routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/snapshots", h.create)
	rg.GET("/snapshots/:id", h.get)
}

type createRequest struct {
	ID            string `json:"id"`
	PropertyZip   string `json:"propertyZip"`
	PropertyState string `json:"propertyState"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	snapshot := Snapshot{
		ID:            strings.TrimSpace(req.ID),
		PropertyZip:   strings.TrimSpace(req.PropertyZip),
		PropertyState: strings.ToUpper(strings.TrimSpace(req.PropertyState)),
	}
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	c.Set("snapshotId", snapshot.ID)

	if err := h.Repo.Create(c.Request.Context(), snapshot); err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to create snapshot", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"snapshotId":    snapshot.ID,
		"propertyZip":   snapshot.PropertyZip,
		"propertyState": snapshot.PropertyState,
	})
}

func (h *Handler) get(c *gin.Context) {
	snapshotID := strings.TrimSpace(c.Param("id"))
	c.Set("snapshotId", snapshotID)

	snapshot, err := h.Repo.GetByID(c.Request.Context(), snapshotID)
	if err != nil {
		if err == ErrNotFound {
			respond.Error(c, http.StatusNotFound, "snapshot_not_found", "snapshot does not exist", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to load snapshot", nil)
		return
	}

	respond.OK(c, snapshot)
}
