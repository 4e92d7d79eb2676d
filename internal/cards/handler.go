package cards

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"retrofit-backend/internal/geo"
	"retrofit-backend/internal/shared/server/respond"
	"retrofit-backend/internal/snapshots"
)

// Handler wires HTTP handlers to the assembler.
type Handler struct {
	Assembler *Assembler
	Snapshots snapshots.Repo
}

// NewHandler constructs a Handler.
func NewHandler(assembler *Assembler, snapshotRepo snapshots.Repo) *Handler {
	return &Handler{Assembler: assembler, Snapshots: snapshotRepo}
}

// RegisterRoutes attaches card routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/snapshots/:id/cards", h.list)
}

func (h *Handler) list(c *gin.Context) {
	snapshotID := strings.TrimSpace(c.Param("id"))
	c.Set("snapshotId", snapshotID)

	snapshot, err := h.Snapshots.GetByID(c.Request.Context(), snapshotID)
	if err != nil {
		if errors.Is(err, snapshots.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "snapshot_not_found", "snapshot does not exist", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to load snapshot", nil)
		return
	}

	// The stored property location is the default; query params override.
	loc := geo.Location{Zip: snapshot.PropertyZip, State: snapshot.PropertyState}
	if zip := strings.TrimSpace(c.Query("zip")); zip != "" {
		loc.Zip = zip
	}
	if state := strings.TrimSpace(c.Query("state")); state != "" {
		loc.State = state
	}

	built, err := h.Assembler.BuildCards(c.Request.Context(), snapshotID, loc)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "card_build_failed", "failed to build upgrade cards", nil)
		return
	}

	respond.OK(c, gin.H{
		"snapshotId": snapshotID,
		"cards":      built,
	})
}
