package api

import (
	"errors"
	"net/http"
	"time"

	"fitplan/training-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ShareHandler manages public share links. Resolve is the only route in
// the API served without authentication.
type ShareHandler struct {
	shareService service.ShareService
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(shareService service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// --- Request/Response Structs ---

type EnableShareRequest struct {
	// TTLHours limits the link lifetime; zero applies the default.
	TTLHours int `json:"ttlHours"`
}

type ShareResponse struct {
	ShareToken     string     `json:"shareToken"`
	ShareExpiresAt *time.Time `json:"shareExpiresAt,omitempty"`
}

// --- Handler Methods ---

// Enable turns on sharing for a training and returns the fresh token.
func (h *ShareHandler) Enable(c *gin.Context) {
	trainingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return
	}
	var req EnableShareRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	training, err := h.shareService.Enable(c.Request.Context(), getUserFromContext(c), trainingID, time.Duration(req.TTLHours)*time.Hour)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, ShareResponse{
		ShareToken:     *training.ShareToken,
		ShareExpiresAt: training.ShareExpiresAt,
	})
}

// Disable revokes a training's share link.
func (h *ShareHandler) Disable(c *gin.Context) {
	trainingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return
	}
	if err := h.shareService.Disable(c.Request.Context(), getUserFromContext(c), trainingID); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Resolve serves a shared training to anonymous visitors. Unknown,
// revoked and expired tokens all answer the same 404.
func (h *ShareHandler) Resolve(c *gin.Context) {
	training, err := h.shareService.Resolve(c.Request.Context(), c.Param("token"), time.Now().UTC())
	if err != nil {
		if errors.Is(err, service.ErrShareNotAvailable) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}

	// strip the share bookkeeping before rendering publicly
	training.ShareToken = nil
	c.JSON(http.StatusOK, training)
}
