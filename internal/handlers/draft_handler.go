package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"myground/internal/auth"
	"myground/internal/models"
	"myground/internal/services"
)

type DraftHandler struct {
	drafts *services.DraftService
	log    *zap.Logger
}

func NewDraftHandler(drafts *services.DraftService, log *zap.Logger) *DraftHandler {
	return &DraftHandler{drafts: drafts, log: log}
}

// ListDrafts lists the caller's drafts
// GET /api/drafts
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	drafts, err := h.drafts.ListDrafts(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, drafts)
}

// GetDraft loads one draft
// GET /api/drafts/:id
func (h *DraftHandler) GetDraft(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid draft id")
		return
	}

	draft, err := h.drafts.LoadDraft(c.Request.Context(), userID, id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, draft)
}

// CreateDraft stores a new draft
// POST /api/drafts
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	h.save(c, nil)
}

// UpdateDraft overwrites a draft
// PUT /api/drafts/:id
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid draft id")
		return
	}
	h.save(c, &id)
}

func (h *DraftHandler) save(c *gin.Context, id *uuid.UUID) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := h.drafts.SaveDraft(c.Request.Context(), userID, id, req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	status := http.StatusOK
	if id == nil {
		status = http.StatusCreated
	}
	respond(c, status, draft)
}

// DiscardDraft deletes a draft
// DELETE /api/drafts/:id
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid draft id")
		return
	}

	if err := h.drafts.DiscardDraft(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondMessage(c, http.StatusOK, "draft discarded")
}
