package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"myground/internal/auth"
	"myground/internal/models"
	"myground/internal/services"
)

type PreferenceHandler struct {
	preferences *services.PreferenceService
	log         *zap.Logger
}

func NewPreferenceHandler(preferences *services.PreferenceService, log *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences, log: log}
}

// GetPreferences returns the caller's preferences
// GET /api/preferences
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	pref, err := h.preferences.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, pref)
}

// UpdatePreferences patches the caller's preferences
// PUT /api/preferences
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	pref, err := h.preferences.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, pref)
}
