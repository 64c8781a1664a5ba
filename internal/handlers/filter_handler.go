package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"myground/internal/services"
)

type FilterHandler struct {
	filters *services.FilterService
	log     *zap.Logger
}

func NewFilterHandler(filters *services.FilterService, log *zap.Logger) *FilterHandler {
	return &FilterHandler{filters: filters, log: log}
}

// GetAllFilterOptions returns the grouped filter taxonomy
// GET /api/filters/options
func (h *FilterHandler) GetAllFilterOptions(c *gin.Context) {
	respond(c, http.StatusOK, h.filters.GetAllFilterOptions(c.Request.Context()))
}

// GetFilterOptionsByType returns the options of one type
// GET /api/filters/options/:type?category=
func (h *FilterHandler) GetFilterOptionsByType(c *gin.Context) {
	options, err := h.filters.GetFilterOptionsByType(c.Request.Context(), c.Param("type"), c.Query("category"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, options)
}
