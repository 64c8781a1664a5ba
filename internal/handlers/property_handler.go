package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"myground/internal/auth"
	"myground/internal/models"
	"myground/internal/services"
)

type PropertyHandler struct {
	properties *services.PropertyService
	log        *zap.Logger
}

func NewPropertyHandler(properties *services.PropertyService, log *zap.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, log: log}
}

// CreateProperty creates a property from a completed form
// POST /api/properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var form models.PropertyForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	property, err := h.properties.Create(c.Request.Context(), userID, form)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, property)
}

// UpdateProperty replaces the form of a property
// PUT /api/properties/:id
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid property id")
		return
	}

	var form models.PropertyForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	property, err := h.properties.Update(c.Request.Context(), userID, id, form)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, property)
}

// SubmitProperty publishes a DRAFT property
// POST /api/properties/:id/submit
func (h *PropertyHandler) SubmitProperty(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid property id")
		return
	}

	// The body is optional
	var req models.SubmitPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	property, err := h.properties.Submit(c.Request.Context(), userID, id, req.DraftID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, property)
}

// GetProperty retrieves a published property, or any property of the caller
// GET /api/properties/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid property id")
		return
	}

	viewerID, _ := auth.GetUserID(c)
	property, err := h.properties.Get(c.Request.Context(), viewerID, id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, property)
}

// ListProperties searches published properties
// GET /api/properties
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	filter := models.PropertyFilter{
		TransactionType:  models.TransactionType(c.Query("transactionType")),
		PropertyCategory: models.PropertyCategory(c.Query("propertyCategory")),
		PropertySubType:  c.Query("propertySubType"),
		City:             c.Query("city"),
		State:            c.Query("state"),
	}

	for param, target := range map[string]**decimal.Decimal{
		"minPrice": &filter.MinPrice,
		"maxPrice": &filter.MaxPrice,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid "+param)
			return
		}
		*target = &v
	}

	limit := services.DefaultPageSize
	offset := 0
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o >= 0 {
		offset = o
	}

	limit, offset = services.ClampPage(limit, offset)
	properties, total, err := h.properties.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    properties,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// ListMyProperties lists every property of the caller
// GET /api/properties/mine
func (h *PropertyHandler) ListMyProperties(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	properties, err := h.properties.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, properties)
}

// DeleteProperty removes a property of the caller
// DELETE /api/properties/:id
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid property id")
		return
	}

	if err := h.properties.Delete(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondMessage(c, http.StatusOK, "property deleted")
}
