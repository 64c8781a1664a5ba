package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"myground/internal/services"
	"myground/internal/validation"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// respondServiceError maps service errors onto HTTP statuses. Unexpected
// errors are logged and reported without detail.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	var verrs *validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   verrs.Error(),
			"errors":  verrs.Fields,
		})
	case errors.Is(err, services.ErrEmptyDraft):
		respondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrDraftNotFound), errors.Is(err, services.ErrPropertyNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidPreference):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
