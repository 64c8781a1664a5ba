package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"myground/internal/auth"
	"myground/internal/services"
)

// Services bundles what the HTTP surface depends on
type Services struct {
	Drafts      *services.DraftService
	Properties  *services.PropertyService
	Filters     *services.FilterService
	Preferences *services.PreferenceService
}

// RegisterRoutes mounts the API on router
func RegisterRoutes(router *gin.Engine, svc Services, log *zap.Logger, metricsEnabled bool) {
	draftHandler := NewDraftHandler(svc.Drafts, log)
	propertyHandler := NewPropertyHandler(svc.Properties, log)
	filterHandler := NewFilterHandler(svc.Filters, log)
	preferenceHandler := NewPreferenceHandler(svc.Preferences, log)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if metricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api")

	// Public routes
	filters := api.Group("/filters")
	{
		filters.GET("/options", filterHandler.GetAllFilterOptions)
		filters.GET("/options/:type", filterHandler.GetFilterOptionsByType)
	}

	public := api.Group("/properties")
	{
		public.GET("", propertyHandler.ListProperties)
		public.GET("/:id", auth.OptionalAuth(), propertyHandler.GetProperty)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/drafts", draftHandler.ListDrafts)
		protected.GET("/drafts/:id", draftHandler.GetDraft)
		protected.POST("/drafts", draftHandler.CreateDraft)
		protected.PUT("/drafts/:id", draftHandler.UpdateDraft)
		protected.DELETE("/drafts/:id", draftHandler.DiscardDraft)

		protected.GET("/properties/mine", propertyHandler.ListMyProperties)
		protected.POST("/properties", propertyHandler.CreateProperty)
		protected.PUT("/properties/:id", propertyHandler.UpdateProperty)
		protected.DELETE("/properties/:id", propertyHandler.DeleteProperty)
		protected.POST("/properties/:id/submit", propertyHandler.SubmitProperty)

		protected.GET("/preferences", preferenceHandler.GetPreferences)
		protected.PUT("/preferences", preferenceHandler.UpdatePreferences)
	}
}
