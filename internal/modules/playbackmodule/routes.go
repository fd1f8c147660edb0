package playbackmodule

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the playback module routes.
func (m *Module) RegisterRoutes(router *gin.Engine) {
	handler := NewAPIHandler(m, m.logger.Named("api"))

	api := router.Group("/api/playback")
	{
		// Decision endpoint
		api.POST("/decide", handler.HandlePlaybackDecision)

		// Capability snapshot
		api.GET("/profile", handler.HandleGetProfile)
		api.GET("/capabilities", handler.HandleGetCapabilities)
		api.POST("/capabilities/refresh", handler.HandleRefreshCapabilities)

		// Health
		api.GET("/health", handler.HandleHealthCheck)
	}
}
