package playbackmodule

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/lumitv/lumitv/internal/events"
	"github.com/lumitv/lumitv/internal/modules/playbackmodule/types"
)

// APIHandler serves the local playback API consumed by the UI layer.
type APIHandler struct {
	module *Module
	logger hclog.Logger
}

// NewAPIHandler creates the API handler for the playback module.
func NewAPIHandler(module *Module, logger hclog.Logger) *APIHandler {
	return &APIHandler{module: module, logger: logger}
}

// HandlePlaybackDecision decides the delivery strategy for one media source.
func (h *APIHandler) HandlePlaybackDecision(c *gin.Context) {
	var source types.MediaSource
	if err := c.ShouldBindJSON(&source); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flags := h.module.Session().Flags()
	decision := h.module.DecisionEngine().Decide(source, flags)

	events.GetGlobalEventBus().PublishAsync(events.Event{
		Type:   events.EventPlaybackDecided,
		Source: h.module.ID(),
		Data: map[string]interface{}{
			"container": source.Container,
			"method":    string(decision.Method),
			"reason":    decision.Reason,
		},
	})

	c.JSON(http.StatusOK, decision)
}

// HandleGetProfile returns the compiled device profile document.
func (h *APIHandler) HandleGetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.module.Session().Profile())
}

// HandleGetCapabilities returns the current capability snapshot.
func (h *APIHandler) HandleGetCapabilities(c *gin.Context) {
	c.JSON(http.StatusOK, h.module.Session().Flags())
}

// HandleRefreshCapabilities runs the capability probe and rebuilds the
// snapshot. Always succeeds: a failed probe resolves to tier defaults.
func (h *APIHandler) HandleRefreshCapabilities(c *gin.Context) {
	flags := h.module.RefreshCapabilities(c.Request.Context())
	c.JSON(http.StatusOK, flags)
}

// HandleHealthCheck reports module health.
func (h *APIHandler) HandleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"session_id": h.module.Session().ID(),
		"tier":       int(h.module.Session().Flags().Tier),
	})
}
