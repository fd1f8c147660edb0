// Package server assembles the gin router serving the local client API.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/lumitv/lumitv/internal/events"
	"github.com/lumitv/lumitv/internal/logger"
	"github.com/lumitv/lumitv/internal/modules/modulemanager"

	// Import all modules to trigger their registration
	_ "github.com/lumitv/lumitv/internal/modules/playbackmodule"
)

// SetupRouter initializes the event bus and modules and returns the router.
func SetupRouter() (*gin.Engine, error) {
	events.SetGlobalEventBus(events.NewBus())

	if err := modulemanager.LoadAll(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	modulemanager.Registry.RegisterRoutes(r)
	return r, nil
}

// Shutdown tears the module system down.
func Shutdown() {
	modulemanager.Registry.ShutdownAll()
}

func requestLogger() gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}
