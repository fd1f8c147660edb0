// Package modulemanager provides module registration and lifecycle for the
// client. Modules register themselves from init functions; the server loads
// them all once at startup.
package modulemanager

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/lumitv/lumitv/internal/logger"
)

// Module is the interface every module implements.
type Module interface {
	ID() string   // Unique identifier for the module
	Name() string // Display name for the module
	Core() bool   // Whether this is a core module (cannot be disabled)
	Init() error  // Initialize the module
}

// RouteRegistrar is an optional interface for modules that register routes.
type RouteRegistrar interface {
	RegisterRoutes(router *gin.Engine)
}

// Shutdowner is an optional interface for modules with teardown work.
type Shutdowner interface {
	Shutdown() error
}

// ModuleRegistry manages module registration and initialization.
type ModuleRegistry struct {
	mu          sync.RWMutex
	modules     []Module
	initialized bool
}

// Registry is the global module registry.
var Registry = &ModuleRegistry{}

// Register adds a module to the global registry.
func Register(m Module) {
	Registry.Register(m)
}

// Register adds a module to the registry.
func (r *ModuleRegistry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		logger.Root().Warn("module registered after initialization", "module", m.ID())
	}
	r.modules = append(r.modules, m)
}

// LoadAll initializes all registered modules in registration order.
func LoadAll() error {
	return Registry.LoadAll()
}

// LoadAll initializes all registered modules.
func (r *ModuleRegistry) LoadAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}

	log := logger.Named("modules")
	log.Info("loading modules", "count", len(r.modules))

	for _, m := range r.modules {
		if err := m.Init(); err != nil {
			if m.Core() {
				return fmt.Errorf("core module %s failed to initialize: %w", m.ID(), err)
			}
			log.Error("module failed to initialize, skipping", "module", m.ID(), "error", err)
			continue
		}
		log.Info("module initialized", "module", m.ID(), "name", m.Name())
	}

	r.initialized = true
	return nil
}

// RegisterRoutes wires every route-registering module into the router.
func (r *ModuleRegistry) RegisterRoutes(router *gin.Engine) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.modules {
		if registrar, ok := m.(RouteRegistrar); ok {
			registrar.RegisterRoutes(router)
		}
	}
}

// ShutdownAll tears down modules in reverse registration order.
func (r *ModuleRegistry) ShutdownAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := logger.Named("modules")
	for i := len(r.modules) - 1; i >= 0; i-- {
		if s, ok := r.modules[i].(Shutdowner); ok {
			if err := s.Shutdown(); err != nil {
				log.Error("module shutdown failed", "module", r.modules[i].ID(), "error", err)
			}
		}
	}
}
