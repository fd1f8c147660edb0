// Package logger provides the process-wide hclog root logger. Modules derive
// named sub-loggers from it instead of constructing their own.
package logger

import (
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	root hclog.Logger
	mu   sync.RWMutex
)

// Init builds the root logger at the given level. Unknown levels fall back
// to info.
func Init(level string) {
	mu.Lock()
	defer mu.Unlock()
	root = hclog.New(&hclog.LoggerOptions{
		Name:  "lumitv",
		Level: hclog.LevelFromString(level),
	})
}

// Root returns the root logger, creating a default one on first use.
func Root() hclog.Logger {
	mu.RLock()
	l := root
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		root = hclog.New(&hclog.LoggerOptions{
			Name:  "lumitv",
			Level: hclog.Info,
		})
	}
	return root
}

// Named returns a sub-logger of the root.
func Named(name string) hclog.Logger {
	return Root().Named(name)
}
