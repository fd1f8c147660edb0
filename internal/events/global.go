package events

import (
	"sync"
)

var (
	globalBus     EventBus
	globalBusLock sync.RWMutex
)

// SetGlobalEventBus installs the process-wide bus instance.
func SetGlobalEventBus(bus EventBus) {
	globalBusLock.Lock()
	defer globalBusLock.Unlock()
	globalBus = bus
}

// GetGlobalEventBus returns the process-wide bus, creating one on first use
// so early publishers never hit a nil bus.
func GetGlobalEventBus() EventBus {
	globalBusLock.RLock()
	bus := globalBus
	globalBusLock.RUnlock()
	if bus != nil {
		return bus
	}

	globalBusLock.Lock()
	defer globalBusLock.Unlock()
	if globalBus == nil {
		globalBus = NewBus()
	}
	return globalBus
}
