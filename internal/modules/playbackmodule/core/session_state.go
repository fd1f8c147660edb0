package core

import (
	"sync"

	"github.com/google/uuid"
	"github.com/lumitv/lumitv/internal/modules/playbackmodule/types"
)

// SessionState holds the capability snapshot of the current playback session:
// one immutable CapabilityFlags value and the device profile compiled from
// it. The two always change together, so readers get a coherent pair; a
// refresh swaps in a complete new pair rather than mutating either value.
//
// The intended lifecycle has exactly one swap: the session starts on tier
// defaults, and once the capability probe settles the caller rebuilds and
// swaps before the first playback attempt.
type SessionState struct {
	id string

	mu      sync.RWMutex
	flags   CapabilityFlags
	profile *types.DeviceProfile
}

// NewSessionState creates a session seeded with the given snapshot pair.
func NewSessionState(flags CapabilityFlags, profile *types.DeviceProfile) *SessionState {
	return &SessionState{
		id:      uuid.NewString(),
		flags:   flags,
		profile: profile,
	}
}

// ID returns the session identifier.
func (s *SessionState) ID() string {
	return s.id
}

// Snapshot returns the current flags and profile as a consistent pair.
func (s *SessionState) Snapshot() (CapabilityFlags, *types.DeviceProfile) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags, s.profile
}

// Flags returns the current capability record.
func (s *SessionState) Flags() CapabilityFlags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags
}

// Profile returns the current compiled device profile.
func (s *SessionState) Profile() *types.DeviceProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Swap installs a new snapshot pair. The old values are left untouched for
// any consumer still holding them.
func (s *SessionState) Swap(flags CapabilityFlags, profile *types.DeviceProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags = flags
	s.profile = profile
}
