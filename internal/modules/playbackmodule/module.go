// Package playbackmodule implements the device capability and playback
// strategy engine. It resolves the platform tier from the engine version
// signals, derives capability flags, compiles the device profile sent to the
// media server, and decides per media source between direct play, remux, and
// transcode.
package playbackmodule

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/lumitv/lumitv/internal/config"
	"github.com/lumitv/lumitv/internal/events"
	"github.com/lumitv/lumitv/internal/logger"
	"github.com/lumitv/lumitv/internal/modules/playbackmodule/core"
)

// Module is the playback module.
type Module struct {
	logger hclog.Logger

	tier     core.PlatformTier
	probe    *core.CapabilityProbe
	session  *core.SessionState
	decision *core.DecisionEngine

	profileOpts core.ProfileOptions
}

// ID returns the module identifier.
func (m *Module) ID() string {
	return "playback"
}

// Name returns the human-readable module name.
func (m *Module) Name() string {
	return "Playback Module"
}

// Core returns whether this is a core module.
func (m *Module) Core() bool {
	return true
}

// Init resolves the platform tier, seeds the session with tier-default
// capabilities, and prepares the probe. The probe is not queried here: the
// first capability refresh is the one-time upgrade point, triggered by the
// UI before its first playback attempt.
func (m *Module) Init() error {
	m.logger = logger.Named("playback")
	cfg := config.Get()

	m.tier = core.ResolveTier(
		cfg.Platform.EngineVersion,
		cfg.Platform.LegacyEngineVersion,
	)
	m.logger.Info("platform tier resolved",
		"tier", int(m.tier),
		"engine_version", cfg.Platform.EngineVersion)

	m.probe = core.NewCapabilityProbe(
		m.logger.Named("probe"),
		cfg.DeviceInfo.ServiceURL,
		cfg.DeviceInfo.Timeout,
	)
	m.decision = core.NewDecisionEngine(m.logger.Named("decision-engine"))

	m.profileOpts = core.ProfileOptions{
		MaxStreamingBitrate:              cfg.Playback.MaxStreamingBitrate,
		MaxStaticBitrate:                 cfg.Playback.MaxStaticBitrate,
		MusicStreamingTranscodingBitrate: cfg.Playback.MusicStreamingTranscodingBitrate,
		MaxAudioChannels:                 cfg.Playback.MaxAudioChannels,
	}

	flags := core.ResolveCapabilities(m.tier, core.ProbeResult{})
	profile := core.BuildDeviceProfile(flags, m.profileOpts)
	m.session = core.NewSessionState(flags, profile)

	events.GetGlobalEventBus().PublishAsync(events.Event{
		Type:   events.EventCapabilitiesResolved,
		Source: m.ID(),
		Data: map[string]interface{}{
			"session_id": m.session.ID(),
			"tier":       int(m.tier),
		},
	})

	return nil
}

// RefreshCapabilities runs the capability probe (coalesced with any other
// caller) and swaps in a rebuilt flags/profile pair. Safe to call any number
// of times; the underlying native query happens once per process.
func (m *Module) RefreshCapabilities(ctx context.Context) core.CapabilityFlags {
	result := m.probe.Fetch(ctx)

	flags := core.ResolveCapabilities(m.tier, result)
	profile := core.BuildDeviceProfile(flags, m.profileOpts)
	m.session.Swap(flags, profile)

	m.logger.Info("capabilities refreshed",
		"probe_keys", len(result),
		"dolby_vision", flags.DolbyVision,
		"dolby_atmos", flags.DolbyAtmos)

	events.GetGlobalEventBus().PublishAsync(events.Event{
		Type:   events.EventCapabilitiesRefreshed,
		Source: m.ID(),
		Data: map[string]interface{}{
			"session_id":  m.session.ID(),
			"probe_keys":  len(result),
			"probe_ready": m.probe.Loaded(),
		},
	})

	return flags
}

// Session returns the capability session state.
func (m *Module) Session() *core.SessionState {
	return m.session
}

// DecisionEngine returns the playback decision engine.
func (m *Module) DecisionEngine() *core.DecisionEngine {
	return m.decision
}

// Shutdown tears down the module. The engine holds no external resources.
func (m *Module) Shutdown() error {
	return nil
}
