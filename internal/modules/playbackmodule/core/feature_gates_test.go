package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allTiers = []PlatformTier{
	Tier1, Tier2, Tier3, Tier4, Tier5, Tier6, Tier22, Tier23, Tier24, Tier25,
}

func TestResolveCapabilitiesIsDeterministic(t *testing.T) {
	for _, tier := range allTiers {
		first := ResolveCapabilities(tier, ProbeResult{})
		second := ResolveCapabilities(tier, ProbeResult{})
		assert.Equal(t, first, second, "tier %d", tier)
	}
}

func TestDTSRegressionWindow(t *testing.T) {
	// The decoder disappeared with generation 5 and returned with 23; the
	// boundary values matter individually.
	tests := []struct {
		tier    PlatformTier
		enabled bool
	}{
		{Tier1, true},
		{Tier4, true},
		{Tier5, false},
		{Tier6, false},
		{Tier22, false},
		{Tier23, true},
		{Tier25, true},
	}

	for _, tt := range tests {
		flags := ResolveCapabilities(tt.tier, ProbeResult{})
		assert.Equal(t, tt.enabled, flags.DTS, "tier %d", tt.tier)
		assert.Equal(t, tt.enabled, dtsEnabled(tt.tier), "tier %d predicate", tt.tier)
	}
}

func TestVideoCodecThresholds(t *testing.T) {
	tests := []struct {
		tier PlatformTier
		hevc bool
		av1  bool
	}{
		{Tier1, false, false},
		{Tier2, false, false},
		{Tier3, true, false},
		{Tier4, true, false},
		{Tier5, true, true},
		{Tier22, true, true},
		{Tier25, true, true},
	}

	for _, tt := range tests {
		flags := ResolveCapabilities(tt.tier, ProbeResult{})
		assert.True(t, flags.H264, "h264 is universal, tier %d", tt.tier)
		assert.Equal(t, tt.hevc, flags.HEVC, "hevc tier %d", tt.tier)
		assert.Equal(t, tt.av1, flags.AV1, "av1 tier %d", tt.tier)
	}
}

func TestTier4FeatureCluster(t *testing.T) {
	below := ResolveCapabilities(Tier3, ProbeResult{})
	assert.False(t, below.NativeHLSFMP4)
	assert.False(t, below.SecondaryAudio)
	assert.False(t, below.Opus)
	assert.False(t, below.DolbyVisionProfile8)

	at := ResolveCapabilities(Tier4, ProbeResult{})
	assert.True(t, at.NativeHLSFMP4)
	assert.True(t, at.SecondaryAudio)
	assert.True(t, at.Opus)
	// Profile 8 clears the tier gate but still needs the base decoder.
	assert.False(t, at.DolbyVisionProfile8)

	withDovi := ResolveCapabilities(Tier5, ProbeResult{})
	assert.True(t, withDovi.DolbyVision)
	assert.True(t, withDovi.DolbyVisionProfile8)
}

func TestCodecLevels(t *testing.T) {
	tests := []struct {
		tier      PlatformTier
		h264Level int
		hevcLevel int
	}{
		{Tier2, 42, 0},
		{Tier3, 51, 123},
		{Tier4, 51, 153},
		{Tier22, 51, 153},
		{Tier23, 51, 183},
	}

	for _, tt := range tests {
		flags := ResolveCapabilities(tt.tier, ProbeResult{})
		assert.Equal(t, tt.h264Level, flags.MaxH264Level, "tier %d", tt.tier)
		assert.Equal(t, tt.hevcLevel, flags.MaxHEVCLevel, "tier %d", tt.tier)
	}
}

func TestProbeOverridesWinOverTierDefaults(t *testing.T) {
	probe := ProbeResult{
		ProbeKeyDolbyVision: "true",
		ProbeKeyDolbyAtmos:  "true",
		ProbeKeyHDR10:       "false",
	}

	flags := ResolveCapabilities(Tier4, probe)

	// Tier 4 defaults: no Dolby Vision, no Atmos, HDR10 on. The probe
	// answer wins on all three.
	assert.True(t, flags.DolbyVision)
	assert.True(t, flags.DolbyAtmos)
	assert.True(t, flags.TrueHD, "truehd passthrough follows the atmos answer")
	assert.False(t, flags.HDR10)
}

func TestProbeMissingKeysKeepTierDefaults(t *testing.T) {
	flags := ResolveCapabilities(Tier4, ProbeResult{ProbeKeyModelName: "OLED65C2"})
	defaults := ResolveCapabilities(Tier4, ProbeResult{})
	assert.Equal(t, defaults, flags)
}

func TestProbeUnrecognizableBoolIgnored(t *testing.T) {
	flags := ResolveCapabilities(Tier4, ProbeResult{ProbeKeyDolbyVision: "maybe"})
	assert.False(t, flags.DolbyVision)
}

func TestPanelResolutionSetsDimensionCeilings(t *testing.T) {
	tests := []struct {
		value  string
		width  int
		height int
	}{
		{"3840x2160", 3840, 2160},
		{"1920x1080", 1920, 1080},
		{"uhd", 3840, 2160},
		{"4K", 3840, 2160},
		{"FHD", 1920, 1080},
		{"720p", 1280, 720},
	}

	for _, tt := range tests {
		flags := ResolveCapabilities(Tier23, ProbeResult{ProbeKeyPanelResolution: tt.value})
		assert.Equal(t, tt.width, flags.MaxWidth, "panel %q", tt.value)
		assert.Equal(t, tt.height, flags.MaxHeight, "panel %q", tt.value)
	}
}

func TestPanelResolutionUnparseableKeepsDefaults(t *testing.T) {
	for _, value := range []string{"widescreen", "x1080", "0x0", "-1x2160"} {
		flags := ResolveCapabilities(Tier23, ProbeResult{ProbeKeyPanelResolution: value})
		assert.Equal(t, 3840, flags.MaxWidth, "panel %q", value)
		assert.Equal(t, 2160, flags.MaxHeight, "panel %q", value)
	}
}

func TestDolbyVisionProfile8NeedsBaseDecoder(t *testing.T) {
	// Probe claims profile 8 but denies the base decoder; the composite
	// must stay off.
	probe := ProbeResult{
		ProbeKeyDolbyVision:   "false",
		ProbeKeyDolbyVisionP8: "true",
	}
	flags := ResolveCapabilities(Tier25, probe)
	assert.False(t, flags.DolbyVision)
	assert.False(t, flags.DolbyVisionProfile8)
}

func TestProbeResultBool(t *testing.T) {
	probe := ProbeResult{
		"a": "true",
		"b": "0",
		"c": "maybe",
	}

	value, ok := probe.Bool("a")
	assert.True(t, ok)
	assert.True(t, value)

	value, ok = probe.Bool("b")
	assert.True(t, ok)
	assert.False(t, value)

	_, ok = probe.Bool("c")
	assert.False(t, ok)

	_, ok = probe.Bool("missing")
	assert.False(t, ok)
}
