package core

import (
	"strconv"
	"strings"
)

// CapabilityFlags is the immutable capability record for one session. It is
// derived deterministically from the platform tier plus optional probe
// overrides, constructed once, and never mutated: a capability change (for
// example a probe arriving late) produces a new record, so consumers holding
// a stale reference are never silently invalidated.
type CapabilityFlags struct {
	Tier PlatformTier `json:"tier"`

	// Video decode
	H264 bool `json:"h264"`
	HEVC bool `json:"hevc"`
	AV1  bool `json:"av1"`
	VP9  bool `json:"vp9"`

	// Dynamic range
	HDR10               bool `json:"hdr10"`
	HDR10Plus           bool `json:"hdr10Plus"`
	HLG                 bool `json:"hlg"`
	DolbyVision         bool `json:"dolbyVision"`
	DolbyVisionProfile8 bool `json:"dolbyVisionProfile8"`

	// Audio decode
	AAC        bool `json:"aac"`
	AC3        bool `json:"ac3"`
	EAC3       bool `json:"eac3"`
	DTS        bool `json:"dts"`
	Opus       bool `json:"opus"`
	DolbyAtmos bool `json:"dolbyAtmos"`
	TrueHD     bool `json:"truehd"`

	// Containers
	MKV  bool `json:"mkv"`
	WebM bool `json:"webm"`
	TS   bool `json:"ts"`
	MP4  bool `json:"mp4"`
	AVI  bool `json:"avi"`
	ASF  bool `json:"asf"`

	// Delivery
	NativeHLS      bool `json:"nativeHls"`
	NativeHLSFMP4  bool `json:"nativeHlsFmp4"`
	SecondaryAudio bool `json:"secondaryAudio"`

	MaxH264Level int `json:"maxH264Level"`
	MaxHEVCLevel int `json:"maxHevcLevel"`

	// Panel dimension ceilings, refined by the probe's panel answer.
	MaxWidth  int `json:"maxWidth"`
	MaxHeight int `json:"maxHeight"`
}

// ResolveCapabilities computes the capability record for a tier. Probe values
// always win over tier defaults when the probe explicitly reports true or
// false for a feature; missing keys leave the tier default in place. The
// function is pure: the same inputs always produce the identical record.
func ResolveCapabilities(tier PlatformTier, probe ProbeResult) CapabilityFlags {
	flags := CapabilityFlags{
		Tier: tier,

		H264: true,
		HEVC: hevcSupported(tier),
		AV1:  av1Supported(tier),
		VP9:  tier >= Tier2,

		HDR10:     tier >= Tier4,
		HDR10Plus: false,
		HLG:       tier >= Tier4,
		// Dolby Vision shipped on a hardware subset only; without a probe
		// answer the tier default stays conservative.
		DolbyVision:         tier >= Tier5,
		DolbyVisionProfile8: dolbyVisionProfile8Supported(tier),

		AAC:  true,
		AC3:  true,
		EAC3: true,
		DTS:  dtsEnabled(tier),
		Opus: opusSupported(tier),
		// Atmos and TrueHD are passthrough-only features that cannot be
		// inferred from the tier at all.
		DolbyAtmos: false,
		TrueHD:     false,

		MKV:  true,
		WebM: tier >= Tier2,
		TS:   true,
		MP4:  true,
		AVI:  tier >= Tier22,
		ASF:  false,

		NativeHLS:      true,
		NativeHLSFMP4:  tier >= Tier4,
		SecondaryAudio: tier >= Tier4,

		MaxH264Level: maxH264Level(tier),
		MaxHEVCLevel: maxHEVCLevel(tier),

		MaxWidth:  3840,
		MaxHeight: 2160,
	}

	applyProbeOverrides(&flags, probe)

	// Profile 8 needs the base Dolby Vision decoder no matter what either
	// source claims.
	if !flags.DolbyVision {
		flags.DolbyVisionProfile8 = false
	}

	return flags
}

func hevcSupported(tier PlatformTier) bool {
	return tier >= Tier3
}

func av1Supported(tier PlatformTier) bool {
	return tier >= Tier5
}

// dtsEnabled reports the boolean DTS gate. Generations 5 through 22 shipped
// without a licensed DTS decoder; it returned with generation 23.
func dtsEnabled(tier PlatformTier) bool {
	return tier <= Tier4 || tier >= Tier23
}

// opusSupported uses tier 4 as the canonical Opus threshold. Earlier
// revisions of the platform matrix disagreed between 4 and 24; 4 is applied
// uniformly everywhere.
func opusSupported(tier PlatformTier) bool {
	return tier >= Tier4
}

func dolbyVisionProfile8Supported(tier PlatformTier) bool {
	return tier >= Tier4
}

func maxH264Level(tier PlatformTier) int {
	if tier >= Tier3 {
		return 51
	}
	return 42
}

func maxHEVCLevel(tier PlatformTier) int {
	switch {
	case tier >= Tier23:
		return 183
	case tier >= Tier4:
		return 153
	case tier >= Tier3:
		return 123
	default:
		return 0
	}
}

// applyProbeOverrides merges ground-truth hardware answers into the
// tier-derived defaults while the flags value is still under construction.
func applyProbeOverrides(flags *CapabilityFlags, probe ProbeResult) {
	if len(probe) == 0 {
		return
	}

	overrideBool(probe, ProbeKeyHDR10, &flags.HDR10)
	overrideBool(probe, ProbeKeyHDR10Plus, &flags.HDR10Plus)
	overrideBool(probe, ProbeKeyHLG, &flags.HLG)
	overrideBool(probe, ProbeKeyDolbyVision, &flags.DolbyVision)
	overrideBool(probe, ProbeKeyDolbyVisionP8, &flags.DolbyVisionProfile8)
	overrideBool(probe, ProbeKeyDolbyAtmos, &flags.DolbyAtmos)
	// TrueHD passthrough shares the Atmos audio path; there is no separate
	// probe key for it.
	overrideBool(probe, ProbeKeyDolbyAtmos, &flags.TrueHD)
	overrideBool(probe, ProbeKeyHEVCHardware, &flags.HEVC)
	overrideBool(probe, ProbeKeyAV1Hardware, &flags.AV1)

	if width, height, ok := parsePanelResolution(probe.String(ProbeKeyPanelResolution)); ok {
		flags.MaxWidth = width
		flags.MaxHeight = height
	}
}

// parsePanelResolution maps the probe's panel answer to width/height
// ceilings. Accepts "WxH" pairs and the common resolution tokens; anything
// else leaves the defaults in place.
func parsePanelResolution(value string) (width, height int, ok bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "":
		return 0, 0, false
	case "uhd", "4k", "2160p":
		return 3840, 2160, true
	case "fhd", "1080p":
		return 1920, 1080, true
	case "hd", "720p":
		return 1280, 720, true
	}

	parts := strings.SplitN(v, "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func overrideBool(probe ProbeResult, key string, target *bool) {
	if value, ok := probe.Bool(key); ok {
		*target = value
	}
}
