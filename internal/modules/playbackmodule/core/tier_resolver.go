// Package core implements the device capability and playback strategy
// engine: platform tier resolution, capability flag derivation, the native
// capability probe, device profile compilation, and per-source playback
// decisions.
package core

import (
	"regexp"
	"strconv"
	"strings"
)

// PlatformTier is a discrete platform-capability generation. Values are
// ordered but non-contiguous: generations 1-6 are followed by the year-based
// 22-25. Comparisons are threshold-based, never arithmetic; there is nothing
// between Tier6 and Tier22.
type PlatformTier int

const (
	Tier1  PlatformTier = 1
	Tier2  PlatformTier = 2
	Tier3  PlatformTier = 3
	Tier4  PlatformTier = 4
	Tier5  PlatformTier = 5
	Tier6  PlatformTier = 6
	Tier22 PlatformTier = 22
	Tier23 PlatformTier = 23
	Tier24 PlatformTier = 24
	Tier25 PlatformTier = 25
)

// DefaultTier is returned when no version signal can be parsed. It sits in
// the middle of the supported range so an unknown device still gets a usable,
// conservative profile.
const DefaultTier = Tier4

// tierThreshold maps a minimum engine major version to a tier. Tables are
// ordered descending; the first threshold met wins.
type tierThreshold struct {
	minVersion int
	tier       PlatformTier
}

// Primary signal: the Chromium major version of the embedded engine.
var engineTierTable = []tierThreshold{
	{108, Tier25},
	{94, Tier24},
	{87, Tier23},
	{79, Tier22},
	{68, Tier6},
	{53, Tier5},
	{38, Tier4},
}

// Secondary signal: the WebKit build version, the only usable signal on
// generations that predate the Chromium engine.
var legacyEngineTierTable = []tierThreshold{
	{538, Tier3},
	{537, Tier2},
	{536, Tier1},
}

// Tokens identifying the classic TV browser that predates the platform's
// versioned engines. Its true capability cannot be derived from version
// numbers, so it short-circuits to the lowest tier.
var classicBrowserTokens = []string{"netcast", "lg browser"}

var leadingVersion = regexp.MustCompile(`(\d+)`)

// ResolveTier maps the engine version signals to a platform tier. The
// primary signal is tried first, then the legacy signal. The function is
// pure and total: every input produces a tier, never an error.
func ResolveTier(engineVersion, legacyEngineVersion string) PlatformTier {
	for _, signal := range []string{engineVersion, legacyEngineVersion} {
		lowered := strings.ToLower(signal)
		for _, token := range classicBrowserTokens {
			if strings.Contains(lowered, token) {
				return Tier1
			}
		}
	}

	if tier, ok := lookupTier(engineVersion, engineTierTable); ok {
		return tier
	}
	if tier, ok := lookupTier(legacyEngineVersion, legacyEngineTierTable); ok {
		return tier
	}
	return DefaultTier
}

func lookupTier(signal string, table []tierThreshold) (PlatformTier, bool) {
	major, ok := parseLeadingVersion(signal)
	if !ok {
		return 0, false
	}
	for _, entry := range table {
		if major >= entry.minVersion {
			return entry.tier, true
		}
	}
	return 0, false
}

// parseLeadingVersion extracts the leading numeric component of a version
// signal ("94.0.4606.128" yields 94).
func parseLeadingVersion(signal string) (int, bool) {
	match := leadingVersion.FindString(signal)
	if match == "" {
		return 0, false
	}
	major, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return major, true
}
