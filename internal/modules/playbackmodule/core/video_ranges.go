package core

import "strings"

// Video range type tags as they appear in codec compatibility predicates and
// media source descriptions.
const (
	RangeSDR                 = "SDR"
	RangeHDR10               = "HDR10"
	RangeHDR10Plus           = "HDR10Plus"
	RangeHLG                 = "HLG"
	RangeDOVI                = "DOVI"
	RangeDOVIWithHDR10       = "DOVIWithHDR10"
	RangeDOVIWithHLG         = "DOVIWithHLG"
	RangeDOVIWithSDR         = "DOVIWithSDR"
	RangeDOVIWithHDR10Plus   = "DOVIWithHDR10Plus"
	RangeDOVIWithEL          = "DOVIWithEL"
	RangeDOVIWithELHDR10Plus = "DOVIWithELHDR10Plus"
	RangeDOVIInvalid         = "DOVIInvalid"
)

// BuildVideoRangeTypes returns the ordered set of acceptable dynamic-range
// tags for the given capability record. The construction is additive and the
// order is part of the contract: downstream consumers match on set membership
// over the exact list.
//
// HLG playback rides on the HDR10 tone-mapping path, so it is gated on the
// hdr10 flag rather than carrying its own.
func BuildVideoRangeTypes(flags CapabilityFlags) []string {
	ranges := []string{RangeSDR}

	if flags.HDR10 {
		ranges = append(ranges, RangeHDR10, RangeHDR10Plus)
		ranges = append(ranges, RangeHLG)
	}

	if flags.DolbyVision {
		ranges = append(ranges,
			RangeDOVI,
			RangeDOVIWithHDR10,
			RangeDOVIWithHLG,
			RangeDOVIWithSDR,
		)
		if flags.DolbyVisionProfile8 {
			ranges = append(ranges,
				RangeDOVIWithHDR10Plus,
				RangeDOVIWithEL,
				RangeDOVIWithELHDR10Plus,
				RangeDOVIInvalid,
			)
		}
	}

	return ranges
}

// BuildVideoRangeTypesWithoutDovi returns the range set with every
// Dolby Vision variant removed. Containers other than mp4/ts are not trusted
// to carry the Dolby Vision metadata, so their HEVC predicates use this
// narrowed list.
func BuildVideoRangeTypesWithoutDovi(flags CapabilityFlags) []string {
	full := BuildVideoRangeTypes(flags)
	narrowed := make([]string, 0, len(full))
	for _, r := range full {
		if isDolbyVisionRange(r) {
			continue
		}
		narrowed = append(narrowed, r)
	}
	return narrowed
}

// JoinRangeTypes renders a range list as the pipe-delimited value used in
// EqualsAny predicates.
func JoinRangeTypes(ranges []string) string {
	return strings.Join(ranges, "|")
}

// isHDR10FamilyRange reports whether a range tag needs the HDR10 decode path.
func isHDR10FamilyRange(rangeType string) bool {
	switch rangeType {
	case RangeHDR10, RangeHDR10Plus, RangeHLG:
		return true
	}
	return false
}

// isDolbyVisionRange reports whether a range tag is any Dolby Vision variant.
func isDolbyVisionRange(rangeType string) bool {
	return strings.HasPrefix(rangeType, "DOVI")
}
