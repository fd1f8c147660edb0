package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildVideoRangeTypes(t *testing.T) {
	tests := []struct {
		name     string
		flags    CapabilityFlags
		expected []string
	}{
		{
			name:     "sdr only",
			flags:    CapabilityFlags{},
			expected: []string{"SDR"},
		},
		{
			name:     "hdr10 family",
			flags:    CapabilityFlags{HDR10: true},
			expected: []string{"SDR", "HDR10", "HDR10Plus", "HLG"},
		},
		{
			name:  "dolby vision without profile 8",
			flags: CapabilityFlags{HDR10: true, DolbyVision: true},
			expected: []string{
				"SDR", "HDR10", "HDR10Plus", "HLG",
				"DOVI", "DOVIWithHDR10", "DOVIWithHLG", "DOVIWithSDR",
			},
		},
		{
			name:  "dolby vision with profile 8",
			flags: CapabilityFlags{HDR10: true, DolbyVision: true, DolbyVisionProfile8: true},
			expected: []string{
				"SDR", "HDR10", "HDR10Plus", "HLG",
				"DOVI", "DOVIWithHDR10", "DOVIWithHLG", "DOVIWithSDR",
				"DOVIWithHDR10Plus", "DOVIWithEL", "DOVIWithELHDR10Plus", "DOVIInvalid",
			},
		},
		{
			name:  "dolby vision without hdr10",
			flags: CapabilityFlags{DolbyVision: true},
			expected: []string{
				"SDR", "DOVI", "DOVIWithHDR10", "DOVIWithHLG", "DOVIWithSDR",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Order is part of the contract, so compare exactly.
			assert.Equal(t, tt.expected, BuildVideoRangeTypes(tt.flags))
		})
	}
}

func TestBuildVideoRangeTypesWithoutDovi(t *testing.T) {
	flags := CapabilityFlags{HDR10: true, DolbyVision: true, DolbyVisionProfile8: true}
	assert.Equal(t,
		[]string{"SDR", "HDR10", "HDR10Plus", "HLG"},
		BuildVideoRangeTypesWithoutDovi(flags))
}

func TestJoinRangeTypes(t *testing.T) {
	assert.Equal(t, "SDR|HDR10", JoinRangeTypes([]string{"SDR", "HDR10"}))
}

func TestRangeFamilies(t *testing.T) {
	assert.True(t, isHDR10FamilyRange(RangeHDR10))
	assert.True(t, isHDR10FamilyRange(RangeHDR10Plus))
	assert.True(t, isHDR10FamilyRange(RangeHLG))
	assert.False(t, isHDR10FamilyRange(RangeSDR))
	assert.False(t, isHDR10FamilyRange(RangeDOVI))

	assert.True(t, isDolbyVisionRange(RangeDOVI))
	assert.True(t, isDolbyVisionRange(RangeDOVIWithELHDR10Plus))
	assert.False(t, isDolbyVisionRange(RangeHDR10))
}
