package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalVideoCodec(t *testing.T) {
	tests := []struct {
		raw        string
		canonical  string
		doviTagged bool
	}{
		{"h264", CodecH264, false},
		{"AVC1", CodecH264, false},
		{"hevc", CodecHEVC, false},
		{"H265", CodecHEVC, false},
		{"hvc1", CodecHEVC, false},
		{"dvhe", CodecHEVC, true},
		{"DVH1", CodecHEVC, true},
		{"av01", CodecAV1, false},
		{"vp09", CodecVP9, false},
		{" hevc ", CodecHEVC, false},
		{"mpeg2video", "mpeg2video", false},
	}

	for _, tt := range tests {
		canonical, doviTagged := CanonicalVideoCodec(tt.raw)
		assert.Equal(t, tt.canonical, canonical, "raw %q", tt.raw)
		assert.Equal(t, tt.doviTagged, doviTagged, "raw %q", tt.raw)
	}
}

func TestCanonicalAudioCodec(t *testing.T) {
	tests := []struct {
		raw       string
		canonical string
	}{
		{"AAC", CodecAAC},
		{"mp4a", CodecAAC},
		{"ec-3", CodecEAC3},
		{"E-AC-3", CodecEAC3},
		{"dca", CodecDTS},
		{"mlp", CodecTrueHD},
		{"pcm_s24le", CodecPCM},
		{"vorbis", "vorbis"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.canonical, CanonicalAudioCodec(tt.raw), "raw %q", tt.raw)
	}
}

func TestCanonicalContainer(t *testing.T) {
	tests := []struct {
		raw       string
		canonical string
	}{
		{"MKV", "mkv"},
		{"matroska", "mkv"},
		{"mpegts", "ts"},
		{"m2ts", "ts"},
		{"m4v", "mp4"},
		{"mov", "mp4"},
		{"wmv", "asf"},
		{"webm", "webm"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.canonical, CanonicalContainer(tt.raw), "raw %q", tt.raw)
	}
}
