package core

import (
	"strconv"
	"strings"

	"github.com/lumitv/lumitv/internal/modules/playbackmodule/types"
)

// ProfileOptions carries the deployment-level ceilings that go into the
// compiled document. Zero values fall back to the defaults below.
type ProfileOptions struct {
	MaxStreamingBitrate              int
	MaxStaticBitrate                 int
	MusicStreamingTranscodingBitrate int
	MaxAudioChannels                 int
}

const (
	defaultMaxStreamingBitrate = 120_000_000
	defaultMaxStaticBitrate    = 100_000_000
	defaultMusicBitrate        = 384_000
	defaultMaxAudioChannels    = 6
)

func (o ProfileOptions) withDefaults() ProfileOptions {
	if o.MaxStreamingBitrate <= 0 {
		o.MaxStreamingBitrate = defaultMaxStreamingBitrate
	}
	if o.MaxStaticBitrate <= 0 {
		o.MaxStaticBitrate = defaultMaxStaticBitrate
	}
	if o.MusicStreamingTranscodingBitrate <= 0 {
		o.MusicStreamingTranscodingBitrate = defaultMusicBitrate
	}
	if o.MaxAudioChannels <= 0 {
		o.MaxAudioChannels = defaultMaxAudioChannels
	}
	return o
}

// BuildDeviceProfile compiles the negotiation document for one capability
// snapshot. The builder never fails: a capability gap omits the matching rule
// instead of erroring, and a snapshot with every flag off yields a valid
// transcode-only profile. Identical flags always produce byte-identical
// output; every list is built in a fixed order.
func BuildDeviceProfile(flags CapabilityFlags, opts ProfileOptions) *types.DeviceProfile {
	opts = opts.withDefaults()

	return &types.DeviceProfile{
		MaxStreamingBitrate:              opts.MaxStreamingBitrate,
		MaxStaticBitrate:                 opts.MaxStaticBitrate,
		MusicStreamingTranscodingBitrate: opts.MusicStreamingTranscodingBitrate,
		DirectPlayProfiles:               buildDirectPlayProfiles(flags),
		TranscodingProfiles:              buildTranscodingProfiles(flags, opts),
		ContainerProfiles:                []types.ContainerProfile{},
		CodecProfiles:                    buildCodecProfiles(flags, opts),
		SubtitleProfiles:                 buildSubtitleProfiles(),
		ResponseProfiles:                 buildResponseProfiles(),
	}
}

// enabledVideoCodecs returns the direct-playable video codecs in canonical
// preference order.
func enabledVideoCodecs(flags CapabilityFlags) []string {
	codecs := []string{}
	if flags.H264 {
		codecs = append(codecs, CodecH264)
	}
	if flags.HEVC {
		codecs = append(codecs, CodecHEVC)
	}
	if flags.AV1 {
		codecs = append(codecs, CodecAV1)
	}
	if flags.VP9 {
		codecs = append(codecs, CodecVP9)
	}
	return codecs
}

func enabledAudioCodecs(flags CapabilityFlags) []string {
	codecs := []string{}
	if flags.AAC {
		codecs = append(codecs, CodecAAC)
	}
	codecs = append(codecs, CodecMP3)
	if flags.AC3 {
		codecs = append(codecs, CodecAC3)
	}
	if flags.EAC3 {
		codecs = append(codecs, CodecEAC3)
	}
	if flags.DTS {
		codecs = append(codecs, CodecDTS)
	}
	if flags.Opus {
		codecs = append(codecs, CodecOpus)
	}
	codecs = append(codecs, CodecFLAC)
	if flags.TrueHD {
		codecs = append(codecs, CodecTrueHD)
	}
	return codecs
}

// directPlayContainer is one entry of the ordered container table the
// direct-play rules are assembled from.
type directPlayContainer struct {
	name    string
	enabled func(CapabilityFlags) bool
	// audioFilter drops codecs that the platform cannot demux out of this
	// container even though it can decode them elsewhere.
	audioFilter func(CapabilityFlags, string) bool
}

var directPlayContainers = []directPlayContainer{
	{
		name:    "mp4",
		enabled: func(f CapabilityFlags) bool { return f.MP4 },
	},
	{
		name:    "mkv",
		enabled: func(f CapabilityFlags) bool { return f.MKV },
		// TrueHD passthrough is wired for mp4/ts only.
		audioFilter: func(f CapabilityFlags, codec string) bool {
			return codec != CodecTrueHD
		},
	},
	{
		name:    "ts",
		enabled: func(f CapabilityFlags) bool { return f.TS },
	},
	{
		name:    "webm",
		enabled: func(f CapabilityFlags) bool { return f.WebM },
		audioFilter: func(f CapabilityFlags, codec string) bool {
			// WebM carries the open codec family only.
			return codec == CodecOpus
		},
	},
	{
		name:    "avi",
		enabled: func(f CapabilityFlags) bool { return f.AVI },
		audioFilter: func(f CapabilityFlags, codec string) bool {
			return codec != CodecTrueHD && codec != CodecOpus
		},
	},
	{
		name:    "asf",
		enabled: func(f CapabilityFlags) bool { return f.ASF },
	},
}

// webm cannot carry the h264/hevc family.
var webmVideoCodecs = map[string]bool{CodecVP9: true, CodecAV1: true}

func buildDirectPlayProfiles(flags CapabilityFlags) []types.DirectPlayProfile {
	profiles := []types.DirectPlayProfile{}

	video := enabledVideoCodecs(flags)
	audio := enabledAudioCodecs(flags)

	for _, container := range directPlayContainers {
		if !container.enabled(flags) {
			continue
		}

		videoCodecs := video
		if container.name == "webm" {
			videoCodecs = filterCodecs(video, func(c string) bool { return webmVideoCodecs[c] })
		}

		audioCodecs := audio
		if container.audioFilter != nil {
			audioCodecs = filterCodecs(audio, func(c string) bool {
				return container.audioFilter(flags, c)
			})
		}

		// A container with no codecs left is omitted entirely; an empty
		// rule would claim support for everything.
		if len(videoCodecs) == 0 || len(audioCodecs) == 0 {
			continue
		}

		profiles = append(profiles, types.DirectPlayProfile{
			Container:  container.name,
			Type:       types.ProfileTypeVideo,
			VideoCodec: strings.Join(videoCodecs, ","),
			AudioCodec: strings.Join(audioCodecs, ","),
		})
	}

	// Audio-only direct play. The audio pipeline rides on the mp4 media
	// stack, so the degenerate snapshot with every flag off emits nothing.
	if flags.MP4 {
		audioOnly := []string{CodecMP3}
		if flags.AAC {
			audioOnly = append(audioOnly, CodecAAC)
		}
		audioOnly = append(audioOnly, CodecFLAC)
		if flags.Opus {
			audioOnly = append(audioOnly, CodecOpus)
		}
		for _, codec := range audioOnly {
			profiles = append(profiles, types.DirectPlayProfile{
				Container:  codec,
				Type:       types.ProfileTypeAudio,
				AudioCodec: codec,
			})
		}
	}

	return profiles
}

func filterCodecs(codecs []string, keep func(string) bool) []string {
	out := []string{}
	for _, codec := range codecs {
		if keep(codec) {
			out = append(out, codec)
		}
	}
	return out
}

// buildTranscodingProfiles emits delivery targets in preference order. The
// server tries the first structurally valid target, so fMP4-over-HLS must
// precede TS-over-HLS, which precedes the static fallback.
func buildTranscodingProfiles(flags CapabilityFlags, opts ProfileOptions) []types.TranscodingProfile {
	maxChannels := strconv.Itoa(opts.MaxAudioChannels)

	hlsVideo := []string{CodecH264}
	if flags.HEVC {
		hlsVideo = append(hlsVideo, CodecHEVC)
	}
	hlsAudio := []string{CodecAAC}
	if flags.AC3 {
		hlsAudio = append(hlsAudio, CodecAC3)
	}
	if flags.EAC3 {
		hlsAudio = append(hlsAudio, CodecEAC3)
	}

	profiles := []types.TranscodingProfile{}

	if flags.NativeHLSFMP4 {
		profiles = append(profiles, types.TranscodingProfile{
			Container:           "mp4",
			Type:                types.ProfileTypeVideo,
			VideoCodec:          strings.Join(hlsVideo, ","),
			AudioCodec:          strings.Join(hlsAudio, ","),
			Protocol:            "hls",
			Context:             "Streaming",
			MaxAudioChannels:    maxChannels,
			MinSegments:         1,
			BreakOnNonKeyFrames: true,
		})
	}

	if flags.NativeHLS {
		profiles = append(profiles, types.TranscodingProfile{
			Container:           "ts",
			Type:                types.ProfileTypeVideo,
			VideoCodec:          CodecH264,
			AudioCodec:          strings.Join(hlsAudio, ","),
			Protocol:            "hls",
			Context:             "Streaming",
			MaxAudioChannels:    maxChannels,
			MinSegments:         1,
			BreakOnNonKeyFrames: true,
		})
	}

	// Static fallback always exists so a capability-free snapshot still
	// yields at least one target.
	profiles = append(profiles, types.TranscodingProfile{
		Container:        "mp4",
		Type:             types.ProfileTypeVideo,
		VideoCodec:       CodecH264,
		AudioCodec:       CodecAAC,
		Protocol:         "http",
		Context:          "Static",
		MaxAudioChannels: maxChannels,
	})

	profiles = append(profiles, types.TranscodingProfile{
		Container:        "aac",
		Type:             types.ProfileTypeAudio,
		AudioCodec:       CodecAAC,
		Protocol:         "http",
		Context:          "Streaming",
		MaxAudioChannels: "2",
	})

	return profiles
}

func buildCodecProfiles(flags CapabilityFlags, opts ProfileOptions) []types.CodecProfile {
	profiles := []types.CodecProfile{}

	fullRanges := JoinRangeTypes(BuildVideoRangeTypes(flags))
	noDoviRanges := JoinRangeTypes(BuildVideoRangeTypesWithoutDovi(flags))

	width := flags.MaxWidth
	if width <= 0 {
		width = 3840
	}
	height := flags.MaxHeight
	if height <= 0 {
		height = 2160
	}
	maxWidth := strconv.Itoa(width)
	maxHeight := strconv.Itoa(height)
	maxBitrate := strconv.Itoa(opts.MaxStreamingBitrate)

	if flags.H264 {
		profiles = append(profiles, types.CodecProfile{
			Type:  types.CodecTypeVideo,
			Codec: CodecH264,
			Conditions: []types.ProfileCondition{
				lessThanEqual(types.PropertyWidth, maxWidth, false),
				lessThanEqual(types.PropertyHeight, maxHeight, false),
				lessThanEqual(types.PropertyVideoFramerate, "60", false),
				lessThanEqual(types.PropertyVideoBitrate, maxBitrate, false),
				lessThanEqual(types.PropertyVideoLevel, strconv.Itoa(flags.MaxH264Level), false),
				lessThanEqual(types.PropertyVideoBitDepth, "8", false),
				equalsAny(types.PropertyVideoProfile, "high|main|baseline|constrained baseline", false),
				equalsAny(types.PropertyVideoRangeType, RangeSDR, false),
			},
		})
	}

	if flags.HEVC {
		// Dolby Vision metadata survives mp4/ts only; everywhere else the
		// DOVI range variants are excluded even though base HEVC passes.
		profiles = append(profiles, types.CodecProfile{
			Type:      types.CodecTypeVideo,
			Codec:     CodecHEVC,
			Container: "mp4,ts",
			Conditions: []types.ProfileCondition{
				lessThanEqual(types.PropertyWidth, maxWidth, false),
				lessThanEqual(types.PropertyHeight, maxHeight, false),
				lessThanEqual(types.PropertyVideoFramerate, "60", false),
				lessThanEqual(types.PropertyVideoBitrate, maxBitrate, false),
				lessThanEqual(types.PropertyVideoLevel, strconv.Itoa(flags.MaxHEVCLevel), false),
				lessThanEqual(types.PropertyVideoBitDepth, "10", false),
				equalsAny(types.PropertyVideoProfile, "main|main 10", false),
				equalsAny(types.PropertyVideoRangeType, fullRanges, false),
			},
		})
		profiles = append(profiles, types.CodecProfile{
			Type:  types.CodecTypeVideo,
			Codec: CodecHEVC,
			Conditions: []types.ProfileCondition{
				lessThanEqual(types.PropertyWidth, maxWidth, false),
				lessThanEqual(types.PropertyHeight, maxHeight, false),
				lessThanEqual(types.PropertyVideoFramerate, "60", false),
				lessThanEqual(types.PropertyVideoBitrate, maxBitrate, false),
				lessThanEqual(types.PropertyVideoLevel, strconv.Itoa(flags.MaxHEVCLevel), false),
				lessThanEqual(types.PropertyVideoBitDepth, "10", false),
				equalsAny(types.PropertyVideoProfile, "main|main 10", false),
				equalsAny(types.PropertyVideoRangeType, noDoviRanges, true),
			},
		})
	}

	if flags.AV1 {
		profiles = append(profiles, types.CodecProfile{
			Type:  types.CodecTypeVideo,
			Codec: CodecAV1,
			Conditions: []types.ProfileCondition{
				lessThanEqual(types.PropertyWidth, maxWidth, false),
				lessThanEqual(types.PropertyHeight, maxHeight, false),
				lessThanEqual(types.PropertyVideoFramerate, "60", false),
				lessThanEqual(types.PropertyVideoBitrate, maxBitrate, false),
				lessThanEqual(types.PropertyVideoBitDepth, "10", false),
				equalsAny(types.PropertyVideoRangeType, fullRanges, false),
			},
		})
	}

	if flags.VP9 {
		profiles = append(profiles, types.CodecProfile{
			Type:  types.CodecTypeVideo,
			Codec: CodecVP9,
			Conditions: []types.ProfileCondition{
				lessThanEqual(types.PropertyWidth, maxWidth, false),
				lessThanEqual(types.PropertyHeight, maxHeight, false),
				lessThanEqual(types.PropertyVideoBitrate, maxBitrate, false),
				lessThanEqual(types.PropertyVideoBitDepth, "10", false),
				equalsAny(types.PropertyVideoRangeType, vp9Ranges(flags), false),
			},
		})
	}

	// Global audio channel ceiling.
	globalAudio := types.CodecProfile{
		Type: types.CodecTypeVideoAudio,
		Conditions: []types.ProfileCondition{
			lessThanEqual(types.PropertyAudioChannels, strconv.Itoa(opts.MaxAudioChannels), false),
		},
	}
	if !flags.SecondaryAudio {
		// The platform cannot switch secondary tracks; hide them from
		// negotiation instead of failing at playback time.
		globalAudio.Conditions = append(globalAudio.Conditions, types.ProfileCondition{
			Condition:  types.ConditionEquals,
			Property:   types.PropertyIsSecondaryAudio,
			Value:      "false",
			IsRequired: false,
		})
	}
	profiles = append(profiles, globalAudio)

	// Per-codec channel ceilings apply in addition to the global one.
	if flags.TrueHD {
		profiles = append(profiles, types.CodecProfile{
			Type:  types.CodecTypeVideoAudio,
			Codec: CodecTrueHD,
			Conditions: []types.ProfileCondition{
				lessThanEqual(types.PropertyAudioChannels, "2", true),
			},
		})
	}
	if flags.DTS {
		profiles = append(profiles, types.CodecProfile{
			Type:  types.CodecTypeVideoAudio,
			Codec: CodecDTS,
			Conditions: []types.ProfileCondition{
				lessThanEqual(types.PropertyAudioChannels, strconv.Itoa(opts.MaxAudioChannels), false),
			},
		})
	}

	return profiles
}

// vp9Ranges limits VP9 to the HDR10 family: the platform has no Dolby Vision
// path for it regardless of the HEVC flags.
func vp9Ranges(flags CapabilityFlags) string {
	ranges := []string{RangeSDR}
	if flags.HDR10 {
		ranges = append(ranges, RangeHDR10, RangeHLG)
	}
	return JoinRangeTypes(ranges)
}

func buildSubtitleProfiles() []types.SubtitleProfile {
	return []types.SubtitleProfile{
		{Format: "vtt", Method: types.SubtitleMethodExternal},
		{Format: "srt", Method: types.SubtitleMethodExternal},
		{Format: "subrip", Method: types.SubtitleMethodExternal},
		{Format: "ass", Method: types.SubtitleMethodEncode},
		{Format: "ssa", Method: types.SubtitleMethodEncode},
		{Format: "pgssub", Method: types.SubtitleMethodEncode},
		{Format: "dvbsub", Method: types.SubtitleMethodEncode},
	}
}

func buildResponseProfiles() []types.ResponseProfile {
	return []types.ResponseProfile{
		{Type: types.ProfileTypeVideo, Container: "m4v", MimeType: "video/mp4"},
	}
}

func lessThanEqual(property, value string, required bool) types.ProfileCondition {
	return types.ProfileCondition{
		Condition:  types.ConditionLessThanEqual,
		Property:   property,
		Value:      value,
		IsRequired: required,
	}
}

func equalsAny(property, value string, required bool) types.ProfileCondition {
	return types.ProfileCondition{
		Condition:  types.ConditionEqualsAny,
		Property:   property,
		Value:      value,
		IsRequired: required,
	}
}
